// Package orderbook implements the cross-venue order-book aggregator
// bounded context: venue adapters, the merge engine, and the publish
// interface.
package orderbook

import (
	"context"
	"fmt"

	orderbookDI "github.com/fd1az/orderbook-aggregator/business/orderbook/di"
	"github.com/fd1az/orderbook-aggregator/internal/config"
	"github.com/fd1az/orderbook-aggregator/internal/di"
	"github.com/fd1az/orderbook-aggregator/internal/engine"
	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/monolith"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook/venue/binance"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook/venue/bitstamp"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook/venue/synthetic"
	"github.com/fd1az/orderbook-aggregator/internal/publish"
)

// Module implements the orderbook bounded context.
type Module struct{}

// RegisterServices registers the engine loop and publish server with the DI
// container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, orderbookDI.Loop, func(sr di.ServiceRegistry) *engine.Loop {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return engine.New(cfg.Engine.Depth, log)
	})

	di.RegisterToken(c, orderbookDI.PublishServer, func(sr di.ServiceRegistry) *publish.Server {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		loop := orderbookDI.GetLoop(sr)
		return publish.NewServer(loop.Register(), cfg.Engine.SubscriberQueueCapacity, log)
	})

	return nil
}

// Startup runs the event loop, the venue adapters, and the publish server,
// each on its own goroutine, and returns once they are launched.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	log := mono.Logger()

	loop := orderbookDI.GetLoop(mono.Services())
	go loop.Run(ctx)

	adapters, err := buildAdapters(cfg, log)
	if err != nil {
		return fmt.Errorf("orderbook: failed to build venue adapters: %w", err)
	}
	for _, a := range adapters {
		a := a
		go func() {
			if err := a.Run(ctx, loop.Orders()); err != nil {
				log.Error(ctx, "venue adapter stopped", "error", err)
			}
		}()
	}

	server := orderbookDI.GetPublishServer(mono.Services())
	go func() {
		if err := server.ListenAndServe(ctx, cfg.Publish.ListenAddress); err != nil {
			log.Error(ctx, "publish server stopped", "error", err)
		}
	}()

	log.Info(ctx, "orderbook module started",
		"pair", cfg.Pair,
		"listen_address", cfg.Publish.ListenAddress,
		"synthetic", cfg.Engine.SyntheticVenue,
	)
	return nil
}

func buildAdapters(cfg *config.Config, log logger.LoggerInterface) ([]orderbook.Adapter, error) {
	if cfg.Engine.SyntheticVenue {
		return []orderbook.Adapter{synthetic.NewAdapter(cfg.Pair, 0, log)}, nil
	}

	binanceCfg := binance.DefaultConfig()
	if cfg.Binance.MetadataURL != "" {
		binanceCfg.MetadataURL = cfg.Binance.MetadataURL
	}
	if cfg.Binance.StreamURL != "" {
		binanceCfg.StreamURLTemplate = cfg.Binance.StreamURL + "/%s@depth10@100ms"
	}
	binanceAdapter, err := binance.NewAdapter(cfg.Pair, binanceCfg, log)
	if err != nil {
		return nil, err
	}

	bitstampCfg := bitstamp.DefaultConfig()
	if cfg.Bitstamp.MetadataURL != "" {
		bitstampCfg.MetadataURL = cfg.Bitstamp.MetadataURL
	}
	if cfg.Bitstamp.StreamURL != "" {
		bitstampCfg.StreamURL = cfg.Bitstamp.StreamURL
	}
	bitstampAdapter, err := bitstamp.NewAdapter(cfg.Pair, bitstampCfg, log)
	if err != nil {
		return nil, err
	}

	return []orderbook.Adapter{binanceAdapter, bitstampAdapter}, nil
}
