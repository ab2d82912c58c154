package binance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fd1az/orderbook-aggregator/internal/apperror"
	"github.com/fd1az/orderbook-aggregator/internal/httpclient"
	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
	"github.com/fd1az/orderbook-aggregator/internal/ratelimit"
	"github.com/fd1az/orderbook-aggregator/internal/wsconn"
)

// Adapter ingests Binance's partial-depth (depth10@100ms) stream for a
// single pair and emits one Update per decoded message.
type Adapter struct {
	pair    string
	cfg     Config
	log     logger.LoggerInterface
	http    httpclient.Client
	limiter *ratelimit.Limiter
}

// NewAdapter builds a Binance adapter for pair (Binance casing: uppercase).
// Metadata requests are bounded to 60/minute: the exchangeInfo endpoint is
// called once per adapter lifetime, but this keeps a future retry loop from
// hammering it.
func NewAdapter(pair string, cfg Config, log logger.LoggerInterface) (*Adapter, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("binance"),
		httpclient.WithRequestTimeout(cfg.MetadataTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("binance: failed to build http client: %w", err)
	}
	return &Adapter{pair: pair, cfg: cfg, log: log, http: client, limiter: ratelimit.New(60)}, nil
}

// depthMessage is Binance's partial-depth stream payload: top-level bids
// and asks arrays, each entry a 2-string [price, amount] tuple.
type depthMessage struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// Run discovers precision, connects once, and decodes messages until ctx is
// done. A dropped connection ends Run with an error (no reconnection).
func (a *Adapter) Run(ctx context.Context, out chan<- *orderbook.Update) error {
	pricePrec, amountPrec, err := a.fetchPrecision(ctx)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "binance precision discovered", "pair", a.pair, "price_prec", pricePrec, "amount_prec", amountPrec)

	streamURL := fmt.Sprintf(a.cfg.StreamURLTemplate, lowercase(a.pair))
	wsCfg := wsconn.DefaultConfig(streamURL, "binance-"+a.pair)
	client, err := wsconn.New(wsCfg)
	if err != nil {
		return apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("binance: failed to build websocket client"),
			apperror.WithCause(err))
	}
	// wsconn reconnects on its own and never closes Messages(); its switch
	// to the reconnecting state is how a dropped connection shows up here.
	dropped := make(chan struct{}, 1)
	client.OnStateChange(func(state wsconn.State, _ error) {
		if state == wsconn.StateReconnecting {
			select {
			case dropped <- struct{}{}:
			default:
			}
		}
	})
	if err := client.Connect(ctx); err != nil {
		return apperror.New(apperror.CodeVenueNetworkError,
			apperror.WithMessage("binance: stream connect failed"),
			apperror.WithCause(err))
	}
	defer client.Close()

	a.log.Info(ctx, "binance stream connected", "pair", a.pair, "url", streamURL)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-dropped:
			return apperror.New(apperror.CodeVenueNetworkError,
				apperror.WithMessage("binance: stream closed"))
		case raw, ok := <-client.Messages():
			if !ok {
				return apperror.New(apperror.CodeVenueNetworkError,
					apperror.WithMessage("binance: stream closed"))
			}
			update, err := a.decode(ctx, raw, pricePrec, amountPrec)
			if err != nil {
				return err
			}
			select {
			case out <- update:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (a *Adapter) decode(ctx context.Context, raw []byte, pricePrec, amountPrec uint64) (*orderbook.Update, error) {
	var msg depthMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, apperror.New(apperror.CodeVenueDecodeError,
			apperror.WithMessage("binance: depth message decode failed"),
			apperror.WithCause(err))
	}

	update := orderbook.NewUpdate(orderbook.VenueBinance, pricePrec, amountPrec)
	for _, row := range msg.Bids {
		if len(row) != 2 {
			a.log.Warn(ctx, "binance: skipping malformed bid row", "row", row)
			continue
		}
		if err := update.AddBid(row[0], row[1]); err != nil {
			return nil, apperror.New(apperror.CodeVenueDecodeError,
				apperror.WithMessage("binance: invalid bid decimal"),
				apperror.WithCause(err))
		}
	}
	for _, row := range msg.Asks {
		if len(row) != 2 {
			a.log.Warn(ctx, "binance: skipping malformed ask row", "row", row)
			continue
		}
		if err := update.AddAsk(row[0], row[1]); err != nil {
			return nil, apperror.New(apperror.CodeVenueDecodeError,
				apperror.WithMessage("binance: invalid ask decimal"),
				apperror.WithCause(err))
		}
	}
	return update, nil
}

func lowercase(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
