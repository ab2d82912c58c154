// Package synthetic provides a fixed-ladder test venue adapter for
// exercising the engine and publish interface without live network access.
package synthetic

import (
	"context"
	"fmt"
	"time"

	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
)

// Adapter emits a fixed bid/ask ladder for Binance, then one for Bitstamp,
// alternating once per tick, so both sides of the merge engine and the
// per-venue replacement path stay exercised without live exchanges.
type Adapter struct {
	pair string
	tick time.Duration
	log  logger.LoggerInterface
}

// NewAdapter builds a synthetic adapter. tick defaults to one second when 0.
func NewAdapter(pair string, tick time.Duration, log logger.LoggerInterface) *Adapter {
	if tick <= 0 {
		tick = time.Second
	}
	return &Adapter{pair: pair, tick: tick, log: log}
}

// ladder builds bidRungs bids at successive multiples of a base price
// (base, 2*base, ...) and askRungs asks from 201223.45 upward in steps of
// 10000, mirroring the original synthetic generator's hardcoded rung spacing.
func ladder(venue orderbook.Venue, askRungs, bidRungs int) *orderbook.Update {
	u := orderbook.NewUpdate(venue, 10, 10)
	base := 11223.45
	for i := 1; i <= bidRungs; i++ {
		p := base * float64(i)
		_ = u.AddBid(fmt.Sprintf("%.2f", p), "122.44")
	}
	for i := 20; i < 20+askRungs; i++ {
		p := float64(i)*10000 + 1223.45
		_ = u.AddAsk(fmt.Sprintf("%.2f", p), "122.44")
	}
	return u
}

// Run emits an alternating Binance/Bitstamp ladder every tick until ctx is
// done. It never fails: there is no network to fail against.
func (a *Adapter) Run(ctx context.Context, out chan<- *orderbook.Update) error {
	a.log.Info(ctx, "synthetic adapter started", "pair", a.pair, "tick", a.tick)

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	venues := []orderbook.Venue{orderbook.VenueBinance, orderbook.VenueBitstamp}
	i := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			venue := venues[i%len(venues)]
			i++
			update := ladder(venue, 12, 11)
			select {
			case out <- update:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
