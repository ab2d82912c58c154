package synthetic

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
)

func testLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test")
}

func TestAdapter_AlternatesVenues(t *testing.T) {
	a := NewAdapter("btcusd", 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out := make(chan *orderbook.Update, 4)
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, out) }()

	var seen []orderbook.Venue
	for len(seen) < 2 {
		select {
		case u := <-out:
			seen = append(seen, u.Venue)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for synthetic updates")
		}
	}

	if seen[0] == seen[1] {
		t.Fatalf("expected alternating venues, got %v then %v", seen[0], seen[1])
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned an error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestAdapter_DefaultsZeroTick(t *testing.T) {
	a := NewAdapter("btcusd", 0, testLogger())
	if a.tick != time.Second {
		t.Fatalf("expected default tick of 1s, got %v", a.tick)
	}
}

func TestLadder_ProducesRequestedRungCounts(t *testing.T) {
	u := ladder(orderbook.VenueBinance, 3, 2)
	if len(u.Bids) != 2 {
		t.Fatalf("expected 2 bids, got %d", len(u.Bids))
	}
	if len(u.Asks) != 3 {
		t.Fatalf("expected 3 asks, got %d", len(u.Asks))
	}
	for _, b := range u.Bids {
		if b.Venue != orderbook.VenueBinance {
			t.Errorf("expected bid venue binance, got %v", b.Venue)
		}
	}
}
