package publish

import (
	"context"
	"io"
	"testing"
	"time"

	"google.golang.org/grpc"

	"github.com/fd1az/orderbook-aggregator/internal/engine"
	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
	"github.com/fd1az/orderbook-aggregator/internal/publish/pb"
)

// fakeBookSummaryStream is a minimal pb.OrderbookAggregator_BookSummaryServer
// for driving Server.BookSummary without a real network listener. The
// embedded grpc.ServerStream is left nil: only Context and Send are ever
// called on this stream by the code under test.
type fakeBookSummaryStream struct {
	grpc.ServerStream
	ctx  context.Context
	sent chan *pb.Summary
}

func (f *fakeBookSummaryStream) Context() context.Context { return f.ctx }

func (f *fakeBookSummaryStream) Send(m *pb.Summary) error {
	f.sent <- m
	return nil
}

func testLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test")
}

func TestServer_BookSummary_RegistersAndStreams(t *testing.T) {
	register := make(chan engine.Subscriber, 1)
	s := NewServer(register, 10, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := &fakeBookSummaryStream{ctx: ctx, sent: make(chan *pb.Summary, 1)}

	streamErr := make(chan error, 1)
	go func() {
		streamErr <- s.BookSummary(&pb.Empty{}, stream)
	}()

	var sub engine.Subscriber
	select {
	case sub = <-register:
	case <-time.After(2 * time.Second):
		t.Fatal("BookSummary did not register a subscriber")
	}

	sub.Ch <- orderbook.Summary{
		Spread: 1.5,
		Bids:   []orderbook.Level{{Exchange: "binance", Price: 100, Amount: 1}},
		Asks:   []orderbook.Level{{Exchange: "bitstamp", Price: 101, Amount: 2}},
	}

	select {
	case got := <-stream.sent:
		if got.Spread != 1.5 || len(got.Bids) != 1 || got.Bids[0].Exchange != "binance" {
			t.Fatalf("unexpected proto summary: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not receive the forwarded summary")
	}

	cancel()

	select {
	case err := <-streamErr:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("BookSummary did not return after context cancellation")
	}
}

func TestServer_BookSummary_AbortsIfRegistrationBlocked(t *testing.T) {
	register := make(chan engine.Subscriber) // nobody ever reads
	s := NewServer(register, 10, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeBookSummaryStream{ctx: ctx, sent: make(chan *pb.Summary, 1)}

	streamErr := make(chan error, 1)
	go func() {
		streamErr <- s.BookSummary(&pb.Empty{}, stream)
	}()

	cancel()

	select {
	case err := <-streamErr:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("BookSummary did not abort once registration could not proceed")
	}
}
