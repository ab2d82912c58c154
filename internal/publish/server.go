// Package publish implements the gRPC publish interface: it accepts new
// subscribers, registers them with the engine loop, and streams each their
// personal summary feed until their client disconnects.
package publish

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/fd1az/orderbook-aggregator/internal/engine"
	"github.com/fd1az/orderbook-aggregator/internal/logger"
	"github.com/fd1az/orderbook-aggregator/internal/orderbook"
	"github.com/fd1az/orderbook-aggregator/internal/publish/pb"
)

// Server implements pb.OrderbookAggregatorServer over an engine.Loop.
type Server struct {
	pb.UnimplementedOrderbookAggregatorServer

	register      chan<- engine.Subscriber
	queueCapacity int
	log           logger.LoggerInterface

	grpcServer *grpc.Server
}

// NewServer builds a publish server that registers subscribers on register
// and gives each a Ch buffered to queueCapacity entries.
func NewServer(register chan<- engine.Subscriber, queueCapacity int, log logger.LoggerInterface) *Server {
	return &Server{register: register, queueCapacity: queueCapacity, log: log}
}

// BookSummary registers a new subscriber and streams summaries to it until
// the client disconnects or the server shuts down.
func (s *Server) BookSummary(_ *pb.Empty, stream pb.OrderbookAggregator_BookSummaryServer) error {
	ctx := stream.Context()

	ch := make(chan orderbook.Summary, s.queueCapacity)
	done := make(chan struct{})
	sub := engine.Subscriber{Ch: ch, Done: done}
	defer close(done)

	select {
	case s.register <- sub:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.log.Info(ctx, "publish: subscriber connected")
	defer s.log.Info(ctx, "publish: subscriber disconnected")

	for {
		select {
		case summary := <-ch:
			if err := stream.Send(toProto(summary)); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func toProto(s orderbook.Summary) *pb.Summary {
	return &pb.Summary{
		Spread: s.Spread,
		Bids:   toProtoLevels(s.Bids),
		Asks:   toProtoLevels(s.Asks),
	}
}

func toProtoLevels(levels []orderbook.Level) []pb.Level {
	out := make([]pb.Level, len(levels))
	for i, l := range levels {
		out[i] = pb.Level{Exchange: l.Exchange, Price: l.Price, Amount: l.Amount}
	}
	return out
}

// ListenAndServe binds addr and serves until ctx is cancelled, per spec's
// abrupt (no graceful drain) shutdown model.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.grpcServer = grpc.NewServer()
	pb.RegisterOrderbookAggregatorServer(s.grpcServer, s)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.grpcServer.Stop()
		return nil
	case err := <-errCh:
		return err
	}
}
