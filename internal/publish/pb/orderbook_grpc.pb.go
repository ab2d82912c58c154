package pb

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

const (
	OrderbookAggregator_BookSummary_FullMethodName = "/orderbook.OrderbookAggregator/BookSummary"
)

// OrderbookAggregatorClient is the client API for OrderbookAggregator service.
type OrderbookAggregatorClient interface {
	BookSummary(ctx context.Context, in *Empty, opts ...grpc.CallOption) (OrderbookAggregator_BookSummaryClient, error)
}

type orderbookAggregatorClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderbookAggregatorClient(cc grpc.ClientConnInterface) OrderbookAggregatorClient {
	return &orderbookAggregatorClient{cc}
}

func (c *orderbookAggregatorClient) BookSummary(ctx context.Context, in *Empty, opts ...grpc.CallOption) (OrderbookAggregator_BookSummaryClient, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(Name)}, opts...)
	stream, err := c.cc.NewStream(ctx, &OrderbookAggregator_ServiceDesc.Streams[0], OrderbookAggregator_BookSummary_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &orderbookAggregatorBookSummaryClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// OrderbookAggregator_BookSummaryClient is the client side of the
// BookSummary server-streaming RPC.
type OrderbookAggregator_BookSummaryClient interface {
	Recv() (*Summary, error)
	grpc.ClientStream
}

type orderbookAggregatorBookSummaryClient struct {
	grpc.ClientStream
}

func (x *orderbookAggregatorBookSummaryClient) Recv() (*Summary, error) {
	m := new(Summary)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// OrderbookAggregatorServer is the server API for OrderbookAggregator
// service. All implementations must embed UnimplementedOrderbookAggregatorServer.
type OrderbookAggregatorServer interface {
	BookSummary(*Empty, OrderbookAggregator_BookSummaryServer) error
	mustEmbedUnimplementedOrderbookAggregatorServer()
}

// UnimplementedOrderbookAggregatorServer must be embedded to have forward
// compatible implementations.
type UnimplementedOrderbookAggregatorServer struct{}

func (UnimplementedOrderbookAggregatorServer) BookSummary(*Empty, OrderbookAggregator_BookSummaryServer) error {
	return status.Errorf(codes.Unimplemented, "method BookSummary not implemented")
}
func (UnimplementedOrderbookAggregatorServer) mustEmbedUnimplementedOrderbookAggregatorServer() {}

func RegisterOrderbookAggregatorServer(s grpc.ServiceRegistrar, srv OrderbookAggregatorServer) {
	s.RegisterService(&OrderbookAggregator_ServiceDesc, srv)
}

func _OrderbookAggregator_BookSummary_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(OrderbookAggregatorServer).BookSummary(m, &orderbookAggregatorBookSummaryServer{stream})
}

// OrderbookAggregator_BookSummaryServer is the server side of the
// BookSummary server-streaming RPC.
type OrderbookAggregator_BookSummaryServer interface {
	Send(*Summary) error
	grpc.ServerStream
}

type orderbookAggregatorBookSummaryServer struct {
	grpc.ServerStream
}

func (x *orderbookAggregatorBookSummaryServer) Send(m *Summary) error {
	return x.ServerStream.SendMsg(m)
}

// OrderbookAggregator_ServiceDesc is the grpc.ServiceDesc for
// OrderbookAggregator service.
var OrderbookAggregator_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "orderbook.OrderbookAggregator",
	HandlerType: (*OrderbookAggregatorServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "BookSummary",
			Handler:       _OrderbookAggregator_BookSummary_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "orderbook/orderbook.proto",
}
