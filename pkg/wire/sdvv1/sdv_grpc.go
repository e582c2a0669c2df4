package sdvv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

const (
	Broker_GetDatapoints_FullMethodName = "/sdv.databroker.v1.Broker/GetDatapoints"
	Broker_SetDatapoints_FullMethodName = "/sdv.databroker.v1.Broker/SetDatapoints"
	Broker_Subscribe_FullMethodName     = "/sdv.databroker.v1.Broker/Subscribe"
	Broker_GetMetadata_FullMethodName   = "/sdv.databroker.v1.Broker/GetMetadata"
)

// BrokerClient is the client API for the sdv.databroker.v1.Broker service.
type BrokerClient interface {
	GetDatapoints(ctx context.Context, in *GetDatapointsRequest, opts ...grpc.CallOption) (*GetDatapointsResponse, error)
	SetDatapoints(ctx context.Context, in *SetDatapointsRequest, opts ...grpc.CallOption) (*SetDatapointsResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeReply], error)
	GetMetadata(ctx context.Context, in *GetMetadataRequest, opts ...grpc.CallOption) (*GetMetadataReply, error)
}

type brokerClient struct {
	cc grpc.ClientConnInterface
}

// NewBrokerClient returns a BrokerClient that issues calls on cc.
func NewBrokerClient(cc grpc.ClientConnInterface) BrokerClient {
	return &brokerClient{cc: cc}
}

func (c *brokerClient) GetDatapoints(ctx context.Context, in *GetDatapointsRequest, opts ...grpc.CallOption) (*GetDatapointsResponse, error) {
	return wire.Invoke[GetDatapointsResponse](ctx, c.cc, Broker_GetDatapoints_FullMethodName, in, opts)
}

func (c *brokerClient) SetDatapoints(ctx context.Context, in *SetDatapointsRequest, opts ...grpc.CallOption) (*SetDatapointsResponse, error) {
	return wire.Invoke[SetDatapointsResponse](ctx, c.cc, Broker_SetDatapoints_FullMethodName, in, opts)
}

func (c *brokerClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeReply], error) {
	return wire.OpenServerStream[SubscribeReply](ctx, c.cc, &Broker_ServiceDesc.Streams[0], Broker_Subscribe_FullMethodName, in, opts)
}

func (c *brokerClient) GetMetadata(ctx context.Context, in *GetMetadataRequest, opts ...grpc.CallOption) (*GetMetadataReply, error) {
	return wire.Invoke[GetMetadataReply](ctx, c.cc, Broker_GetMetadata_FullMethodName, in, opts)
}

// BrokerServer is the server API for the sdv.databroker.v1.Broker service.
type BrokerServer interface {
	GetDatapoints(context.Context, *GetDatapointsRequest) (*GetDatapointsResponse, error)
	SetDatapoints(context.Context, *SetDatapointsRequest) (*SetDatapointsResponse, error)
	Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[SubscribeReply]) error
	GetMetadata(context.Context, *GetMetadataRequest) (*GetMetadataReply, error)
}

type UnimplementedBrokerServer struct{}

func (UnimplementedBrokerServer) GetDatapoints(context.Context, *GetDatapointsRequest) (*GetDatapointsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDatapoints not implemented")
}
func (UnimplementedBrokerServer) SetDatapoints(context.Context, *SetDatapointsRequest) (*SetDatapointsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetDatapoints not implemented")
}
func (UnimplementedBrokerServer) Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[SubscribeReply]) error {
	return status.Error(codes.Unimplemented, "method Subscribe not implemented")
}
func (UnimplementedBrokerServer) GetMetadata(context.Context, *GetMetadataRequest) (*GetMetadataReply, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMetadata not implemented")
}

func RegisterBrokerServer(s grpc.ServiceRegistrar, srv BrokerServer) {
	s.RegisterService(&Broker_ServiceDesc, srv)
}

var Broker_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sdv.databroker.v1.Broker",
	HandlerType: (*BrokerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetDatapoints", Handler: wire.Unary(Broker_GetDatapoints_FullMethodName, BrokerServer.GetDatapoints)},
		{MethodName: "SetDatapoints", Handler: wire.Unary(Broker_SetDatapoints_FullMethodName, BrokerServer.SetDatapoints)},
		{MethodName: "GetMetadata", Handler: wire.Unary(Broker_GetMetadata_FullMethodName, BrokerServer.GetMetadata)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Subscribe", Handler: wire.ServerStream(BrokerServer.Subscribe), ServerStreams: true},
	},
	Metadata: "sdv/databroker/v1/broker.proto",
}

const (
	Collector_RegisterDatapoints_FullMethodName = "/sdv.databroker.v1.Collector/RegisterDatapoints"
	Collector_UpdateDatapoints_FullMethodName   = "/sdv.databroker.v1.Collector/UpdateDatapoints"
)

// CollectorClient is the client API for the sdv.databroker.v1.Collector
// service. The bidirectional StreamDatapoints call is not exposed.
type CollectorClient interface {
	RegisterDatapoints(ctx context.Context, in *RegisterDatapointsRequest, opts ...grpc.CallOption) (*RegisterDatapointsReply, error)
	UpdateDatapoints(ctx context.Context, in *UpdateDatapointsRequest, opts ...grpc.CallOption) (*UpdateDatapointsReply, error)
}

type collectorClient struct {
	cc grpc.ClientConnInterface
}

func NewCollectorClient(cc grpc.ClientConnInterface) CollectorClient {
	return &collectorClient{cc: cc}
}

func (c *collectorClient) RegisterDatapoints(ctx context.Context, in *RegisterDatapointsRequest, opts ...grpc.CallOption) (*RegisterDatapointsReply, error) {
	return wire.Invoke[RegisterDatapointsReply](ctx, c.cc, Collector_RegisterDatapoints_FullMethodName, in, opts)
}

func (c *collectorClient) UpdateDatapoints(ctx context.Context, in *UpdateDatapointsRequest, opts ...grpc.CallOption) (*UpdateDatapointsReply, error) {
	return wire.Invoke[UpdateDatapointsReply](ctx, c.cc, Collector_UpdateDatapoints_FullMethodName, in, opts)
}

type CollectorServer interface {
	RegisterDatapoints(context.Context, *RegisterDatapointsRequest) (*RegisterDatapointsReply, error)
	UpdateDatapoints(context.Context, *UpdateDatapointsRequest) (*UpdateDatapointsReply, error)
}

type UnimplementedCollectorServer struct{}

func (UnimplementedCollectorServer) RegisterDatapoints(context.Context, *RegisterDatapointsRequest) (*RegisterDatapointsReply, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterDatapoints not implemented")
}
func (UnimplementedCollectorServer) UpdateDatapoints(context.Context, *UpdateDatapointsRequest) (*UpdateDatapointsReply, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateDatapoints not implemented")
}

func RegisterCollectorServer(s grpc.ServiceRegistrar, srv CollectorServer) {
	s.RegisterService(&Collector_ServiceDesc, srv)
}

var Collector_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sdv.databroker.v1.Collector",
	HandlerType: (*CollectorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterDatapoints", Handler: wire.Unary(Collector_RegisterDatapoints_FullMethodName, CollectorServer.RegisterDatapoints)},
		{MethodName: "UpdateDatapoints", Handler: wire.Unary(Collector_UpdateDatapoints_FullMethodName, CollectorServer.UpdateDatapoints)},
	},
	Metadata: "sdv/databroker/v1/collector.proto",
}
