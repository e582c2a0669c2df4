package valv2

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

const (
	VAL_GetValue_FullMethodName      = "/kuksa.val.v2.VAL/GetValue"
	VAL_GetValues_FullMethodName     = "/kuksa.val.v2.VAL/GetValues"
	VAL_Subscribe_FullMethodName     = "/kuksa.val.v2.VAL/Subscribe"
	VAL_SubscribeById_FullMethodName = "/kuksa.val.v2.VAL/SubscribeById"
	VAL_Actuate_FullMethodName       = "/kuksa.val.v2.VAL/Actuate"
	VAL_BatchActuate_FullMethodName  = "/kuksa.val.v2.VAL/BatchActuate"
	VAL_ListMetadata_FullMethodName  = "/kuksa.val.v2.VAL/ListMetadata"
	VAL_PublishValue_FullMethodName  = "/kuksa.val.v2.VAL/PublishValue"
	VAL_GetServerInfo_FullMethodName = "/kuksa.val.v2.VAL/GetServerInfo"
)

// VALClient is the client API for the kuksa.val.v2.VAL service.
type VALClient interface {
	GetValue(ctx context.Context, in *GetValueRequest, opts ...grpc.CallOption) (*GetValueResponse, error)
	GetValues(ctx context.Context, in *GetValuesRequest, opts ...grpc.CallOption) (*GetValuesResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeResponse], error)
	SubscribeById(ctx context.Context, in *SubscribeByIDRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeByIDResponse], error)
	Actuate(ctx context.Context, in *ActuateRequest, opts ...grpc.CallOption) (*ActuateResponse, error)
	BatchActuate(ctx context.Context, in *BatchActuateRequest, opts ...grpc.CallOption) (*BatchActuateResponse, error)
	ListMetadata(ctx context.Context, in *ListMetadataRequest, opts ...grpc.CallOption) (*ListMetadataResponse, error)
	PublishValue(ctx context.Context, in *PublishValueRequest, opts ...grpc.CallOption) (*PublishValueResponse, error)
	GetServerInfo(ctx context.Context, in *GetServerInfoRequest, opts ...grpc.CallOption) (*GetServerInfoResponse, error)
}

type valClient struct {
	cc grpc.ClientConnInterface
}

// NewVALClient returns a VALClient that issues calls on cc.
func NewVALClient(cc grpc.ClientConnInterface) VALClient {
	return &valClient{cc: cc}
}

func (c *valClient) GetValue(ctx context.Context, in *GetValueRequest, opts ...grpc.CallOption) (*GetValueResponse, error) {
	return wire.Invoke[GetValueResponse](ctx, c.cc, VAL_GetValue_FullMethodName, in, opts)
}

func (c *valClient) GetValues(ctx context.Context, in *GetValuesRequest, opts ...grpc.CallOption) (*GetValuesResponse, error) {
	return wire.Invoke[GetValuesResponse](ctx, c.cc, VAL_GetValues_FullMethodName, in, opts)
}

func (c *valClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeResponse], error) {
	return wire.OpenServerStream[SubscribeResponse](ctx, c.cc, &VAL_ServiceDesc.Streams[0], VAL_Subscribe_FullMethodName, in, opts)
}

func (c *valClient) SubscribeById(ctx context.Context, in *SubscribeByIDRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeByIDResponse], error) {
	return wire.OpenServerStream[SubscribeByIDResponse](ctx, c.cc, &VAL_ServiceDesc.Streams[1], VAL_SubscribeById_FullMethodName, in, opts)
}

func (c *valClient) Actuate(ctx context.Context, in *ActuateRequest, opts ...grpc.CallOption) (*ActuateResponse, error) {
	return wire.Invoke[ActuateResponse](ctx, c.cc, VAL_Actuate_FullMethodName, in, opts)
}

func (c *valClient) BatchActuate(ctx context.Context, in *BatchActuateRequest, opts ...grpc.CallOption) (*BatchActuateResponse, error) {
	return wire.Invoke[BatchActuateResponse](ctx, c.cc, VAL_BatchActuate_FullMethodName, in, opts)
}

func (c *valClient) ListMetadata(ctx context.Context, in *ListMetadataRequest, opts ...grpc.CallOption) (*ListMetadataResponse, error) {
	return wire.Invoke[ListMetadataResponse](ctx, c.cc, VAL_ListMetadata_FullMethodName, in, opts)
}

func (c *valClient) PublishValue(ctx context.Context, in *PublishValueRequest, opts ...grpc.CallOption) (*PublishValueResponse, error) {
	return wire.Invoke[PublishValueResponse](ctx, c.cc, VAL_PublishValue_FullMethodName, in, opts)
}

func (c *valClient) GetServerInfo(ctx context.Context, in *GetServerInfoRequest, opts ...grpc.CallOption) (*GetServerInfoResponse, error) {
	return wire.Invoke[GetServerInfoResponse](ctx, c.cc, VAL_GetServerInfo_FullMethodName, in, opts)
}

// VALServer is the server API for the kuksa.val.v2.VAL service.
type VALServer interface {
	GetValue(context.Context, *GetValueRequest) (*GetValueResponse, error)
	GetValues(context.Context, *GetValuesRequest) (*GetValuesResponse, error)
	Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[SubscribeResponse]) error
	SubscribeById(*SubscribeByIDRequest, grpc.ServerStreamingServer[SubscribeByIDResponse]) error
	Actuate(context.Context, *ActuateRequest) (*ActuateResponse, error)
	BatchActuate(context.Context, *BatchActuateRequest) (*BatchActuateResponse, error)
	ListMetadata(context.Context, *ListMetadataRequest) (*ListMetadataResponse, error)
	PublishValue(context.Context, *PublishValueRequest) (*PublishValueResponse, error)
	GetServerInfo(context.Context, *GetServerInfoRequest) (*GetServerInfoResponse, error)
}

// UnimplementedVALServer answers every method with codes.Unimplemented.
type UnimplementedVALServer struct{}

func (UnimplementedVALServer) GetValue(context.Context, *GetValueRequest) (*GetValueResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetValue not implemented")
}
func (UnimplementedVALServer) GetValues(context.Context, *GetValuesRequest) (*GetValuesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetValues not implemented")
}
func (UnimplementedVALServer) Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[SubscribeResponse]) error {
	return status.Error(codes.Unimplemented, "method Subscribe not implemented")
}
func (UnimplementedVALServer) SubscribeById(*SubscribeByIDRequest, grpc.ServerStreamingServer[SubscribeByIDResponse]) error {
	return status.Error(codes.Unimplemented, "method SubscribeById not implemented")
}
func (UnimplementedVALServer) Actuate(context.Context, *ActuateRequest) (*ActuateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Actuate not implemented")
}
func (UnimplementedVALServer) BatchActuate(context.Context, *BatchActuateRequest) (*BatchActuateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BatchActuate not implemented")
}
func (UnimplementedVALServer) ListMetadata(context.Context, *ListMetadataRequest) (*ListMetadataResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMetadata not implemented")
}
func (UnimplementedVALServer) PublishValue(context.Context, *PublishValueRequest) (*PublishValueResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PublishValue not implemented")
}
func (UnimplementedVALServer) GetServerInfo(context.Context, *GetServerInfoRequest) (*GetServerInfoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetServerInfo not implemented")
}

// RegisterVALServer registers srv on s.
func RegisterVALServer(s grpc.ServiceRegistrar, srv VALServer) {
	s.RegisterService(&VAL_ServiceDesc, srv)
}

// VAL_ServiceDesc is the grpc.ServiceDesc for the kuksa.val.v2.VAL service.
var VAL_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "kuksa.val.v2.VAL",
	HandlerType: (*VALServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetValue", Handler: wire.Unary(VAL_GetValue_FullMethodName, VALServer.GetValue)},
		{MethodName: "GetValues", Handler: wire.Unary(VAL_GetValues_FullMethodName, VALServer.GetValues)},
		{MethodName: "Actuate", Handler: wire.Unary(VAL_Actuate_FullMethodName, VALServer.Actuate)},
		{MethodName: "BatchActuate", Handler: wire.Unary(VAL_BatchActuate_FullMethodName, VALServer.BatchActuate)},
		{MethodName: "ListMetadata", Handler: wire.Unary(VAL_ListMetadata_FullMethodName, VALServer.ListMetadata)},
		{MethodName: "PublishValue", Handler: wire.Unary(VAL_PublishValue_FullMethodName, VALServer.PublishValue)},
		{MethodName: "GetServerInfo", Handler: wire.Unary(VAL_GetServerInfo_FullMethodName, VALServer.GetServerInfo)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Subscribe", Handler: wire.ServerStream(VALServer.Subscribe), ServerStreams: true},
		{StreamName: "SubscribeById", Handler: wire.ServerStream(VALServer.SubscribeById), ServerStreams: true},
	},
	Metadata: "kuksa/val/v2/val.proto",
}
