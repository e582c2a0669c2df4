package valv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

const (
	VAL_Get_FullMethodName           = "/kuksa.val.v1.VAL/Get"
	VAL_Set_FullMethodName           = "/kuksa.val.v1.VAL/Set"
	VAL_Subscribe_FullMethodName     = "/kuksa.val.v1.VAL/Subscribe"
	VAL_GetServerInfo_FullMethodName = "/kuksa.val.v1.VAL/GetServerInfo"
)

// VALClient is the client API for the kuksa.val.v1.VAL service.
type VALClient interface {
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error)
	Set(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeResponse], error)
	GetServerInfo(ctx context.Context, in *GetServerInfoRequest, opts ...grpc.CallOption) (*GetServerInfoResponse, error)
}

type valClient struct {
	cc grpc.ClientConnInterface
}

// NewVALClient returns a VALClient that issues calls on cc.
func NewVALClient(cc grpc.ClientConnInterface) VALClient {
	return &valClient{cc: cc}
}

func (c *valClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	return wire.Invoke[GetResponse](ctx, c.cc, VAL_Get_FullMethodName, in, opts)
}

func (c *valClient) Set(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetResponse, error) {
	return wire.Invoke[SetResponse](ctx, c.cc, VAL_Set_FullMethodName, in, opts)
}

func (c *valClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeResponse], error) {
	return wire.OpenServerStream[SubscribeResponse](ctx, c.cc, &VAL_ServiceDesc.Streams[0], VAL_Subscribe_FullMethodName, in, opts)
}

func (c *valClient) GetServerInfo(ctx context.Context, in *GetServerInfoRequest, opts ...grpc.CallOption) (*GetServerInfoResponse, error) {
	return wire.Invoke[GetServerInfoResponse](ctx, c.cc, VAL_GetServerInfo_FullMethodName, in, opts)
}

// VALServer is the server API for the kuksa.val.v1.VAL service.
type VALServer interface {
	Get(context.Context, *GetRequest) (*GetResponse, error)
	Set(context.Context, *SetRequest) (*SetResponse, error)
	Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[SubscribeResponse]) error
	GetServerInfo(context.Context, *GetServerInfoRequest) (*GetServerInfoResponse, error)
}

// UnimplementedVALServer answers every method with codes.Unimplemented.
type UnimplementedVALServer struct{}

func (UnimplementedVALServer) Get(context.Context, *GetRequest) (*GetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedVALServer) Set(context.Context, *SetRequest) (*SetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Set not implemented")
}
func (UnimplementedVALServer) Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[SubscribeResponse]) error {
	return status.Error(codes.Unimplemented, "method Subscribe not implemented")
}
func (UnimplementedVALServer) GetServerInfo(context.Context, *GetServerInfoRequest) (*GetServerInfoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetServerInfo not implemented")
}

// RegisterVALServer registers srv on s.
func RegisterVALServer(s grpc.ServiceRegistrar, srv VALServer) {
	s.RegisterService(&VAL_ServiceDesc, srv)
}

// VAL_ServiceDesc is the grpc.ServiceDesc for the kuksa.val.v1.VAL service.
var VAL_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "kuksa.val.v1.VAL",
	HandlerType: (*VALServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Get", Handler: wire.Unary(VAL_Get_FullMethodName, VALServer.Get)},
		{MethodName: "Set", Handler: wire.Unary(VAL_Set_FullMethodName, VALServer.Set)},
		{MethodName: "GetServerInfo", Handler: wire.Unary(VAL_GetServerInfo_FullMethodName, VALServer.GetServerInfo)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Subscribe", Handler: wire.ServerStream(VALServer.Subscribe), ServerStreams: true},
	},
	Metadata: "kuksa/val/v1/val.proto",
}
