package wire

import (
	"context"

	"google.golang.org/grpc"
)

// Client and server stub helpers used by the generation packages.

// CallOptions prepends CallOption to opts.
func CallOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{CallOption()}, opts...)
}

// Invoke performs a unary call and decodes the response into a new Res.
func Invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	if err := cc.Invoke(ctx, method, in, out, CallOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenServerStream starts a server-streaming call and sends its single request.
func OpenServerStream[Res any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in Message, opts []grpc.CallOption) (grpc.ServerStreamingClient[Res], error) {
	stream, err := cc.NewStream(ctx, desc, method, CallOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[any, Res]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// Unary adapts a server method expression, e.g. VALServer.GetValue, to a
// grpc.MethodHandler.
func Unary[S any, Req any, PReq interface {
	*Req
	Message
}, Res any](fullMethod string, fn func(S, context.Context, PReq) (Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			res, err := fn(srv.(S), ctx, in)
			return res, err
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			res, err := fn(srv.(S), ctx, req.(PReq))
			return res, err
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServerStream adapts a server-streaming method expression to a grpc.StreamHandler.
func ServerStream[S any, Req any, PReq interface {
	*Req
	Message
}, Res any](fn func(S, PReq, grpc.ServerStreamingServer[Res]) error) grpc.StreamHandler {
	return func(srv any, stream grpc.ServerStream) error {
		in := PReq(new(Req))
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		return fn(srv.(S), in, &grpc.GenericServerStream[Req, Res]{ServerStream: stream})
	}
}
