package channel

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"

	"github.com/kuksa-sdk/kuksa-go/pkg/auth"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
)

// AuthorizationKey is the metadata key carrying the bearer token.
const AuthorizationKey = "authorization"

func withToken(ctx context.Context, tokens auth.TokenSource, method string) (context.Context, error) {
	if tokens == nil {
		return ctx, nil
	}
	tok, err := tokens.Token(ctx)
	if err != nil {
		return nil, &clienterr.TransportError{Op: method, Code: codes.Unauthenticated, Err: err}
	}
	return metadata.AppendToOutgoingContext(ctx, AuthorizationKey, "Bearer "+tok), nil
}

// AuthInterceptor stamps unary calls with the current token. A nil
// TokenSource passes calls through unchanged.
func AuthInterceptor(tokens auth.TokenSource) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx, err := withToken(ctx, tokens, method)
		if err != nil {
			return err
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// AuthStreamInterceptor is AuthInterceptor for streams.
func AuthStreamInterceptor(tokens auth.TokenSource) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		ctx, err := withToken(ctx, tokens, method)
		if err != nil {
			return nil, err
		}
		return streamer(ctx, desc, cc, method, opts...)
	}
}
