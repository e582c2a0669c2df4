package channel

import (
	"context"
	"crypto/tls"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"

	"github.com/kuksa-sdk/kuksa-go/pkg/auth"
	authmocks "github.com/kuksa-sdk/kuksa-go/pkg/auth/mocks"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"tls", func(c *Config) { c.Insecure, c.TLS = false, &tls.Config{} }, false},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, true},
		{"both", func(c *Config) { c.TLS = &tls.Config{} }, true},
		{"neither", func(c *Config) { c.Insecure = false }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChannelIsMemoized(t *testing.T) {
	m := New(Config{Endpoint: "passthrough:///bufnet", Insecure: true})
	defer m.Close()

	c1, err := m.Channel(context.Background())
	require.NoError(t, err)
	c2, err := m.Channel(context.Background())
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.NotEmpty(t, m.ConnectionID())

	require.NoError(t, m.Close())
	c3, err := m.Channel(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, c1, c3)
}

func TestChannelInvalidConfigIsTransportError(t *testing.T) {
	m := New(Config{})
	_, err := m.Channel(context.Background())
	require.Error(t, err)
	assert.True(t, clienterr.IsTransport(err))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCloseWithoutChannel(t *testing.T) {
	assert.NoError(t, New(DefaultConfig()).Close())
}

func TestAuthInterceptor(t *testing.T) {
	var got metadata.MD
	invoker := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		got, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	t.Run("stamps bearer token", func(t *testing.T) {
		got = nil
		err := AuthInterceptor(auth.StaticToken("abc"))(context.Background(), "/m", nil, nil, nil, invoker)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bearer abc"}, got.Get(AuthorizationKey))
	})

	t.Run("nil source passes through", func(t *testing.T) {
		got = nil
		err := AuthInterceptor(nil)(context.Background(), "/m", nil, nil, nil, invoker)
		require.NoError(t, err)
		assert.Empty(t, got.Get(AuthorizationKey))
	})

	t.Run("token error fails the call", func(t *testing.T) {
		called := false
		inv := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
			called = true
			return nil
		}
		err := AuthInterceptor(auth.StaticToken(""))(context.Background(), "/m", nil, nil, nil, inv)
		require.Error(t, err)
		assert.False(t, called)
		assert.ErrorIs(t, err, auth.ErrNoToken)

		var te *clienterr.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, codes.Unauthenticated, te.Code)
	})
}

func TestAuthStreamInterceptor(t *testing.T) {
	var got metadata.MD
	streamer := func(ctx context.Context, _ *grpc.StreamDesc, _ *grpc.ClientConn, _ string, _ ...grpc.CallOption) (grpc.ClientStream, error) {
		got, _ = metadata.FromOutgoingContext(ctx)
		return nil, nil
	}
	tokens := auth.TokenFunc(func(context.Context) (string, error) { return "xyz", nil })
	_, err := AuthStreamInterceptor(tokens)(context.Background(), &grpc.StreamDesc{}, nil, "/s", streamer)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer xyz"}, got.Get(AuthorizationKey))
}

func TestAuthInterceptorAsksSourcePerCall(t *testing.T) {
	tokens := authmocks.NewMockTokenSource(t)
	tokens.EXPECT().Token(mock.Anything).Return("first", nil).Once()
	tokens.EXPECT().Token(mock.Anything).Return("rotated", nil).Once()

	var got []string
	invoker := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		got = append(got, md.Get(AuthorizationKey)...)
		return nil
	}
	intercept := AuthInterceptor(tokens)
	require.NoError(t, intercept(context.Background(), "/m", nil, nil, nil, invoker))
	require.NoError(t, intercept(context.Background(), "/m", nil, nil, nil, invoker))
	assert.Equal(t, []string{"Bearer first", "Bearer rotated"}, got)
}

func TestAuthStreamInterceptorTokenError(t *testing.T) {
	expired := errors.New("token expired")
	tokens := authmocks.NewMockTokenSource(t)
	tokens.EXPECT().Token(mock.Anything).Return("", expired).Once()

	streamer := func(context.Context, *grpc.StreamDesc, *grpc.ClientConn, string, ...grpc.CallOption) (grpc.ClientStream, error) {
		t.Fatal("stream opened without a token")
		return nil, nil
	}
	_, err := AuthStreamInterceptor(tokens)(context.Background(), &grpc.StreamDesc{}, nil, "/s", streamer)
	require.ErrorIs(t, err, expired)

	var te *clienterr.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, codes.Unauthenticated, te.Code)
	assert.Equal(t, "/s", te.Op)
}
