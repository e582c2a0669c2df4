package metrics

import (
	"context"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.CallsTotal.WithLabelValues("/m", "OK").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "kuksa_client_calls_total")

	assert.Panics(t, func() { New(reg) }, "duplicate registration must panic")
}

func TestUnaryInterceptor(t *testing.T) {
	m := New(nil)
	intercept := m.UnaryClientInterceptor()
	ok := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return nil }
	denied := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		return status.Error(codes.PermissionDenied, "no")
	}

	const method = "/kuksa.val.v2.VAL/PublishValue"
	require.NoError(t, intercept(context.Background(), method, nil, nil, nil, ok))
	require.NoError(t, intercept(context.Background(), method, nil, nil, nil, ok))
	require.Error(t, intercept(context.Background(), method, nil, nil, nil, denied))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(method, "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(method, "PermissionDenied")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CallDuration))
}

type fakeStream struct {
	grpc.ClientStream
	n int
}

func (f *fakeStream) RecvMsg(any) error {
	if f.n == 0 {
		return io.EOF
	}
	f.n--
	return nil
}

func TestStreamInterceptor(t *testing.T) {
	m := New(nil)
	const method = "/kuksa.val.v1.VAL/Subscribe"
	streamer := func(context.Context, *grpc.StreamDesc, *grpc.ClientConn, string, ...grpc.CallOption) (grpc.ClientStream, error) {
		return &fakeStream{n: 3}, nil
	}

	cs, err := m.StreamClientInterceptor()(context.Background(), &grpc.StreamDesc{ServerStreams: true}, nil, method, streamer)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveStreams.WithLabelValues(method)))

	for cs.RecvMsg(nil) == nil {
	}
	_ = cs.RecvMsg(nil)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.StreamMessages.WithLabelValues(method)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveStreams.WithLabelValues(method)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(method, "OK")))
}
