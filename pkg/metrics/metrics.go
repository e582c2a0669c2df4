// Package metrics exposes prometheus collectors for databroker client
// traffic and the gRPC interceptors that feed them.
package metrics

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Metrics holds the client collectors.
type Metrics struct {
	CallsTotal     *prometheus.CounterVec
	CallDuration   *prometheus.HistogramVec
	StreamMessages *prometheus.CounterVec
	ActiveStreams  *prometheus.GaugeVec

	// Forwarding metrics, labelled by sink name.
	ForwardedTotal *prometheus.CounterVec
	ForwardErrors  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kuksa",
				Subsystem: "client",
				Name:      "calls_total",
				Help:      "Total number of RPCs issued, by method and status code",
			},
			[]string{"method", "code"},
		),

		CallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "kuksa",
				Subsystem: "client",
				Name:      "call_duration_seconds",
				Help:      "Unary RPC duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		StreamMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kuksa",
				Subsystem: "client",
				Name:      "stream_messages_total",
				Help:      "Total number of messages received on server streams",
			},
			[]string{"method"},
		),

		ActiveStreams: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "kuksa",
				Subsystem: "client",
				Name:      "active_streams",
				Help:      "Number of open server streams",
			},
			[]string{"method"},
		),

		ForwardedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kuksa",
				Subsystem: "forward",
				Name:      "messages_total",
				Help:      "Total number of updates delivered to a sink",
			},
			[]string{"sink"},
		),

		ForwardErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kuksa",
				Subsystem: "forward",
				Name:      "errors_total",
				Help:      "Total number of updates a sink failed to deliver",
			},
			[]string{"sink"},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.CallsTotal, m.CallDuration, m.StreamMessages, m.ActiveStreams,
			m.ForwardedTotal, m.ForwardErrors,
		)
	}
	return m
}

// UnaryClientInterceptor counts and times unary calls.
func (m *Metrics) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		m.CallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		m.CallsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
		return err
	}
}

// StreamClientInterceptor tracks open streams and counts their messages.
// The call is counted when the stream ends.
func (m *Metrics) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			m.CallsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
			return nil, err
		}
		m.ActiveStreams.WithLabelValues(method).Inc()
		return &countedStream{ClientStream: cs, m: m, method: method}, nil
	}
}

type countedStream struct {
	grpc.ClientStream
	m      *Metrics
	method string
	done   bool
}

// RecvMsg is called from one goroutine at a time per grpc.ClientStream
// rules, so done needs no lock.
func (s *countedStream) RecvMsg(msg any) error {
	err := s.ClientStream.RecvMsg(msg)
	if err == nil {
		s.m.StreamMessages.WithLabelValues(s.method).Inc()
		return nil
	}
	if !s.done {
		s.done = true
		code := status.Code(err)
		if errors.Is(err, io.EOF) {
			code = status.Code(nil)
		}
		s.m.ActiveStreams.WithLabelValues(s.method).Dec()
		s.m.CallsTotal.WithLabelValues(s.method, code.String()).Inc()
	}
	return err
}
