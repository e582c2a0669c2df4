package forward

import (
	"context"
	"errors"
	"iter"
	"log/slog"

	"github.com/kuksa-sdk/kuksa-go/pkg/kuksa"
	"github.com/kuksa-sdk/kuksa-go/pkg/metrics"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
)

// Source yields subscription updates. *kuksa.Subscription[[]value.Entry]
// satisfies it.
type Source interface {
	Updates() iter.Seq2[[]value.Entry, error]
}

// Forwarder pumps updates from a Source into every sink. A failing sink
// is logged and counted; the update is not retried and the other sinks
// still receive it.
type Forwarder struct {
	source  string
	sinks   []Sink
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New returns a Forwarder stamping source on every message. m and logger
// may be nil.
func New(source string, sinks []Sink, m *metrics.Metrics, logger *slog.Logger) *Forwarder {
	return &Forwarder{source: source, sinks: sinks, metrics: m, logger: logger}
}

// Run forwards until the source ends. It returns nil when the broker ends
// the stream or the subscription is closed, ctx.Err() when ctx is done,
// and the subscription error otherwise.
func (f *Forwarder) Run(ctx context.Context, src Source) error {
	for entries, err := range src.Updates() {
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, kuksa.ErrSubscriptionClosed) {
				return nil
			}
			return err
		}
		f.forward(ctx, entries)
	}
	return nil
}

func (f *Forwarder) forward(ctx context.Context, entries []value.Entry) {
	msgs := make([]Message, 0, len(entries))
	for _, e := range entries {
		if m, ok := NewMessage(f.source, e); ok {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return
	}
	for _, s := range f.sinks {
		if err := s.Send(ctx, msgs); err != nil {
			if f.logger != nil {
				f.logger.Warn("forward failed", "sink", s.Name(), "messages", len(msgs), "error", err)
			}
			if f.metrics != nil {
				f.metrics.ForwardErrors.WithLabelValues(s.Name()).Inc()
			}
			continue
		}
		f.debugLog("forwarded", "sink", s.Name(), "messages", len(msgs))
		if f.metrics != nil {
			f.metrics.ForwardedTotal.WithLabelValues(s.Name()).Add(float64(len(msgs)))
		}
	}
}

// Close closes every sink.
func (f *Forwarder) Close() error {
	var errs []error
	for _, s := range f.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

func (f *Forwarder) debugLog(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
