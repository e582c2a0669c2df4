package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes call log events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Target != "" {
		attrs = append(attrs, slog.String("target", event.Target))
	}

	switch {
	case event.Call != nil:
		attrs = append(attrs,
			slog.String("method", event.Call.Method),
			slog.String("code", event.Call.Code.String()),
			slog.Duration("duration", event.Call.Duration),
		)
		if event.Call.Message != "" {
			attrs = append(attrs, slog.String("message", event.Call.Message))
		}
	case event.Stream != nil:
		attrs = append(attrs,
			slog.String("method", event.Stream.Method),
			slog.String("stream", event.Stream.Kind.String()),
		)
		switch event.Stream.Kind {
		case StreamMessage:
			attrs = append(attrs, slog.Uint64("seq", event.Stream.Sequence))
		case StreamClose:
			attrs = append(attrs,
				slog.String("code", event.Stream.Code.String()),
				slog.Duration("duration", event.Stream.Duration),
			)
			if event.Stream.Message != "" {
				attrs = append(attrs, slog.String("message", event.Stream.Message))
			}
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "rpc", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
