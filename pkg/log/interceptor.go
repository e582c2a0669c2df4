package log

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Recorder stamps events with the connection id and target of one channel
// and turns gRPC calls into events.
type Recorder struct {
	logger Logger
	connID string
	target string
}

// NewRecorder returns a Recorder writing to logger. A nil logger discards.
func NewRecorder(logger Logger, connID, target string) *Recorder {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Recorder{logger: logger, connID: connID, target: target}
}

// ConnectionID returns the id stamped on every event.
func (r *Recorder) ConnectionID() string { return r.connID }

func (r *Recorder) emit(e Event) {
	e.Timestamp = time.Now()
	e.ConnectionID = r.connID
	e.Target = r.target
	r.logger.Log(e)
}

// StateChange records a channel state transition.
func (r *Recorder) StateChange(oldState, newState, reason string) {
	r.emit(Event{
		Category:    CategoryState,
		StateChange: &StateChangeEvent{OldState: oldState, NewState: newState, Reason: reason},
	})
}

// Error records a failure that is not tied to a single call.
func (r *Recorder) Error(op string, err error) {
	r.emit(Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Message: err.Error(), Context: op},
	})
}

func codeOf(err error) (codes.Code, string) {
	if err == nil {
		return codes.OK, ""
	}
	s := status.Convert(err)
	return s.Code(), s.Message()
}

// UnaryClientInterceptor records one CallEvent per unary call.
func (r *Recorder) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		code, msg := codeOf(err)
		r.emit(Event{
			Direction: DirectionOut,
			Category:  CategoryCall,
			Call:      &CallEvent{Method: method, Code: code, Duration: time.Since(start), Message: msg},
		})
		return err
	}
}

// StreamClientInterceptor records the open, every received message and the
// close of each stream.
func (r *Recorder) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		start := time.Now()
		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			code, msg := codeOf(err)
			r.emit(Event{
				Direction: DirectionOut,
				Category:  CategoryStream,
				Stream:    &StreamEvent{Method: method, Kind: StreamClose, Code: code, Message: msg},
			})
			return nil, err
		}
		r.emit(Event{
			Direction: DirectionOut,
			Category:  CategoryStream,
			Stream:    &StreamEvent{Method: method, Kind: StreamOpen},
		})
		return &recordedStream{ClientStream: cs, rec: r, method: method, start: start}, nil
	}
}

type recordedStream struct {
	grpc.ClientStream
	rec    *Recorder
	method string
	start  time.Time
	seq    atomic.Uint64
	once   sync.Once
}

func (s *recordedStream) RecvMsg(m any) error {
	err := s.ClientStream.RecvMsg(m)
	if err == nil {
		s.rec.emit(Event{
			Direction: DirectionIn,
			Category:  CategoryStream,
			Stream:    &StreamEvent{Method: s.method, Kind: StreamMessage, Sequence: s.seq.Add(1)},
		})
		return nil
	}
	s.once.Do(func() {
		code, msg := codes.OK, ""
		if !errors.Is(err, io.EOF) {
			code, msg = codeOf(err)
		}
		s.rec.emit(Event{
			Direction: DirectionIn,
			Category:  CategoryStream,
			Stream: &StreamEvent{
				Method:   s.method,
				Kind:     StreamClose,
				Code:     code,
				Message:  msg,
				Duration: time.Since(s.start),
			},
		})
	})
	return err
}
