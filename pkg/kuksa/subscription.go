package kuksa

import (
	"context"
	"errors"
	"io"
	"iter"
	"sync"

	"google.golang.org/grpc"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
)

// ErrSubscriptionClosed is returned by Recv after Close.
var ErrSubscriptionClosed = errors.New("subscription closed")

// Subscription is a live stream of updates. It cannot be restarted: once
// Recv has returned an error, every later call returns the same error.
// io.EOF means the broker ended the stream.
type Subscription[T any] struct {
	recv   func() (T, error)
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

// newSubscription adapts stream. conv converts each received message; a
// conversion failure ends the subscription.
func newSubscription[M, T any](cancel context.CancelFunc, op string, stream grpc.ServerStreamingClient[M], conv func(*M) (T, error)) *Subscription[T] {
	return &Subscription[T]{
		cancel: cancel,
		recv: func() (T, error) {
			var zero T
			msg, err := stream.Recv()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return zero, io.EOF
				}
				return zero, clienterr.Classify(op, err)
			}
			return conv(msg)
		},
	}
}

// Recv blocks until the next update arrives or the stream ends.
func (s *Subscription[T]) Recv() (T, error) {
	var zero T
	if err := s.stickyErr(); err != nil {
		return zero, err
	}
	v, err := s.recv()
	if err != nil {
		s.mu.Lock()
		if s.err == nil {
			s.err = err
		}
		err = s.err
		s.mu.Unlock()
		s.cancel()
		return zero, err
	}
	return v, nil
}

func (s *Subscription[T]) stickyErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Updates yields updates until the stream ends. A clean end of stream
// stops the iteration; any other error is yielded once as the last
// element.
func (s *Subscription[T]) Updates() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := s.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Close cancels the stream. Recv returns ErrSubscriptionClosed afterwards
// unless the stream had already failed.
func (s *Subscription[T]) Close() {
	s.mu.Lock()
	if s.err == nil {
		s.err = ErrSubscriptionClosed
	}
	s.mu.Unlock()
	s.cancel()
}

// mapSubscription converts the updates of in. Closing the result closes in.
func mapSubscription[T, U any](in *Subscription[T], conv func(T) (U, error)) *Subscription[U] {
	return &Subscription[U]{
		cancel: in.Close,
		recv: func() (U, error) {
			var zero U
			v, err := in.Recv()
			if err != nil {
				return zero, err
			}
			return conv(v)
		},
	}
}
