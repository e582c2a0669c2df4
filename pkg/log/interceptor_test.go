package log

import (
	"context"
	"errors"
	"io"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRecorderUnaryCall(t *testing.T) {
	capture := &captureLogger{}
	rec := NewRecorder(capture, "conn-1", "localhost:55555")
	intercept := rec.UnaryClientInterceptor()

	failing := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		return status.Error(codes.NotFound, "Vehicle.Nope")
	}
	err := intercept(context.Background(), "/kuksa.val.v2.VAL/GetValue", nil, nil, nil, failing)
	if status.Code(err) != codes.NotFound {
		t.Fatalf("error not passed through: %v", err)
	}

	events := capture.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.ConnectionID != "conn-1" || e.Target != "localhost:55555" || e.Category != CategoryCall {
		t.Errorf("envelope = %+v", e)
	}
	if e.Call.Code != codes.NotFound || e.Call.Message != "Vehicle.Nope" {
		t.Errorf("call = %+v", e.Call)
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

type fakeClientStream struct {
	grpc.ClientStream
	msgs int
	end  error
}

func (f *fakeClientStream) RecvMsg(any) error {
	if f.msgs == 0 {
		return f.end
	}
	f.msgs--
	return nil
}

func TestRecorderStream(t *testing.T) {
	tests := []struct {
		name string
		end  error
		code codes.Code
	}{
		{"server closes", io.EOF, codes.OK},
		{"transport fails", status.Error(codes.Unavailable, "gone"), codes.Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := &captureLogger{}
			intercept := NewRecorder(capture, "c", "").StreamClientInterceptor()
			streamer := func(context.Context, *grpc.StreamDesc, *grpc.ClientConn, string, ...grpc.CallOption) (grpc.ClientStream, error) {
				return &fakeClientStream{msgs: 2, end: tt.end}, nil
			}

			cs, err := intercept(context.Background(), &grpc.StreamDesc{ServerStreams: true}, nil, "/kuksa.val.v2.VAL/Subscribe", streamer)
			if err != nil {
				t.Fatal(err)
			}
			for cs.RecvMsg(nil) == nil {
			}
			// A second failing receive must not log a second close.
			_ = cs.RecvMsg(nil)

			events := capture.Events()
			kinds := make([]StreamEventKind, len(events))
			for i, e := range events {
				kinds[i] = e.Stream.Kind
			}
			want := []StreamEventKind{StreamOpen, StreamMessage, StreamMessage, StreamClose}
			if len(kinds) != len(want) {
				t.Fatalf("kinds = %v, want %v", kinds, want)
			}
			for i := range want {
				if kinds[i] != want[i] {
					t.Fatalf("kinds = %v, want %v", kinds, want)
				}
			}
			if events[2].Stream.Sequence != 2 {
				t.Errorf("sequence = %d, want 2", events[2].Stream.Sequence)
			}
			if events[3].Stream.Code != tt.code {
				t.Errorf("close code = %v, want %v", events[3].Stream.Code, tt.code)
			}
		})
	}
}

func TestRecorderStreamOpenFailure(t *testing.T) {
	capture := &captureLogger{}
	intercept := NewRecorder(capture, "c", "").StreamClientInterceptor()
	streamer := func(context.Context, *grpc.StreamDesc, *grpc.ClientConn, string, ...grpc.CallOption) (grpc.ClientStream, error) {
		return nil, errors.New("no route")
	}

	if _, err := intercept(context.Background(), &grpc.StreamDesc{}, nil, "/m", streamer); err == nil {
		t.Fatal("expected error")
	}
	events := capture.Events()
	if len(events) != 1 || events[0].Stream.Kind != StreamClose || events[0].Stream.Code != codes.Unknown {
		t.Errorf("events = %+v", events)
	}
}

func TestRecorderStateAndError(t *testing.T) {
	capture := &captureLogger{}
	rec := NewRecorder(capture, "c", "t")
	rec.StateChange("IDLE", "READY", "")
	rec.Error("authorize", errors.New("empty token"))

	events := capture.Events()
	if len(events) != 2 || events[0].Category != CategoryState || events[1].Category != CategoryError {
		t.Fatalf("events = %+v", events)
	}
	if !events[1].Failed() || events[0].Failed() {
		t.Error("only the error event counts as failed")
	}

	NewRecorder(nil, "c", "t").StateChange("", "READY", "")
}
