package log

import (
	"sync"
	"testing"

	"google.golang.org/grpc/codes"
)

type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureLogger) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func TestNoopLoggerIsUsableAsZeroValue(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(callEvent("c", "/m", codes.OK))
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := &captureLogger{}, &captureLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(callEvent("conn", "/kuksa.val.v2.VAL/GetValue", codes.OK))
	m.Log(callEvent("conn", "/kuksa.val.v2.VAL/Actuate", codes.OK))

	if len(a.Events()) != 2 || len(b.Events()) != 2 {
		t.Fatalf("got %d and %d events, want 2 each", len(a.Events()), len(b.Events()))
	}
	if a.Events()[1].Method() != "/kuksa.val.v2.VAL/Actuate" {
		t.Errorf("order not preserved: %v", a.Events())
	}
}

func TestCategoryNames(t *testing.T) {
	for c := CategoryCall; c <= CategoryError; c++ {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCategory("MESSAGE"); ok {
		t.Error("unknown category accepted")
	}
	if Category(42).String() != "UNKNOWN" || StreamEventKind(9).String() != "UNKNOWN" {
		t.Error("unknown values must print UNKNOWN")
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	in := Event{
		ConnectionID: "c",
		Category:     CategoryStream,
		Stream:       &StreamEvent{Method: "/sdv.databroker.v1.Broker/Subscribe", Kind: StreamClose, Code: codes.Unavailable},
	}
	b, err := EncodeEvent(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodeEvent(b)
	if err != nil {
		t.Fatal(err)
	}
	if out.Stream == nil || out.Stream.Code != codes.Unavailable || out.Stream.Kind != StreamClose {
		t.Errorf("decoded %+v", out.Stream)
	}
	if !out.Failed() {
		t.Error("stream closed with Unavailable must count as failed")
	}
	if _, err := DecodeEvent([]byte{0xff}); err == nil {
		t.Error("expected error for garbage input")
	}
}
