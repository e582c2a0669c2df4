package log

import (
	"time"

	"google.golang.org/grpc/codes"
)

// Event is one call log record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the channel the event belongs to (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Target is the endpoint the channel dials.
	Target string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Call        *CallEvent        `cbor:"10,keyasint,omitempty"`
	Stream      *StreamEvent      `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Method returns the RPC method of call and stream events.
func (e Event) Method() string {
	switch {
	case e.Call != nil:
		return e.Call.Method
	case e.Stream != nil:
		return e.Stream.Method
	}
	return ""
}

// Failed reports whether the event records a failure.
func (e Event) Failed() bool {
	switch {
	case e.Call != nil:
		return e.Call.Code != codes.OK
	case e.Stream != nil:
		return e.Stream.Code != codes.OK
	}
	return e.Error != nil
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates a message received from the broker.
	DirectionIn Direction = 0
	// DirectionOut indicates a call issued to the broker.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCall indicates a unary call.
	CategoryCall Category = 0
	// CategoryStream indicates a streaming call event.
	CategoryStream Category = 1
	// CategoryState indicates a channel state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCall:
		return "CALL"
	case CategoryStream:
		return "STREAM"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category named s (case-sensitive, as printed
// by String).
func ParseCategory(s string) (Category, bool) {
	for c := CategoryCall; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// CallEvent captures a completed unary call.
type CallEvent struct {
	// Method is the full RPC method name, e.g. "/kuksa.val.v2.VAL/GetValue".
	Method string `cbor:"1,keyasint"`

	// Code is the gRPC status code of the call.
	Code codes.Code `cbor:"2,keyasint"`

	// Duration from issue to completion, stored as nanoseconds.
	Duration time.Duration `cbor:"3,keyasint"`

	// Message is the status message of failed calls.
	Message string `cbor:"4,keyasint,omitempty"`
}

// StreamEvent captures one step of a server stream.
type StreamEvent struct {
	Method string          `cbor:"1,keyasint"`
	Kind   StreamEventKind `cbor:"2,keyasint"`

	// Sequence numbers received messages from 1; zero for open and close.
	Sequence uint64 `cbor:"3,keyasint,omitempty"`

	// Code and Message are set on close.
	Code    codes.Code `cbor:"4,keyasint,omitempty"`
	Message string     `cbor:"5,keyasint,omitempty"`

	// Duration is the stream lifetime, set on close.
	Duration time.Duration `cbor:"6,keyasint,omitempty"`
}

// StreamEventKind is the stream lifecycle step.
type StreamEventKind uint8

const (
	StreamOpen    StreamEventKind = 0
	StreamMessage StreamEventKind = 1
	StreamClose   StreamEventKind = 2
)

// String returns the kind name.
func (k StreamEventKind) String() string {
	switch k {
	case StreamOpen:
		return "OPEN"
	case StreamMessage:
		return "MESSAGE"
	case StreamClose:
		return "CLOSE"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures channel lifecycle events.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors outside of a call.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
