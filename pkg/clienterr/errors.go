package clienterr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Category classifies a client error.
type Category int

const (
	CategoryNone Category = iota
	CategoryTransport
	CategoryFunction
	CategoryConversion
	CategoryUnsupported
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryTransport:
		return "transport"
	case CategoryFunction:
		return "function"
	case CategoryConversion:
		return "conversion"
	case CategoryUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// TransportError reports a failed RPC.
type TransportError struct {
	Op   string
	Path string
	Code codes.Code
	Err  error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	fmt.Fprintf(&b, ": transport error (%s)", e.Code)
	if e.Err != nil {
		msg := e.Err.Error()
		if s, ok := status.FromError(e.Err); ok {
			msg = s.Message()
		}
		if msg != "" {
			b.WriteString(": ")
			b.WriteString(msg)
		}
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

// GRPCStatus lets status.Code and status.FromError see through the wrapper.
func (e *TransportError) GRPCStatus() *status.Status {
	if s, ok := status.FromError(e.Err); ok {
		return s
	}
	return status.New(e.Code, e.Error())
}

// Record is one application-level error reported by the broker.
type Record struct {
	// Path is empty for a response-wide error.
	Path    string
	Code    uint32
	Reason  string
	Message string
}

func (r Record) String() string {
	var b strings.Builder
	if r.Path != "" {
		b.WriteString(r.Path)
		b.WriteString(": ")
	}
	if r.Code != 0 {
		fmt.Fprintf(&b, "%d ", r.Code)
	}
	b.WriteString(r.Reason)
	if r.Message != "" {
		if r.Reason != "" {
			b.WriteString(": ")
		}
		b.WriteString(r.Message)
	}
	return b.String()
}

// FunctionError reports error records embedded in an otherwise successful
// response.
type FunctionError struct {
	Op      string
	Path    string
	Records []Record
}

func (e *FunctionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": rejected by broker")
	for i, r := range e.Records {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(r.String())
	}
	return b.String()
}

// ConversionError reports a value that cannot be represented in the
// destination type or protocol.
type ConversionError struct {
	From   string
	To     string
	Value  any
	Reason string
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
	if e.Value != nil {
		msg = fmt.Sprintf("cannot convert %s %v to %s", e.From, e.Value, e.To)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// UnsupportedOperationError reports an operation the protocol generation
// cannot perform. It matches errors.ErrUnsupported.
type UnsupportedOperationError struct {
	Generation string
	Op         string
	Reason     string
}

func (e *UnsupportedOperationError) Error() string {
	msg := fmt.Sprintf("%s is not supported by %s", e.Op, e.Generation)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedOperationError) Is(target error) bool {
	return target == errors.ErrUnsupported
}

// Unsupported is shorthand for an UnsupportedOperationError.
func Unsupported(generation, op, reason string) error {
	return &UnsupportedOperationError{Generation: generation, Op: op, Reason: reason}
}

// Classify turns an RPC error into a *TransportError. Errors that already
// belong to a category are returned unchanged; nil stays nil.
func Classify(op string, err error) error {
	return ClassifyPath(op, "", err)
}

// ClassifyPath is Classify for a call that addressed a single path.
func ClassifyPath(op, path string, err error) error {
	if err == nil {
		return nil
	}
	if CategoryOf(err) != CategoryNone {
		return err
	}
	code := codes.Unknown
	switch {
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		if s, ok := status.FromError(err); ok {
			code = s.Code()
		}
	}
	return &TransportError{Op: op, Path: path, Code: code, Err: err}
}

// FromRecords returns a *FunctionError carrying records, or nil when there
// are none.
func FromRecords(op, path string, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return &FunctionError{Op: op, Path: path, Records: records}
}

// CategoryOf returns the category of err, CategoryNone for nil or
// unclassified errors.
func CategoryOf(err error) Category {
	if err == nil {
		return CategoryNone
	}
	var (
		te *TransportError
		fe *FunctionError
		ce *ConversionError
		ue *UnsupportedOperationError
	)
	switch {
	case errors.As(err, &te):
		return CategoryTransport
	case errors.As(err, &fe):
		return CategoryFunction
	case errors.As(err, &ce):
		return CategoryConversion
	case errors.As(err, &ue):
		return CategoryUnsupported
	}
	return CategoryNone
}

func IsTransport(err error) bool   { return CategoryOf(err) == CategoryTransport }
func IsFunction(err error) bool    { return CategoryOf(err) == CategoryFunction }
func IsConversion(err error) bool  { return CategoryOf(err) == CategoryConversion }
func IsUnsupported(err error) bool { return CategoryOf(err) == CategoryUnsupported }
