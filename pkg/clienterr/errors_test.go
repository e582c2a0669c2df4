package clienterr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat      Category
		expected string
	}{
		{CategoryNone, "none"},
		{CategoryTransport, "transport"},
		{CategoryFunction, "function"},
		{CategoryConversion, "conversion"},
		{CategoryUnsupported, "unsupported"},
		{Category(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.cat.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"grpc status", status.Error(codes.Unavailable, "connection refused"), codes.Unavailable},
		{"not found", status.Error(codes.NotFound, "no such path"), codes.NotFound},
		{"canceled", context.Canceled, codes.Canceled},
		{"wrapped deadline", fmt.Errorf("dial: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"plain error", errors.New("boom"), codes.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyPath("get", "Vehicle.Speed", tt.err)

			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.code, te.Code)
			assert.Equal(t, "get", te.Op)
			assert.Equal(t, "Vehicle.Speed", te.Path)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, IsTransport(err))
		})
	}
}

func TestClassifyKeepsCategorizedErrors(t *testing.T) {
	assert.NoError(t, Classify("get", nil))

	fe := &FunctionError{Op: "set", Records: []Record{{Path: "A", Code: 404}}}
	assert.Same(t, fe, Classify("set", fe))

	ue := Unsupported("sdv.databroker.v1", "get target values", "")
	assert.Equal(t, ue, Classify("get", ue))

	wrapped := fmt.Errorf("outer: %w", &ConversionError{From: "uint32", To: "int32"})
	assert.Equal(t, wrapped, Classify("convert", wrapped))
}

func TestTransportErrorStatus(t *testing.T) {
	err := Classify("subscribe", status.Error(codes.PermissionDenied, "token expired"))

	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Equal(t, "subscribe: transport error (PermissionDenied): token expired", err.Error())
}

func TestFromRecords(t *testing.T) {
	assert.NoError(t, FromRecords("get", "A", nil))

	err := FromRecords("get current values", "", []Record{
		{Code: 400, Reason: "bad_request", Message: "top level"},
		{Path: "Vehicle.Speed", Code: 404, Reason: "not_found", Message: "unknown path"},
	})
	var fe *FunctionError
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe.Records, 2)
	assert.Equal(t, "", fe.Records[0].Path)
	assert.Equal(t, "Vehicle.Speed", fe.Records[1].Path)
	assert.Equal(t,
		"get current values: rejected by broker: 400 bad_request: top level; Vehicle.Speed: 404 not_found: unknown path",
		err.Error())
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryNone},
		{"plain", errors.New("x"), CategoryNone},
		{"transport", &TransportError{Code: codes.Internal}, CategoryTransport},
		{"function", &FunctionError{}, CategoryFunction},
		{"conversion", &ConversionError{}, CategoryConversion},
		{"unsupported", &UnsupportedOperationError{}, CategoryUnsupported},
		{"wrapped", fmt.Errorf("ctx: %w", &FunctionError{}), CategoryFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.err))
		})
	}
}

func TestUnsupportedMatchesStdlib(t *testing.T) {
	err := Unsupported("kuksa.val.v1", "subscribe", "query subscriptions are not supported")

	assert.ErrorIs(t, err, errors.ErrUnsupported)
	assert.True(t, IsUnsupported(err))
	assert.Equal(t, "subscribe is not supported by kuksa.val.v1: query subscriptions are not supported", err.Error())
}

func TestConversionErrorMessage(t *testing.T) {
	err := &ConversionError{From: "uint32", To: "int32", Value: uint32(1 << 31), Reason: "out of range"}
	assert.Equal(t, "cannot convert uint32 2147483648 to int32: out of range", err.Error())
}
