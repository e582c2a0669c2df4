// Package sdvv1 holds the sdv.databroker.v1 messages and the Broker and
// Collector service stubs.
package sdvv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

// DataType mirrors sdv.databroker.v1.DataType. Unlike the kuksa.val
// generations the numbering starts at STRING=0.
type DataType int32

const (
	DataTypeString      DataType = 0
	DataTypeBool        DataType = 1
	DataTypeInt8        DataType = 2
	DataTypeInt16       DataType = 3
	DataTypeInt32       DataType = 4
	DataTypeInt64       DataType = 5
	DataTypeUint8       DataType = 6
	DataTypeUint16      DataType = 7
	DataTypeUint32      DataType = 8
	DataTypeUint64      DataType = 9
	DataTypeFloat       DataType = 10
	DataTypeDouble      DataType = 11
	DataTypeStringArray DataType = 20
	DataTypeBoolArray   DataType = 21
	DataTypeInt8Array   DataType = 22
	DataTypeInt16Array  DataType = 23
	DataTypeInt32Array  DataType = 24
	DataTypeInt64Array  DataType = 25
	DataTypeUint8Array  DataType = 26
	DataTypeUint16Array DataType = 27
	DataTypeUint32Array DataType = 28
	DataTypeUint64Array DataType = 29
	DataTypeFloatArray  DataType = 30
	DataTypeDoubleArray DataType = 31
)

// DatapointError mirrors sdv.databroker.v1.DatapointError.
type DatapointError int32

const (
	DatapointErrorUnknownDatapoint DatapointError = 0
	DatapointErrorInvalidType      DatapointError = 1
	DatapointErrorAccessDenied     DatapointError = 2
	DatapointErrorInternalError    DatapointError = 3
	DatapointErrorOutOfBounds      DatapointError = 4
)

var datapointErrorNames = map[DatapointError]string{
	DatapointErrorUnknownDatapoint: "UNKNOWN_DATAPOINT",
	DatapointErrorInvalidType:      "INVALID_TYPE",
	DatapointErrorAccessDenied:     "ACCESS_DENIED",
	DatapointErrorInternalError:    "INTERNAL_ERROR",
	DatapointErrorOutOfBounds:      "OUT_OF_BOUNDS",
}

func (e DatapointError) String() string {
	if s, ok := datapointErrorNames[e]; ok {
		return s
	}
	return "UNKNOWN"
}

// EntryType mirrors sdv.databroker.v1.EntryType.
type EntryType int32

const (
	EntryTypeUnspecified EntryType = 0
	EntryTypeSensor      EntryType = 1
	EntryTypeActuator    EntryType = 2
	EntryTypeAttribute   EntryType = 3
)

// ChangeType mirrors sdv.databroker.v1.ChangeType.
type ChangeType int32

const (
	ChangeTypeStatic     ChangeType = 0
	ChangeTypeOnChange   ChangeType = 1
	ChangeTypeContinuous ChangeType = 2
)

// Failure is the failure_value member of the Datapoint oneof.
type Failure int32

const (
	FailureInvalidValue     Failure = 0
	FailureNotAvailable     Failure = 1
	FailureUnknownDatapoint Failure = 2
	FailureAccessDenied     Failure = 3
	FailureInternalError    Failure = 4
)

var failureNames = map[Failure]string{
	FailureInvalidValue:     "INVALID_VALUE",
	FailureNotAvailable:     "NOT_AVAILABLE",
	FailureUnknownDatapoint: "UNKNOWN_DATAPOINT",
	FailureAccessDenied:     "ACCESS_DENIED",
	FailureInternalError:    "INTERNAL_ERROR",
}

func (f Failure) String() string {
	if s, ok := failureNames[f]; ok {
		return s
	}
	return "UNKNOWN"
}

const fieldFailure = 10

// Datapoint is a timestamped value. Exactly one of Failure and Value is
// meaningful: a nil Failure with a nil Value never appears on the wire.
type Datapoint struct {
	Timestamp *timestamppb.Timestamp
	Failure   *Failure
	// Value is string, bool, int32, int64, uint32, uint64, float32,
	// float64 or a slice of those.
	Value     any
}

// NewDatapoint wraps a plain Go value.
func NewDatapoint(x any) *Datapoint {
	return &Datapoint{Value: x}
}

// NewFailure returns a datapoint carrying failure f.
func NewFailure(f Failure) *Datapoint {
	return &Datapoint{Failure: &f}
}

// IsFailure reports whether the datapoint carries a failure value.
func (m *Datapoint) IsFailure() bool {
	return m != nil && m.Failure != nil
}

func (m *Datapoint) encode(e *wire.Encoder) {
	e.Timestamp(1, m.Timestamp)
	if m.Failure != nil {
		e.Int32(fieldFailure, int32(*m.Failure))
		return
	}
	e.Typed(m.Value)
}

func (m *Datapoint) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *Datapoint) UnmarshalProto(b []byte) error {
	*m = Datapoint{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			ts, err := f.Timestamp()
			m.Timestamp = ts
			return err
		case fieldFailure:
			v := Failure(f.Int32())
			m.Failure, m.Value = &v, nil
			return nil
		}
		x, ok, err := f.Typed()
		if err != nil || !ok {
			return err
		}
		m.Value, m.Failure = x, nil
		return nil
	})
}

func decodeDatapoint(f wire.Field) (*Datapoint, error) {
	dp := &Datapoint{}
	if f.Num == 0 {
		return dp, nil
	}
	return dp, dp.UnmarshalProto(f.Bytes)
}

// Metadata describes a registered datapoint.
type Metadata struct {
	ID          int32
	EntryType   EntryType
	Name        string
	DataType    DataType
	ChangeType  ChangeType
	Description string
}

func (m *Metadata) encode(e *wire.Encoder) {
	if m.ID != 0 {
		e.Int32(1, m.ID)
	}
	if m.EntryType != 0 {
		e.Int32(2, int32(m.EntryType))
	}
	if m.Name != "" {
		e.String(4, m.Name)
	}
	if m.DataType != 0 {
		e.Int32(5, int32(m.DataType))
	}
	if m.ChangeType != 0 {
		e.Int32(6, int32(m.ChangeType))
	}
	if m.Description != "" {
		e.String(7, m.Description)
	}
}

func (m *Metadata) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *Metadata) UnmarshalProto(b []byte) error {
	*m = Metadata{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			m.ID = f.Int32()
		case 2:
			m.EntryType = EntryType(f.Int32())
		case 4:
			m.Name = f.String()
		case 5:
			m.DataType = DataType(f.Int32())
		case 6:
			m.ChangeType = ChangeType(f.Int32())
		case 7:
			m.Description = f.String()
		}
		return nil
	})
}
