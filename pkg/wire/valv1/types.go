// Package valv1 holds the kuksa.val.v1 messages and the VAL service stubs.
package valv1

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

// DataType mirrors kuksa.val.v1.DataType.
type DataType int32

const (
	DataTypeUnspecified    DataType = 0
	DataTypeString         DataType = 1
	DataTypeBoolean        DataType = 2
	DataTypeInt8           DataType = 3
	DataTypeInt16          DataType = 4
	DataTypeInt32          DataType = 5
	DataTypeInt64          DataType = 6
	DataTypeUint8          DataType = 7
	DataTypeUint16         DataType = 8
	DataTypeUint32         DataType = 9
	DataTypeUint64         DataType = 10
	DataTypeFloat          DataType = 11
	DataTypeDouble         DataType = 12
	DataTypeTimestamp      DataType = 13
	DataTypeStringArray    DataType = 20
	DataTypeBooleanArray   DataType = 21
	DataTypeInt8Array      DataType = 22
	DataTypeInt16Array     DataType = 23
	DataTypeInt32Array     DataType = 24
	DataTypeInt64Array     DataType = 25
	DataTypeUint8Array     DataType = 26
	DataTypeUint16Array    DataType = 27
	DataTypeUint32Array    DataType = 28
	DataTypeUint64Array    DataType = 29
	DataTypeFloatArray     DataType = 30
	DataTypeDoubleArray    DataType = 31
	DataTypeTimestampArray DataType = 32
)

// EntryType mirrors kuksa.val.v1.EntryType.
type EntryType int32

const (
	EntryTypeUnspecified EntryType = 0
	EntryTypeAttribute   EntryType = 1
	EntryTypeSensor      EntryType = 2
	EntryTypeActuator    EntryType = 3
)

// View mirrors kuksa.val.v1.View.
type View int32

const (
	ViewUnspecified  View = 0
	ViewCurrentValue View = 1
	ViewTargetValue  View = 2
	ViewMetadata     View = 3
	ViewFields       View = 10
	ViewAll          View = 20
)

// Field mirrors kuksa.val.v1.Field, the field mask element.
type Field int32

const (
	FieldUnspecified              Field = 0
	FieldPath                     Field = 1
	FieldValue                    Field = 2
	FieldActuatorTarget           Field = 3
	FieldMetadata                 Field = 10
	FieldMetadataDataType         Field = 11
	FieldMetadataDescription      Field = 12
	FieldMetadataEntryType        Field = 13
	FieldMetadataComment          Field = 14
	FieldMetadataDeprecation      Field = 15
	FieldMetadataUnit             Field = 16
	FieldMetadataValueRestriction Field = 17
	FieldMetadataActuator         Field = 20
	FieldMetadataSensor           Field = 30
	FieldMetadataAttribute        Field = 40
)

func encodeFields(e *wire.Encoder, num protowire.Number, fields []Field) {
	vs := make([]int32, len(fields))
	for i, f := range fields {
		vs[i] = int32(f)
	}
	e.PackedInt32(num, vs)
}

func decodeFields(dst []Field, f wire.Field) ([]Field, error) {
	vs, err := f.AppendInt32s(nil)
	for _, v := range vs {
		dst = append(dst, Field(v))
	}
	return dst, err
}

// DatapointValue is the oneof of Datapoint.
type DatapointValue interface{ isDatapointValue() }

type (
	DatapointString      struct{ String string }
	DatapointBool        struct{ Bool bool }
	DatapointInt32       struct{ Int32 int32 }
	DatapointInt64       struct{ Int64 int64 }
	DatapointUint32      struct{ Uint32 uint32 }
	DatapointUint64      struct{ Uint64 uint64 }
	DatapointFloat       struct{ Float float32 }
	DatapointDouble      struct{ Double float64 }
	DatapointStringArray struct{ Values []string }
	DatapointBoolArray   struct{ Values []bool }
	DatapointInt32Array  struct{ Values []int32 }
	DatapointInt64Array  struct{ Values []int64 }
	DatapointUint32Array struct{ Values []uint32 }
	DatapointUint64Array struct{ Values []uint64 }
	DatapointFloatArray  struct{ Values []float32 }
	DatapointDoubleArray struct{ Values []float64 }
)

func (*DatapointString) isDatapointValue()      {}
func (*DatapointBool) isDatapointValue()        {}
func (*DatapointInt32) isDatapointValue()       {}
func (*DatapointInt64) isDatapointValue()       {}
func (*DatapointUint32) isDatapointValue()      {}
func (*DatapointUint64) isDatapointValue()      {}
func (*DatapointFloat) isDatapointValue()       {}
func (*DatapointDouble) isDatapointValue()      {}
func (*DatapointStringArray) isDatapointValue() {}
func (*DatapointBoolArray) isDatapointValue()   {}
func (*DatapointInt32Array) isDatapointValue()  {}
func (*DatapointInt64Array) isDatapointValue()  {}
func (*DatapointUint32Array) isDatapointValue() {}
func (*DatapointUint64Array) isDatapointValue() {}
func (*DatapointFloatArray) isDatapointValue()  {}
func (*DatapointDoubleArray) isDatapointValue() {}

func valueToAny(v DatapointValue) any {
	switch v := v.(type) {
	case *DatapointString:
		return v.String
	case *DatapointBool:
		return v.Bool
	case *DatapointInt32:
		return v.Int32
	case *DatapointInt64:
		return v.Int64
	case *DatapointUint32:
		return v.Uint32
	case *DatapointUint64:
		return v.Uint64
	case *DatapointFloat:
		return v.Float
	case *DatapointDouble:
		return v.Double
	case *DatapointStringArray:
		return v.Values
	case *DatapointBoolArray:
		return v.Values
	case *DatapointInt32Array:
		return v.Values
	case *DatapointInt64Array:
		return v.Values
	case *DatapointUint32Array:
		return v.Values
	case *DatapointUint64Array:
		return v.Values
	case *DatapointFloatArray:
		return v.Values
	case *DatapointDoubleArray:
		return v.Values
	}
	return nil
}

func valueFromAny(x any) DatapointValue {
	switch x := x.(type) {
	case string:
		return &DatapointString{String: x}
	case bool:
		return &DatapointBool{Bool: x}
	case int32:
		return &DatapointInt32{Int32: x}
	case int64:
		return &DatapointInt64{Int64: x}
	case uint32:
		return &DatapointUint32{Uint32: x}
	case uint64:
		return &DatapointUint64{Uint64: x}
	case float32:
		return &DatapointFloat{Float: x}
	case float64:
		return &DatapointDouble{Double: x}
	case []string:
		return &DatapointStringArray{Values: x}
	case []bool:
		return &DatapointBoolArray{Values: x}
	case []int32:
		return &DatapointInt32Array{Values: x}
	case []int64:
		return &DatapointInt64Array{Values: x}
	case []uint32:
		return &DatapointUint32Array{Values: x}
	case []uint64:
		return &DatapointUint64Array{Values: x}
	case []float32:
		return &DatapointFloatArray{Values: x}
	case []float64:
		return &DatapointDoubleArray{Values: x}
	}
	return nil
}

// Datapoint is a value with its timestamp. Value is nil when the entry has
// no value.
type Datapoint struct {
	Timestamp *timestamppb.Timestamp
	Value     DatapointValue
}

// NewDatapoint wraps a plain Go value; see wire.Encoder.Typed for the
// accepted types. Unsupported types leave Value nil.
func NewDatapoint(x any) *Datapoint {
	return &Datapoint{Value: valueFromAny(x)}
}

// Any returns the oneof payload as a plain Go value, nil when unset.
func (m *Datapoint) Any() any {
	if m == nil {
		return nil
	}
	return valueToAny(m.Value)
}

func (m *Datapoint) encode(e *wire.Encoder) {
	e.Timestamp(1, m.Timestamp)
	if m.Value != nil {
		e.Typed(valueToAny(m.Value))
	}
}

func (m *Datapoint) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *Datapoint) UnmarshalProto(b []byte) error {
	*m = Datapoint{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num == 1 {
			ts, err := f.Timestamp()
			m.Timestamp = ts
			return err
		}
		x, ok, err := f.Typed()
		if err != nil || !ok {
			return err
		}
		m.Value = valueFromAny(x)
		return nil
	})
}

func decodeDatapoint(f wire.Field) (*Datapoint, error) {
	dp := &Datapoint{}
	return dp, dp.UnmarshalProto(f.Bytes)
}

// Metadata describes an entry. ValueRestriction is kept in its encoded form.
type Metadata struct {
	DataType         DataType
	EntryType        EntryType
	Description      string
	Comment          string
	Deprecation      string
	Unit             string
	ValueRestriction []byte
}

func (m *Metadata) encode(e *wire.Encoder) {
	if m.DataType != 0 {
		e.Int32(11, int32(m.DataType))
	}
	if m.EntryType != 0 {
		e.Int32(12, int32(m.EntryType))
	}
	if m.Description != "" {
		e.String(13, m.Description)
	}
	if m.Comment != "" {
		e.String(14, m.Comment)
	}
	if m.Deprecation != "" {
		e.String(15, m.Deprecation)
	}
	if m.Unit != "" {
		e.String(16, m.Unit)
	}
	if m.ValueRestriction != nil {
		e.Message(17, func(s *wire.Encoder) { s.Raw(m.ValueRestriction) })
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
		case 11:
			m.DataType = DataType(f.Int32())
		case 12:
			m.EntryType = EntryType(f.Int32())
		case 13:
			m.Description = f.String()
		case 14:
			m.Comment = f.String()
		case 15:
			m.Deprecation = f.String()
		case 16:
			m.Unit = f.String()
		case 17:
			m.ValueRestriction = append([]byte{}, f.Bytes...)
		}
		return nil
	})
}

// DataEntry is a path with its optional value, actuator target and metadata.
type DataEntry struct {
	Path           string
	Value          *Datapoint
	ActuatorTarget *Datapoint
	Metadata       *Metadata
}

func (m *DataEntry) encode(e *wire.Encoder) {
	if m.Path != "" {
		e.String(1, m.Path)
	}
	if m.Value != nil {
		e.Message(2, m.Value.encode)
	}
	if m.ActuatorTarget != nil {
		e.Message(3, m.ActuatorTarget.encode)
	}
	if m.Metadata != nil {
		e.Message(10, m.Metadata.encode)
	}
}

func (m *DataEntry) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *DataEntry) UnmarshalProto(b []byte) error {
	*m = DataEntry{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Path = f.String()
		case 2:
			m.Value, err = decodeDatapoint(f)
		case 3:
			m.ActuatorTarget, err = decodeDatapoint(f)
		case 10:
			m.Metadata = &Metadata{}
			err = m.Metadata.UnmarshalProto(f.Bytes)
		}
		return err
	})
}

func decodeDataEntry(f wire.Field) (*DataEntry, error) {
	de := &DataEntry{}
	return de, de.UnmarshalProto(f.Bytes)
}

// Error is an application level error record embedded in a response.
type Error struct {
	Code    uint32
	Reason  string
	Message string
}

func (m *Error) encode(e *wire.Encoder) {
	if m.Code != 0 {
		e.Uint32(1, m.Code)
	}
	if m.Reason != "" {
		e.String(2, m.Reason)
	}
	if m.Message != "" {
		e.String(3, m.Message)
	}
}

func (m *Error) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *Error) UnmarshalProto(b []byte) error {
	*m = Error{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			m.Code = f.Uint32()
		case 2:
			m.Reason = f.String()
		case 3:
			m.Message = f.String()
		}
		return nil
	})
}

func decodeError(f wire.Field) (*Error, error) {
	e := &Error{}
	return e, e.UnmarshalProto(f.Bytes)
}

// DataEntryError attributes an Error to a path.
type DataEntryError struct {
	Path  string
	Error *Error
}

func (m *DataEntryError) encode(e *wire.Encoder) {
	if m.Path != "" {
		e.String(1, m.Path)
	}
	if m.Error != nil {
		e.Message(2, m.Error.encode)
	}
}

func (m *DataEntryError) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *DataEntryError) UnmarshalProto(b []byte) error {
	*m = DataEntryError{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Path = f.String()
		case 2:
			m.Error, err = decodeError(f)
		}
		return err
	})
}

func decodeDataEntryError(f wire.Field) (*DataEntryError, error) {
	de := &DataEntryError{}
	return de, de.UnmarshalProto(f.Bytes)
}
