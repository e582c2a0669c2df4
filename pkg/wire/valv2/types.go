// Package valv2 holds the kuksa.val.v2 messages and the VAL service stubs.
package valv2

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

// DataType mirrors kuksa.val.v2.DataType.
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

// EntryType mirrors kuksa.val.v2.EntryType.
type EntryType int32

const (
	EntryTypeUnspecified EntryType = 0
	EntryTypeAttribute   EntryType = 1
	EntryTypeSensor      EntryType = 2
	EntryTypeActuator    EntryType = 3
)

// Value is a typed value. TypedValue is nil when no member is set.
type Value struct {
	TypedValue TypedValue
}

// TypedValue is the oneof of Value.
type TypedValue interface{ isTypedValue() }

type (
	ValueString      struct{ String string }
	ValueBool        struct{ Bool bool }
	ValueInt32       struct{ Int32 int32 }
	ValueInt64       struct{ Int64 int64 }
	ValueUint32      struct{ Uint32 uint32 }
	ValueUint64      struct{ Uint64 uint64 }
	ValueFloat       struct{ Float float32 }
	ValueDouble      struct{ Double float64 }
	ValueStringArray struct{ Values []string }
	ValueBoolArray   struct{ Values []bool }
	ValueInt32Array  struct{ Values []int32 }
	ValueInt64Array  struct{ Values []int64 }
	ValueUint32Array struct{ Values []uint32 }
	ValueUint64Array struct{ Values []uint64 }
	ValueFloatArray  struct{ Values []float32 }
	ValueDoubleArray struct{ Values []float64 }
)

func (*ValueString) isTypedValue()      {}
func (*ValueBool) isTypedValue()        {}
func (*ValueInt32) isTypedValue()       {}
func (*ValueInt64) isTypedValue()       {}
func (*ValueUint32) isTypedValue()      {}
func (*ValueUint64) isTypedValue()      {}
func (*ValueFloat) isTypedValue()       {}
func (*ValueDouble) isTypedValue()      {}
func (*ValueStringArray) isTypedValue() {}
func (*ValueBoolArray) isTypedValue()   {}
func (*ValueInt32Array) isTypedValue()  {}
func (*ValueInt64Array) isTypedValue()  {}
func (*ValueUint32Array) isTypedValue() {}
func (*ValueUint64Array) isTypedValue() {}
func (*ValueFloatArray) isTypedValue()  {}
func (*ValueDoubleArray) isTypedValue() {}

func typedToAny(tv TypedValue) any {
	switch v := tv.(type) {
	case *ValueString:
		return v.String
	case *ValueBool:
		return v.Bool
	case *ValueInt32:
		return v.Int32
	case *ValueInt64:
		return v.Int64
	case *ValueUint32:
		return v.Uint32
	case *ValueUint64:
		return v.Uint64
	case *ValueFloat:
		return v.Float
	case *ValueDouble:
		return v.Double
	case *ValueStringArray:
		return v.Values
	case *ValueBoolArray:
		return v.Values
	case *ValueInt32Array:
		return v.Values
	case *ValueInt64Array:
		return v.Values
	case *ValueUint32Array:
		return v.Values
	case *ValueUint64Array:
		return v.Values
	case *ValueFloatArray:
		return v.Values
	case *ValueDoubleArray:
		return v.Values
	}
	return nil
}

func typedFromAny(x any) TypedValue {
	switch x := x.(type) {
	case string:
		return &ValueString{String: x}
	case bool:
		return &ValueBool{Bool: x}
	case int32:
		return &ValueInt32{Int32: x}
	case int64:
		return &ValueInt64{Int64: x}
	case uint32:
		return &ValueUint32{Uint32: x}
	case uint64:
		return &ValueUint64{Uint64: x}
	case float32:
		return &ValueFloat{Float: x}
	case float64:
		return &ValueDouble{Double: x}
	case []string:
		return &ValueStringArray{Values: x}
	case []bool:
		return &ValueBoolArray{Values: x}
	case []int32:
		return &ValueInt32Array{Values: x}
	case []int64:
		return &ValueInt64Array{Values: x}
	case []uint32:
		return &ValueUint32Array{Values: x}
	case []uint64:
		return &ValueUint64Array{Values: x}
	case []float32:
		return &ValueFloatArray{Values: x}
	case []float64:
		return &ValueDoubleArray{Values: x}
	}
	return nil
}

// Any returns the oneof payload as a plain Go value, nil when unset.
func (m *Value) Any() any {
	if m == nil {
		return nil
	}
	return typedToAny(m.TypedValue)
}

// NewValue wraps a plain Go value (see wire.Encoder.Typed for the accepted
// types). It returns nil for unsupported types.
func NewValue(x any) *Value {
	tv := typedFromAny(x)
	if tv == nil {
		return nil
	}
	return &Value{TypedValue: tv}
}

func (m *Value) encode(e *wire.Encoder) {
	if m.TypedValue != nil {
		e.Typed(typedToAny(m.TypedValue))
	}
}

func (m *Value) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *Value) UnmarshalProto(b []byte) error {
	*m = Value{}
	return wire.Decode(b, func(f wire.Field) error {
		x, ok, err := f.Typed()
		if err != nil || !ok {
			return err
		}
		m.TypedValue = typedFromAny(x)
		return nil
	})
}

func decodeValue(f wire.Field) (*Value, error) {
	v := &Value{}
	return v, v.UnmarshalProto(f.Bytes)
}

// Datapoint is a value with its timestamp. Value is nil when the signal has
// no value.
type Datapoint struct {
	Timestamp *timestamppb.Timestamp
	Value     *Value
}

func (m *Datapoint) GetValue() *Value {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *Datapoint) GetTimestamp() *timestamppb.Timestamp {
	if m == nil {
		return nil
	}
	return m.Timestamp
}

func (m *Datapoint) encode(e *wire.Encoder) {
	e.Timestamp(1, m.Timestamp)
	if m.Value != nil {
		e.Message(2, m.Value.encode)
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
		var err error
		switch f.Num {
		case 1:
			m.Timestamp, err = f.Timestamp()
		case 2:
			m.Value, err = decodeValue(f)
		}
		return err
	})
}

func decodeDatapoint(f wire.Field) (*Datapoint, error) {
	dp := &Datapoint{}
	return dp, dp.UnmarshalProto(f.Bytes)
}

// SignalID addresses a signal by numeric id or by path. Exactly one of the
// two is meaningful; HasID tells which.
type SignalID struct {
	ID    int32
	Path  string
	HasID bool
}

// ByPath returns a SignalID for path.
func ByPath(path string) *SignalID { return &SignalID{Path: path} }

// ByID returns a SignalID for a numeric id.
func ByID(id int32) *SignalID { return &SignalID{ID: id, HasID: true} }

func (m *SignalID) encode(e *wire.Encoder) {
	if m.HasID {
		e.Int32(1, m.ID)
		return
	}
	e.String(2, m.Path)
}

func (m *SignalID) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *SignalID) UnmarshalProto(b []byte) error {
	*m = SignalID{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			m.ID, m.HasID = f.Int32(), true
		case 2:
			m.Path, m.HasID = f.String(), false
		}
		return nil
	})
}

func decodeSignalID(f wire.Field) (*SignalID, error) {
	id := &SignalID{}
	return id, id.UnmarshalProto(f.Bytes)
}

// Metadata describes one signal.
type Metadata struct {
	Path          string
	ID            int32
	DataType      DataType
	EntryType     EntryType
	Description   string
	Comment       string
	Deprecation   string
	Unit          string
	AllowedValues *Value
	Min           *Value
	Max           *Value
}

func (m *Metadata) encode(e *wire.Encoder) {
	if m.Path != "" {
		e.String(9, m.Path)
	}
	if m.ID != 0 {
		e.Int32(10, m.ID)
	}
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
	if m.AllowedValues != nil {
		e.Message(17, m.AllowedValues.encode)
	}
	if m.Min != nil {
		e.Message(18, m.Min.encode)
	}
	if m.Max != nil {
		e.Message(19, m.Max.encode)
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
		var err error
		switch f.Num {
		case 9:
			m.Path = f.String()
		case 10:
			m.ID = f.Int32()
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
			m.AllowedValues, err = decodeValue(f)
		case 18:
			m.Min, err = decodeValue(f)
		case 19:
			m.Max, err = decodeValue(f)
		}
		return err
	})
}
