package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
)

var (
	// ErrParse is returned when text does not describe a value of the declared type.
	ErrParse = errors.New("invalid value text")

	// ErrUnsupportedType is returned for Go or data types a Value cannot carry.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrTypeMismatch is returned when a value does not carry the declared data type.
	ErrTypeMismatch = errors.New("value type does not match declared type")
)

// Value is a tagged union over the signal types. The zero Value carries no
// value. Values are immutable: constructors copy slices.
type Value struct {
	typ DataType
	v   any
}

func StringValue(s string) Value   { return Value{typ: DataTypeString, v: s} }
func BoolValue(b bool) Value       { return Value{typ: DataTypeBool, v: b} }
func Int8Value(i int8) Value       { return Value{typ: DataTypeInt8, v: i} }
func Int16Value(i int16) Value     { return Value{typ: DataTypeInt16, v: i} }
func Int32Value(i int32) Value     { return Value{typ: DataTypeInt32, v: i} }
func Int64Value(i int64) Value     { return Value{typ: DataTypeInt64, v: i} }
func Uint8Value(u uint8) Value     { return Value{typ: DataTypeUint8, v: u} }
func Uint16Value(u uint16) Value   { return Value{typ: DataTypeUint16, v: u} }
func Uint32Value(u uint32) Value   { return Value{typ: DataTypeUint32, v: u} }
func Uint64Value(u uint64) Value   { return Value{typ: DataTypeUint64, v: u} }
func Float32Value(f float32) Value { return Value{typ: DataTypeFloat, v: f} }
func Float64Value(f float64) Value { return Value{typ: DataTypeDouble, v: f} }

// Of builds a Value from a Go scalar or slice of the supported element types.
func Of(x any) (Value, error) {
	switch x := x.(type) {
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case int8:
		return Int8Value(x), nil
	case int16:
		return Int16Value(x), nil
	case int32:
		return Int32Value(x), nil
	case int64:
		return Int64Value(x), nil
	case uint8:
		return Uint8Value(x), nil
	case uint16:
		return Uint16Value(x), nil
	case uint32:
		return Uint32Value(x), nil
	case uint64:
		return Uint64Value(x), nil
	case float32:
		return Float32Value(x), nil
	case float64:
		return Float64Value(x), nil
	case []string:
		return Value{typ: DataTypeStringArray, v: slices.Clone(x)}, nil
	case []bool:
		return Value{typ: DataTypeBoolArray, v: slices.Clone(x)}, nil
	case []int8:
		return Value{typ: DataTypeInt8Array, v: slices.Clone(x)}, nil
	case []int16:
		return Value{typ: DataTypeInt16Array, v: slices.Clone(x)}, nil
	case []int32:
		return Value{typ: DataTypeInt32Array, v: slices.Clone(x)}, nil
	case []int64:
		return Value{typ: DataTypeInt64Array, v: slices.Clone(x)}, nil
	case []uint8:
		return Value{typ: DataTypeUint8Array, v: slices.Clone(x)}, nil
	case []uint16:
		return Value{typ: DataTypeUint16Array, v: slices.Clone(x)}, nil
	case []uint32:
		return Value{typ: DataTypeUint32Array, v: slices.Clone(x)}, nil
	case []uint64:
		return Value{typ: DataTypeUint64Array, v: slices.Clone(x)}, nil
	case []float32:
		return Value{typ: DataTypeFloatArray, v: slices.Clone(x)}, nil
	case []float64:
		return Value{typ: DataTypeDoubleArray, v: slices.Clone(x)}, nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}

// MustOf is like Of but panics on unsupported types.
func MustOf(x any) Value {
	v, err := Of(x)
	if err != nil {
		panic(err)
	}
	return v
}

// As returns the payload of v if it holds a T.
func As[T any](v Value) (T, bool) {
	t, ok := v.v.(T)
	return t, ok
}

// Type returns the active tag, DataTypeUnspecified for the zero Value.
func (v Value) Type() DataType { return v.typ }

// IsEmpty reports whether v carries no value.
func (v Value) IsEmpty() bool { return v.typ == DataTypeUnspecified }

// Raw returns the payload as a Go value (nil for an empty Value).
// Slices are shared with v and must not be modified.
func (v Value) Raw() any { return v.v }

// Len returns the number of elements of an array value and 1 for scalars.
func (v Value) Len() int {
	if v.IsEmpty() {
		return 0
	}
	if !v.typ.IsArray() {
		return 1
	}
	return reflect.ValueOf(v.v).Len()
}

// Equal reports whether both values carry the same tag and payload.
// Floating point payloads compare by bit pattern, so NaN equals itself.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch a := v.v.(type) {
	case float32:
		b, ok := o.v.(float32)
		return ok && math.Float32bits(a) == math.Float32bits(b)
	case float64:
		b, ok := o.v.(float64)
		return ok && math.Float64bits(a) == math.Float64bits(b)
	case []float32:
		b, ok := o.v.([]float32)
		return ok && slices.EqualFunc(a, b, func(x, y float32) bool { return math.Float32bits(x) == math.Float32bits(y) })
	case []float64:
		b, ok := o.v.([]float64)
		return ok && slices.EqualFunc(a, b, func(x, y float64) bool { return math.Float64bits(x) == math.Float64bits(y) })
	}
	return reflect.DeepEqual(v.v, o.v)
}

// String formats v the way ParseValue reads it.
func (v Value) String() string {
	return Format(v)
}

// CheckType fails with ErrTypeMismatch when v does not carry want.
func CheckType(v Value, want DataType) error {
	if v.typ != want {
		return fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, v.typ, want)
	}
	return nil
}
