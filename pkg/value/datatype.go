package value

import "fmt"

// DataType is the declared element type of a signal.
type DataType uint8

const (
	DataTypeUnspecified DataType = iota
	DataTypeString
	DataTypeBool
	DataTypeInt8
	DataTypeInt16
	DataTypeInt32
	DataTypeInt64
	DataTypeUint8
	DataTypeUint16
	DataTypeUint32
	DataTypeUint64
	DataTypeFloat
	DataTypeDouble
	DataTypeTimestamp
)

// Array types are their element type plus arrayOffset.
const arrayOffset DataType = 32

const (
	DataTypeStringArray DataType = arrayOffset + iota + 1
	DataTypeBoolArray
	DataTypeInt8Array
	DataTypeInt16Array
	DataTypeInt32Array
	DataTypeInt64Array
	DataTypeUint8Array
	DataTypeUint16Array
	DataTypeUint32Array
	DataTypeUint64Array
	DataTypeFloatArray
	DataTypeDoubleArray
	DataTypeTimestampArray
)

var dataTypeNames = []string{
	"unspecified", "string", "boolean", "int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64", "float", "double", "timestamp",
}

// String returns the VSS name of the type, e.g. "uint8" or "float[]".
func (d DataType) String() string {
	if d.IsArray() {
		return d.Elem().String() + "[]"
	}
	if int(d) < len(dataTypeNames) {
		return dataTypeNames[d]
	}
	return fmt.Sprintf("DataType(%d)", uint8(d))
}

// IsArray reports whether d is an array type.
func (d DataType) IsArray() bool {
	return d > arrayOffset && d <= DataTypeTimestampArray
}

// Elem returns the element type of an array type, or d itself for scalars.
func (d DataType) Elem() DataType {
	if d.IsArray() {
		return d - arrayOffset
	}
	return d
}

// ArrayOf returns the array type with element type d.
// It returns DataTypeUnspecified for types that have no array form.
func (d DataType) ArrayOf() DataType {
	if d == DataTypeUnspecified || d.IsArray() || d > DataTypeTimestamp {
		return DataTypeUnspecified
	}
	return d + arrayOffset
}

// IsInteger reports whether the element type is a signed or unsigned integer.
func (d DataType) IsInteger() bool {
	e := d.Elem()
	return e >= DataTypeInt8 && e <= DataTypeUint64
}

// IsSigned reports whether the element type is a signed integer.
func (d DataType) IsSigned() bool {
	e := d.Elem()
	return e >= DataTypeInt8 && e <= DataTypeInt64
}

// IsFloat reports whether the element type is float or double.
func (d DataType) IsFloat() bool {
	e := d.Elem()
	return e == DataTypeFloat || e == DataTypeDouble
}

// Bits returns the width of numeric element types and 0 for anything else.
func (d DataType) Bits() int {
	switch d.Elem() {
	case DataTypeInt8, DataTypeUint8:
		return 8
	case DataTypeInt16, DataTypeUint16:
		return 16
	case DataTypeInt32, DataTypeUint32, DataTypeFloat:
		return 32
	case DataTypeInt64, DataTypeUint64, DataTypeDouble:
		return 64
	}
	return 0
}

// ParseDataType accepts the names produced by String. "bool" is accepted
// as an alias for "boolean".
func ParseDataType(s string) (DataType, error) {
	if s == "bool" {
		return DataTypeBool, nil
	}
	if s == "bool[]" {
		return DataTypeBoolArray, nil
	}
	for i, name := range dataTypeNames {
		if s == name {
			return DataType(i), nil
		}
		if i > 0 && s == name+"[]" {
			return DataType(i) + arrayOffset, nil
		}
	}
	return DataTypeUnspecified, fmt.Errorf("%w: unknown data type %q", ErrParse, s)
}
