package convert

import (
	"fmt"
	"math"
	"reflect"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
)

func convErr(from, to value.DataType, x any, reason string) error {
	return &clienterr.ConversionError{From: from.String(), To: to.String(), Value: x, Reason: reason}
}

// Cast converts v to the data type to under the numeric rules of this
// package. Casting to the type v already has returns v.
func Cast(v value.Value, to value.DataType) (value.Value, error) {
	from := v.Type()
	if from == to {
		return v, nil
	}
	if v.IsEmpty() {
		return value.Value{}, convErr(from, to, nil, "no value")
	}
	if from.IsArray() != to.IsArray() {
		return value.Value{}, convErr(from, to, nil, "array and scalar do not convert")
	}
	if !from.IsArray() {
		x, err := castScalar(v.Raw(), from, to)
		if err != nil {
			return value.Value{}, err
		}
		return value.Of(x)
	}

	if !isNumeric(from) || !isNumeric(to) {
		return value.Value{}, convErr(from, to, nil, "incompatible types")
	}
	src := reflect.ValueOf(v.Raw())
	dst := reflect.MakeSlice(reflect.SliceOf(goType(to.Elem())), src.Len(), src.Len())
	for i := range src.Len() {
		x, err := castScalar(src.Index(i).Interface(), from.Elem(), to.Elem())
		if err != nil {
			return value.Value{}, convErr(from, to, nil, fmt.Sprintf("element %d: %v", i, err))
		}
		dst.Index(i).Set(reflect.ValueOf(x))
	}
	return value.Of(dst.Interface())
}

func goType(t value.DataType) reflect.Type {
	switch t {
	case value.DataTypeString:
		return reflect.TypeFor[string]()
	case value.DataTypeBool:
		return reflect.TypeFor[bool]()
	case value.DataTypeInt8:
		return reflect.TypeFor[int8]()
	case value.DataTypeInt16:
		return reflect.TypeFor[int16]()
	case value.DataTypeInt32:
		return reflect.TypeFor[int32]()
	case value.DataTypeInt64:
		return reflect.TypeFor[int64]()
	case value.DataTypeUint8:
		return reflect.TypeFor[uint8]()
	case value.DataTypeUint16:
		return reflect.TypeFor[uint16]()
	case value.DataTypeUint32:
		return reflect.TypeFor[uint32]()
	case value.DataTypeUint64:
		return reflect.TypeFor[uint64]()
	case value.DataTypeFloat:
		return reflect.TypeFor[float32]()
	case value.DataTypeDouble:
		return reflect.TypeFor[float64]()
	}
	return reflect.TypeFor[any]()
}

// number is a scalar numeric payload in its widest form.
type number struct {
	signed   bool
	unsigned bool
	i        int64
	u        uint64
	f        float64
}

func toNumber(x any) (number, bool) {
	switch x := x.(type) {
	case int8:
		return number{signed: true, i: int64(x)}, true
	case int16:
		return number{signed: true, i: int64(x)}, true
	case int32:
		return number{signed: true, i: int64(x)}, true
	case int64:
		return number{signed: true, i: x}, true
	case uint8:
		return number{unsigned: true, u: uint64(x)}, true
	case uint16:
		return number{unsigned: true, u: uint64(x)}, true
	case uint32:
		return number{unsigned: true, u: uint64(x)}, true
	case uint64:
		return number{unsigned: true, u: x}, true
	case float32:
		return number{f: float64(x)}, true
	case float64:
		return number{f: x}, true
	}
	return number{}, false
}

func castScalar(x any, from, to value.DataType) (any, error) {
	if from == to {
		return x, nil
	}
	if !isNumeric(from) || !isNumeric(to) {
		return nil, convErr(from, to, x, "incompatible types")
	}
	n, ok := toNumber(x)
	if !ok {
		return nil, convErr(from, to, x, fmt.Sprintf("unexpected payload %T", x))
	}

	switch {
	case to.IsFloat():
		return n.toFloat(from, to)
	case to.IsSigned():
		i, err := n.toInt(from, to)
		if err != nil {
			return nil, err
		}
		switch to {
		case value.DataTypeInt8:
			return int8(i), nil
		case value.DataTypeInt16:
			return int16(i), nil
		case value.DataTypeInt32:
			return int32(i), nil
		}
		return i, nil
	default:
		u, err := n.toUint(from, to)
		if err != nil {
			return nil, err
		}
		switch to {
		case value.DataTypeUint8:
			return uint8(u), nil
		case value.DataTypeUint16:
			return uint16(u), nil
		case value.DataTypeUint32:
			return uint32(u), nil
		}
		return u, nil
	}
}

func isNumeric(t value.DataType) bool {
	return t.IsInteger() || t.IsFloat()
}

func (n number) toInt(from, to value.DataType) (int64, error) {
	bits := to.Bits()
	lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
	if bits == 64 {
		lo, hi = math.MinInt64, math.MaxInt64
	}
	switch {
	case n.signed:
		if n.i < lo || n.i > hi {
			return 0, convErr(from, to, n.i, "out of range")
		}
		return n.i, nil
	case n.unsigned:
		if n.u > uint64(hi) {
			return 0, convErr(from, to, n.u, "out of range")
		}
		return int64(n.u), nil
	}
	if n.f != math.Trunc(n.f) || math.IsInf(n.f, 0) {
		return 0, convErr(from, to, n.f, "not an integer")
	}
	// float64(hi) rounds up to 2^(bits-1) for 64 bits, hence the strict bound.
	if n.f < float64(lo) || n.f >= -float64(lo) {
		return 0, convErr(from, to, n.f, "out of range")
	}
	return int64(n.f), nil
}

func (n number) toUint(from, to value.DataType) (uint64, error) {
	bits := to.Bits()
	hi := uint64(1)<<bits - 1
	if bits == 64 {
		hi = math.MaxUint64
	}
	switch {
	case n.unsigned:
		if n.u > hi {
			return 0, convErr(from, to, n.u, "out of range")
		}
		return n.u, nil
	case n.signed:
		if n.i < 0 || uint64(n.i) > hi {
			return 0, convErr(from, to, n.i, "out of range")
		}
		return uint64(n.i), nil
	}
	if n.f != math.Trunc(n.f) || math.IsInf(n.f, 0) {
		return 0, convErr(from, to, n.f, "not an integer")
	}
	if n.f < 0 || n.f >= math.Ldexp(1, bits) {
		return 0, convErr(from, to, n.f, "out of range")
	}
	return uint64(n.f), nil
}

func (n number) toFloat(from, to value.DataType) (any, error) {
	var f float64
	switch {
	case n.signed:
		f = float64(n.i)
	case n.unsigned:
		f = float64(n.u)
	default:
		f = n.f
	}
	if to == value.DataTypeDouble {
		return f, nil
	}
	if !n.signed && !n.unsigned && !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return nil, convErr(from, to, f, "out of range")
	}
	return float32(f), nil
}
