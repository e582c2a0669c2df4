package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the typed value oneof. All three databroker generations
// use the same numbers and scalar encodings for it.
const (
	FieldString      protowire.Number = 11
	FieldBool        protowire.Number = 12
	FieldInt32       protowire.Number = 13 // sint32
	FieldInt64       protowire.Number = 14 // sint64
	FieldUint32      protowire.Number = 15
	FieldUint64      protowire.Number = 16
	FieldFloat       protowire.Number = 17
	FieldDouble      protowire.Number = 18
	FieldStringArray protowire.Number = 21
	FieldBoolArray   protowire.Number = 22
	FieldInt32Array  protowire.Number = 23
	FieldInt64Array  protowire.Number = 24
	FieldUint32Array protowire.Number = 25
	FieldUint64Array protowire.Number = 26
	FieldFloatArray  protowire.Number = 27
	FieldDoubleArray protowire.Number = 28
)

// Typed writes a typed value oneof member. x must be one of string, bool,
// int32, int64, uint32, uint64, float32, float64 or a slice of those; other
// types write nothing and return false.
func (e *Encoder) Typed(x any) bool {
	switch x := x.(type) {
	case string:
		e.String(FieldString, x)
	case bool:
		e.Bool(FieldBool, x)
	case int32:
		e.Sint32(FieldInt32, x)
	case int64:
		e.Sint64(FieldInt64, x)
	case uint32:
		e.Uint32(FieldUint32, x)
	case uint64:
		e.Uint64(FieldUint64, x)
	case float32:
		e.Float(FieldFloat, x)
	case float64:
		e.Double(FieldDouble, x)
	case []string:
		e.Message(FieldStringArray, func(s *Encoder) { s.Strings(1, x) })
	case []bool:
		e.Message(FieldBoolArray, func(s *Encoder) { s.PackedBool(1, x) })
	case []int32:
		e.Message(FieldInt32Array, func(s *Encoder) { s.PackedSint32(1, x) })
	case []int64:
		e.Message(FieldInt64Array, func(s *Encoder) { s.PackedSint64(1, x) })
	case []uint32:
		e.Message(FieldUint32Array, func(s *Encoder) { s.PackedUint32(1, x) })
	case []uint64:
		e.Message(FieldUint64Array, func(s *Encoder) { s.PackedUint64(1, x) })
	case []float32:
		e.Message(FieldFloatArray, func(s *Encoder) { s.PackedFloat(1, x) })
	case []float64:
		e.Message(FieldDoubleArray, func(s *Encoder) { s.PackedDouble(1, x) })
	default:
		return false
	}
	return true
}

// Typed decodes f as a typed value oneof member. ok is false when f is not
// one of the typed value fields.
func (f Field) Typed() (x any, ok bool, err error) {
	switch f.Num {
	case FieldString:
		return f.String(), true, f.Expect(protowire.BytesType)
	case FieldBool:
		return f.Bool(), true, f.Expect(protowire.VarintType)
	case FieldInt32:
		return f.Sint32(), true, f.Expect(protowire.VarintType)
	case FieldInt64:
		return f.Sint64(), true, f.Expect(protowire.VarintType)
	case FieldUint32:
		return f.Uint32(), true, f.Expect(protowire.VarintType)
	case FieldUint64:
		return f.Uint64(), true, f.Expect(protowire.VarintType)
	case FieldFloat:
		return f.Float(), true, f.Expect(protowire.Fixed32Type)
	case FieldDouble:
		return f.Double(), true, f.Expect(protowire.Fixed64Type)
	case FieldStringArray:
		out := []string{}
		err := f.array(func(g Field) error {
			out = append(out, g.String())
			return nil
		})
		return out, true, err
	case FieldBoolArray:
		return decodeArray(f, Field.AppendBools)
	case FieldInt32Array:
		return decodeArray(f, Field.AppendSint32s)
	case FieldInt64Array:
		return decodeArray(f, Field.AppendSint64s)
	case FieldUint32Array:
		return decodeArray(f, Field.AppendUint32s)
	case FieldUint64Array:
		return decodeArray(f, Field.AppendUint64s)
	case FieldFloatArray:
		return decodeArray(f, Field.AppendFloats)
	case FieldDoubleArray:
		return decodeArray(f, Field.AppendDoubles)
	}
	return nil, false, nil
}

// array walks the `values = 1` field of an array wrapper message.
func (f Field) array(fn func(Field) error) error {
	if err := f.Expect(protowire.BytesType); err != nil {
		return err
	}
	return Decode(f.Bytes, func(g Field) error {
		if g.Num != 1 {
			return nil
		}
		return fn(g)
	})
}

func decodeArray[T any](f Field, appendFn func(Field, []T) ([]T, error)) (any, bool, error) {
	out := []T{}
	err := f.array(func(g Field) error {
		var err error
		out, err = appendFn(g, out)
		return err
	})
	if err != nil {
		return nil, true, fmt.Errorf("field %d: %w", f.Num, err)
	}
	return out, true, nil
}
