package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ErrWireType is returned when a known field arrives with an unexpected wire type.
var ErrWireType = errors.New("unexpected wire type")

// Field is one decoded field. Only the member matching Type is set.
type Field struct {
	Num     protowire.Number
	Type    protowire.Type
	Varint  uint64
	Fixed32 uint32
	Fixed64 uint64
	Bytes   []byte
}

// Decode walks the fields of b in order and calls fn for each. Groups are
// skipped. Returning an error from fn stops the walk.
func Decode(b []byte, fn func(f Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			f.Varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			f.Fixed32, n = protowire.ConsumeFixed32(b)
		case protowire.Fixed64Type:
			f.Fixed64, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.Bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) Bool() bool      { return f.Varint != 0 }
func (f Field) Int32() int32    { return int32(f.Varint) }
func (f Field) Int64() int64    { return int64(f.Varint) }
func (f Field) Uint32() uint32  { return uint32(f.Varint) }
func (f Field) Uint64() uint64  { return f.Varint }
func (f Field) Sint32() int32   { return int32(protowire.DecodeZigZag(f.Varint)) }
func (f Field) Sint64() int64   { return protowire.DecodeZigZag(f.Varint) }
func (f Field) Float() float32  { return math.Float32frombits(f.Fixed32) }
func (f Field) Double() float64 { return math.Float64frombits(f.Fixed64) }
func (f Field) String() string  { return string(f.Bytes) }

// Expect fails with ErrWireType unless f has wire type typ.
func (f Field) Expect(typ protowire.Type) error {
	if f.Type != typ {
		return fmt.Errorf("%w: field %d has type %d, want %d", ErrWireType, f.Num, f.Type, typ)
	}
	return nil
}

// Timestamp decodes a google.protobuf.Timestamp sub-message.
func (f Field) Timestamp() (*timestamppb.Timestamp, error) {
	if err := f.Expect(protowire.BytesType); err != nil {
		return nil, err
	}
	ts := &timestamppb.Timestamp{}
	err := Decode(f.Bytes, func(g Field) error {
		switch g.Num {
		case 1:
			ts.Seconds = g.Int64()
		case 2:
			ts.Nanos = g.Int32()
		}
		return nil
	})
	return ts, err
}

// MapEntry splits a map entry sub-message into its key and value fields.
// A missing key or value is returned as a zero Field.
func (f Field) MapEntry() (key, val Field, err error) {
	if err := f.Expect(protowire.BytesType); err != nil {
		return Field{}, Field{}, err
	}
	err = Decode(f.Bytes, func(g Field) error {
		switch g.Num {
		case 1:
			key = g
		case 2:
			val = g
		}
		return nil
	})
	return key, val, err
}

// unpack appends the elements of a repeated scalar field, accepting both
// packed and unpacked encodings.
func unpack[T any](dst []T, f Field, elem protowire.Type, conv func(Field) T) ([]T, error) {
	if f.Type == elem {
		return append(dst, conv(f)), nil
	}
	if f.Type != protowire.BytesType {
		return dst, fmt.Errorf("%w: field %d has type %d", ErrWireType, f.Num, f.Type)
	}
	b := f.Bytes
	for len(b) > 0 {
		e := Field{Num: f.Num, Type: elem}
		var n int
		switch elem {
		case protowire.VarintType:
			e.Varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			e.Fixed32, n = protowire.ConsumeFixed32(b)
		case protowire.Fixed64Type:
			e.Fixed64, n = protowire.ConsumeFixed64(b)
		}
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		b = b[n:]
		dst = append(dst, conv(e))
	}
	return dst, nil
}

func (f Field) AppendInt32s(dst []int32) ([]int32, error) {
	return unpack(dst, f, protowire.VarintType, Field.Int32)
}

func (f Field) AppendBools(dst []bool) ([]bool, error) {
	return unpack(dst, f, protowire.VarintType, Field.Bool)
}

func (f Field) AppendSint32s(dst []int32) ([]int32, error) {
	return unpack(dst, f, protowire.VarintType, Field.Sint32)
}

func (f Field) AppendSint64s(dst []int64) ([]int64, error) {
	return unpack(dst, f, protowire.VarintType, Field.Sint64)
}

func (f Field) AppendUint32s(dst []uint32) ([]uint32, error) {
	return unpack(dst, f, protowire.VarintType, Field.Uint32)
}

func (f Field) AppendUint64s(dst []uint64) ([]uint64, error) {
	return unpack(dst, f, protowire.VarintType, Field.Uint64)
}

func (f Field) AppendFloats(dst []float32) ([]float32, error) {
	return unpack(dst, f, protowire.Fixed32Type, Field.Float)
}

func (f Field) AppendDoubles(dst []float64) ([]float64, error) {
	return unpack(dst, f, protowire.Fixed64Type, Field.Double)
}
