package wire

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Encoder appends protobuf fields to a buffer. Callers skip proto3 default
// values themselves; every method writes its field unconditionally except
// the repeated ones, which write nothing for empty input.
type Encoder struct {
	b []byte
}

// Bytes returns the encoded buffer.
func (e *Encoder) Bytes() []byte { return e.b }

func (e *Encoder) tag(num protowire.Number, typ protowire.Type) {
	e.b = protowire.AppendTag(e.b, num, typ)
}

func (e *Encoder) String(num protowire.Number, v string) {
	e.tag(num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, v)
}

func (e *Encoder) Bool(num protowire.Number, v bool) {
	e.tag(num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(v))
}

// Int32 writes an int32 or enum field.
func (e *Encoder) Int32(num protowire.Number, v int32) {
	e.tag(num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, uint64(int64(v)))
}

func (e *Encoder) Int64(num protowire.Number, v int64) {
	e.tag(num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, uint64(v))
}

func (e *Encoder) Uint32(num protowire.Number, v uint32) {
	e.tag(num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, uint64(v))
}

func (e *Encoder) Uint64(num protowire.Number, v uint64) {
	e.tag(num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, v)
}

func (e *Encoder) Sint32(num protowire.Number, v int32) {
	e.tag(num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeZigZag(int64(v)))
}

func (e *Encoder) Sint64(num protowire.Number, v int64) {
	e.tag(num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeZigZag(v))
}

func (e *Encoder) Float(num protowire.Number, v float32) {
	e.tag(num, protowire.Fixed32Type)
	e.b = protowire.AppendFixed32(e.b, math.Float32bits(v))
}

func (e *Encoder) Double(num protowire.Number, v float64) {
	e.tag(num, protowire.Fixed64Type)
	e.b = protowire.AppendFixed64(e.b, math.Float64bits(v))
}

// Raw appends already encoded fields.
func (e *Encoder) Raw(b []byte) {
	e.b = append(e.b, b...)
}

// Message writes a length-delimited sub-message built by fn. The field is
// written even when fn adds nothing, which marks the sub-message present.
func (e *Encoder) Message(num protowire.Number, fn func(*Encoder)) {
	var sub Encoder
	fn(&sub)
	e.tag(num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, sub.b)
}

// Timestamp writes a google.protobuf.Timestamp; nil writes nothing.
func (e *Encoder) Timestamp(num protowire.Number, ts *timestamppb.Timestamp) {
	if ts == nil {
		return
	}
	e.Message(num, func(s *Encoder) {
		if ts.GetSeconds() != 0 {
			s.Int64(1, ts.GetSeconds())
		}
		if ts.GetNanos() != 0 {
			s.Int32(2, ts.GetNanos())
		}
	})
}

// Strings writes a repeated string field.
func (e *Encoder) Strings(num protowire.Number, vs []string) {
	for _, v := range vs {
		e.String(num, v)
	}
}

func (e *Encoder) packed(num protowire.Number, n int, appendElem func(b []byte, i int) []byte) {
	if n == 0 {
		return
	}
	var body []byte
	for i := range n {
		body = appendElem(body, i)
	}
	e.tag(num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, body)
}

// PackedInt32 writes a packed repeated int32 or enum field.
func (e *Encoder) PackedInt32(num protowire.Number, vs []int32) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendVarint(b, uint64(int64(vs[i])))
	})
}

func (e *Encoder) PackedBool(num protowire.Number, vs []bool) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendVarint(b, protowire.EncodeBool(vs[i]))
	})
}

func (e *Encoder) PackedSint32(num protowire.Number, vs []int32) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(vs[i])))
	})
}

func (e *Encoder) PackedSint64(num protowire.Number, vs []int64) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendVarint(b, protowire.EncodeZigZag(vs[i]))
	})
}

func (e *Encoder) PackedUint32(num protowire.Number, vs []uint32) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendVarint(b, uint64(vs[i]))
	})
}

func (e *Encoder) PackedUint64(num protowire.Number, vs []uint64) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendVarint(b, vs[i])
	})
}

func (e *Encoder) PackedFloat(num protowire.Number, vs []float32) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendFixed32(b, math.Float32bits(vs[i]))
	})
}

func (e *Encoder) PackedDouble(num protowire.Number, vs []float64) {
	e.packed(num, len(vs), func(b []byte, i int) []byte {
		return protowire.AppendFixed64(b, math.Float64bits(vs[i]))
	})
}

// SortedKeys returns the keys of a map field in ascending order so map
// fields encode deterministically.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
