package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfInfersType(t *testing.T) {
	cases := map[DataType]any{
		DataTypeString:      "x",
		DataTypeBool:        true,
		DataTypeInt8:        int8(1),
		DataTypeUint64:      uint64(1),
		DataTypeFloat:       float32(1),
		DataTypeDouble:      float64(1),
		DataTypeStringArray: []string{"a"},
		DataTypeUint16Array: []uint16{1, 2},
		DataTypeFloatArray:  []float32{1.5},
	}
	for want, x := range cases {
		v, err := Of(x)
		require.NoError(t, err)
		assert.Equal(t, want, v.Type(), "Of(%T)", x)
	}

	_, err := Of(int(1))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestOfCopiesSlices(t *testing.T) {
	src := []int32{1, 2, 3}
	v := MustOf(src)
	src[0] = 99

	got, ok := As[[]int32](v)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3}, got)
	assert.Equal(t, 3, v.Len())
}

func TestEmptyValueIsNotZeroValue(t *testing.T) {
	var empty Value
	assert.True(t, empty.IsEmpty())
	assert.False(t, StringValue("").IsEmpty())
	assert.False(t, Int32Value(0).IsEmpty())
	assert.False(t, empty.Equal(StringValue("")))
	assert.False(t, Datapoint{}.HasValue())
	assert.True(t, Datapoint{Value: BoolValue(false)}.HasValue())
}

func TestEqualComparesTag(t *testing.T) {
	assert.True(t, Int32Value(5).Equal(Int32Value(5)))
	assert.False(t, Int32Value(5).Equal(Int64Value(5)))
	assert.True(t, MustOf([]bool{true}).Equal(MustOf([]bool{true})))
}

func TestEqualNaN(t *testing.T) {
	for _, typ := range []DataType{DataTypeFloat, DataTypeDouble, DataTypeDoubleArray} {
		text := "NaN"
		if typ.IsArray() {
			text = "[NaN, 1]"
		}
		a, err := ParseValue(text, typ)
		require.NoError(t, err)
		b, err := ParseValue(Format(a), typ)
		require.NoError(t, err)
		assert.True(t, a.Equal(b), "%s %s", typ, text)
	}
	assert.False(t, Float64Value(math.NaN()).Equal(Float64Value(1)))
	assert.False(t, Float32Value(1).Equal(Float64Value(1)))
}

func TestDataTypeNames(t *testing.T) {
	for dt := DataTypeString; dt <= DataTypeTimestamp; dt++ {
		parsed, err := ParseDataType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, parsed)

		arr := dt.ArrayOf()
		assert.True(t, arr.IsArray(), "%s", arr)
		assert.Equal(t, dt, arr.Elem())
		parsed, err = ParseDataType(arr.String())
		require.NoError(t, err)
		assert.Equal(t, arr, parsed)
	}

	assert.Equal(t, "uint8[]", DataTypeUint8Array.String())
	assert.Equal(t, DataTypeUnspecified, DataTypeUint8Array.ArrayOf())

	bt, err := ParseDataType("bool")
	require.NoError(t, err)
	assert.Equal(t, DataTypeBool, bt)

	_, err = ParseDataType("complex128")
	assert.ErrorIs(t, err, ErrParse)
}

func TestAccess(t *testing.T) {
	assert.Equal(t, "RP", AccessFor(EntryTypeSensor).String())
	assert.Equal(t, "RPA", AccessFor(EntryTypeActuator).String())
	assert.True(t, AccessFor(EntryTypeActuator).CanActuate())
	assert.False(t, AccessFor(EntryTypeAttribute).CanActuate())
	assert.Equal(t, "-", Access(0).String())
}

func TestFieldHas(t *testing.T) {
	f := FieldValue | FieldMetadata
	assert.True(t, f.Has(FieldValue))
	assert.True(t, f.Has(FieldValue|FieldMetadata))
	assert.False(t, f.Has(FieldActuatorTarget))
}
