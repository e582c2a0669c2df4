package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
)

func TestCastWidening(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		to   value.DataType
		want value.Value
	}{
		{"uint32 to double", value.Uint32Value(0x01234567), value.DataTypeDouble, value.Float64Value(19088743.0)},
		{"int8 to int32", value.Int8Value(-5), value.DataTypeInt32, value.Int32Value(-5)},
		{"int16 to int32", value.Int16Value(-30000), value.DataTypeInt32, value.Int32Value(-30000)},
		{"uint8 to uint32", value.Uint8Value(255), value.DataTypeUint32, value.Uint32Value(255)},
		{"uint16 to uint32", value.Uint16Value(65535), value.DataTypeUint32, value.Uint32Value(65535)},
		{"uint32 to uint64", value.Uint32Value(math.MaxUint32), value.DataTypeUint64, value.Uint64Value(math.MaxUint32)},
		{"uint32 to int64", value.Uint32Value(math.MaxUint32), value.DataTypeInt64, value.Int64Value(math.MaxUint32)},
		{"int32 to int64", value.Int32Value(math.MinInt32), value.DataTypeInt64, value.Int64Value(math.MinInt32)},
		{"int64 to float", value.Int64Value(1 << 40), value.DataTypeFloat, value.Float32Value(1 << 40)},
		{"float to double", value.Float32Value(30), value.DataTypeDouble, value.Float64Value(30)},
		{"same type", value.StringValue("x"), value.DataTypeString, value.StringValue("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.in, tt.to)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v (%s)", got, got.Type())
		})
	}
}

func TestCastNarrowing(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		to   value.DataType
		want value.Value // empty means the cast must fail
	}{
		{"uint32 2^31 to int32", value.Uint32Value(1 << 31), value.DataTypeInt32, value.Value{}},
		{"uint32 2^31-1 to int32", value.Uint32Value(1<<31 - 1), value.DataTypeInt32, value.Int32Value(math.MaxInt32)},
		{"int32 300 to uint8", value.Int32Value(300), value.DataTypeUint8, value.Value{}},
		{"int32 255 to uint8", value.Int32Value(255), value.DataTypeUint8, value.Uint8Value(255)},
		{"int32 -1 to uint32", value.Int32Value(-1), value.DataTypeUint32, value.Value{}},
		{"int32 -128 to int8", value.Int32Value(-128), value.DataTypeInt8, value.Int8Value(-128)},
		{"int32 -129 to int8", value.Int32Value(-129), value.DataTypeInt8, value.Value{}},
		{"int64 max to uint64", value.Int64Value(math.MaxInt64), value.DataTypeUint64, value.Uint64Value(math.MaxInt64)},
		{"uint64 max to int64", value.Uint64Value(math.MaxUint64), value.DataTypeInt64, value.Value{}},
		{"int64 to int16", value.Int64Value(32768), value.DataTypeInt16, value.Value{}},
		{"double integral to int8", value.Float64Value(3), value.DataTypeInt8, value.Int8Value(3)},
		{"double fraction to int32", value.Float64Value(1.5), value.DataTypeInt32, value.Value{}},
		{"double 2^63 to int64", value.Float64Value(math.Ldexp(1, 63)), value.DataTypeInt64, value.Value{}},
		{"double -2^63 to int64", value.Float64Value(-math.Ldexp(1, 63)), value.DataTypeInt64, value.Int64Value(math.MinInt64)},
		{"double negative to uint16", value.Float64Value(-1), value.DataTypeUint16, value.Value{}},
		{"double NaN to int32", value.Float64Value(math.NaN()), value.DataTypeInt32, value.Value{}},
		{"double 1e40 to float", value.Float64Value(1e40), value.DataTypeFloat, value.Value{}},
		{"double 0.5 to float", value.Float64Value(0.5), value.DataTypeFloat, value.Float32Value(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.in, tt.to)
			if tt.want.IsEmpty() {
				require.Error(t, err)
				var ce *clienterr.ConversionError
				assert.ErrorAs(t, err, &ce)
				assert.True(t, got.IsEmpty())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v (%s)", got, got.Type())
		})
	}
}

func TestCastStringAndBoolOnlyToThemselves(t *testing.T) {
	for _, to := range []value.DataType{value.DataTypeInt32, value.DataTypeDouble, value.DataTypeBool} {
		_, err := Cast(value.StringValue("1"), to)
		assert.True(t, clienterr.IsConversion(err), "string to %s", to)
	}
	for _, to := range []value.DataType{value.DataTypeUint8, value.DataTypeString} {
		_, err := Cast(value.BoolValue(true), to)
		assert.True(t, clienterr.IsConversion(err), "bool to %s", to)
	}
	_, err := Cast(value.MustOf([]string{}), value.DataTypeInt32Array)
	assert.True(t, clienterr.IsConversion(err), "empty string array to int32[]")
}

func TestCastArrays(t *testing.T) {
	got, err := Cast(value.MustOf([]int8{1, -2, 3}), value.DataTypeInt32Array)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, -2, 3}, got.Raw())

	got, err = Cast(value.MustOf([]uint32{1, 1 << 31}), value.DataTypeInt32Array)
	require.Error(t, err)
	assert.True(t, got.IsEmpty())
	assert.Contains(t, err.Error(), "element 1")

	_, err = Cast(value.Int32Value(1), value.DataTypeInt32Array)
	assert.True(t, clienterr.IsConversion(err))

	_, err = Cast(value.Value{}, value.DataTypeInt32)
	assert.True(t, clienterr.IsConversion(err))
}
