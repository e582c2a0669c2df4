package convert

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

func TestWireWidensSmallIntegers(t *testing.T) {
	tests := []struct {
		in   value.Value
		wire any
	}{
		{value.Int8Value(-3), int32(-3)},
		{value.Int16Value(1000), int32(1000)},
		{value.Uint8Value(200), uint32(200)},
		{value.Uint16Value(60000), uint32(60000)},
		{value.MustOf([]int8{1, 2}), []int32{1, 2}},
		{value.MustOf([]uint16{7}), []uint32{7}},
		{value.Float32Value(30), float32(30)},
		{value.MustOf([]string{"a"}), []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.in.Type().String(), func(t *testing.T) {
			assert.Equal(t, tt.wire, ToV2Value(tt.in).Any())
			assert.Equal(t, tt.wire, ToV1Datapoint(value.Datapoint{Value: tt.in}).Any())
			assert.Equal(t, tt.wire, ToSDVDatapoint(value.Datapoint{Value: tt.in}).Value)

			// Reading it back with the declared type restores the original.
			back, err := FromV2Value(ToV2Value(tt.in), tt.in.Type())
			require.NoError(t, err)
			assert.True(t, tt.in.Equal(back))
		})
	}
}

func TestFromWireNarrowsToDeclaredType(t *testing.T) {
	v, err := FromV2Value(valv2.NewValue(uint32(300)), value.DataTypeUint8)
	assert.True(t, clienterr.IsConversion(err))
	assert.True(t, v.IsEmpty())

	v, err = FromV2Value(valv2.NewValue(uint32(42)), value.DataTypeUint8)
	require.NoError(t, err)
	assert.Equal(t, value.Uint8Value(42), v)

	dp, err := FromV1Datapoint(valv1.NewDatapoint(int32(-7)), value.DataTypeInt16)
	require.NoError(t, err)
	assert.Equal(t, value.Int16Value(-7), dp.Value)

	v, err = FromV2Value(nil, value.DataTypeFloat)
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestNoValueAcrossGenerations(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	sdv := ToSDVDatapoint(value.Datapoint{Timestamp: ts})
	require.True(t, sdv.IsFailure())
	assert.Equal(t, sdvv1.FailureNotAvailable, *sdv.Failure)
	assert.Equal(t, ts, sdv.Timestamp.AsTime())

	back, err := FromSDVDatapoint(sdv, value.DataTypeUnspecified)
	require.NoError(t, err)
	assert.False(t, back.HasValue())
	assert.Equal(t, ts, back.Timestamp)

	v1, err := SDVDatapointToV1(sdv)
	require.NoError(t, err)
	assert.Nil(t, v1.Value)
	assert.True(t, V1DatapointToSDV(v1).IsFailure())

	v2, err := SDVDatapointToV2(sdv)
	require.NoError(t, err)
	assert.Nil(t, v2.Value)
	assert.True(t, V2DatapointToSDV(v2).IsFailure())
	assert.True(t, V2DatapointToSDV(nil).IsFailure())

	assert.Nil(t, ToV2Datapoint(value.Datapoint{}).Value)
	assert.Nil(t, V1DatapointToV2(&valv1.Datapoint{}).Value)
	assert.Nil(t, V2DatapointToV1(&valv2.Datapoint{}).Value)
}

func TestFailureValuesDoNotConvert(t *testing.T) {
	dp := sdvv1.NewFailure(sdvv1.FailureAccessDenied)

	_, err := FromSDVDatapoint(dp, value.DataTypeUnspecified)
	assert.True(t, clienterr.IsConversion(err))
	_, err = SDVDatapointToV1(dp)
	assert.True(t, clienterr.IsConversion(err))
	_, err = SDVDatapointToV2(dp)
	assert.True(t, clienterr.IsConversion(err))
	assert.Contains(t, err.Error(), "ACCESS_DENIED")
}

func TestDatapointsBetweenGenerations(t *testing.T) {
	ts := timestamppb.New(time.Unix(1700000000, 5).UTC())
	v2 := &valv2.Datapoint{Timestamp: ts, Value: valv2.NewValue(float32(30))}

	sdv := V2DatapointToSDV(v2)
	assert.Equal(t, float32(30), sdv.Value)
	assert.Equal(t, ts.AsTime(), sdv.Timestamp.AsTime())

	v1, err := SDVDatapointToV1(sdv)
	require.NoError(t, err)
	assert.Equal(t, float32(30), v1.Any())

	again := V1DatapointToV2(v1)
	assert.Equal(t, float32(30), again.GetValue().Any())
	assert.Equal(t, []bool{true, false}, V2DatapointToV1(&valv2.Datapoint{Value: valv2.NewValue([]bool{true, false})}).Any())
}

func TestDataTypeMappings(t *testing.T) {
	all := []value.DataType{
		value.DataTypeString, value.DataTypeBool, value.DataTypeInt8, value.DataTypeInt16,
		value.DataTypeInt32, value.DataTypeInt64, value.DataTypeUint8, value.DataTypeUint16,
		value.DataTypeUint32, value.DataTypeUint64, value.DataTypeFloat, value.DataTypeDouble,
	}
	for _, dt := range append(all, value.DataTypeTimestamp) {
		for _, d := range []value.DataType{dt, dt.ArrayOf()} {
			got, err := FromV2DataType(V2DataType(d))
			require.NoError(t, err)
			assert.Equal(t, d, got, "v2 %s", d)
			got, err = FromV1DataType(V1DataType(d))
			require.NoError(t, err)
			assert.Equal(t, d, got, "v1 %s", d)
		}
	}
	for _, dt := range all {
		for _, d := range []value.DataType{dt, dt.ArrayOf()} {
			s, err := SDVDataType(d)
			require.NoError(t, err)
			got, err := FromSDVDataType(s)
			require.NoError(t, err)
			assert.Equal(t, d, got, "sdv %s", d)
		}
	}

	assert.Equal(t, valv2.DataTypeFloat, V2DataType(value.DataTypeFloat))
	assert.Equal(t, valv1.DataTypeDoubleArray, V1DataType(value.DataTypeDoubleArray))
	s, _ := SDVDataType(value.DataTypeBool)
	assert.Equal(t, sdvv1.DataTypeBool, s)
	s, _ = SDVDataType(value.DataTypeUint8Array)
	assert.Equal(t, sdvv1.DataTypeUint8Array, s)

	_, err := SDVDataType(value.DataTypeTimestamp)
	assert.True(t, clienterr.IsConversion(err))
	_, err = FromV2DataType(valv2.DataType(99))
	assert.True(t, clienterr.IsConversion(err))
}

func TestV2Metadata(t *testing.T) {
	in := &valv2.Metadata{
		Path:        "Vehicle.Cabin.Light.Intensity",
		ID:          12,
		DataType:    valv2.DataTypeUint8,
		EntryType:   valv2.EntryTypeActuator,
		Description: "brightness",
		Unit:        "percent",
		Min:         valv2.NewValue(uint32(0)),
		Max:         valv2.NewValue(uint32(100)),
	}
	md, err := V2MetadataToMetadata(in)
	require.NoError(t, err)

	want := value.Metadata{
		Path:        in.Path,
		ID:          12,
		DataType:    value.DataTypeUint8,
		EntryType:   value.EntryTypeActuator,
		Description: "brightness",
		Unit:        "percent",
		Access:      value.AccessRead | value.AccessPublish | value.AccessActuate,
		Min:         value.Uint8Value(0),
		Max:         value.Uint8Value(100),
	}
	if diff := cmp.Diff(want, md, cmp.Comparer(value.Value.Equal)); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	sdv, err := V2MetadataToSDV(in)
	require.NoError(t, err)
	assert.Equal(t, &sdvv1.Metadata{
		ID:          12,
		EntryType:   sdvv1.EntryTypeActuator,
		Name:        in.Path,
		DataType:    sdvv1.DataTypeUint8,
		ChangeType:  sdvv1.ChangeTypeOnChange,
		Description: "brightness",
	}, sdv)

	in.Max = valv2.NewValue(uint32(1000))
	_, err = V2MetadataToMetadata(in)
	assert.True(t, clienterr.IsConversion(err))
}

func TestV1EntryToEntry(t *testing.T) {
	de := &valv1.DataEntry{
		Path:           "Vehicle.Body.Trunk.IsOpen",
		Value:          valv1.NewDatapoint(false),
		ActuatorTarget: valv1.NewDatapoint(true),
		Metadata:       &valv1.Metadata{DataType: valv1.DataTypeBoolean, EntryType: valv1.EntryTypeActuator},
	}
	e, err := V1EntryToEntry(de)
	require.NoError(t, err)
	assert.Equal(t, value.BoolValue(false), e.Value.Value)
	assert.Equal(t, value.BoolValue(true), e.Target.Value)
	assert.Equal(t, int32(0), e.Metadata.ID)
	assert.Equal(t, value.EntryTypeActuator, e.Metadata.EntryType)

	round := EntryToV1(e)
	assert.Equal(t, false, round.Value.Any())
	assert.Equal(t, true, round.ActuatorTarget.Any())
	assert.Equal(t, valv1.DataTypeBoolean, round.Metadata.DataType)

	sdv, err := V1MetadataToSDV(de.Path, de.Metadata)
	require.NoError(t, err)
	assert.Equal(t, int32(0), sdv.ID)
	assert.Equal(t, sdvv1.DataTypeBool, sdv.DataType)

	m := V1EntriesToSDV([]*valv1.DataEntry{de, {Path: "Vehicle.Speed"}})
	assert.Equal(t, false, m[de.Path].Value)
	assert.True(t, m["Vehicle.Speed"].IsFailure())
}

func TestSubscribeReshaping(t *testing.T) {
	r2 := V2SubscribeToSDV(&valv2.SubscribeResponse{Entries: map[string]*valv2.Datapoint{
		"Vehicle.Speed": {Value: valv2.NewValue(float32(30))},
		"Vehicle.Gear":  {},
	}})
	assert.Equal(t, float32(30), r2.Fields["Vehicle.Speed"].Value)
	assert.True(t, r2.Fields["Vehicle.Gear"].IsFailure())

	entries, err := SDVDatapointsToEntries([]string{"B", "A", "missing"}, map[string]*sdvv1.Datapoint{
		"A": sdvv1.NewDatapoint(int32(1)),
		"B": sdvv1.NewFailure(sdvv1.FailureNotAvailable),
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].Path)
	assert.False(t, entries[0].Value.HasValue())
	assert.Equal(t, value.Int32Value(1), entries[1].Value.Value)
}

func TestQueryPaths(t *testing.T) {
	assert.Equal(t, "SELECT Vehicle.Speed, Vehicle.Cabin.Door.Row1.IsOpen",
		QueryFromPaths([]string{"Vehicle.Speed", "Vehicle.Cabin.Door.Row1.IsOpen"}))

	tests := []struct {
		query string
		want  []string
	}{
		{"SELECT Vehicle.Speed", []string{"Vehicle.Speed"}},
		{"  select Vehicle.Speed ,Vehicle.Width ", []string{"Vehicle.Speed", "Vehicle.Width"}},
		{"SELECT Vehicle.Speed WHERE Vehicle.Speed > 50", nil},
		{"SELECT Vehicle.Speed AS speed", nil},
		{"SELECT Vehicle.Speed, ", nil},
		{"SELECT", nil},
		{"UPDATE Vehicle.Speed", nil},
		{"SELECT Vehicle..Speed", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := PathsFromQuery(tt.query)
			if tt.want == nil {
				assert.True(t, clienterr.IsConversion(err), "err = %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
