package sdvv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestDatapointFailureValue(t *testing.T) {
	in := NewFailure(FailureNotAvailable)
	in.Timestamp = timestamppb.Now()

	b, err := in.MarshalProto()
	require.NoError(t, err)

	var out Datapoint
	require.NoError(t, out.UnmarshalProto(b))
	require.True(t, out.IsFailure())
	assert.Equal(t, FailureNotAvailable, *out.Failure)
	assert.Nil(t, out.Value)
	assert.Equal(t, in.Timestamp.AsTime(), out.Timestamp.AsTime())
}

func TestDatapointInvalidValueIsStillAFailure(t *testing.T) {
	// INVALID_VALUE is the zero enum member and must still be written.
	b, err := NewFailure(FailureInvalidValue).MarshalProto()
	require.NoError(t, err)
	require.NotEmpty(t, b)

	var out Datapoint
	require.NoError(t, out.UnmarshalProto(b))
	require.True(t, out.IsFailure())
	assert.Equal(t, FailureInvalidValue, *out.Failure)
}

func TestSetDatapointsRoundTrip(t *testing.T) {
	in := &SetDatapointsRequest{Datapoints: map[string]*Datapoint{
		"Vehicle.Speed":           NewDatapoint(float32(30)),
		"Vehicle.Cabin.SeatCount": NewDatapoint(uint32(5)),
		"Vehicle.Tags":            NewDatapoint([]string{"a", "b"}),
	}}
	b, err := in.MarshalProto()
	require.NoError(t, err)

	var out SetDatapointsRequest
	require.NoError(t, out.UnmarshalProto(b))
	require.Len(t, out.Datapoints, 3)
	assert.Equal(t, float32(30), out.Datapoints["Vehicle.Speed"].Value)
	assert.Equal(t, uint32(5), out.Datapoints["Vehicle.Cabin.SeatCount"].Value)
	assert.Equal(t, []string{"a", "b"}, out.Datapoints["Vehicle.Tags"].Value)
}

func TestErrorMapsKeepZeroCodes(t *testing.T) {
	in := &UpdateDatapointsReply{Errors: map[int32]DatapointError{
		0: DatapointErrorUnknownDatapoint,
		7: DatapointErrorOutOfBounds,
	}}
	b, err := in.MarshalProto()
	require.NoError(t, err)

	var out UpdateDatapointsReply
	require.NoError(t, out.UnmarshalProto(b))
	assert.Equal(t, in.Errors, out.Errors)
	assert.Equal(t, "OUT_OF_BOUNDS", out.Errors[7].String())
}

func TestRegisterAndMetadata(t *testing.T) {
	reg := &RegisterDatapointsRequest{List: []*RegistrationMetadata{
		{Name: "Vehicle.Speed", DataType: DataTypeFloat, ChangeType: ChangeTypeContinuous, Description: "speed"},
	}}
	b, err := reg.MarshalProto()
	require.NoError(t, err)
	var gotReg RegisterDatapointsRequest
	require.NoError(t, gotReg.UnmarshalProto(b))
	assert.Equal(t, reg.List, gotReg.List)

	md := &GetMetadataReply{List: []*Metadata{
		{ID: 3, Name: "Vehicle.Speed", DataType: DataTypeFloat, EntryType: EntryTypeSensor},
		{ID: 4, Name: "Vehicle.Name", DataType: DataTypeString},
	}}
	b, err = md.MarshalProto()
	require.NoError(t, err)
	var gotMD GetMetadataReply
	require.NoError(t, gotMD.UnmarshalProto(b))
	assert.Equal(t, md.List, gotMD.List)
}
