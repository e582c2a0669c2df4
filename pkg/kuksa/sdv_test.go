package kuksa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuksa-sdk/kuksa-go/internal/brokertest"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
)

func TestUpdateDatapointsResolvesIDs(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	c := newSDV(t, b)

	_, err := c.UpdateDatapoints(ctx, map[string]*sdvv1.Datapoint{
		brokertest.Speed:    sdvv1.NewDatapoint(float32(88)),
		brokertest.Odometer: sdvv1.NewDatapoint(1234.5),
	})
	require.NoError(t, err)

	speed, _ := b.Signal(brokertest.Speed)
	odo, _ := b.Signal(brokertest.Odometer)
	assert.True(t, speed.Current.Value.Equal(value.Float32Value(88)))
	assert.True(t, odo.Current.Value.Equal(value.Float64Value(1234.5)))
}

func TestUpdateDatapointsSkipsPathsMissingFromMetadata(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	u := newSDV(t, b).Unified()

	res, err := u.SetCurrentValues(ctx, []Update[value.Datapoint]{
		{Path: brokertest.Speed, Value: value.Datapoint{Value: value.Float32Value(10)}},
		{Path: "Vehicle.Unknown", Value: value.Datapoint{Value: value.Int32Value(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{brokertest.Speed}, res.Applied)
	assert.Equal(t, []string{"Vehicle.Unknown"}, res.Skipped)
	assert.Equal(t, []string{brokertest.Speed}, b.WrittenPaths())

	res, err = u.SetCurrentValues(ctx, []Update[value.Datapoint]{
		{Path: "Vehicle.Unknown", Value: value.Datapoint{Value: value.Int32Value(1)}},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Applied)
	assert.Len(t, b.Writes(), 1, "nothing sent when every path is unknown")
}

func TestUpdateDatapointsReportsRejectedIDs(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	b.Fail(brokertest.Odometer, 0)
	c := newSDV(t, b)

	reply, err := c.UpdateDatapoints(ctx, map[string]*sdvv1.Datapoint{
		brokertest.Speed:    sdvv1.NewDatapoint(float32(1)),
		brokertest.Odometer: sdvv1.NewDatapoint(2.0),
	})
	require.Error(t, err)
	require.NotNil(t, reply)

	var fe *clienterr.FunctionError
	require.True(t, errors.As(err, &fe))
	require.Len(t, fe.Records, 1)
	assert.Equal(t, brokertest.Odometer, fe.Records[0].Path)
	assert.Equal(t, "ACCESS_DENIED", fe.Records[0].Reason)
	assert.Equal(t, []string{brokertest.Speed}, b.WrittenPaths())
}

func TestSetDatapoints(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	c := newSDV(t, b)

	_, err := c.SetDatapoints(ctx, map[string]*sdvv1.Datapoint{
		brokertest.Position: sdvv1.NewDatapoint(uint32(40)),
	})
	require.NoError(t, err)
	pos, _ := b.Signal(brokertest.Position)
	assert.True(t, pos.Target.Value.Equal(value.Uint8Value(40)))

	_, err = c.SetDatapoints(ctx, map[string]*sdvv1.Datapoint{
		brokertest.Position: sdvv1.NewDatapoint(uint32(300)),
		brokertest.Speed:    sdvv1.NewDatapoint(float32(1)),
	})
	var fe *clienterr.FunctionError
	require.True(t, errors.As(err, &fe))
	require.Len(t, fe.Records, 2)
	assert.Equal(t, brokertest.Position, fe.Records[0].Path, "records are sorted by name")
	assert.Equal(t, "INVALID_TYPE", fe.Records[0].Reason)
	assert.Equal(t, brokertest.Speed, fe.Records[1].Path)
}

func TestGetDatapointsAndMetadata(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	b.Set(brokertest.VIN, value.StringValue("WVW000"))
	c := newSDV(t, b)

	dps, err := c.GetDatapoints(ctx, []string{brokertest.VIN, brokertest.Speed})
	require.NoError(t, err)
	assert.Equal(t, "WVW000", dps[brokertest.VIN].Value)
	assert.Equal(t, sdvv1.FailureNotAvailable, *dps[brokertest.Speed].Failure)

	md, err := c.GetMetadata(ctx, []string{brokertest.VIN, "Vehicle.Unknown"})
	require.NoError(t, err)
	require.Len(t, md, 1)
	assert.Equal(t, sdvv1.EntryTypeAttribute, md[0].EntryType)
	assert.Equal(t, sdvv1.DataTypeString, md[0].DataType)
	assert.Equal(t, sdvv1.ChangeTypeStatic, md[0].ChangeType)
	assert.NotZero(t, md[0].ID)
}

func TestRegisterDatapoints(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t)
	c := newSDV(t, b)

	ids, err := c.RegisterDatapoints(ctx, []*sdvv1.RegistrationMetadata{
		{Name: "Vehicle.Custom.Counter", DataType: sdvv1.DataTypeUint32, ChangeType: sdvv1.ChangeTypeOnChange},
	})
	require.NoError(t, err)
	require.Contains(t, ids, "Vehicle.Custom.Counter")

	_, err = c.UpdateDatapoints(ctx, map[string]*sdvv1.Datapoint{
		"Vehicle.Custom.Counter": sdvv1.NewDatapoint(uint32(7)),
	})
	require.NoError(t, err)
	sig, ok := b.Signal("Vehicle.Custom.Counter")
	require.True(t, ok)
	assert.Equal(t, ids["Vehicle.Custom.Counter"], sig.Metadata.ID)
	assert.True(t, sig.Current.Value.Equal(value.Uint32Value(7)))
}

func TestSDVQuerySubscription(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	c := newSDV(t, b)

	sub, err := c.SubscribeCurrentValues(ctx, []string{brokertest.Speed})
	require.NoError(t, err)
	defer sub.Close()
	_, err = sub.Recv()
	require.NoError(t, err)

	b.Set(brokertest.Speed, value.Float32Value(42))
	reply, err := sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, float32(42), reply.Fields[brokertest.Speed].Value)

	_, err = c.SubscribeCurrentValues(ctx, nil)
	assert.True(t, clienterr.IsConversion(err))
}
