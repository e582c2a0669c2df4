package kuksa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuksa-sdk/kuksa-go/internal/brokertest"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
)

// legacyClients returns every implementation of the legacy contract,
// each against its own broker.
func legacyClients(t *testing.T) map[string]struct {
	l Legacy
	b *brokertest.Broker
} {
	out := make(map[string]struct {
		l Legacy
		b *brokertest.Broker
	})
	for _, gen := range []Generation{GenerationSDV, GenerationV1, GenerationV2} {
		b := brokertest.New(t, brokertest.VSS()...)
		var l Legacy
		switch gen {
		case GenerationSDV:
			l = newSDV(t, b)
		case GenerationV1:
			l = newV1(t, b).Legacy()
		case GenerationV2:
			l = newV2(t, b).Legacy()
		}
		out[string(gen)] = struct {
			l Legacy
			b *brokertest.Broker
		}{l, b}
	}
	return out
}

func TestLegacyContract(t *testing.T) {
	for name, tc := range legacyClients(t) {
		t.Run(name, func(t *testing.T) {
			ctx := testContext(t)

			_, err := tc.l.UpdateDatapoints(ctx, map[string]*sdvv1.Datapoint{
				brokertest.Speed:    sdvv1.NewDatapoint(float32(50)),
				brokertest.Odometer: sdvv1.NewDatapoint(10.5),
			})
			require.NoError(t, err)

			got, err := tc.l.GetDatapoints(ctx, []string{brokertest.Speed, brokertest.Odometer, brokertest.VIN})
			require.NoError(t, err)
			assert.Equal(t, float32(50), got[brokertest.Speed].Value)
			assert.Equal(t, 10.5, got[brokertest.Odometer].Value)
			require.True(t, got[brokertest.VIN].IsFailure())
			assert.Equal(t, sdvv1.FailureNotAvailable, *got[brokertest.VIN].Failure)

			reply, err := tc.l.SetDatapoints(ctx, map[string]*sdvv1.Datapoint{
				brokertest.Position: sdvv1.NewDatapoint(uint32(12)),
			})
			require.NoError(t, err)
			require.NotNil(t, reply)
			assert.Empty(t, reply.Errors)
			pos, _ := tc.b.Signal(brokertest.Position)
			assert.True(t, pos.Target.Value.Equal(value.Uint8Value(12)))

			md, err := tc.l.GetMetadata(ctx, []string{brokertest.Position})
			require.NoError(t, err)
			require.Len(t, md, 1)
			assert.Equal(t, brokertest.Position, md[0].Name)
			assert.Equal(t, sdvv1.DataTypeUint8, md[0].DataType)
			assert.Equal(t, sdvv1.EntryTypeActuator, md[0].EntryType)
			if name == string(GenerationV1) {
				assert.Zero(t, md[0].ID, "kuksa.val.v1 has no numeric ids")
			} else {
				assert.NotZero(t, md[0].ID)
			}
		})
	}
}

func TestLegacyMapsApplyInSortedOrder(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	l := newV2(t, b).Legacy()

	_, err := l.UpdateDatapoints(ctx, map[string]*sdvv1.Datapoint{
		brokertest.Speed:    sdvv1.NewDatapoint(float32(1)),
		brokertest.Odometer: sdvv1.NewDatapoint(2.0),
		brokertest.DTCList:  sdvv1.NewDatapoint([]string{"P0001"}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{brokertest.DTCList, brokertest.Speed, brokertest.Odometer}, b.WrittenPaths())
}

func TestLegacyRejectsFailureValues(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)

	for _, l := range []Legacy{newV1(t, b).Legacy(), newV2(t, b).Legacy()} {
		_, err := l.UpdateDatapoints(ctx, map[string]*sdvv1.Datapoint{
			brokertest.Speed:    sdvv1.NewDatapoint(float32(1)),
			brokertest.Odometer: sdvv1.NewFailure(sdvv1.FailureAccessDenied),
		})
		assert.True(t, clienterr.IsConversion(err), "got %v", err)
	}
	assert.Empty(t, b.Writes(), "nothing is sent when any datapoint fails to convert")
}

func TestLegacyV2QuerySubscription(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	l := newV2(t, b).Legacy()

	sub, err := l.Subscribe(ctx, "SELECT Vehicle.Speed, Vehicle.TraveledDistance")
	require.NoError(t, err)
	defer sub.Close()

	initial, err := sub.Recv()
	require.NoError(t, err)
	assert.Len(t, initial.Fields, 2)
	assert.Equal(t, sdvv1.FailureNotAvailable, *initial.Fields[brokertest.Speed].Failure)

	b.Set(brokertest.Odometer, value.Float64Value(99))
	update, err := sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, 99.0, update.Fields[brokertest.Odometer].Value)

	_, err = l.Subscribe(ctx, "SELECT Vehicle.Speed WHERE Vehicle.Speed > 50")
	assert.True(t, clienterr.IsConversion(err), "got %v", err)
}
