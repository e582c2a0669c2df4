package kuksa

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/kuksa-sdk/kuksa-go/internal/brokertest"
	"github.com/kuksa-sdk/kuksa-go/pkg/auth"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/log"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newV2(t *testing.T, b *brokertest.Broker) *ClientV2 {
	t.Helper()
	c := NewClientV2(b.Config())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newV1(t *testing.T, b *brokertest.Broker) *ClientV1 {
	t.Helper()
	c := NewClientV1(b.Config())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newSDV(t *testing.T, b *brokertest.Broker) *ClientSDV {
	t.Helper()
	c := NewClientSDV(b.Config())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

type eventSink struct {
	mu     sync.Mutex
	events []log.Event
}

func (s *eventSink) Log(e log.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *eventSink) methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		if m := e.Method(); m != "" {
			out = append(out, m)
		}
	}
	return out
}

func TestSubscribeThenPublishDeliversValue(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	c := newV2(t, b)

	sub, err := c.SubscribeCurrentValues(ctx, []string{brokertest.Speed})
	require.NoError(t, err)
	defer sub.Close()

	initial, err := sub.Recv()
	require.NoError(t, err)
	require.Contains(t, initial.Entries, brokertest.Speed)
	assert.Nil(t, initial.Entries[brokertest.Speed].GetValue(), "no value published yet")

	_, err = c.SetCurrentValues(ctx, []Update[*valv2.Datapoint]{
		{Path: brokertest.Speed, Value: &valv2.Datapoint{Value: valv2.NewValue(float32(30.0))}},
	})
	require.NoError(t, err)

	update, err := sub.Recv()
	require.NoError(t, err)
	dp := update.Entries[brokertest.Speed]
	require.NotNil(t, dp)
	assert.Equal(t, float32(30.0), dp.GetValue().Any())
}

func TestBatchIsFailFast(t *testing.T) {
	paths := []string{brokertest.Speed, brokertest.Odometer, brokertest.Position}

	t.Run("kuksa.val.v2", func(t *testing.T) {
		ctx := testContext(t)
		b := brokertest.New(t, brokertest.VSS()...)
		b.Fail(brokertest.Odometer, codes.PermissionDenied)
		c := newV2(t, b)

		res, err := c.SetCurrentValues(ctx, []Update[*valv2.Datapoint]{
			{Path: paths[0], Value: &valv2.Datapoint{Value: valv2.NewValue(float32(1))}},
			{Path: paths[1], Value: &valv2.Datapoint{Value: valv2.NewValue(2.0)}},
			{Path: paths[2], Value: &valv2.Datapoint{Value: valv2.NewValue(uint32(3))}},
		})
		require.Error(t, err)

		var te *clienterr.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, codes.PermissionDenied, te.Code)
		assert.Equal(t, brokertest.Odometer, te.Path)
		assert.Equal(t, []string{brokertest.Speed}, res.Applied)
		assert.Equal(t, []string{brokertest.Speed}, b.WrittenPaths(), "the third path is never sent")
	})

	t.Run("unified over kuksa.val.v1", func(t *testing.T) {
		ctx := testContext(t)
		b := brokertest.New(t, brokertest.VSS()...)
		b.Fail(brokertest.Odometer, codes.PermissionDenied)
		u := newV1(t, b).Unified()

		res, err := u.SetCurrentValues(ctx, []Update[value.Datapoint]{
			{Path: paths[0], Value: value.Datapoint{Value: value.Float32Value(1)}},
			{Path: paths[1], Value: value.Datapoint{Value: value.Float64Value(2)}},
			{Path: paths[2], Value: value.Datapoint{Value: value.Uint8Value(3)}},
		})
		require.Error(t, err)

		var fe *clienterr.FunctionError
		require.True(t, errors.As(err, &fe))
		require.Len(t, fe.Records, 1)
		assert.Equal(t, brokertest.Odometer, fe.Records[0].Path)
		assert.Equal(t, uint32(403), fe.Records[0].Code)
		assert.Equal(t, []string{brokertest.Speed}, res.Applied)
		assert.Equal(t, []string{brokertest.Speed}, b.WrittenPaths())
	})
}

func TestV1GetFoldsErrorRecords(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	c := newV1(t, b)

	_, err := c.GetCurrentValues(ctx, []string{brokertest.Speed, "Vehicle.Nope"})
	require.Error(t, err)

	var fe *clienterr.FunctionError
	require.True(t, errors.As(err, &fe))
	require.Len(t, fe.Records, 2)

	// The response-wide error comes first, then the entry errors.
	assert.Empty(t, fe.Records[0].Path)
	assert.Equal(t, uint32(404), fe.Records[0].Code)
	assert.Equal(t, "Vehicle.Nope", fe.Records[1].Path)
	assert.Equal(t, uint32(404), fe.Records[1].Code)
	assert.Equal(t, "not_found", fe.Records[1].Reason)
}

func TestUnsupportedOperations(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)

	tests := []struct {
		name string
		call func() error
	}{
		{"v2 get target", func() error {
			_, err := newV2(t, b).GetTargetValues(ctx, []string{brokertest.Position})
			return err
		}},
		{"v1 query subscribe", func() error {
			_, err := newV1(t, b).Legacy().Subscribe(ctx, "SELECT Vehicle.Speed")
			return err
		}},
		{"sdv field-masked subscribe", func() error {
			_, err := newSDV(t, b).SubscribeView(ctx, []string{brokertest.Speed}, value.ViewCurrentValue, value.FieldValue|value.FieldMetadata)
			return err
		}},
		{"sdv target view subscribe", func() error {
			_, err := newSDV(t, b).SubscribeView(ctx, []string{brokertest.Position}, value.ViewTargetValue, value.FieldActuatorTarget)
			return err
		}},
		{"sdv get target", func() error {
			_, err := newSDV(t, b).Unified().GetTargetValues(ctx, []string{brokertest.Position})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, clienterr.IsUnsupported(err), "got %v", err)
			assert.ErrorIs(t, err, errors.ErrUnsupported)
		})
	}
	assert.Empty(t, b.Writes())
}

func TestLegacyV1SubscribeMessage(t *testing.T) {
	b := brokertest.New(t, brokertest.VSS()...)
	_, err := newV1(t, b).Legacy().Subscribe(testContext(t), "SELECT Vehicle.Speed")
	assert.ErrorContains(t, err, "subscribe mechanism has changed")
}

func TestTokenIsAttached(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	b.RequireToken("secret")

	cfg := b.Config()
	c := NewClientV2(cfg)
	defer c.Close()
	_, err := c.GetServerInfo(ctx)
	require.Error(t, err)
	var te *clienterr.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, codes.Unauthenticated, te.Code)

	cfg.Tokens = auth.StaticToken("secret")
	c = NewClientV2(cfg)
	defer c.Close()
	info, err := c.GetServerInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, brokertest.ServerName, info.Name)
}

func TestCallLogRecordsEveryCall(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	sink := &eventSink{}
	cfg := b.Config()
	cfg.CallLogger = sink

	c := NewClientV1(cfg)
	defer c.Close()
	_, err := c.GetServerInfo(ctx)
	require.NoError(t, err)
	_, err = c.GetCurrentValues(ctx, []string{brokertest.Speed, brokertest.VIN})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/kuksa.val.v1.VAL/GetServerInfo",
		"/kuksa.val.v1.VAL/Get",
		"/kuksa.val.v1.VAL/Get",
	}, sink.methods())
}

func TestSubscriptionLifecycle(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	c := newV2(t, b)

	sub, err := c.Subscribe(ctx, []string{brokertest.Speed}, 0)
	require.NoError(t, err)
	_, err = sub.Recv()
	require.NoError(t, err)

	sub.Close()
	_, err = sub.Recv()
	assert.ErrorIs(t, err, ErrSubscriptionClosed)
	_, err = sub.Recv()
	assert.ErrorIs(t, err, ErrSubscriptionClosed, "the error is sticky")

	var n int
	for range sub.Updates() {
		n++
	}
	assert.Equal(t, 1, n, "a closed subscription yields its error once")
}

func TestSubscribeUnknownPathFails(t *testing.T) {
	ctx := testContext(t)
	b := brokertest.New(t, brokertest.VSS()...)
	sub, err := newV2(t, b).Subscribe(ctx, []string{"Vehicle.Nope"}, 0)
	if err == nil {
		// Stream errors surface on the first Recv.
		_, err = sub.Recv()
	}
	var te *clienterr.TransportError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, codes.NotFound, te.Code)
}

func TestParseGeneration(t *testing.T) {
	for in, want := range map[string]Generation{
		"v2": GenerationV2, "kuksa.val.v1": GenerationV1, "SDV": GenerationSDV,
	} {
		got, err := ParseGeneration(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseGeneration("v3")
	assert.ErrorIs(t, err, ErrUnknownGeneration)
}
