package kuksa

import (
	"context"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/convert"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

// toUpdates converts a legacy map into an ordered batch. Every datapoint
// is converted before the first one is sent.
func toUpdates[D any](m map[string]*sdvv1.Datapoint, conv func(*sdvv1.Datapoint) (D, error)) ([]Update[D], error) {
	out := make([]Update[D], 0, len(m))
	for _, name := range wire.SortedKeys(m) {
		d, err := conv(m[name])
		if err != nil {
			return nil, err
		}
		out = append(out, Update[D]{Path: name, Value: d})
	}
	return out, nil
}

// LegacyV2 serves the legacy contract over kuksa.val.v2.
type LegacyV2 struct {
	c *ClientV2
}

// Subscribe accepts plain "SELECT a, b" queries and subscribes to the
// selected paths. Any other query is a *clienterr.ConversionError.
func (l *LegacyV2) Subscribe(ctx context.Context, query string) (*Subscription[*sdvv1.SubscribeReply], error) {
	paths, err := convert.PathsFromQuery(query)
	if err != nil {
		return nil, err
	}
	sub, err := l.c.Subscribe(ctx, paths, 0)
	if err != nil {
		return nil, err
	}
	return mapSubscription(sub, func(r *valv2.SubscribeResponse) (*sdvv1.SubscribeReply, error) {
		return convert.V2SubscribeToSDV(r), nil
	}), nil
}

// UpdateDatapoints publishes each datapoint with PublishValue in sorted
// name order. Failure values other than NOT_AVAILABLE cannot be
// published.
func (l *LegacyV2) UpdateDatapoints(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.UpdateDatapointsReply, error) {
	updates, err := toUpdates(datapoints, convert.SDVDatapointToV2)
	if err != nil {
		return nil, err
	}
	if _, err := l.c.SetCurrentValues(ctx, updates); err != nil {
		return nil, err
	}
	return &sdvv1.UpdateDatapointsReply{}, nil
}

func (l *LegacyV2) GetDatapoints(ctx context.Context, names []string) (map[string]*sdvv1.Datapoint, error) {
	dps, err := l.c.GetCurrentValues(ctx, names)
	if err != nil {
		return nil, err
	}
	return convert.V2ValuesToSDV(names, dps), nil
}

// SetDatapoints actuates each datapoint in sorted name order.
func (l *LegacyV2) SetDatapoints(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.SetDatapointsResponse, error) {
	updates, err := toUpdates(datapoints, func(dp *sdvv1.Datapoint) (*valv2.Value, error) {
		v2, err := convert.SDVDatapointToV2(dp)
		if err != nil {
			return nil, err
		}
		if v2.Value == nil || v2.Value.TypedValue == nil {
			return nil, &clienterr.ConversionError{From: "sdv.databroker.v1", To: "kuksa.val.v2", Reason: "no value to actuate"}
		}
		return v2.Value, nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := l.c.SetTargetValues(ctx, updates); err != nil {
		return nil, err
	}
	return &sdvv1.SetDatapointsResponse{}, nil
}

func (l *LegacyV2) GetMetadata(ctx context.Context, names []string) ([]*sdvv1.Metadata, error) {
	md, err := l.c.GetMetadata(ctx, names)
	if err != nil {
		return nil, err
	}
	out := make([]*sdvv1.Metadata, 0, len(md))
	for _, m := range md {
		s, err := convert.V2MetadataToSDV(m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// LegacyV1 serves the legacy contract over kuksa.val.v1.
type LegacyV1 struct {
	c *ClientV1
}

// Subscribe is not supported: kuksa.val.v1 replaced query subscriptions
// with per-entry subscriptions.
func (l *LegacyV1) Subscribe(context.Context, string) (*Subscription[*sdvv1.SubscribeReply], error) {
	return nil, unsupported(GenerationV1, "Subscribe", "subscribe mechanism has changed, query subscriptions are not supported")
}

// UpdateDatapoints sets each current value in sorted name order.
func (l *LegacyV1) UpdateDatapoints(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.UpdateDatapointsReply, error) {
	updates, err := toUpdates(datapoints, convert.SDVDatapointToV1)
	if err != nil {
		return nil, err
	}
	if _, err := l.c.SetCurrentValues(ctx, updates); err != nil {
		return nil, err
	}
	return &sdvv1.UpdateDatapointsReply{}, nil
}

func (l *LegacyV1) GetDatapoints(ctx context.Context, names []string) (map[string]*sdvv1.Datapoint, error) {
	entries, err := l.c.GetCurrentValues(ctx, names)
	if err != nil {
		return nil, err
	}
	return convert.V1EntriesToSDV(entries), nil
}

// SetDatapoints sets each actuator target in sorted name order.
func (l *LegacyV1) SetDatapoints(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.SetDatapointsResponse, error) {
	updates, err := toUpdates(datapoints, convert.SDVDatapointToV1)
	if err != nil {
		return nil, err
	}
	if _, err := l.c.SetTargetValues(ctx, updates); err != nil {
		return nil, err
	}
	return &sdvv1.SetDatapointsResponse{}, nil
}

// GetMetadata reshapes kuksa.val.v1 metadata. kuksa.val.v1 has no numeric
// ids, so every returned ID is 0.
func (l *LegacyV1) GetMetadata(ctx context.Context, names []string) ([]*sdvv1.Metadata, error) {
	entries, err := l.c.GetMetadata(ctx, names)
	if err != nil {
		return nil, err
	}
	out := make([]*sdvv1.Metadata, 0, len(entries))
	for _, e := range entries {
		if e.Metadata == nil {
			continue
		}
		m, err := convert.V1MetadataToSDV(e.Path, e.Metadata)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
