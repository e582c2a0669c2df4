package kuksa

import (
	"context"
	"fmt"

	"github.com/kuksa-sdk/kuksa-go/pkg/channel"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/convert"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

// NewUnified returns the unified view of a new client for gen, together
// with a function that closes the client.
func NewUnified(gen Generation, cfg channel.Config) (Unified, func() error, error) {
	switch gen {
	case GenerationV2:
		c := NewClientV2(cfg)
		return c.Unified(), c.Close, nil
	case GenerationV1:
		c := NewClientV1(cfg)
		return c.Unified(), c.Close, nil
	case GenerationSDV:
		c := NewClientSDV(cfg)
		return c.Unified(), c.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownGeneration, gen)
}

// entriesOf converts a keyed update into entries: the requested paths
// first in request order, then any other keys in sorted order.
func entriesOf[X any](paths []string, m map[string]X, conv func(string, X) (value.Entry, error)) ([]value.Entry, error) {
	out := make([]value.Entry, 0, len(m))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		x, ok := m[p]
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		e, err := conv(p, x)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	for _, k := range wire.SortedKeys(m) {
		if seen[k] {
			continue
		}
		e, err := conv(k, m[k])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func convertMetadata[M any](in []M, conv func(M) (value.Metadata, error)) ([]value.Metadata, error) {
	out := make([]value.Metadata, 0, len(in))
	for _, m := range in {
		md, err := conv(m)
		if err != nil {
			return nil, err
		}
		out = append(out, md)
	}
	return out, nil
}

// UnifiedV2 is the generation-independent view of a ClientV2.
type UnifiedV2 struct {
	c *ClientV2
}

func (u *UnifiedV2) Generation() Generation { return GenerationV2 }

func (u *UnifiedV2) SetCurrentValues(ctx context.Context, updates []Update[value.Datapoint]) (BatchResult, error) {
	return applyEach(ctx, updates, func(ctx context.Context, up Update[value.Datapoint]) error {
		return u.c.PublishValue(ctx, up.Path, convert.ToV2Datapoint(up.Value))
	})
}

func (u *UnifiedV2) GetCurrentValues(ctx context.Context, paths []string) ([]value.Entry, error) {
	return collectEach(ctx, paths, func(ctx context.Context, p string) ([]value.Entry, error) {
		dp, err := u.c.GetValue(ctx, p)
		if err != nil {
			return nil, err
		}
		v, err := convert.FromV2Datapoint(dp, value.DataTypeUnspecified)
		if err != nil {
			return nil, err
		}
		return []value.Entry{{Path: p, Value: &v}}, nil
	})
}

func (u *UnifiedV2) SetTargetValues(ctx context.Context, updates []Update[value.Value]) (BatchResult, error) {
	return applyEach(ctx, updates, func(ctx context.Context, up Update[value.Value]) error {
		v := convert.ToV2Value(up.Value)
		if v == nil {
			return &clienterr.ConversionError{From: up.Value.Type().String(), To: "kuksa.val.v2", Reason: "no value to actuate"}
		}
		return u.c.Actuate(ctx, up.Path, v)
	})
}

func (u *UnifiedV2) GetTargetValues(ctx context.Context, paths []string) ([]value.Entry, error) {
	_, err := u.c.GetTargetValues(ctx, paths)
	return nil, err
}

func (u *UnifiedV2) SubscribeCurrentValues(ctx context.Context, paths []string) (*Subscription[[]value.Entry], error) {
	sub, err := u.c.Subscribe(ctx, paths, 0)
	if err != nil {
		return nil, err
	}
	return mapSubscription(sub, func(r *valv2.SubscribeResponse) ([]value.Entry, error) {
		return entriesOf(paths, r.Entries, func(p string, dp *valv2.Datapoint) (value.Entry, error) {
			v, err := convert.FromV2Datapoint(dp, value.DataTypeUnspecified)
			if err != nil {
				return value.Entry{}, err
			}
			return value.Entry{Path: p, Value: &v}, nil
		})
	}), nil
}

func (u *UnifiedV2) GetMetadata(ctx context.Context, paths []string) ([]value.Metadata, error) {
	md, err := u.c.GetMetadata(ctx, paths)
	if err != nil {
		return nil, err
	}
	return convertMetadata(md, convert.V2MetadataToMetadata)
}

// UnifiedV1 is the generation-independent view of a ClientV1.
type UnifiedV1 struct {
	c *ClientV1
}

func (u *UnifiedV1) Generation() Generation { return GenerationV1 }

func (u *UnifiedV1) SetCurrentValues(ctx context.Context, updates []Update[value.Datapoint]) (BatchResult, error) {
	v1 := make([]Update[*valv1.Datapoint], len(updates))
	for i, up := range updates {
		v1[i] = Update[*valv1.Datapoint]{Path: up.Path, Value: convert.ToV1Datapoint(up.Value)}
	}
	return u.c.SetCurrentValues(ctx, v1)
}

func (u *UnifiedV1) GetCurrentValues(ctx context.Context, paths []string) ([]value.Entry, error) {
	entries, err := u.c.GetCurrentValues(ctx, paths)
	if err != nil {
		return nil, err
	}
	return convert.V1EntriesToEntries(entries)
}

func (u *UnifiedV1) SetTargetValues(ctx context.Context, updates []Update[value.Value]) (BatchResult, error) {
	v1 := make([]Update[*valv1.Datapoint], len(updates))
	for i, up := range updates {
		v1[i] = Update[*valv1.Datapoint]{Path: up.Path, Value: convert.ToV1Datapoint(value.Datapoint{Value: up.Value})}
	}
	return u.c.SetTargetValues(ctx, v1)
}

func (u *UnifiedV1) GetTargetValues(ctx context.Context, paths []string) ([]value.Entry, error) {
	entries, err := u.c.GetTargetValues(ctx, paths)
	if err != nil {
		return nil, err
	}
	return convert.V1EntriesToEntries(entries)
}

func (u *UnifiedV1) SubscribeCurrentValues(ctx context.Context, paths []string) (*Subscription[[]value.Entry], error) {
	sub, err := u.c.SubscribeCurrentValues(ctx, paths)
	if err != nil {
		return nil, err
	}
	return mapSubscription(sub, func(r *valv1.SubscribeResponse) ([]value.Entry, error) {
		out := make([]value.Entry, 0, len(r.Updates))
		for _, up := range r.Updates {
			if up.Entry == nil {
				continue
			}
			e, err := convert.V1EntryToEntry(up.Entry)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	}), nil
}

func (u *UnifiedV1) GetMetadata(ctx context.Context, paths []string) ([]value.Metadata, error) {
	entries, err := u.c.GetMetadata(ctx, paths)
	if err != nil {
		return nil, err
	}
	out := make([]value.Metadata, 0, len(entries))
	for _, e := range entries {
		if e.Metadata == nil {
			continue
		}
		md, err := convert.V1MetadataToMetadata(e.Path, e.Metadata)
		if err != nil {
			return nil, err
		}
		out = append(out, md)
	}
	return out, nil
}

// UnifiedSDV is the generation-independent view of a ClientSDV. Writes
// are sent as one legacy batch, so Applied lists every accepted path even
// when others in the batch failed.
type UnifiedSDV struct {
	c *ClientSDV
}

func (u *UnifiedSDV) Generation() Generation { return GenerationSDV }

func (u *UnifiedSDV) SetCurrentValues(ctx context.Context, updates []Update[value.Datapoint]) (BatchResult, error) {
	m := make(map[string]*sdvv1.Datapoint, len(updates))
	for _, up := range updates {
		m[up.Path] = convert.ToSDVDatapoint(up.Value)
	}
	_, res, err := u.c.updateDatapoints(ctx, m)
	if err != nil || len(res.Skipped) == 0 {
		return res, err
	}
	// Unknown paths fail here as they do on the other generations.
	recs := make([]clienterr.Record, len(res.Skipped))
	for i, p := range res.Skipped {
		recs[i] = clienterr.Record{Path: p, Code: 404, Reason: "not_found", Message: "path not found"}
	}
	return res, clienterr.FromRecords("UpdateDatapoints", "", recs)
}

func (u *UnifiedSDV) GetCurrentValues(ctx context.Context, paths []string) ([]value.Entry, error) {
	m, err := u.c.GetDatapoints(ctx, paths)
	if err != nil {
		return nil, err
	}
	var recs []clienterr.Record
	for _, p := range paths {
		if dp, ok := m[p]; ok && dp.IsFailure() && *dp.Failure != sdvv1.FailureNotAvailable {
			recs = append(recs, clienterr.Record{Path: p, Reason: dp.Failure.String()})
		}
	}
	if err := clienterr.FromRecords("GetDatapoints", "", recs); err != nil {
		return nil, err
	}
	return convert.SDVDatapointsToEntries(paths, m)
}

func (u *UnifiedSDV) SetTargetValues(ctx context.Context, updates []Update[value.Value]) (BatchResult, error) {
	m := make(map[string]*sdvv1.Datapoint, len(updates))
	for _, up := range updates {
		if up.Value.IsEmpty() {
			return BatchResult{}, &clienterr.ConversionError{From: up.Value.Type().String(), To: "sdv.databroker.v1", Reason: "no value to actuate"}
		}
		m[up.Path] = convert.ToSDVDatapoint(value.Datapoint{Value: up.Value})
	}
	resp, err := u.c.SetDatapoints(ctx, m)
	var res BatchResult
	if resp != nil {
		for _, name := range wire.SortedKeys(m) {
			if _, failed := resp.Errors[name]; !failed {
				res.Applied = append(res.Applied, name)
			}
		}
	}
	return res, err
}

func (u *UnifiedSDV) GetTargetValues(ctx context.Context, paths []string) ([]value.Entry, error) {
	_, err := u.c.GetTargetValues(ctx, paths)
	return nil, err
}

func (u *UnifiedSDV) SubscribeCurrentValues(ctx context.Context, paths []string) (*Subscription[[]value.Entry], error) {
	sub, err := u.c.SubscribeCurrentValues(ctx, paths)
	if err != nil {
		return nil, err
	}
	return mapSubscription(sub, func(r *sdvv1.SubscribeReply) ([]value.Entry, error) {
		return entriesOf(paths, r.Fields, func(p string, dp *sdvv1.Datapoint) (value.Entry, error) {
			v, err := convert.FromSDVDatapoint(dp, value.DataTypeUnspecified)
			if err != nil {
				return value.Entry{}, err
			}
			return value.Entry{Path: p, Value: &v}, nil
		})
	}), nil
}

func (u *UnifiedSDV) GetMetadata(ctx context.Context, paths []string) ([]value.Metadata, error) {
	md, err := u.c.GetMetadata(ctx, paths)
	if err != nil {
		return nil, err
	}
	return convertMetadata(md, convert.SDVMetadataToMetadata)
}
