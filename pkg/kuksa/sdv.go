package kuksa

import (
	"context"

	"github.com/kuksa-sdk/kuksa-go/pkg/channel"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/convert"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
)

// ClientSDV talks sdv.databroker.v1.
type ClientSDV struct {
	ch *channel.Manager
}

// NewClientSDV returns a client for cfg. No connection is made until the
// first call.
func NewClientSDV(cfg channel.Config) *ClientSDV {
	return &ClientSDV{ch: channel.New(cfg)}
}

// Generation returns GenerationSDV.
func (c *ClientSDV) Generation() Generation { return GenerationSDV }

// Channel returns the client's channel manager.
func (c *ClientSDV) Channel() *channel.Manager { return c.ch }

// Close releases the connection.
func (c *ClientSDV) Close() error { return c.ch.Close() }

func (c *ClientSDV) broker(ctx context.Context) (sdvv1.BrokerClient, error) {
	conn, err := c.ch.Channel(ctx)
	if err != nil {
		return nil, err
	}
	return sdvv1.NewBrokerClient(conn), nil
}

func (c *ClientSDV) collector(ctx context.Context) (sdvv1.CollectorClient, error) {
	conn, err := c.ch.Channel(ctx)
	if err != nil {
		return nil, err
	}
	return sdvv1.NewCollectorClient(conn), nil
}

// GetMetadata returns the metadata of names. Names the broker does not
// know are left out of the result. An empty names lists every signal.
func (c *ClientSDV) GetMetadata(ctx context.Context, names []string) ([]*sdvv1.Metadata, error) {
	b, err := c.broker(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := b.GetMetadata(ctx, &sdvv1.GetMetadataRequest{Names: names})
	if err != nil {
		return nil, clienterr.Classify("GetMetadata", err)
	}
	return resp.List, nil
}

// GetDatapoints returns the current datapoints of names.
func (c *ClientSDV) GetDatapoints(ctx context.Context, names []string) (map[string]*sdvv1.Datapoint, error) {
	b, err := c.broker(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := b.GetDatapoints(ctx, &sdvv1.GetDatapointsRequest{Datapoints: names})
	if err != nil {
		return nil, clienterr.Classify("GetDatapoints", err)
	}
	return resp.Datapoints, nil
}

// SetDatapoints requests actuation. The reply is returned together with a
// *clienterr.FunctionError when it lists errors.
func (c *ClientSDV) SetDatapoints(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.SetDatapointsResponse, error) {
	b, err := c.broker(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := b.SetDatapoints(ctx, &sdvv1.SetDatapointsRequest{Datapoints: datapoints})
	if err != nil {
		return nil, clienterr.Classify("SetDatapoints", err)
	}
	var recs []clienterr.Record
	for _, name := range wire.SortedKeys(resp.Errors) {
		e := resp.Errors[name]
		recs = append(recs, clienterr.Record{Path: name, Code: uint32(e), Reason: e.String()})
	}
	return resp, clienterr.FromRecords("SetDatapoints", "", recs)
}

// Subscribe streams the fields selected by query.
func (c *ClientSDV) Subscribe(ctx context.Context, query string) (*Subscription[*sdvv1.SubscribeReply], error) {
	b, err := c.broker(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	stream, err := b.Subscribe(ctx, &sdvv1.SubscribeRequest{Query: query})
	if err != nil {
		cancel()
		return nil, clienterr.Classify("Subscribe", err)
	}
	return newSubscription(cancel, "Subscribe", stream, keep[sdvv1.SubscribeReply]), nil
}

// UpdateDatapoints publishes current values. Names are first resolved to
// ids with GetMetadata; a name the lookup does not return is not sent.
// The reply is returned together with a *clienterr.FunctionError when it
// lists errors.
func (c *ClientSDV) UpdateDatapoints(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.UpdateDatapointsReply, error) {
	resp, _, err := c.updateDatapoints(ctx, datapoints)
	return resp, err
}

func (c *ClientSDV) updateDatapoints(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.UpdateDatapointsReply, BatchResult, error) {
	var res BatchResult
	names := wire.SortedKeys(datapoints)
	md, err := c.GetMetadata(ctx, names)
	if err != nil {
		return nil, res, err
	}

	ids := make(map[string]int32, len(md))
	for _, m := range md {
		if _, ok := datapoints[m.Name]; ok {
			ids[m.Name] = m.ID
		}
	}
	byID := make(map[int32]*sdvv1.Datapoint, len(ids))
	nameOf := make(map[int32]string, len(ids))
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		byID[id] = datapoints[name]
		nameOf[id] = name
	}
	if len(byID) == 0 {
		return &sdvv1.UpdateDatapointsReply{}, res, nil
	}

	col, err := c.collector(ctx)
	if err != nil {
		return nil, res, err
	}
	resp, err := col.UpdateDatapoints(ctx, &sdvv1.UpdateDatapointsRequest{Datapoints: byID})
	if err != nil {
		return nil, res, clienterr.Classify("UpdateDatapoints", err)
	}

	var recs []clienterr.Record
	for _, id := range wire.SortedKeys(resp.Errors) {
		e := resp.Errors[id]
		recs = append(recs, clienterr.Record{Path: nameOf[id], Code: uint32(e), Reason: e.String()})
	}
	for _, name := range names {
		if id, ok := ids[name]; ok {
			if _, failed := resp.Errors[id]; !failed {
				res.Applied = append(res.Applied, name)
			}
		}
	}
	return resp, res, clienterr.FromRecords("UpdateDatapoints", "", recs)
}

// RegisterDatapoints registers new signals with the collector and returns
// their ids by name.
func (c *ClientSDV) RegisterDatapoints(ctx context.Context, list []*sdvv1.RegistrationMetadata) (map[string]int32, error) {
	col, err := c.collector(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := col.RegisterDatapoints(ctx, &sdvv1.RegisterDatapointsRequest{List: list})
	if err != nil {
		return nil, clienterr.Classify("RegisterDatapoints", err)
	}
	return resp.Results, nil
}

func (c *ClientSDV) SetCurrentValues(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.UpdateDatapointsReply, error) {
	return c.UpdateDatapoints(ctx, datapoints)
}

func (c *ClientSDV) GetCurrentValues(ctx context.Context, names []string) (map[string]*sdvv1.Datapoint, error) {
	return c.GetDatapoints(ctx, names)
}

func (c *ClientSDV) SetTargetValues(ctx context.Context, datapoints map[string]*sdvv1.Datapoint) (*sdvv1.SetDatapointsResponse, error) {
	return c.SetDatapoints(ctx, datapoints)
}

// GetTargetValues is not supported: the legacy broker does not expose
// actuation targets.
func (c *ClientSDV) GetTargetValues(context.Context, []string) (map[string]*sdvv1.Datapoint, error) {
	return nil, unsupported(GenerationSDV, "GetTargetValues", "target values are not readable")
}

// SubscribeCurrentValues subscribes with a query selecting paths.
func (c *ClientSDV) SubscribeCurrentValues(ctx context.Context, paths []string) (*Subscription[*sdvv1.SubscribeReply], error) {
	if len(paths) == 0 {
		return nil, &clienterr.ConversionError{From: "paths", To: "query", Reason: "no paths"}
	}
	return c.Subscribe(ctx, convert.QueryFromPaths(paths))
}

// SubscribeView subscribes to paths under view with a field mask.
// Legacy subscriptions only deliver current values, so any other view or
// any field beyond path and value is rejected as unsupported.
func (c *ClientSDV) SubscribeView(ctx context.Context, paths []string, view value.View, fields value.Field) (*Subscription[*sdvv1.SubscribeReply], error) {
	if view != value.ViewCurrentValue {
		return nil, unsupported(GenerationSDV, "SubscribeView", "only current values can be subscribed, not "+view.String())
	}
	if fields&^(value.FieldPath|value.FieldValue) != 0 {
		return nil, unsupported(GenerationSDV, "SubscribeView", "subscriptions have no field mask")
	}
	return c.SubscribeCurrentValues(ctx, paths)
}

// Unified returns a view of c on pkg/value shapes.
func (c *ClientSDV) Unified() *UnifiedSDV { return &UnifiedSDV{c: c} }
