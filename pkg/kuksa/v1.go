package kuksa

import (
	"context"

	"github.com/kuksa-sdk/kuksa-go/pkg/channel"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
)

// ClientV1 talks kuksa.val.v1.
type ClientV1 struct {
	ch *channel.Manager
}

// NewClientV1 returns a client for cfg. No connection is made until the
// first call.
func NewClientV1(cfg channel.Config) *ClientV1 {
	return &ClientV1{ch: channel.New(cfg)}
}

// Generation returns GenerationV1.
func (c *ClientV1) Generation() Generation { return GenerationV1 }

// Channel returns the client's channel manager.
func (c *ClientV1) Channel() *channel.Manager { return c.ch }

// Close releases the connection.
func (c *ClientV1) Close() error { return c.ch.Close() }

func (c *ClientV1) val(ctx context.Context) (valv1.VALClient, error) {
	conn, err := c.ch.Channel(ctx)
	if err != nil {
		return nil, err
	}
	return valv1.NewVALClient(conn), nil
}

// records folds the response-wide error and the per-entry errors of a
// kuksa.val.v1 response into one list, response-wide first.
func records(top *valv1.Error, entries []*valv1.DataEntryError) []clienterr.Record {
	var out []clienterr.Record
	if top != nil && (top.Code != 0 || top.Reason != "" || top.Message != "") {
		out = append(out, clienterr.Record{Code: top.Code, Reason: top.Reason, Message: top.Message})
	}
	for _, e := range entries {
		if e.Error == nil {
			continue
		}
		out = append(out, clienterr.Record{Path: e.Path, Code: e.Error.Code, Reason: e.Error.Reason, Message: e.Error.Message})
	}
	return out
}

// Set writes one entry. fields selects which parts of entry the broker
// applies.
func (c *ClientV1) Set(ctx context.Context, entry *valv1.DataEntry, fields ...valv1.Field) error {
	val, err := c.val(ctx)
	if err != nil {
		return err
	}
	resp, err := val.Set(ctx, &valv1.SetRequest{
		Updates: []*valv1.EntryUpdate{{Entry: entry, Fields: fields}},
	})
	if err != nil {
		return clienterr.ClassifyPath("Set", entry.Path, err)
	}
	return clienterr.FromRecords("Set", entry.Path, records(resp.Error, resp.Errors))
}

// Get reads one path under view. The broker may return several entries
// for a branch path; they are returned as received.
func (c *ClientV1) Get(ctx context.Context, path string, view valv1.View, fields ...valv1.Field) ([]*valv1.DataEntry, error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := val.Get(ctx, &valv1.GetRequest{
		Entries: []*valv1.EntryRequest{{Path: path, View: view, Fields: fields}},
	})
	if err != nil {
		return nil, clienterr.ClassifyPath("Get", path, err)
	}
	if err := clienterr.FromRecords("Get", path, records(resp.Error, resp.Errors)); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *ClientV1) subscribe(ctx context.Context, paths []string, view valv1.View, fields ...valv1.Field) (*Subscription[*valv1.SubscribeResponse], error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	req := &valv1.SubscribeRequest{Entries: make([]*valv1.SubscribeEntry, len(paths))}
	for i, p := range paths {
		req.Entries[i] = &valv1.SubscribeEntry{Path: p, View: view, Fields: fields}
	}
	ctx, cancel := context.WithCancel(ctx)
	stream, err := val.Subscribe(ctx, req)
	if err != nil {
		cancel()
		return nil, clienterr.Classify("Subscribe", err)
	}
	return newSubscription(cancel, "Subscribe", stream, keep[valv1.SubscribeResponse]), nil
}

// GetServerInfo returns the broker's name and version.
func (c *ClientV1) GetServerInfo(ctx context.Context) (*valv1.GetServerInfoResponse, error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := val.GetServerInfo(ctx, &valv1.GetServerInfoRequest{})
	if err != nil {
		return nil, clienterr.Classify("GetServerInfo", err)
	}
	return resp, nil
}

func (c *ClientV1) SetCurrentValues(ctx context.Context, updates []Update[*valv1.Datapoint]) (BatchResult, error) {
	return applyEach(ctx, updates, func(ctx context.Context, u Update[*valv1.Datapoint]) error {
		return c.Set(ctx, &valv1.DataEntry{Path: u.Path, Value: u.Value}, valv1.FieldValue, valv1.FieldPath)
	})
}

func (c *ClientV1) GetCurrentValues(ctx context.Context, paths []string) ([]*valv1.DataEntry, error) {
	return collectEach(ctx, paths, func(ctx context.Context, p string) ([]*valv1.DataEntry, error) {
		return c.Get(ctx, p, valv1.ViewCurrentValue, valv1.FieldValue, valv1.FieldMetadata)
	})
}

func (c *ClientV1) SetTargetValues(ctx context.Context, updates []Update[*valv1.Datapoint]) (BatchResult, error) {
	return applyEach(ctx, updates, func(ctx context.Context, u Update[*valv1.Datapoint]) error {
		return c.Set(ctx, &valv1.DataEntry{Path: u.Path, ActuatorTarget: u.Value}, valv1.FieldActuatorTarget, valv1.FieldPath)
	})
}

func (c *ClientV1) GetTargetValues(ctx context.Context, paths []string) ([]*valv1.DataEntry, error) {
	return collectEach(ctx, paths, func(ctx context.Context, p string) ([]*valv1.DataEntry, error) {
		return c.Get(ctx, p, valv1.ViewTargetValue, valv1.FieldActuatorTarget, valv1.FieldMetadata)
	})
}

// SubscribeCurrentValues opens one stream with an entry per path, asking
// for value and metadata.
func (c *ClientV1) SubscribeCurrentValues(ctx context.Context, paths []string) (*Subscription[*valv1.SubscribeResponse], error) {
	return c.subscribe(ctx, paths, valv1.ViewCurrentValue, valv1.FieldValue, valv1.FieldMetadata)
}

// SubscribeTargetValues streams actuation requests for paths. Providers
// use it to learn what to apply.
func (c *ClientV1) SubscribeTargetValues(ctx context.Context, paths []string) (*Subscription[*valv1.SubscribeResponse], error) {
	return c.subscribe(ctx, paths, valv1.ViewTargetValue, valv1.FieldActuatorTarget)
}

func (c *ClientV1) GetMetadata(ctx context.Context, paths []string) ([]*valv1.DataEntry, error) {
	return collectEach(ctx, paths, func(ctx context.Context, p string) ([]*valv1.DataEntry, error) {
		return c.Get(ctx, p, valv1.ViewMetadata, valv1.FieldMetadata)
	})
}

// Legacy returns a view of c that implements the legacy contract.
func (c *ClientV1) Legacy() *LegacyV1 { return &LegacyV1{c: c} }

// Unified returns a view of c on pkg/value shapes.
func (c *ClientV1) Unified() *UnifiedV1 { return &UnifiedV1{c: c} }
