package kuksa

import (
	"context"

	"github.com/kuksa-sdk/kuksa-go/pkg/channel"
	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

// ClientV2 talks kuksa.val.v2.
type ClientV2 struct {
	ch *channel.Manager
}

// NewClientV2 returns a client for cfg. No connection is made until the
// first call.
func NewClientV2(cfg channel.Config) *ClientV2 {
	return &ClientV2{ch: channel.New(cfg)}
}

// Generation returns GenerationV2.
func (c *ClientV2) Generation() Generation { return GenerationV2 }

// Channel returns the client's channel manager.
func (c *ClientV2) Channel() *channel.Manager { return c.ch }

// Close releases the connection.
func (c *ClientV2) Close() error { return c.ch.Close() }

func (c *ClientV2) val(ctx context.Context) (valv2.VALClient, error) {
	conn, err := c.ch.Channel(ctx)
	if err != nil {
		return nil, err
	}
	return valv2.NewVALClient(conn), nil
}

// GetValue returns the current datapoint of path. A signal without a
// value yields a datapoint whose Value is nil.
func (c *ClientV2) GetValue(ctx context.Context, path string) (*valv2.Datapoint, error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := val.GetValue(ctx, &valv2.GetValueRequest{SignalID: valv2.ByPath(path)})
	if err != nil {
		return nil, clienterr.ClassifyPath("GetValue", path, err)
	}
	if resp.DataPoint == nil {
		return &valv2.Datapoint{}, nil
	}
	return resp.DataPoint, nil
}

// GetValues reads several signals in one call.
func (c *ClientV2) GetValues(ctx context.Context, paths []string) ([]*valv2.Datapoint, error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	req := &valv2.GetValuesRequest{SignalIDs: make([]*valv2.SignalID, len(paths))}
	for i, p := range paths {
		req.SignalIDs[i] = valv2.ByPath(p)
	}
	resp, err := val.GetValues(ctx, req)
	if err != nil {
		return nil, clienterr.Classify("GetValues", err)
	}
	return resp.DataPoints, nil
}

// PublishValue sets the current value of a sensor or actuator.
func (c *ClientV2) PublishValue(ctx context.Context, path string, dp *valv2.Datapoint) error {
	val, err := c.val(ctx)
	if err != nil {
		return err
	}
	_, err = val.PublishValue(ctx, &valv2.PublishValueRequest{SignalID: valv2.ByPath(path), DataPoint: dp})
	return clienterr.ClassifyPath("PublishValue", path, err)
}

// Actuate asks the provider of an actuator to apply v.
func (c *ClientV2) Actuate(ctx context.Context, path string, v *valv2.Value) error {
	val, err := c.val(ctx)
	if err != nil {
		return err
	}
	_, err = val.Actuate(ctx, &valv2.ActuateRequest{SignalID: valv2.ByPath(path), Value: v})
	return clienterr.ClassifyPath("Actuate", path, err)
}

// BatchActuate sends all updates in one call. The broker applies all of
// them or none.
func (c *ClientV2) BatchActuate(ctx context.Context, updates []Update[*valv2.Value]) error {
	val, err := c.val(ctx)
	if err != nil {
		return err
	}
	req := &valv2.BatchActuateRequest{ActuateRequests: make([]*valv2.ActuateRequest, len(updates))}
	for i, u := range updates {
		req.ActuateRequests[i] = &valv2.ActuateRequest{SignalID: valv2.ByPath(u.Path), Value: u.Value}
	}
	_, err = val.BatchActuate(ctx, req)
	return clienterr.Classify("BatchActuate", err)
}

// ListMetadata returns the metadata of root and, for branches, of every
// signal below it. filter is passed to the broker unchanged.
func (c *ClientV2) ListMetadata(ctx context.Context, root, filter string) ([]*valv2.Metadata, error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := val.ListMetadata(ctx, &valv2.ListMetadataRequest{Root: root, Filter: filter})
	if err != nil {
		return nil, clienterr.ClassifyPath("ListMetadata", root, err)
	}
	return resp.Metadata, nil
}

// Subscribe streams current values of paths. bufferSize 0 lets the broker
// choose.
func (c *ClientV2) Subscribe(ctx context.Context, paths []string, bufferSize uint32) (*Subscription[*valv2.SubscribeResponse], error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	stream, err := val.Subscribe(ctx, &valv2.SubscribeRequest{SignalPaths: paths, BufferSize: bufferSize})
	if err != nil {
		cancel()
		return nil, clienterr.Classify("Subscribe", err)
	}
	return newSubscription(cancel, "Subscribe", stream, keep[valv2.SubscribeResponse]), nil
}

// SubscribeByID streams current values of signals addressed by id.
func (c *ClientV2) SubscribeByID(ctx context.Context, ids []int32, bufferSize uint32) (*Subscription[*valv2.SubscribeByIDResponse], error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	stream, err := val.SubscribeById(ctx, &valv2.SubscribeByIDRequest{SignalIDs: ids, BufferSize: bufferSize})
	if err != nil {
		cancel()
		return nil, clienterr.Classify("SubscribeById", err)
	}
	return newSubscription(cancel, "SubscribeById", stream, keep[valv2.SubscribeByIDResponse]), nil
}

// GetServerInfo returns the broker's name and version.
func (c *ClientV2) GetServerInfo(ctx context.Context) (*valv2.GetServerInfoResponse, error) {
	val, err := c.val(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := val.GetServerInfo(ctx, &valv2.GetServerInfoRequest{})
	if err != nil {
		return nil, clienterr.Classify("GetServerInfo", err)
	}
	return resp, nil
}

// SetCurrentValues publishes each update with its own PublishValue call.
func (c *ClientV2) SetCurrentValues(ctx context.Context, updates []Update[*valv2.Datapoint]) (BatchResult, error) {
	return applyEach(ctx, updates, func(ctx context.Context, u Update[*valv2.Datapoint]) error {
		return c.PublishValue(ctx, u.Path, u.Value)
	})
}

// GetCurrentValues reads each path with its own GetValue call.
func (c *ClientV2) GetCurrentValues(ctx context.Context, paths []string) ([]*valv2.Datapoint, error) {
	return collectEach(ctx, paths, func(ctx context.Context, p string) ([]*valv2.Datapoint, error) {
		dp, err := c.GetValue(ctx, p)
		if err != nil {
			return nil, err
		}
		return []*valv2.Datapoint{dp}, nil
	})
}

// SetTargetValues actuates each update with its own Actuate call.
func (c *ClientV2) SetTargetValues(ctx context.Context, updates []Update[*valv2.Value]) (BatchResult, error) {
	return applyEach(ctx, updates, func(ctx context.Context, u Update[*valv2.Value]) error {
		return c.Actuate(ctx, u.Path, u.Value)
	})
}

// GetTargetValues is not supported: kuksa.val.v2 hands actuation requests
// to providers and does not store them.
func (c *ClientV2) GetTargetValues(context.Context, []string) ([]*valv2.Datapoint, error) {
	return nil, unsupported(GenerationV2, "GetTargetValues", "target values are not stored by the broker")
}

func (c *ClientV2) SubscribeCurrentValues(ctx context.Context, paths []string) (*Subscription[*valv2.SubscribeResponse], error) {
	return c.Subscribe(ctx, paths, 0)
}

// GetMetadata lists the metadata of each path with its own ListMetadata
// call.
func (c *ClientV2) GetMetadata(ctx context.Context, paths []string) ([]*valv2.Metadata, error) {
	return collectEach(ctx, paths, func(ctx context.Context, p string) ([]*valv2.Metadata, error) {
		return c.ListMetadata(ctx, p, "")
	})
}

// Legacy returns a view of c that implements the legacy contract.
func (c *ClientV2) Legacy() *LegacyV2 { return &LegacyV2{c: c} }

// Unified returns a view of c on pkg/value shapes.
func (c *ClientV2) Unified() *UnifiedV2 { return &UnifiedV2{c: c} }

func keep[M any](m *M) (*M, error) { return m, nil }
