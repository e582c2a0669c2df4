package kuksa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

// Generation names a version of the databroker interface.
type Generation string

const (
	GenerationV2  Generation = "kuksa.val.v2"
	GenerationV1  Generation = "kuksa.val.v1"
	GenerationSDV Generation = "sdv.databroker.v1"
)

// ErrUnknownGeneration is returned for generation names that are not
// recognized.
var ErrUnknownGeneration = errors.New("unknown generation")

// ParseGeneration accepts a full package name or the short forms "v2",
// "v1" and "sdv".
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(s) {
	case "v2", string(GenerationV2):
		return GenerationV2, nil
	case "v1", string(GenerationV1):
		return GenerationV1, nil
	case "sdv", string(GenerationSDV):
		return GenerationSDV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGeneration, s)
}

// ValueAccess reads, writes and subscribes to current and target values.
type ValueAccess[Sensor, Actuation, Paths, PublishResp, ActuateResp, GetResp, SubscribeResp any] interface {
	SetCurrentValues(ctx context.Context, updates Sensor) (PublishResp, error)
	GetCurrentValues(ctx context.Context, paths Paths) (GetResp, error)
	SetTargetValues(ctx context.Context, updates Actuation) (ActuateResp, error)
	GetTargetValues(ctx context.Context, paths Paths) (GetResp, error)
	SubscribeCurrentValues(ctx context.Context, paths Paths) (SubscribeResp, error)
}

// MetadataAccess fetches signal metadata.
type MetadataAccess[Paths, MetadataResp any] interface {
	GetMetadata(ctx context.Context, paths Paths) (MetadataResp, error)
}

// SubscriptionAccess is the query-based contract of the legacy generation.
type SubscriptionAccess[Sensor, Actuation, Paths, Query, PublishResp, GetResp, SubscribeResp, ActuateResp any] interface {
	Subscribe(ctx context.Context, query Query) (SubscribeResp, error)
	UpdateDatapoints(ctx context.Context, datapoints Sensor) (PublishResp, error)
	GetDatapoints(ctx context.Context, paths Paths) (GetResp, error)
	SetDatapoints(ctx context.Context, datapoints Actuation) (ActuateResp, error)
}

// Update is one element of an ordered write batch.
type Update[D any] struct {
	Path  string
	Value D
}

// BatchResult reports the outcome of a write batch. Applied lists the
// paths the broker accepted, in the order they were sent. Skipped lists
// paths that were never sent because the broker does not know them; only
// the legacy generation skips.
type BatchResult struct {
	Applied []string
	Skipped []string
}

// applyEach runs fn for each update in order and stops at the first
// failure.
func applyEach[D any](ctx context.Context, updates []Update[D], fn func(context.Context, Update[D]) error) (BatchResult, error) {
	var res BatchResult
	for _, u := range updates {
		if err := fn(ctx, u); err != nil {
			return res, err
		}
		res.Applied = append(res.Applied, u.Path)
	}
	return res, nil
}

// collectEach runs fn for each path in order, concatenating results, and
// stops at the first failure.
func collectEach[R any](ctx context.Context, paths []string, fn func(context.Context, string) ([]R, error)) ([]R, error) {
	var out []R
	for _, p := range paths {
		rs, err := fn(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

func unsupported(gen Generation, op, reason string) error {
	return clienterr.Unsupported(string(gen), op, reason)
}

// Contract shapes per generation.
type (
	V2ValueAccess = ValueAccess[
		[]Update[*valv2.Datapoint], []Update[*valv2.Value], []string,
		BatchResult, BatchResult, []*valv2.Datapoint, *Subscription[*valv2.SubscribeResponse],
	]
	V2MetadataAccess = MetadataAccess[[]string, []*valv2.Metadata]

	V1ValueAccess = ValueAccess[
		[]Update[*valv1.Datapoint], []Update[*valv1.Datapoint], []string,
		BatchResult, BatchResult, []*valv1.DataEntry, *Subscription[*valv1.SubscribeResponse],
	]
	V1MetadataAccess = MetadataAccess[[]string, []*valv1.DataEntry]

	SDVValueAccess = ValueAccess[
		map[string]*sdvv1.Datapoint, map[string]*sdvv1.Datapoint, []string,
		*sdvv1.UpdateDatapointsReply, *sdvv1.SetDatapointsResponse, map[string]*sdvv1.Datapoint,
		*Subscription[*sdvv1.SubscribeReply],
	]
	SDVMetadataAccess = MetadataAccess[[]string, []*sdvv1.Metadata]

	SDVSubscriptionAccess = SubscriptionAccess[
		map[string]*sdvv1.Datapoint, map[string]*sdvv1.Datapoint, []string, string,
		*sdvv1.UpdateDatapointsReply, map[string]*sdvv1.Datapoint,
		*Subscription[*sdvv1.SubscribeReply], *sdvv1.SetDatapointsResponse,
	]

	UnifiedValueAccess = ValueAccess[
		[]Update[value.Datapoint], []Update[value.Value], []string,
		BatchResult, BatchResult, []value.Entry, *Subscription[[]value.Entry],
	]
	UnifiedMetadataAccess = MetadataAccess[[]string, []value.Metadata]
)

// Legacy is the legacy contract set, implemented natively by ClientSDV and
// by the Legacy views of ClientV1 and ClientV2.
type Legacy interface {
	SDVSubscriptionAccess
	SDVMetadataAccess
}

// Unified is the generation-independent contract set. Writes to unknown
// paths return an error on every generation.
type Unified interface {
	UnifiedValueAccess
	UnifiedMetadataAccess
	Generation() Generation
}

var (
	_ V2ValueAccess    = (*ClientV2)(nil)
	_ V2MetadataAccess = (*ClientV2)(nil)
	_ V1ValueAccess    = (*ClientV1)(nil)
	_ V1MetadataAccess = (*ClientV1)(nil)
	_ SDVValueAccess   = (*ClientSDV)(nil)
	_ Legacy           = (*ClientSDV)(nil)
	_ Legacy           = (*LegacyV1)(nil)
	_ Legacy           = (*LegacyV2)(nil)
	_ Unified          = (*UnifiedV2)(nil)
	_ Unified          = (*UnifiedV1)(nil)
	_ Unified          = (*UnifiedSDV)(nil)
)
