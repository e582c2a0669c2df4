package convert

import (
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

// V1EntriesToSDV reshapes kuksa.val.v1 entries into the legacy
// name-to-datapoint map. Entries without a current value map to
// NOT_AVAILABLE.
func V1EntriesToSDV(entries []*valv1.DataEntry) map[string]*sdvv1.Datapoint {
	out := make(map[string]*sdvv1.Datapoint, len(entries))
	for _, e := range entries {
		out[e.Path] = V1DatapointToSDV(e.Value)
	}
	return out
}

// V2ValuesToSDV pairs paths with the datapoints of a GetValues response.
func V2ValuesToSDV(paths []string, dps []*valv2.Datapoint) map[string]*sdvv1.Datapoint {
	out := make(map[string]*sdvv1.Datapoint, len(paths))
	for i, p := range paths {
		var dp *valv2.Datapoint
		if i < len(dps) {
			dp = dps[i]
		}
		out[p] = V2DatapointToSDV(dp)
	}
	return out
}

// V2SubscribeToSDV reshapes a kuksa.val.v2 subscription update.
func V2SubscribeToSDV(resp *valv2.SubscribeResponse) *sdvv1.SubscribeReply {
	out := &sdvv1.SubscribeReply{Fields: make(map[string]*sdvv1.Datapoint, len(resp.Entries))}
	for path, dp := range resp.Entries {
		out.Fields[path] = V2DatapointToSDV(dp)
	}
	return out
}

// V1EntryToEntry converts a kuksa.val.v1 entry. Values are narrowed to the
// entry's declared type when the entry carries metadata.
func V1EntryToEntry(de *valv1.DataEntry) (value.Entry, error) {
	e := value.Entry{Path: de.Path}
	declared := value.DataTypeUnspecified
	if de.Metadata != nil {
		md, err := V1MetadataToMetadata(de.Path, de.Metadata)
		if err != nil {
			return value.Entry{}, err
		}
		e.Metadata = &md
		declared = md.DataType
	}
	if de.Value != nil {
		dp, err := FromV1Datapoint(de.Value, declared)
		if err != nil {
			return value.Entry{}, err
		}
		e.Value = &dp
	}
	if de.ActuatorTarget != nil {
		dp, err := FromV1Datapoint(de.ActuatorTarget, declared)
		if err != nil {
			return value.Entry{}, err
		}
		e.Target = &dp
	}
	return e, nil
}

// V1EntriesToEntries converts entries in order; it fails as a whole.
func V1EntriesToEntries(des []*valv1.DataEntry) ([]value.Entry, error) {
	out := make([]value.Entry, 0, len(des))
	for _, de := range des {
		e, err := V1EntryToEntry(de)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EntryToV1 converts e to a kuksa.val.v1 entry.
func EntryToV1(e value.Entry) *valv1.DataEntry {
	de := &valv1.DataEntry{Path: e.Path}
	if e.Value != nil {
		de.Value = ToV1Datapoint(*e.Value)
	}
	if e.Target != nil {
		de.ActuatorTarget = ToV1Datapoint(*e.Target)
	}
	if e.Metadata != nil {
		de.Metadata = MetadataToV1(*e.Metadata)
	}
	return de
}

// SDVDatapointsToEntries converts a legacy map into entries ordered like
// names. Names missing from m are skipped.
func SDVDatapointsToEntries(names []string, m map[string]*sdvv1.Datapoint) ([]value.Entry, error) {
	out := make([]value.Entry, 0, len(names))
	for _, name := range names {
		dp, ok := m[name]
		if !ok {
			continue
		}
		v, err := FromSDVDatapoint(dp, value.DataTypeUnspecified)
		if err != nil {
			return nil, err
		}
		out = append(out, value.Entry{Path: name, Value: &v})
	}
	return out, nil
}
