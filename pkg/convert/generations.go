package convert

import (
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

// Datapoint conversions between generations. The value oneofs of all three
// generations carry the same element types, so only the "no value"
// representation differs: kuksa.val leaves the value unset while the
// legacy generation sends failure_value NOT_AVAILABLE.

func SDVDatapointToV1(dp *sdvv1.Datapoint) (*valv1.Datapoint, error) {
	if dp == nil {
		return &valv1.Datapoint{}, nil
	}
	if err := checkFailure(dp); err != nil {
		return nil, err
	}
	out := &valv1.Datapoint{Timestamp: dp.Timestamp}
	if !dp.IsFailure() && dp.Value != nil {
		out.Value = valv1.NewDatapoint(dp.Value).Value
	}
	return out, nil
}

func V1DatapointToSDV(dp *valv1.Datapoint) *sdvv1.Datapoint {
	out := sdvv1.NewFailure(sdvv1.FailureNotAvailable)
	if x := dp.Any(); x != nil {
		out = sdvv1.NewDatapoint(x)
	}
	if dp != nil {
		out.Timestamp = dp.Timestamp
	}
	return out
}

func SDVDatapointToV2(dp *sdvv1.Datapoint) (*valv2.Datapoint, error) {
	if dp == nil {
		return &valv2.Datapoint{}, nil
	}
	if err := checkFailure(dp); err != nil {
		return nil, err
	}
	out := &valv2.Datapoint{Timestamp: dp.Timestamp}
	if !dp.IsFailure() && dp.Value != nil {
		out.Value = valv2.NewValue(dp.Value)
	}
	return out, nil
}

func V2DatapointToSDV(dp *valv2.Datapoint) *sdvv1.Datapoint {
	out := sdvv1.NewFailure(sdvv1.FailureNotAvailable)
	if x := dp.GetValue().Any(); x != nil {
		out = sdvv1.NewDatapoint(x)
	}
	out.Timestamp = dp.GetTimestamp()
	return out
}

func V1DatapointToV2(dp *valv1.Datapoint) *valv2.Datapoint {
	if dp == nil {
		return &valv2.Datapoint{}
	}
	return &valv2.Datapoint{Timestamp: dp.Timestamp, Value: valv2.NewValue(dp.Any())}
}

func V2DatapointToV1(dp *valv2.Datapoint) *valv1.Datapoint {
	out := &valv1.Datapoint{Timestamp: dp.GetTimestamp()}
	if x := dp.GetValue().Any(); x != nil {
		out.Value = valv1.NewDatapoint(x).Value
	}
	return out
}
