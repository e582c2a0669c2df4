package convert

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

type smallInt interface {
	~int8 | ~int16 | ~uint8 | ~uint16
}

func widen[D int32 | uint32, S smallInt](s []S) []D {
	d := make([]D, len(s))
	for i, x := range s {
		d[i] = D(x)
	}
	return d
}

// wireAny returns the payload of v in the element types the wire carries.
// The 8 and 16 bit integers travel as their 32 bit counterparts.
func wireAny(v value.Value) any {
	switch x := v.Raw().(type) {
	case int8:
		return int32(x)
	case int16:
		return int32(x)
	case uint8:
		return uint32(x)
	case uint16:
		return uint32(x)
	case []int8:
		return widen[int32](x)
	case []int16:
		return widen[int32](x)
	case []uint8:
		return widen[uint32](x)
	case []uint16:
		return widen[uint32](x)
	}
	return v.Raw()
}

// fromWire builds a Value from a wire payload and, when declared is set,
// casts it to the declared type. A nil payload yields the empty Value.
func fromWire(x any, declared value.DataType) (value.Value, error) {
	if x == nil {
		return value.Value{}, nil
	}
	v, err := value.Of(x)
	if err != nil {
		return value.Value{}, &clienterr.ConversionError{From: fmt.Sprintf("%T", x), To: "value", Reason: err.Error()}
	}
	if declared == value.DataTypeUnspecified || declared == v.Type() || declared.Elem() == value.DataTypeTimestamp {
		return v, nil
	}
	return Cast(v, declared)
}

func toTimestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func fromTimestamp(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}

// ToV2Value returns the kuksa.val.v2 form of v, nil for the empty Value.
func ToV2Value(v value.Value) *valv2.Value {
	if v.IsEmpty() {
		return nil
	}
	return valv2.NewValue(wireAny(v))
}

// FromV2Value converts a kuksa.val.v2 value, narrowing it to declared when
// declared is not DataTypeUnspecified.
func FromV2Value(v *valv2.Value, declared value.DataType) (value.Value, error) {
	return fromWire(v.Any(), declared)
}

// ToV2Datapoint converts dp; a datapoint without value keeps Value nil.
func ToV2Datapoint(dp value.Datapoint) *valv2.Datapoint {
	return &valv2.Datapoint{Timestamp: toTimestamp(dp.Timestamp), Value: ToV2Value(dp.Value)}
}

func FromV2Datapoint(dp *valv2.Datapoint, declared value.DataType) (value.Datapoint, error) {
	v, err := FromV2Value(dp.GetValue(), declared)
	if err != nil {
		return value.Datapoint{}, err
	}
	return value.Datapoint{Timestamp: fromTimestamp(dp.GetTimestamp()), Value: v}, nil
}

// ToV1Datapoint converts dp to kuksa.val.v1 form.
func ToV1Datapoint(dp value.Datapoint) *valv1.Datapoint {
	out := &valv1.Datapoint{Timestamp: toTimestamp(dp.Timestamp)}
	if dp.HasValue() {
		out.Value = valv1.NewDatapoint(wireAny(dp.Value)).Value
	}
	return out
}

func FromV1Datapoint(dp *valv1.Datapoint, declared value.DataType) (value.Datapoint, error) {
	if dp == nil {
		return value.Datapoint{}, nil
	}
	v, err := fromWire(dp.Any(), declared)
	if err != nil {
		return value.Datapoint{}, err
	}
	return value.Datapoint{Timestamp: fromTimestamp(dp.Timestamp), Value: v}, nil
}

// ToSDVDatapoint converts dp to sdv.databroker.v1 form. A datapoint
// without value becomes the NOT_AVAILABLE failure value.
func ToSDVDatapoint(dp value.Datapoint) *sdvv1.Datapoint {
	out := sdvv1.NewFailure(sdvv1.FailureNotAvailable)
	if dp.HasValue() {
		out = sdvv1.NewDatapoint(wireAny(dp.Value))
	}
	out.Timestamp = toTimestamp(dp.Timestamp)
	return out
}

// FromSDVDatapoint converts a legacy datapoint. NOT_AVAILABLE becomes a
// datapoint without value; any other failure value is a ConversionError.
func FromSDVDatapoint(dp *sdvv1.Datapoint, declared value.DataType) (value.Datapoint, error) {
	if dp == nil {
		return value.Datapoint{}, nil
	}
	if err := checkFailure(dp); err != nil {
		return value.Datapoint{}, err
	}
	v, err := fromWire(dp.Value, declared)
	if err != nil {
		return value.Datapoint{}, err
	}
	return value.Datapoint{Timestamp: fromTimestamp(dp.Timestamp), Value: v}, nil
}

func checkFailure(dp *sdvv1.Datapoint) error {
	if !dp.IsFailure() || *dp.Failure == sdvv1.FailureNotAvailable {
		return nil
	}
	return &clienterr.ConversionError{
		From:   "sdv.databroker.v1 datapoint",
		To:     "value",
		Value:  dp.Failure.String(),
		Reason: "datapoint carries a failure value",
	}
}
