package sdvv1

import (
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

func encodeDatapointMap(e *wire.Encoder, m map[string]*Datapoint) {
	for _, name := range wire.SortedKeys(m) {
		dp := m[name]
		e.Message(1, func(s *wire.Encoder) {
			s.String(1, name)
			if dp != nil {
				s.Message(2, dp.encode)
			}
		})
	}
}

func decodeDatapointMap(m map[string]*Datapoint, f wire.Field) error {
	key, val, err := f.MapEntry()
	if err != nil {
		return err
	}
	dp, err := decodeDatapoint(val)
	if err != nil {
		return err
	}
	m[key.String()] = dp
	return nil
}

type GetDatapointsRequest struct {
	Datapoints []string
}

func (m *GetDatapointsRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	e.Strings(1, m.Datapoints)
	return e.Bytes(), nil
}

func (m *GetDatapointsRequest) UnmarshalProto(b []byte) error {
	*m = GetDatapointsRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num == 1 {
			m.Datapoints = append(m.Datapoints, f.String())
		}
		return nil
	})
}

type GetDatapointsResponse struct {
	Datapoints map[string]*Datapoint
}

func (m *GetDatapointsResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	encodeDatapointMap(&e, m.Datapoints)
	return e.Bytes(), nil
}

func (m *GetDatapointsResponse) UnmarshalProto(b []byte) error {
	*m = GetDatapointsResponse{Datapoints: map[string]*Datapoint{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		return decodeDatapointMap(m.Datapoints, f)
	})
}

type SetDatapointsRequest struct {
	Datapoints map[string]*Datapoint
}

func (m *SetDatapointsRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	encodeDatapointMap(&e, m.Datapoints)
	return e.Bytes(), nil
}

func (m *SetDatapointsRequest) UnmarshalProto(b []byte) error {
	*m = SetDatapointsRequest{Datapoints: map[string]*Datapoint{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		return decodeDatapointMap(m.Datapoints, f)
	})
}

// SetDatapointsResponse maps rejected names to their errors. An empty map
// means every datapoint was accepted.
type SetDatapointsResponse struct {
	Errors map[string]DatapointError
}

func (m *SetDatapointsResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, name := range wire.SortedKeys(m.Errors) {
		code := m.Errors[name]
		e.Message(1, func(s *wire.Encoder) {
			s.String(1, name)
			if code != 0 {
				s.Int32(2, int32(code))
			}
		})
	}
	return e.Bytes(), nil
}

func (m *SetDatapointsResponse) UnmarshalProto(b []byte) error {
	*m = SetDatapointsResponse{Errors: map[string]DatapointError{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		key, val, err := f.MapEntry()
		if err != nil {
			return err
		}
		m.Errors[key.String()] = DatapointError(val.Int32())
		return nil
	})
}

// SubscribeRequest carries a query such as "SELECT Vehicle.Speed".
type SubscribeRequest struct {
	Query string
}

func (m *SubscribeRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.Query != "" {
		e.String(2, m.Query)
	}
	return e.Bytes(), nil
}

func (m *SubscribeRequest) UnmarshalProto(b []byte) error {
	*m = SubscribeRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num == 2 {
			m.Query = f.String()
		}
		return nil
	})
}

type SubscribeReply struct {
	Fields map[string]*Datapoint
}

func (m *SubscribeReply) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	encodeDatapointMap(&e, m.Fields)
	return e.Bytes(), nil
}

func (m *SubscribeReply) UnmarshalProto(b []byte) error {
	*m = SubscribeReply{Fields: map[string]*Datapoint{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		return decodeDatapointMap(m.Fields, f)
	})
}

type GetMetadataRequest struct {
	Names []string
}

func (m *GetMetadataRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	e.Strings(1, m.Names)
	return e.Bytes(), nil
}

func (m *GetMetadataRequest) UnmarshalProto(b []byte) error {
	*m = GetMetadataRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num == 1 {
			m.Names = append(m.Names, f.String())
		}
		return nil
	})
}

type GetMetadataReply struct {
	List []*Metadata
}

func (m *GetMetadataReply) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, md := range m.List {
		e.Message(1, md.encode)
	}
	return e.Bytes(), nil
}

func (m *GetMetadataReply) UnmarshalProto(b []byte) error {
	*m = GetMetadataReply{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		md := &Metadata{}
		if err := md.UnmarshalProto(f.Bytes); err != nil {
			return err
		}
		m.List = append(m.List, md)
		return nil
	})
}
