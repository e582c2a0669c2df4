package valv2

import (
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

type GetValueRequest struct {
	SignalID *SignalID
}

func (m *GetValueRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.SignalID != nil {
		e.Message(1, m.SignalID.encode)
	}
	return e.Bytes(), nil
}

func (m *GetValueRequest) UnmarshalProto(b []byte) error {
	*m = GetValueRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		if f.Num == 1 {
			m.SignalID, err = decodeSignalID(f)
		}
		return err
	})
}

type GetValueResponse struct {
	DataPoint *Datapoint
}

func (m *GetValueResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.DataPoint != nil {
		e.Message(1, m.DataPoint.encode)
	}
	return e.Bytes(), nil
}

func (m *GetValueResponse) UnmarshalProto(b []byte) error {
	*m = GetValueResponse{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		if f.Num == 1 {
			m.DataPoint, err = decodeDatapoint(f)
		}
		return err
	})
}

type GetValuesRequest struct {
	SignalIDs []*SignalID
}

func (m *GetValuesRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, id := range m.SignalIDs {
		e.Message(1, id.encode)
	}
	return e.Bytes(), nil
}

func (m *GetValuesRequest) UnmarshalProto(b []byte) error {
	*m = GetValuesRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		id, err := decodeSignalID(f)
		m.SignalIDs = append(m.SignalIDs, id)
		return err
	})
}

// GetValuesResponse holds one datapoint per requested signal, in request order.
type GetValuesResponse struct {
	DataPoints []*Datapoint
}

func (m *GetValuesResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, dp := range m.DataPoints {
		e.Message(1, dp.encode)
	}
	return e.Bytes(), nil
}

func (m *GetValuesResponse) UnmarshalProto(b []byte) error {
	*m = GetValuesResponse{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		dp, err := decodeDatapoint(f)
		m.DataPoints = append(m.DataPoints, dp)
		return err
	})
}

type SubscribeRequest struct {
	SignalPaths []string
	BufferSize  uint32
}

func (m *SubscribeRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	e.Strings(1, m.SignalPaths)
	if m.BufferSize != 0 {
		e.Uint32(2, m.BufferSize)
	}
	return e.Bytes(), nil
}

func (m *SubscribeRequest) UnmarshalProto(b []byte) error {
	*m = SubscribeRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			m.SignalPaths = append(m.SignalPaths, f.String())
		case 2:
			m.BufferSize = f.Uint32()
		}
		return nil
	})
}

// SubscribeResponse maps signal paths to their new datapoints.
type SubscribeResponse struct {
	Entries map[string]*Datapoint
}

func (m *SubscribeResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, path := range wire.SortedKeys(m.Entries) {
		dp := m.Entries[path]
		e.Message(1, func(s *wire.Encoder) {
			s.String(1, path)
			if dp != nil {
				s.Message(2, dp.encode)
			}
		})
	}
	return e.Bytes(), nil
}

func (m *SubscribeResponse) UnmarshalProto(b []byte) error {
	*m = SubscribeResponse{Entries: map[string]*Datapoint{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		key, val, err := f.MapEntry()
		if err != nil {
			return err
		}
		dp := &Datapoint{}
		if val.Num != 0 {
			if dp, err = decodeDatapoint(val); err != nil {
				return err
			}
		}
		m.Entries[key.String()] = dp
		return nil
	})
}

type SubscribeByIDRequest struct {
	SignalIDs  []int32
	BufferSize uint32
}

func (m *SubscribeByIDRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	e.PackedInt32(1, m.SignalIDs)
	if m.BufferSize != 0 {
		e.Uint32(2, m.BufferSize)
	}
	return e.Bytes(), nil
}

func (m *SubscribeByIDRequest) UnmarshalProto(b []byte) error {
	*m = SubscribeByIDRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.SignalIDs, err = f.AppendInt32s(m.SignalIDs)
		case 2:
			m.BufferSize = f.Uint32()
		}
		return err
	})
}

// SubscribeByIDResponse maps signal ids to their new datapoints.
type SubscribeByIDResponse struct {
	Entries map[int32]*Datapoint
}

func (m *SubscribeByIDResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, id := range wire.SortedKeys(m.Entries) {
		dp := m.Entries[id]
		e.Message(1, func(s *wire.Encoder) {
			if id != 0 {
				s.Int32(1, id)
			}
			if dp != nil {
				s.Message(2, dp.encode)
			}
		})
	}
	return e.Bytes(), nil
}

func (m *SubscribeByIDResponse) UnmarshalProto(b []byte) error {
	*m = SubscribeByIDResponse{Entries: map[int32]*Datapoint{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		key, val, err := f.MapEntry()
		if err != nil {
			return err
		}
		dp := &Datapoint{}
		if val.Num != 0 {
			if dp, err = decodeDatapoint(val); err != nil {
				return err
			}
		}
		m.Entries[key.Int32()] = dp
		return nil
	})
}

type ActuateRequest struct {
	SignalID *SignalID
	Value    *Value
}

func (m *ActuateRequest) encode(e *wire.Encoder) {
	if m.SignalID != nil {
		e.Message(1, m.SignalID.encode)
	}
	if m.Value != nil {
		e.Message(2, m.Value.encode)
	}
}

func (m *ActuateRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	m.encode(&e)
	return e.Bytes(), nil
}

func (m *ActuateRequest) UnmarshalProto(b []byte) error {
	*m = ActuateRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.SignalID, err = decodeSignalID(f)
		case 2:
			m.Value, err = decodeValue(f)
		}
		return err
	})
}

type ActuateResponse struct{}

func (m *ActuateResponse) MarshalProto() ([]byte, error) { return nil, nil }
func (m *ActuateResponse) UnmarshalProto([]byte) error   { return nil }

type BatchActuateRequest struct {
	ActuateRequests []*ActuateRequest
}

func (m *BatchActuateRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, r := range m.ActuateRequests {
		e.Message(1, r.encode)
	}
	return e.Bytes(), nil
}

func (m *BatchActuateRequest) UnmarshalProto(b []byte) error {
	*m = BatchActuateRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		r := &ActuateRequest{}
		if err := r.UnmarshalProto(f.Bytes); err != nil {
			return err
		}
		m.ActuateRequests = append(m.ActuateRequests, r)
		return nil
	})
}

type BatchActuateResponse struct{}

func (m *BatchActuateResponse) MarshalProto() ([]byte, error) { return nil, nil }
func (m *BatchActuateResponse) UnmarshalProto([]byte) error   { return nil }

// ListMetadataRequest lists the metadata of root and, for branches, of
// every signal below it. Filter is reserved by the broker.
type ListMetadataRequest struct {
	Root   string
	Filter string
}

func (m *ListMetadataRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.Root != "" {
		e.String(1, m.Root)
	}
	if m.Filter != "" {
		e.String(2, m.Filter)
	}
	return e.Bytes(), nil
}

func (m *ListMetadataRequest) UnmarshalProto(b []byte) error {
	*m = ListMetadataRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			m.Root = f.String()
		case 2:
			m.Filter = f.String()
		}
		return nil
	})
}

type ListMetadataResponse struct {
	Metadata []*Metadata
}

func (m *ListMetadataResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, md := range m.Metadata {
		e.Message(1, md.encode)
	}
	return e.Bytes(), nil
}

func (m *ListMetadataResponse) UnmarshalProto(b []byte) error {
	*m = ListMetadataResponse{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		md := &Metadata{}
		if err := md.UnmarshalProto(f.Bytes); err != nil {
			return err
		}
		m.Metadata = append(m.Metadata, md)
		return nil
	})
}

type PublishValueRequest struct {
	SignalID  *SignalID
	DataPoint *Datapoint
}

func (m *PublishValueRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.SignalID != nil {
		e.Message(1, m.SignalID.encode)
	}
	if m.DataPoint != nil {
		e.Message(2, m.DataPoint.encode)
	}
	return e.Bytes(), nil
}

func (m *PublishValueRequest) UnmarshalProto(b []byte) error {
	*m = PublishValueRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.SignalID, err = decodeSignalID(f)
		case 2:
			m.DataPoint, err = decodeDatapoint(f)
		}
		return err
	})
}

type PublishValueResponse struct{}

func (m *PublishValueResponse) MarshalProto() ([]byte, error) { return nil, nil }
func (m *PublishValueResponse) UnmarshalProto([]byte) error   { return nil }

type GetServerInfoRequest struct{}

func (m *GetServerInfoRequest) MarshalProto() ([]byte, error) { return nil, nil }
func (m *GetServerInfoRequest) UnmarshalProto([]byte) error   { return nil }

type GetServerInfoResponse struct {
	Name       string
	Version    string
	CommitHash string
}

func (m *GetServerInfoResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.Name != "" {
		e.String(1, m.Name)
	}
	if m.Version != "" {
		e.String(2, m.Version)
	}
	if m.CommitHash != "" {
		e.String(3, m.CommitHash)
	}
	return e.Bytes(), nil
}

func (m *GetServerInfoResponse) UnmarshalProto(b []byte) error {
	*m = GetServerInfoResponse{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			m.Name = f.String()
		case 2:
			m.Version = f.String()
		case 3:
			m.CommitHash = f.String()
		}
		return nil
	})
}
