package sdvv1

import (
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

// UpdateDatapointsRequest publishes values keyed by registration id.
type UpdateDatapointsRequest struct {
	Datapoints map[int32]*Datapoint
}

func (m *UpdateDatapointsRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, id := range wire.SortedKeys(m.Datapoints) {
		dp := m.Datapoints[id]
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

func (m *UpdateDatapointsRequest) UnmarshalProto(b []byte) error {
	*m = UpdateDatapointsRequest{Datapoints: map[int32]*Datapoint{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		key, val, err := f.MapEntry()
		if err != nil {
			return err
		}
		dp, err := decodeDatapoint(val)
		if err != nil {
			return err
		}
		m.Datapoints[key.Int32()] = dp
		return nil
	})
}

type UpdateDatapointsReply struct {
	Errors map[int32]DatapointError
}

func (m *UpdateDatapointsReply) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, id := range wire.SortedKeys(m.Errors) {
		code := m.Errors[id]
		e.Message(1, func(s *wire.Encoder) {
			if id != 0 {
				s.Int32(1, id)
			}
			if code != 0 {
				s.Int32(2, int32(code))
			}
		})
	}
	return e.Bytes(), nil
}

func (m *UpdateDatapointsReply) UnmarshalProto(b []byte) error {
	*m = UpdateDatapointsReply{Errors: map[int32]DatapointError{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		key, val, err := f.MapEntry()
		if err != nil {
			return err
		}
		m.Errors[key.Int32()] = DatapointError(val.Int32())
		return nil
	})
}

type RegistrationMetadata struct {
	Name        string
	DataType    DataType
	Description string
	ChangeType  ChangeType
}

func (m *RegistrationMetadata) encode(e *wire.Encoder) {
	if m.Name != "" {
		e.String(1, m.Name)
	}
	if m.DataType != 0 {
		e.Int32(2, int32(m.DataType))
	}
	if m.Description != "" {
		e.String(3, m.Description)
	}
	if m.ChangeType != 0 {
		e.Int32(4, int32(m.ChangeType))
	}
}

func (m *RegistrationMetadata) UnmarshalProto(b []byte) error {
	*m = RegistrationMetadata{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			m.Name = f.String()
		case 2:
			m.DataType = DataType(f.Int32())
		case 3:
			m.Description = f.String()
		case 4:
			m.ChangeType = ChangeType(f.Int32())
		}
		return nil
	})
}

type RegisterDatapointsRequest struct {
	List []*RegistrationMetadata
}

func (m *RegisterDatapointsRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, r := range m.List {
		e.Message(1, r.encode)
	}
	return e.Bytes(), nil
}

func (m *RegisterDatapointsRequest) UnmarshalProto(b []byte) error {
	*m = RegisterDatapointsRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		r := &RegistrationMetadata{}
		if err := r.UnmarshalProto(f.Bytes); err != nil {
			return err
		}
		m.List = append(m.List, r)
		return nil
	})
}

// RegisterDatapointsReply maps registered names to their assigned ids.
type RegisterDatapointsReply struct {
	Results map[string]int32
}

func (m *RegisterDatapointsReply) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, name := range wire.SortedKeys(m.Results) {
		id := m.Results[name]
		e.Message(1, func(s *wire.Encoder) {
			s.String(1, name)
			if id != 0 {
				s.Int32(2, id)
			}
		})
	}
	return e.Bytes(), nil
}

func (m *RegisterDatapointsReply) UnmarshalProto(b []byte) error {
	*m = RegisterDatapointsReply{Results: map[string]int32{}}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		key, val, err := f.MapEntry()
		if err != nil {
			return err
		}
		m.Results[key.String()] = val.Int32()
		return nil
	})
}
