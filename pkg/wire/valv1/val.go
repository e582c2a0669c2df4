package valv1

import (
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

// EntryRequest asks for one path with a view and an optional field mask.
type EntryRequest struct {
	Path   string
	View   View
	Fields []Field
}

func (m *EntryRequest) encode(e *wire.Encoder) {
	if m.Path != "" {
		e.String(1, m.Path)
	}
	if m.View != 0 {
		e.Int32(2, int32(m.View))
	}
	encodeFields(e, 3, m.Fields)
}

func (m *EntryRequest) UnmarshalProto(b []byte) error {
	*m = EntryRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Path = f.String()
		case 2:
			m.View = View(f.Int32())
		case 3:
			m.Fields, err = decodeFields(m.Fields, f)
		}
		return err
	})
}

type GetRequest struct {
	Entries []*EntryRequest
}

func (m *GetRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, r := range m.Entries {
		e.Message(1, r.encode)
	}
	return e.Bytes(), nil
}

func (m *GetRequest) UnmarshalProto(b []byte) error {
	*m = GetRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		r := &EntryRequest{}
		if err := r.UnmarshalProto(f.Bytes); err != nil {
			return err
		}
		m.Entries = append(m.Entries, r)
		return nil
	})
}

// GetResponse carries the entries found plus per-entry errors and an
// optional top-level error.
type GetResponse struct {
	Entries []*DataEntry
	Errors  []*DataEntryError
	Error   *Error
}

func (m *GetResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, de := range m.Entries {
		e.Message(1, de.encode)
	}
	for _, de := range m.Errors {
		e.Message(2, de.encode)
	}
	if m.Error != nil {
		e.Message(3, m.Error.encode)
	}
	return e.Bytes(), nil
}

func (m *GetResponse) UnmarshalProto(b []byte) error {
	*m = GetResponse{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			de, err := decodeDataEntry(f)
			m.Entries = append(m.Entries, de)
			return err
		case 2:
			de, err := decodeDataEntryError(f)
			m.Errors = append(m.Errors, de)
			return err
		case 3:
			e, err := decodeError(f)
			m.Error = e
			return err
		}
		return nil
	})
}

// EntryUpdate carries an entry and the mask of fields in it that are set.
type EntryUpdate struct {
	Entry  *DataEntry
	Fields []Field
}

func (m *EntryUpdate) encode(e *wire.Encoder) {
	if m.Entry != nil {
		e.Message(1, m.Entry.encode)
	}
	encodeFields(e, 2, m.Fields)
}

func (m *EntryUpdate) UnmarshalProto(b []byte) error {
	*m = EntryUpdate{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Entry, err = decodeDataEntry(f)
		case 2:
			m.Fields, err = decodeFields(m.Fields, f)
		}
		return err
	})
}

func decodeEntryUpdates(dst []*EntryUpdate, f wire.Field) ([]*EntryUpdate, error) {
	u := &EntryUpdate{}
	err := u.UnmarshalProto(f.Bytes)
	return append(dst, u), err
}

type SetRequest struct {
	Updates []*EntryUpdate
}

func (m *SetRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, u := range m.Updates {
		e.Message(1, u.encode)
	}
	return e.Bytes(), nil
}

func (m *SetRequest) UnmarshalProto(b []byte) error {
	*m = SetRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		if f.Num == 1 {
			m.Updates, err = decodeEntryUpdates(m.Updates, f)
		}
		return err
	})
}

type SetResponse struct {
	Error  *Error
	Errors []*DataEntryError
}

func (m *SetResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.Error != nil {
		e.Message(1, m.Error.encode)
	}
	for _, de := range m.Errors {
		e.Message(2, de.encode)
	}
	return e.Bytes(), nil
}

func (m *SetResponse) UnmarshalProto(b []byte) error {
	*m = SetResponse{}
	return wire.Decode(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			e, err := decodeError(f)
			m.Error = e
			return err
		case 2:
			de, err := decodeDataEntryError(f)
			m.Errors = append(m.Errors, de)
			return err
		}
		return nil
	})
}

// SubscribeEntry asks for updates of one path with a view and field mask.
type SubscribeEntry struct {
	Path   string
	View   View
	Fields []Field
}

func (m *SubscribeEntry) encode(e *wire.Encoder) {
	if m.Path != "" {
		e.String(1, m.Path)
	}
	if m.View != 0 {
		e.Int32(2, int32(m.View))
	}
	encodeFields(e, 3, m.Fields)
}

func (m *SubscribeEntry) UnmarshalProto(b []byte) error {
	*m = SubscribeEntry{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Path = f.String()
		case 2:
			m.View = View(f.Int32())
		case 3:
			m.Fields, err = decodeFields(m.Fields, f)
		}
		return err
	})
}

type SubscribeRequest struct {
	Entries []*SubscribeEntry
}

func (m *SubscribeRequest) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, s := range m.Entries {
		e.Message(1, s.encode)
	}
	return e.Bytes(), nil
}

func (m *SubscribeRequest) UnmarshalProto(b []byte) error {
	*m = SubscribeRequest{}
	return wire.Decode(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		s := &SubscribeEntry{}
		if err := s.UnmarshalProto(f.Bytes); err != nil {
			return err
		}
		m.Entries = append(m.Entries, s)
		return nil
	})
}

type SubscribeResponse struct {
	Updates []*EntryUpdate
}

func (m *SubscribeResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	for _, u := range m.Updates {
		e.Message(1, u.encode)
	}
	return e.Bytes(), nil
}

func (m *SubscribeResponse) UnmarshalProto(b []byte) error {
	*m = SubscribeResponse{}
	return wire.Decode(b, func(f wire.Field) error {
		var err error
		if f.Num == 1 {
			m.Updates, err = decodeEntryUpdates(m.Updates, f)
		}
		return err
	})
}

type GetServerInfoRequest struct{}

func (m *GetServerInfoRequest) MarshalProto() ([]byte, error) { return nil, nil }
func (m *GetServerInfoRequest) UnmarshalProto([]byte) error   { return nil }

type GetServerInfoResponse struct {
	Name    string
	Version string
}

func (m *GetServerInfoResponse) MarshalProto() ([]byte, error) {
	var e wire.Encoder
	if m.Name != "" {
		e.String(1, m.Name)
	}
	if m.Version != "" {
		e.String(2, m.Version)
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
		}
		return nil
	})
}
