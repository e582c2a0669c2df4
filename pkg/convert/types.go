package convert

import (
	"fmt"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

// kuksa.val numbers scalars like package value and puts arrays at 20 and up.
const kuksaArrayBase = 20

func toKuksaDataType(t value.DataType) int32 {
	if t.IsArray() {
		return kuksaArrayBase + int32(t.Elem()) - 1
	}
	return int32(t)
}

func fromKuksaDataType(n int32) (value.DataType, error) {
	switch {
	case n >= 0 && n <= int32(value.DataTypeTimestamp):
		return value.DataType(n), nil
	case n >= kuksaArrayBase && n <= kuksaArrayBase+int32(value.DataTypeTimestamp)-1:
		return value.DataType(n - kuksaArrayBase + 1).ArrayOf(), nil
	}
	return value.DataTypeUnspecified, &clienterr.ConversionError{
		From: "kuksa.val data type", To: "data type", Value: n, Reason: "unknown data type",
	}
}

func V2DataType(t value.DataType) valv2.DataType { return valv2.DataType(toKuksaDataType(t)) }
func V1DataType(t value.DataType) valv1.DataType { return valv1.DataType(toKuksaDataType(t)) }

func FromV2DataType(t valv2.DataType) (value.DataType, error) { return fromKuksaDataType(int32(t)) }
func FromV1DataType(t valv1.DataType) (value.DataType, error) { return fromKuksaDataType(int32(t)) }

// The legacy enum starts at STRING=0 and has no unspecified or timestamp
// member.
const sdvArrayBase = 20

// SDVDataType maps t to the legacy enum.
func SDVDataType(t value.DataType) (sdvv1.DataType, error) {
	e := t.Elem()
	if e == value.DataTypeUnspecified || e == value.DataTypeTimestamp || t > value.DataTypeTimestampArray {
		return 0, &clienterr.ConversionError{
			From: t.String(), To: "sdv.databroker.v1 data type", Reason: "no legacy equivalent",
		}
	}
	if t.IsArray() {
		return sdvv1.DataType(sdvArrayBase + int32(e) - 1), nil
	}
	return sdvv1.DataType(int32(t) - 1), nil
}

func FromSDVDataType(t sdvv1.DataType) (value.DataType, error) {
	last := int32(value.DataTypeDouble) - 1
	switch n := int32(t); {
	case n >= 0 && n <= last:
		return value.DataType(n + 1), nil
	case n >= sdvArrayBase && n <= sdvArrayBase+last:
		return value.DataType(n - sdvArrayBase + 1).ArrayOf(), nil
	}
	return value.DataTypeUnspecified, &clienterr.ConversionError{
		From: "sdv.databroker.v1 data type", To: "data type", Value: int32(t), Reason: "unknown data type",
	}
}

// kuksa.val v1 and v2 share the entry type numbering.
func fromKuksaEntryType(n int32) value.EntryType {
	switch n {
	case 1:
		return value.EntryTypeAttribute
	case 2:
		return value.EntryTypeSensor
	case 3:
		return value.EntryTypeActuator
	}
	return value.EntryTypeUnspecified
}

func toKuksaEntryType(t value.EntryType) int32 {
	switch t {
	case value.EntryTypeAttribute:
		return 1
	case value.EntryTypeSensor:
		return 2
	case value.EntryTypeActuator:
		return 3
	}
	return 0
}

func V2EntryType(t value.EntryType) valv2.EntryType      { return valv2.EntryType(toKuksaEntryType(t)) }
func V1EntryType(t value.EntryType) valv1.EntryType      { return valv1.EntryType(toKuksaEntryType(t)) }
func FromV2EntryType(t valv2.EntryType) value.EntryType  { return fromKuksaEntryType(int32(t)) }
func FromV1EntryType(t valv1.EntryType) value.EntryType  { return fromKuksaEntryType(int32(t)) }
func FromSDVEntryType(t sdvv1.EntryType) value.EntryType { return sdvEntryTypes[t] }
func SDVEntryType(t value.EntryType) sdvv1.EntryType     { return toSDVEntryTypes[t] }

var sdvEntryTypes = map[sdvv1.EntryType]value.EntryType{
	sdvv1.EntryTypeSensor:    value.EntryTypeSensor,
	sdvv1.EntryTypeActuator:  value.EntryTypeActuator,
	sdvv1.EntryTypeAttribute: value.EntryTypeAttribute,
}

var toSDVEntryTypes = map[value.EntryType]sdvv1.EntryType{
	value.EntryTypeSensor:    sdvv1.EntryTypeSensor,
	value.EntryTypeActuator:  sdvv1.EntryTypeActuator,
	value.EntryTypeAttribute: sdvv1.EntryTypeAttribute,
}

// V2MetadataToMetadata converts kuksa.val.v2 metadata, including its value
// restrictions, which are narrowed to the declared type.
func V2MetadataToMetadata(m *valv2.Metadata) (value.Metadata, error) {
	dt, err := FromV2DataType(m.DataType)
	if err != nil {
		return value.Metadata{}, err
	}
	et := FromV2EntryType(m.EntryType)
	md := value.Metadata{
		Path:        m.Path,
		ID:          m.ID,
		DataType:    dt,
		EntryType:   et,
		Description: m.Description,
		Comment:     m.Comment,
		Deprecation: m.Deprecation,
		Unit:        m.Unit,
		Access:      value.AccessFor(et),
	}
	elem := dt.Elem()
	if md.Min, err = FromV2Value(m.Min, elem); err != nil {
		return value.Metadata{}, restrictionErr(m.Path, "min", err)
	}
	if md.Max, err = FromV2Value(m.Max, elem); err != nil {
		return value.Metadata{}, restrictionErr(m.Path, "max", err)
	}
	if md.AllowedValues, err = FromV2Value(m.AllowedValues, elem.ArrayOf()); err != nil {
		return value.Metadata{}, restrictionErr(m.Path, "allowed values", err)
	}
	return md, nil
}

func restrictionErr(path, what string, err error) error {
	return fmt.Errorf("metadata of %s: %s: %w", path, what, err)
}

// MetadataToV2 converts md to kuksa.val.v2 form.
func MetadataToV2(md value.Metadata) *valv2.Metadata {
	return &valv2.Metadata{
		Path:          md.Path,
		ID:            md.ID,
		DataType:      V2DataType(md.DataType),
		EntryType:     V2EntryType(md.EntryType),
		Description:   md.Description,
		Comment:       md.Comment,
		Deprecation:   md.Deprecation,
		Unit:          md.Unit,
		Min:           ToV2Value(md.Min),
		Max:           ToV2Value(md.Max),
		AllowedValues: ToV2Value(md.AllowedValues),
	}
}

// V1MetadataToMetadata converts kuksa.val.v1 metadata of path. kuksa.val.v1
// has no numeric ids, so ID stays zero. The encoded value restriction is
// not interpreted.
func V1MetadataToMetadata(path string, m *valv1.Metadata) (value.Metadata, error) {
	dt, err := FromV1DataType(m.DataType)
	if err != nil {
		return value.Metadata{}, err
	}
	et := FromV1EntryType(m.EntryType)
	return value.Metadata{
		Path:        path,
		DataType:    dt,
		EntryType:   et,
		Description: m.Description,
		Comment:     m.Comment,
		Deprecation: m.Deprecation,
		Unit:        m.Unit,
		Access:      value.AccessFor(et),
	}, nil
}

func MetadataToV1(md value.Metadata) *valv1.Metadata {
	return &valv1.Metadata{
		DataType:    V1DataType(md.DataType),
		EntryType:   V1EntryType(md.EntryType),
		Description: md.Description,
		Comment:     md.Comment,
		Deprecation: md.Deprecation,
		Unit:        md.Unit,
	}
}

func SDVMetadataToMetadata(m *sdvv1.Metadata) (value.Metadata, error) {
	dt, err := FromSDVDataType(m.DataType)
	if err != nil {
		return value.Metadata{}, err
	}
	et := FromSDVEntryType(m.EntryType)
	return value.Metadata{
		Path:        m.Name,
		ID:          m.ID,
		DataType:    dt,
		EntryType:   et,
		Description: m.Description,
		Access:      value.AccessFor(et),
	}, nil
}

// MetadataToSDV converts md to legacy form. Signals that change over time
// are reported as ON_CHANGE, attributes as STATIC.
func MetadataToSDV(md value.Metadata) (*sdvv1.Metadata, error) {
	dt, err := SDVDataType(md.DataType)
	if err != nil {
		return nil, err
	}
	ct := sdvv1.ChangeTypeOnChange
	if md.EntryType == value.EntryTypeAttribute {
		ct = sdvv1.ChangeTypeStatic
	}
	return &sdvv1.Metadata{
		ID:          md.ID,
		EntryType:   SDVEntryType(md.EntryType),
		Name:        md.Path,
		DataType:    dt,
		ChangeType:  ct,
		Description: md.Description,
	}, nil
}

func V2MetadataToSDV(m *valv2.Metadata) (*sdvv1.Metadata, error) {
	md, err := V2MetadataToMetadata(m)
	if err != nil {
		return nil, err
	}
	return MetadataToSDV(md)
}

func V1MetadataToSDV(path string, m *valv1.Metadata) (*sdvv1.Metadata, error) {
	md, err := V1MetadataToMetadata(path, m)
	if err != nil {
		return nil, err
	}
	return MetadataToSDV(md)
}
