package value

import "time"

// Datapoint is a value plus the time it was observed. A Datapoint with an
// empty Value means the signal has no current value.
type Datapoint struct {
	Timestamp time.Time
	Value     Value
}

// HasValue reports whether the datapoint carries a value.
func (d Datapoint) HasValue() bool { return !d.Value.IsEmpty() }

// EntryType classifies a signal.
type EntryType uint8

const (
	EntryTypeUnspecified EntryType = iota
	EntryTypeSensor
	EntryTypeActuator
	EntryTypeAttribute
)

// String returns the VSS name of the entry type.
func (e EntryType) String() string {
	switch e {
	case EntryTypeSensor:
		return "sensor"
	case EntryTypeActuator:
		return "actuator"
	case EntryTypeAttribute:
		return "attribute"
	default:
		return "unspecified"
	}
}

// Access flags describe what a client may do with a signal.
type Access uint8

const (
	// AccessRead allows get and subscribe.
	AccessRead Access = 1 << iota

	// AccessPublish allows setting the current value.
	AccessPublish

	// AccessActuate allows setting the target value.
	AccessActuate
)

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanPublish returns true if publishing current values is allowed.
func (a Access) CanPublish() bool { return a&AccessPublish != 0 }

// CanActuate returns true if setting target values is allowed.
func (a Access) CanActuate() bool { return a&AccessActuate != 0 }

// String returns the access flags as a string.
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "R"
	}
	if a.CanPublish() {
		s += "P"
	}
	if a.CanActuate() {
		s += "A"
	}
	if s == "" {
		return "-"
	}
	return s
}

// AccessFor returns the entitlements the broker grants by entry type when
// the protocol does not report them explicitly.
func AccessFor(t EntryType) Access {
	switch t {
	case EntryTypeSensor:
		return AccessRead | AccessPublish
	case EntryTypeActuator:
		return AccessRead | AccessPublish | AccessActuate
	case EntryTypeAttribute:
		return AccessRead | AccessPublish
	}
	return AccessRead
}

// Metadata describes a signal.
type Metadata struct {
	Path string

	// ID is the numeric identifier used by generations that address
	// signals by id. Zero when the generation has none.
	ID int32

	DataType    DataType
	EntryType   EntryType
	Description string
	Comment     string
	Deprecation string
	Unit        string
	Access      Access

	// Min, Max and AllowedValues are empty when unrestricted.
	Min           Value
	Max           Value
	AllowedValues Value
}

// Entry is a path with its current value, target value and metadata, each
// optional.
type Entry struct {
	Path     string
	Value    *Datapoint
	Target   *Datapoint
	Metadata *Metadata
}

// View selects which facet of an entry a get or subscribe call asks for.
type View uint8

const (
	ViewCurrentValue View = iota + 1
	ViewTargetValue
	ViewMetadata
)

// String returns the view name.
func (v View) String() string {
	switch v {
	case ViewCurrentValue:
		return "current"
	case ViewTargetValue:
		return "target"
	case ViewMetadata:
		return "metadata"
	default:
		return "unspecified"
	}
}

// Field is a bit set naming the entry fields a caller wants populated.
type Field uint8

const (
	FieldPath Field = 1 << iota
	FieldValue
	FieldActuatorTarget
	FieldMetadata
)

// Has reports whether all bits of g are set in f.
func (f Field) Has(g Field) bool { return f&g == g }
