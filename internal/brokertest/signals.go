package brokertest

import "github.com/kuksa-sdk/kuksa-go/pkg/value"

// Well-known signal paths used across tests.
const (
	Speed    = "Vehicle.Speed"
	Position = "Vehicle.Cabin.Seat.Row1.DriverSide.Position"
	HighBeam = "Vehicle.Body.Lights.Beam.High.IsOn"
	VIN      = "Vehicle.VehicleIdentification.VIN"
	DTCList  = "Vehicle.OBD.DTCList"
	Odometer = "Vehicle.TraveledDistance"
)

// VSS returns a small Vehicle Signal Specification tree with one signal of
// each entry type and a spread of data types.
func VSS() []value.Metadata {
	return []value.Metadata{
		{Path: Speed, DataType: value.DataTypeFloat, EntryType: value.EntryTypeSensor, Unit: "km/h", Description: "Vehicle speed."},
		{Path: Position, DataType: value.DataTypeUint8, EntryType: value.EntryTypeActuator, Unit: "percent", Description: "Seat position on vehicle x-axis."},
		{Path: HighBeam, DataType: value.DataTypeBool, EntryType: value.EntryTypeActuator, Description: "Is high beam on."},
		{Path: VIN, DataType: value.DataTypeString, EntryType: value.EntryTypeAttribute, Description: "Vehicle identification number."},
		{Path: DTCList, DataType: value.DataTypeStringArray, EntryType: value.EntryTypeSensor, Description: "List of currently active DTCs."},
		{Path: Odometer, DataType: value.DataTypeDouble, EntryType: value.EntryTypeSensor, Unit: "km", Description: "Odometer reading."},
	}
}
