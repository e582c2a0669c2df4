// Package value is the generation-neutral data model shared by every
// databroker client in this module.
//
// A Value is a tagged union over the scalar and array types a vehicle
// signal can carry. Exactly one tag is active; the zero Value has none and
// stands for "no value", which is distinct from an empty string or zero
// number.
//
//	v := value.Float32Value(30)
//	f, ok := value.As[float32](v)
//
// Values typed by a person or read from configuration go through
// ParseValue, which validates the text against the declared DataType and
// fails rather than coercing:
//
//	v, err := value.ParseValue("[1, 2, 3]", value.DataTypeUint8Array)
//
// Format is the inverse of ParseValue for canonical text.
package value
