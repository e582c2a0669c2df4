// Package convert translates values, datapoints, metadata and subscription
// requests between the generation-neutral model in package value and the
// wire shapes of kuksa.val.v2, kuksa.val.v1 and sdv.databroker.v1.
//
// All functions are pure. A conversion either succeeds completely or
// returns a *clienterr.ConversionError; destinations are never partially
// filled.
//
// Numeric rules:
//
//   - Widening always succeeds: int8/int16 to int32, uint8/uint16 to
//     uint32, uint32 to uint64 or int64, int32 to int64, any integer to
//     float32 or float64 (precision loss is accepted).
//   - Narrowing checks the range and fails instead of truncating, e.g. a
//     uint32 >= 2^31 does not convert to int32. Floats convert to integers
//     only when they are integral and in range.
//   - Arrays convert element-wise and fail as a whole.
//   - Strings and booleans convert only to themselves.
package convert
