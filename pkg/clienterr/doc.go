// Package clienterr defines the error taxonomy returned by every databroker
// client in this module.
//
// A failing call returns exactly one of:
//
//   - *TransportError: the RPC itself failed (connection, status code,
//     cancellation). Never retried by the client.
//   - *FunctionError: the broker answered but rejected one or more entries.
//     All error records of the response are kept, in response order.
//   - *ConversionError: a value or identifier could not be translated
//     between representations without loss.
//   - *UnsupportedOperationError: the operation has no equivalent in the
//     protocol generation the client speaks.
//
// Use CategoryOf or the Is helpers to branch on the category; errors.As
// works for the concrete types.
package clienterr
