// Package kuksa is a client for the KUKSA databroker that speaks all three
// generations of its gRPC interface:
//
//	ClientV2   kuksa.val.v2 (current)
//	ClientV1   kuksa.val.v1 (previous stable)
//	ClientSDV  sdv.databroker.v1 (legacy)
//
// Each client implements the capability contracts ValueAccess and
// MetadataAccess on its own generation's shapes; ClientSDV also implements
// SubscriptionAccess. ClientV1.Legacy and ClientV2.Legacy expose the legacy
// SubscriptionAccess contract on top of the newer generations, and every
// client has a Unified view whose shapes come from pkg/value so that code
// written against it runs on any generation.
//
// # Batches
//
// kuksa.val.v1 and kuksa.val.v2 writes and reads take one remote call per
// path, issued in caller order. Batches are fail-fast: for updates
// [A, B, C] where B fails, A has been applied, the error for B is
// returned, C is never sent, and the returned BatchResult lists [A] in
// Applied. Nothing is rolled back.
//
// Legacy batches are maps. When a newer generation serves a legacy batch
// the map is applied in sorted path order under the same policy.
//
// # Errors
//
// Every failing call returns exactly one of the pkg/clienterr categories:
// a *TransportError for status and connection failures, a *FunctionError
// for error records embedded in a response, a *ConversionError when a
// value or query cannot be expressed in the target generation, and an
// *UnsupportedOperationError for contract methods a generation has no
// equivalent for. Nothing is retried.
//
// # Concurrency
//
// A client owns one channel.Manager and thus one connection. Calls on one
// client may be issued from several goroutines. A Subscription is driven
// by its caller and must only be read from one goroutine.
package kuksa
