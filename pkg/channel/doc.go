// Package channel manages the gRPC connection a databroker client uses.
//
// A Manager creates its *grpc.ClientConn on the first call to Channel
// and hands the same connection to every later call. Connection setup is
// never retried; a failure is returned as a *clienterr.TransportError and
// the next call to Channel tries again.
//
// Every outgoing call passes through a fixed interceptor chain:
//
//	auth      stamps "authorization: Bearer <token>" from the TokenSource
//	call log  records the call in the pkg/log call log
//	metrics   feeds the pkg/metrics collectors
//
// Endpoints use gRPC target syntax: "host:port", "unix:///run/broker.sock",
// "mdns:///_kuksa._tcp" (see pkg/discovery) or "passthrough:///bufnet" in
// tests.
package channel
