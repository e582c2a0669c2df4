// Package discovery resolves databroker endpoints advertised over
// mDNS/DNS-SD.
//
// The Builder registers the gRPC resolver scheme "mdns". A target names
// the DNS-SD service type to browse:
//
//	mdns:///_kuksa._tcp
//
// An empty service falls back to DefaultService. Every instance found is
// aggregated by instance name; addresses seen on several interfaces are
// merged into one entry and dropped again when the interface goes away.
// The resolver pushes the addresses of all live instances, ordered by
// instance name, so the default pick_first policy settles on the same
// broker across restarts.
package discovery
