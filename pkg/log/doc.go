// Package log provides a binary call log of the RPC traffic between a
// client and the databroker.
//
// The call log is separate from operational logging (slog): it records one
// machine-readable event per unary call, per stream lifecycle step and per
// channel state change, so a session can be replayed and filtered later.
//
// # Basic Usage
//
// Applications enable the call log through the channel configuration:
//
//	// For development: log to console via slog
//	cfg.CallLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.CallLogger, _ = log.NewFileLogger("/var/log/kuksa/client.klog")
//
//	// Both: use MultiLogger
//	cfg.CallLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - CallEvent: a completed unary call with method, status code and duration
//   - StreamEvent: open, message and close of a server stream
//   - StateChangeEvent: channel lifecycle (connecting, ready, closed)
//   - ErrorEventData: failures outside a call, e.g. an unusable token source
//
// # File Format
//
// Log files are a sequence of CBOR-encoded events with integer keys. The
// kuksa-log command reads, filters and prints them.
package log
