// Package wire holds the protobuf plumbing shared by the databroker
// protocol packages.
//
// Messages in the generation sub-packages (valv2, valv1, sdvv1) are
// transcribed field for field from the upstream .proto definitions and
// encode themselves with google.golang.org/protobuf/encoding/protowire.
// They implement Message, and Codec carries them over gRPC under the
// "proto" content-subtype, so the databroker sees ordinary protobuf.
//
// The codec is applied per call (CallOption) or per server (ServerOption);
// it is never registered globally and does not replace the default gRPC
// proto codec for other services in the process.
package wire
