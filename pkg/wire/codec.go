package wire

import (
	"errors"
	"fmt"

	"google.golang.org/grpc"
)

// ErrNotMessage is returned by Codec for values that do not implement Message.
var ErrNotMessage = errors.New("value does not implement wire.Message")

// Message is implemented by every message in the generation packages.
type Message interface {
	MarshalProto() ([]byte, error)
	UnmarshalProto(b []byte) error
}

// Codec is a grpc encoding.Codec for Message values.
type Codec struct{}

// Name returns "proto" so requests carry content-type application/grpc+proto.
func (Codec) Name() string { return "proto" }

// Marshal encodes v.
func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotMessage, v)
	}
	return m.MarshalProto()
}

// Unmarshal decodes data into v.
func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotMessage, v)
	}
	if err := m.UnmarshalProto(data); err != nil {
		return fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return nil
}

// CallOption forces Codec on a client call.
func CallOption() grpc.CallOption {
	return grpc.ForceCodec(Codec{})
}

// ServerOption forces Codec on every service of a server.
func ServerOption() grpc.ServerOption {
	return grpc.ForceServerCodec(Codec{})
}
