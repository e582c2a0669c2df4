package channel

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"

	"github.com/kuksa-sdk/kuksa-go/pkg/auth"
	"github.com/kuksa-sdk/kuksa-go/pkg/log"
	"github.com/kuksa-sdk/kuksa-go/pkg/metrics"
)

// DefaultEndpoint is where a locally running databroker listens.
const DefaultEndpoint = "127.0.0.1:55555"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid channel configuration")

// Config configures a Manager.
type Config struct {
	// Endpoint is the gRPC target of the databroker.
	Endpoint string

	// TLS enables transport security. Exactly one of TLS and Insecure
	// must be set.
	TLS      *tls.Config
	Insecure bool

	// Tokens supplies the bearer token attached to each call. Nil sends
	// no authorization header.
	Tokens auth.TokenSource

	// DialOptions are appended after the options the Manager builds.
	DialOptions []grpc.DialOption

	// CallLogger receives one event per call and stream message. Nil
	// disables the call log.
	CallLogger log.Logger

	// Metrics, when set, is fed by every call.
	Metrics *metrics.Metrics

	// Logger is used for operational debug output. Nil disables it.
	Logger *slog.Logger
}

// DefaultConfig returns a Config for an unauthenticated local broker.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Insecure: true,
	}
}

// Validate checks if the config is usable.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: empty endpoint", ErrInvalidConfig)
	}
	if c.TLS != nil && c.Insecure {
		return fmt.Errorf("%w: TLS and Insecure are mutually exclusive", ErrInvalidConfig)
	}
	if c.TLS == nil && !c.Insecure {
		return fmt.Errorf("%w: neither TLS nor Insecure set", ErrInvalidConfig)
	}
	return nil
}
