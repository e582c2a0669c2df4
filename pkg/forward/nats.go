package forward

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures a NATSSink.
type NATSConfig struct {
	URL           string        `yaml:"url"`
	SubjectPrefix string        `yaml:"subject_prefix,omitempty"`
	Name          string        `yaml:"name,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
}

// NATSSink publishes every message on a subject derived from its path.
type NATSSink struct {
	cfg  NATSConfig
	conn *nats.Conn
}

// NewNATSSink connects to the server.
func NewNATSSink(cfg NATSConfig) (*NATSSink, error) {
	opts := []nats.Option{
		nats.Timeout(timeoutOr(cfg.Timeout)),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}
	if cfg.Name != "" {
		opts = append(opts, nats.Name(cfg.Name))
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
	}
	return &NATSSink{cfg: cfg, conn: conn}, nil
}

// NATSSubject maps a signal path to a subject. VSS path segments are
// already valid subject tokens.
func NATSSubject(prefix, path string) string {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return path
	}
	return prefix + "." + path
}

func (s *NATSSink) Name() string { return "nats" }

func (s *NATSSink) Send(ctx context.Context, msgs []Message) error {
	for _, m := range msgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := m.Payload()
		if err != nil {
			return err
		}
		if err := s.conn.Publish(NATSSubject(s.cfg.SubjectPrefix, m.Path), payload); err != nil {
			return fmt.Errorf("publish %s: %w", m.Path, err)
		}
	}
	return nil
}

// Close flushes pending messages before closing the connection.
func (s *NATSSink) Close() error { return s.conn.Drain() }
