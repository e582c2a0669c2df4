// Package config loads client profiles from YAML.
//
// A profile names the broker, the protocol generation, credentials and
// optional forwarding sinks:
//
//	endpoint: 127.0.0.1:55555
//	generation: v2
//	token_file: /etc/kuksa/provider.token
//	call_log: /var/log/kuksa/calls.cbor
//	log_level: debug
//	forward:
//	  mqtt:
//	    broker: tcp://localhost:1883
//	    topic_prefix: vehicle
package config

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kuksa-sdk/kuksa-go/pkg/auth"
	"github.com/kuksa-sdk/kuksa-go/pkg/channel"
	"github.com/kuksa-sdk/kuksa-go/pkg/discovery"
	"github.com/kuksa-sdk/kuksa-go/pkg/forward"
	"github.com/kuksa-sdk/kuksa-go/pkg/kuksa"
	"github.com/kuksa-sdk/kuksa-go/pkg/log"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config is a client profile.
type Config struct {
	Endpoint   string     `yaml:"endpoint"`
	Generation string     `yaml:"generation"`
	TLS        *TLSConfig `yaml:"tls,omitempty"`

	// Token and TokenFile are mutually exclusive.
	Token     string `yaml:"token,omitempty"`
	TokenFile string `yaml:"token_file,omitempty"`

	CallLog       string `yaml:"call_log,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	MetricsListen string `yaml:"metrics_listen,omitempty"`

	// Interface limits mDNS browsing for mdns:/// endpoints.
	Interface string `yaml:"interface,omitempty"`

	Forward forward.Config `yaml:"forward,omitempty"`
}

// TLSConfig points at PEM files. CertFile and KeyFile enable client
// certificates and must be set together.
type TLSConfig struct {
	CAFile     string `yaml:"ca_file,omitempty"`
	CertFile   string `yaml:"cert_file,omitempty"`
	KeyFile    string `yaml:"key_file,omitempty"`
	ServerName string `yaml:"server_name,omitempty"`
}

// Default returns a profile for a local insecure kuksa.val.v2 broker.
func Default() *Config {
	return &Config{
		Endpoint:   channel.DefaultEndpoint,
		Generation: string(kuksa.GenerationV2),
		LogLevel:   "info",
	}
}

// Load reads and validates the profile at path. Relative file paths in
// the profile are resolved against the directory of path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) resolvePaths(dir string) {
	resolve := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	resolve(&c.TokenFile)
	resolve(&c.CallLog)
	if c.TLS != nil {
		resolve(&c.TLS.CAFile)
		resolve(&c.TLS.CertFile)
		resolve(&c.TLS.KeyFile)
	}
}

// Parse decodes data over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("endpoint is required"))
	}
	if _, err := kuksa.ParseGeneration(c.Generation); err != nil {
		errs = append(errs, err)
	}
	if c.Token != "" && c.TokenFile != "" {
		errs = append(errs, errors.New("token and token_file are mutually exclusive"))
	}
	if c.TLS != nil && (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("tls.cert_file and tls.key_file must be set together"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := c.Forward.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Gen returns the parsed generation. It is only meaningful on a
// validated Config.
func (c *Config) Gen() kuksa.Generation {
	g, _ := kuksa.ParseGeneration(c.Generation)
	return g
}

// SlogLevel returns the operational log level, info when unset.
func (c *Config) SlogLevel() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// ChannelConfig builds the channel settings for the profile. The returned
// function closes the call log file, if any.
func (c *Config) ChannelConfig(logger *slog.Logger) (channel.Config, func() error, error) {
	cc := channel.Config{Endpoint: c.Endpoint, Logger: logger}
	closeFn := func() error { return nil }

	if c.TLS != nil {
		tc, err := c.TLS.build()
		if err != nil {
			return channel.Config{}, nil, err
		}
		cc.TLS = tc
	} else {
		cc.Insecure = true
	}

	switch {
	case c.Token != "":
		cc.Tokens = auth.StaticToken(c.Token)
	case c.TokenFile != "":
		cc.Tokens = auth.FileToken{Path: c.TokenFile}
	}

	if strings.HasPrefix(c.Endpoint, discovery.Scheme+":") {
		cc.DialOptions = append(cc.DialOptions, discovery.NewBuilder(c.Interface, logger).DialOption())
	}

	// At debug level call events are echoed to the operational log too.
	var sinks []log.Logger
	if logger != nil && c.SlogLevel() <= slog.LevelDebug {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}
	if c.CallLog != "" {
		fl, err := log.NewFileLogger(c.CallLog)
		if err != nil {
			return channel.Config{}, nil, fmt.Errorf("open call log: %w", err)
		}
		sinks = append(sinks, fl)
		closeFn = fl.Close
	}
	switch len(sinks) {
	case 0:
	case 1:
		cc.CallLogger = sinks[0]
	default:
		cc.CallLogger = log.NewMultiLogger(sinks...)
	}
	return cc, closeFn, nil
}

func (t *TLSConfig) build() (*tls.Config, error) {
	tc := &tls.Config{MinVersion: tls.VersionTLS12, ServerName: t.ServerName}
	if t.CAFile != "" {
		pem, err := os.ReadFile(t.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca_file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("ca_file %s: no certificates found", t.CAFile)
		}
		tc.RootCAs = pool
	}
	if t.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tc.Certificates = []tls.Certificate{cert}
	}
	return tc, nil
}
