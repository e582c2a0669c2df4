package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuksa-sdk/kuksa-go/pkg/auth"
	"github.com/kuksa-sdk/kuksa-go/pkg/channel"
	"github.com/kuksa-sdk/kuksa-go/pkg/kuksa"
	"github.com/kuksa-sdk/kuksa-go/pkg/log"
)

const fullProfile = `
endpoint: broker.local:55556
generation: sdv
token: secret
log_level: debug
metrics_listen: ":9100"
forward:
  mqtt:
    broker: tcp://localhost:1883
    topic_prefix: car
    qos: 1
    timeout: 2s
  kafka:
    brokers: [localhost:9092]
    topic: signals
`

func TestParseFullProfile(t *testing.T) {
	cfg, err := Parse([]byte(fullProfile))
	require.NoError(t, err)

	assert.Equal(t, "broker.local:55556", cfg.Endpoint)
	assert.Equal(t, kuksa.GenerationSDV, cfg.Gen())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, ":9100", cfg.MetricsListen)
	require.NotNil(t, cfg.Forward.MQTT)
	assert.Equal(t, "car", cfg.Forward.MQTT.TopicPrefix)
	assert.Equal(t, byte(1), cfg.Forward.MQTT.QoS)
	assert.Equal(t, 2*time.Second, cfg.Forward.MQTT.Timeout)
	require.NotNil(t, cfg.Forward.Kafka)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Forward.Kafka.Brokers)
	assert.Nil(t, cfg.Forward.Redis)
	assert.True(t, cfg.Forward.Enabled())
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, kuksa.GenerationV2, cfg.Gen())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("endpoint: x:1\nendpiont: y:2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpiont")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, "endpoint is required"},
		{"unknown generation", func(c *Config) { c.Generation = "v3" }, "unknown generation"},
		{"token and file", func(c *Config) { c.Token, c.TokenFile = "a", "b" }, "mutually exclusive"},
		{"half client cert", func(c *Config) { c.TLS = &TLSConfig{CertFile: "c.pem"} }, "set together"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kuksa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation: kuksa.val.v1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, kuksa.GenerationV1, cfg.Gen())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kuksa.yaml")
	profile := "token_file: secrets/token\ncall_log: /var/log/calls.cbor\ntls:\n  ca_file: ca.pem\n"
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "secrets", "token"), cfg.TokenFile)
	assert.Equal(t, "/var/log/calls.cbor", cfg.CallLog)
	assert.Equal(t, filepath.Join(dir, "ca.pem"), cfg.TLS.CAFile)
}

func TestParseReportsYAMLErrors(t *testing.T) {
	_, err := Parse([]byte("endpoint: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML parse error")
}

func TestChannelConfig(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(tokenPath, []byte("jwt\n"), 0o600))

	cfg := Default()
	cfg.TokenFile = tokenPath
	cfg.CallLog = filepath.Join(dir, "calls.cbor")

	cc, closeFn, err := cfg.ChannelConfig(nil)
	require.NoError(t, err)
	defer closeFn()

	assert.True(t, cc.Insecure)
	assert.Nil(t, cc.TLS)
	assert.Equal(t, channel.DefaultEndpoint, cc.Endpoint)
	assert.NotNil(t, cc.CallLogger)
	assert.Empty(t, cc.DialOptions)
	require.IsType(t, auth.FileToken{}, cc.Tokens)
	tok, err := cc.Tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
	assert.NoError(t, cc.Validate())
}

func TestChannelConfigDebugEchoesCallLog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := Default()
	cc, _, err := cfg.ChannelConfig(logger)
	require.NoError(t, err)
	assert.Nil(t, cc.CallLogger)

	cfg.LogLevel = "debug"
	cc, _, err = cfg.ChannelConfig(logger)
	require.NoError(t, err)
	assert.IsType(t, &log.SlogAdapter{}, cc.CallLogger)

	cfg.CallLog = filepath.Join(t.TempDir(), "calls.cbor")
	cc, closeFn, err := cfg.ChannelConfig(logger)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &log.MultiLogger{}, cc.CallLogger)
}

func TestChannelConfigMDNSEndpoint(t *testing.T) {
	cfg := Default()
	cfg.Endpoint = "mdns:///_kuksa._tcp"
	cfg.Token = "static"

	cc, closeFn, err := cfg.ChannelConfig(nil)
	require.NoError(t, err)
	defer closeFn()

	assert.Len(t, cc.DialOptions, 1)
	assert.Equal(t, auth.StaticToken("static"), cc.Tokens)
}

func TestChannelConfigTLS(t *testing.T) {
	cfg := Default()
	cfg.TLS = &TLSConfig{CAFile: filepath.Join(t.TempDir(), "missing.pem")}
	_, _, err := cfg.ChannelConfig(nil)
	assert.ErrorContains(t, err, "ca_file")

	empty := filepath.Join(t.TempDir(), "empty.pem")
	require.NoError(t, os.WriteFile(empty, []byte("not a certificate"), 0o600))
	cfg.TLS = &TLSConfig{CAFile: empty, ServerName: "databroker"}
	_, _, err = cfg.ChannelConfig(nil)
	assert.ErrorContains(t, err, "no certificates")

	cfg.TLS = &TLSConfig{ServerName: "databroker"}
	cc, _, err := cfg.ChannelConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, cc.TLS)
	assert.Equal(t, "databroker", cc.TLS.ServerName)
	assert.False(t, cc.Insecure)
}
