package forward

import (
	"context"
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig configures an MQTTSink.
type MQTTConfig struct {
	// Broker is a paho broker URL such as tcp://localhost:1883.
	Broker      string        `yaml:"broker"`
	ClientID    string        `yaml:"client_id,omitempty"`
	Username    string        `yaml:"username,omitempty"`
	Password    string        `yaml:"password,omitempty"`
	TopicPrefix string        `yaml:"topic_prefix,omitempty"`
	QoS         byte          `yaml:"qos,omitempty"`
	Retain      bool          `yaml:"retain,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// MQTTSink publishes every message to a topic derived from its path.
type MQTTSink struct {
	cfg    MQTTConfig
	client pahomqtt.Client
}

// NewMQTTSink connects to the broker.
func NewMQTTSink(cfg MQTTConfig) (*MQTTSink, error) {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetKeepAlive(30 * time.Second)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeoutOr(cfg.Timeout)) {
		return nil, fmt.Errorf("connect %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Broker, err)
	}
	return &MQTTSink{cfg: cfg, client: client}, nil
}

// MQTTTopic maps a signal path to a topic: dots become levels below prefix.
func MQTTTopic(prefix, path string) string {
	topic := strings.ReplaceAll(path, ".", "/")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return topic
	}
	return prefix + "/" + topic
}

func (s *MQTTSink) Name() string { return "mqtt" }

func (s *MQTTSink) Send(ctx context.Context, msgs []Message) error {
	for _, m := range msgs {
		payload, err := m.Payload()
		if err != nil {
			return err
		}
		token := s.client.Publish(MQTTTopic(s.cfg.TopicPrefix, m.Path), s.cfg.QoS, s.cfg.Retain, payload)
		select {
		case <-token.Done():
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(timeoutOr(s.cfg.Timeout)):
			return fmt.Errorf("publish %s: timeout", m.Path)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", m.Path, err)
		}
	}
	return nil
}

func (s *MQTTSink) Close() error {
	s.client.Disconnect(250)
	return nil
}
