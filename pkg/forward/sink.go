package forward

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sink receives the messages of one subscription update.
type Sink interface {
	Name() string
	Send(ctx context.Context, msgs []Message) error
	Close() error
}

// DefaultTimeout bounds connecting and publishing when a sink config
// leaves Timeout unset.
const DefaultTimeout = 5 * time.Second

// Config selects the sinks to open. Nil sections are skipped.
type Config struct {
	MQTT  *MQTTConfig  `yaml:"mqtt,omitempty"`
	Kafka *KafkaConfig `yaml:"kafka,omitempty"`
	Redis *RedisConfig `yaml:"redis,omitempty"`
	NATS  *NATSConfig  `yaml:"nats,omitempty"`
}

// Enabled reports whether any sink is configured.
func (c Config) Enabled() bool {
	return c.MQTT != nil || c.Kafka != nil || c.Redis != nil || c.NATS != nil
}

// Validate checks every configured section.
func (c Config) Validate() error {
	var errs []error
	if c.MQTT != nil && c.MQTT.Broker == "" {
		errs = append(errs, errors.New("forward.mqtt: broker is required"))
	}
	if c.Kafka != nil {
		if len(c.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("forward.kafka: brokers are required"))
		}
		if c.Kafka.Topic == "" {
			errs = append(errs, errors.New("forward.kafka: topic is required"))
		}
	}
	if c.Redis != nil && c.Redis.Addr == "" {
		errs = append(errs, errors.New("forward.redis: addr is required"))
	}
	if c.NATS != nil && c.NATS.URL == "" {
		errs = append(errs, errors.New("forward.nats: url is required"))
	}
	return errors.Join(errs...)
}

// Open connects every configured sink. On failure the sinks opened so far
// are closed again.
func (c Config) Open(ctx context.Context) ([]Sink, error) {
	var sinks []Sink
	fail := func(err error) ([]Sink, error) {
		for _, s := range sinks {
			_ = s.Close()
		}
		return nil, err
	}

	if c.MQTT != nil {
		s, err := NewMQTTSink(*c.MQTT)
		if err != nil {
			return fail(fmt.Errorf("open mqtt sink: %w", err))
		}
		sinks = append(sinks, s)
	}
	if c.Kafka != nil {
		sinks = append(sinks, NewKafkaSink(*c.Kafka))
	}
	if c.Redis != nil {
		s, err := NewRedisSink(ctx, *c.Redis)
		if err != nil {
			return fail(fmt.Errorf("open redis sink: %w", err))
		}
		sinks = append(sinks, s)
	}
	if c.NATS != nil {
		s, err := NewNATSSink(*c.NATS)
		if err != nil {
			return fail(fmt.Errorf("open nats sink: %w", err))
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func timeoutOr(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}
