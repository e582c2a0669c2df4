package forward

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig configures a KafkaSink.
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	Topic        string   `yaml:"topic"`
	RequiredAcks int      `yaml:"required_acks,omitempty"`
	// AutoCreateTopic lets the broker create Topic on first write.
	AutoCreateTopic bool          `yaml:"auto_create_topic,omitempty"`
	Timeout         time.Duration `yaml:"timeout,omitempty"`
}

// KafkaSink writes every message to one topic, keyed by path so that
// updates of a signal stay ordered within a partition.
type KafkaSink struct {
	w *kafka.Writer
}

// NewKafkaSink returns a sink with a synchronous writer. Connections are
// opened lazily on the first write.
func NewKafkaSink(cfg KafkaConfig) *KafkaSink {
	return &KafkaSink{w: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           timeoutOr(cfg.Timeout),
		AllowAutoTopicCreation: cfg.AutoCreateTopic,
	}}
}

// KafkaMessages converts msgs into kafka records.
func KafkaMessages(msgs []Message) ([]kafka.Message, error) {
	out := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		payload, err := m.Payload()
		if err != nil {
			return nil, err
		}
		out = append(out, kafka.Message{Key: []byte(m.Path), Value: payload})
	}
	return out, nil
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Send(ctx context.Context, msgs []Message) error {
	records, err := KafkaMessages(msgs)
	if err != nil {
		return err
	}
	return s.w.WriteMessages(ctx, records...)
}

func (s *KafkaSink) Close() error { return s.w.Close() }
