package forward

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisSink. It works against Redis and Valkey.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	KeyPrefix string `yaml:"key_prefix,omitempty"`
	// Channel, when set, also receives every message via PUBLISH.
	Channel string        `yaml:"channel,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// RedisSink stores the latest message of each path under its own key.
type RedisSink struct {
	cfg    RedisConfig
	client *redis.Client
}

// NewRedisSink connects and pings the server.
func NewRedisSink(ctx context.Context, cfg RedisConfig) (*RedisSink, error) {
	timeout := timeoutOr(cfg.Timeout)
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect %s: %w", cfg.Addr, err)
	}
	return &RedisSink{cfg: cfg, client: client}, nil
}

// RedisKey joins key segments with colons, dropping empty segments.
func RedisKey(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.Trim(s, ":"); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ":")
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, msgs []Message) error {
	pipe := s.client.Pipeline()
	for _, m := range msgs {
		payload, err := m.Payload()
		if err != nil {
			return err
		}
		pipe.Set(ctx, RedisKey(s.cfg.KeyPrefix, m.Path), payload, 0)
		if s.cfg.Channel != "" {
			pipe.Publish(ctx, s.cfg.Channel, payload)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisSink) Close() error { return s.client.Close() }
