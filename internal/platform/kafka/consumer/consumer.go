// Package consumer wraps the franz-go client with the poll/handle/commit
// loop shared by every Kafka intake in the service.
package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is the handler-facing view of one Kafka record.
type Message struct {
	Topic     string
	Partition int32
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

// Handler processes one message. Returning an error marks the message
// failed; the consumer logs it and moves on rather than wedging the
// partition on a poison record.
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Config carries the connection settings for one consumer group.
type Config struct {
	Brokers  []string
	Group    string
	Topics   []string
	ClientID string
}

// Consumer runs the poll loop for one consumer group.
type Consumer struct {
	client  *kgo.Client
	handler Handler
	logger  *slog.Logger
}

// New connects a consumer group over the given topics.
func New(cfg Config, handler Handler, logger *slog.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer requires at least one broker")
	}
	if handler == nil {
		return nil, fmt.Errorf("kafka consumer requires a handler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topics...),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Consumer{client: client, handler: handler, logger: logger}, nil
}

// Run polls until the context is cancelled or the client is closed.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.ErrorContext(ctx, "kafka fetch error",
				"topic", topic, "partition", partition, "error", err)
		})

		fetches.EachRecord(func(record *kgo.Record) {
			msg := &Message{
				Topic:     record.Topic,
				Partition: record.Partition,
				Key:       record.Key,
				Value:     record.Value,
				Timestamp: record.Timestamp,
			}
			if err := c.handler.Handle(ctx, msg); err != nil {
				c.logger.WarnContext(ctx, "message handler failed, skipping record",
					"topic", record.Topic, "partition", record.Partition,
					"offset", record.Offset, "error", err)
			}
		})
	}
}

// Close shuts the client down and leaves the group cleanly.
func (c *Consumer) Close() {
	c.client.Close()
}
