package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes a consumed Kafka message.
type Handler func(ctx context.Context, msg Message) error

// Retry bounds for a failing handler before the consumer gives up.
const (
	DefaultHandlerRetries = 5
	defaultRetryInitial   = 200 * time.Millisecond
	defaultRetryMax       = 5 * time.Second
)

// ErrHandlerExhausted is returned by Start when a message still fails after
// every retry. The message is left uncommitted so it is redelivered.
var ErrHandlerExhausted = errors.New("kafka: handler retries exhausted")

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer wraps kafka-go reader for consuming messages.
type Consumer struct {
	reader  messageReader
	topic   string
	group   string
	handler Handler
	logger  *slog.Logger

	maxRetries   uint64
	retryInitial time.Duration
	retryMax     time.Duration
}

// NewConsumer creates a new Consumer for the given topic with the provided handler.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) *Consumer {
	readerCfg := kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
	}

	if cfg.TLS || cfg.SASLEnabled {
		readerCfg.Dialer = &kafkago.Dialer{
			TLS:           cfg.tlsConfig(),
			SASLMechanism: cfg.saslMechanism(),
			DualStack:     true,
		}
	}

	return newConsumer(kafkago.NewReader(readerCfg), topic, cfg.ConsumerGroup, handler, logger)
}

func newConsumer(reader messageReader, topic, group string, handler Handler, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader:       reader,
		topic:        topic,
		group:        group,
		handler:      handler,
		logger:       logger,
		maxRetries:   DefaultHandlerRetries,
		retryInitial: defaultRetryInitial,
		retryMax:     defaultRetryMax,
	}
}

// Start begins consuming messages. Blocks until the context is canceled.
//
// A failing handler is retried with exponential backoff. When the retries run
// out Start returns ErrHandlerExhausted without committing, so offsets never
// move past an unprocessed message.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting", "topic", c.topic, "group", c.group)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handle(ctx, m); err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("%w: topic %s partition %d offset %d: %w",
				ErrHandlerExhausted, m.Topic, m.Partition, m.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, m kafkago.Message) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInitial
	policy.MaxInterval = c.retryMax
	policy.MaxElapsedTime = 0

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := c.handler(ctx, toMessage(m))
		if err != nil {
			c.logger.Warn("handler error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"attempt", attempt,
				"error", err,
			)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx))
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}

func toMessage(m kafkago.Message) Message {
	msg := Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
