package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	pkgkafka "github.com/crisgp1/cliquealo.mx-sub002/pkg/kafka"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/event"
)

// MessageWriter is the subset of pkgkafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka.
// Messages are keyed by aggregate ID so one application's history stays on
// one partition.
type EventPublisher struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger
}

func NewEventPublisher(writer MessageWriter, topic string, logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{writer: writer, topic: topic, logger: logger}
}

// Publish serialises and sends domain events to Kafka.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"event_id":       evt.EventID(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}

	if err := p.writer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
