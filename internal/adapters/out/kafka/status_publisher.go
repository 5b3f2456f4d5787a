// Package kafka publishes parcel status change events to a Kafka topic.
// Events are serialized as JSON and keyed by tracking id, so all transitions
// of one parcel land on the same partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"parceltrack/internal/core/ports"

	"github.com/IBM/sarama"
)

// StatusPublisher delivers parcel status events through a sarama sync producer.
type StatusPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewStatusPublisher connects a sync producer to the given brokers.
// The producer waits for broker acknowledgement so a nil error from publish
// means the event is stored.
func NewStatusPublisher(brokers []string, topic string, logger *slog.Logger) (*StatusPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &StatusPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_status_publisher"),
	}, nil
}

// PublishStatusChanged sends one status change event, keyed by tracking id.
func (p *StatusPublisher) PublishStatusChanged(ctx context.Context, event ports.ParcelStatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.TrackingID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send status event: %w", err)
	}

	p.logger.DebugContext(ctx, "published status change event",
		"trackingId", event.TrackingID,
		"status", event.Status,
		"partition", partition,
		"offset", offset)

	return nil
}

// Close shuts down the underlying producer.
func (p *StatusPublisher) Close() error {
	return p.producer.Close()
}

// NoopStatusPublisher discards events. Used when no broker is configured.
type NoopStatusPublisher struct{}

// PublishStatusChanged does nothing.
func (NoopStatusPublisher) PublishStatusChanged(_ context.Context, _ ports.ParcelStatusEvent) error {
	return nil
}
