package events

import (
	"context"
	"encoding/json"
	"fmt"

	"shipquickr/internal/core/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is the subset of kafka.Writer the producer needs, so tests can record messages.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher is the port services use to emit domain events.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// KafkaProducer publishes JSON-encoded events to a single topic.
type KafkaProducer struct {
	writer Writer
}

// NewKafkaProducer creates a producer writing to the given brokers and topic.
// Messages with the same key (the order ID) land on the same partition.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// NewKafkaProducerWithWriter allows injecting a test writer.
func NewKafkaProducerWithWriter(w Writer) *KafkaProducer {
	return &KafkaProducer{writer: w}
}

// Publish marshals the value to JSON and writes a message with the given key.
func (p *KafkaProducer) Publish(ctx context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{Key: []byte(key), Value: b}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	logger.Get().Debug("Event published", zap.String("key", key), zap.Int("bytes", len(b)))
	return nil
}

// Close closes the underlying writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	return nil
}

// Close implements Publisher.
func (NoopPublisher) Close() error { return nil }

// New returns a Kafka producer, or a NoopPublisher when brokers is empty.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		logger.Get().Info("No Kafka brokers configured, shipment events disabled")
		return NoopPublisher{}
	}
	return NewKafkaProducer(brokers, topic)
}
