package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// Publisher sends finished evaluations downstream
type Publisher interface {
	Publish(ctx context.Context, msgs []*models.KafkaEvaluationMessage) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the producer needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publishes evaluations to the results topic, keyed by evaluation ID
type KafkaProducer struct {
	writer messageWriter
	topic  string
	logger zerolog.Logger
}

// KafkaProducerConfig holds Kafka producer configuration
type KafkaProducerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "betslip_evaluations"
}

// NewKafkaProducer creates a new Kafka producer
func NewKafkaProducer(config KafkaProducerConfig, logger zerolog.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return newKafkaProducer(writer, config.Topic, logger)
}

func newKafkaProducer(writer messageWriter, topic string, logger zerolog.Logger) *KafkaProducer {
	return &KafkaProducer{
		writer: writer,
		topic:  topic,
		logger: logger.With().Str("component", "kafka_producer").Logger(),
	}
}

// Publish writes one Kafka message per evaluation
func (p *KafkaProducer) Publish(ctx context.Context, msgs []*models.KafkaEvaluationMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	out := make([]kafka.Message, 0, len(msgs))
	for _, msg := range msgs {
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal evaluation %s: %w", msg.Evaluation.ID, err)
		}
		out = append(out, kafka.Message{
			Key:   []byte(msg.Evaluation.ID.String()),
			Value: payload,
		})
	}

	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("failed to write evaluations: %w", err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Int("count", len(out)).
		Msg("published evaluations")

	return nil
}

// Close flushes and closes the Kafka writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
