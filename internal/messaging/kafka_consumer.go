package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/cashout-simulator-service/internal/metrics"
	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
	"github.com/cypherlabdev/cashout-simulator-service/internal/service"
)

// KafkaConsumer consumes betslip submissions from Kafka, evaluates them and publishes the results
type KafkaConsumer struct {
	reader    *kafka.Reader
	evaluator service.BetslipEvaluator
	publisher Publisher
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "betslip_submissions"
	GroupID string   // e.g., "cashout-simulator"
}

// NewKafkaConsumer creates a new Kafka consumer. publisher may be nil, in which case
// evaluations are only cached by the evaluator.
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	evaluator service.BetslipEvaluator,
	publisher Publisher,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		evaluator: evaluator,
		publisher: publisher,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage evaluates every betslip in one batch. A slip the evaluator rejects is
// logged and skipped; it cannot succeed on redelivery. Publish failures fail the batch.
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var kafkaMsg models.KafkaBetslipMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	metrics.RecordBetslipsConsumed(kafkaMsg.Source, len(kafkaMsg.Betslips))

	c.logger.Debug().
		Int("betslip_count", len(kafkaMsg.Betslips)).
		Str("batch_id", kafkaMsg.BatchID).
		Str("source", kafkaMsg.Source).
		Msg("processing betslip batch")

	results := make([]*models.KafkaEvaluationMessage, 0, len(kafkaMsg.Betslips))
	for i := range kafkaMsg.Betslips {
		eval, err := c.evaluator.Evaluate(ctx, &kafkaMsg.Betslips[i])
		if err != nil {
			if ctx.Err() != nil {
				// shutting down: leave the message uncommitted so the batch is redelivered
				return fmt.Errorf("batch %s interrupted: %w", kafkaMsg.BatchID, err)
			}
			c.logger.Warn().
				Err(err).
				Str("batch_id", kafkaMsg.BatchID).
				Int("index", i).
				Msg("skipping betslip")
			continue
		}
		results = append(results, &models.KafkaEvaluationMessage{
			Evaluation: eval,
			BatchID:    kafkaMsg.BatchID,
			Timestamp:  time.Now().UTC(),
		})
	}

	if c.publisher != nil && len(results) > 0 {
		if err := c.publisher.Publish(ctx, results); err != nil {
			return fmt.Errorf("failed to publish evaluations: %w", err)
		}
	}

	c.logger.Info().
		Int("input_count", len(kafkaMsg.Betslips)).
		Int("evaluated_count", len(results)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processed betslip batch")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
