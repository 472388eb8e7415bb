package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// recordingWriter captures written messages in place of a broker
type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

// TestNewKafkaProducer tests producer creation
func TestNewKafkaProducer(t *testing.T) {
	producer := NewKafkaProducer(KafkaProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "betslip_evaluations",
	}, zerolog.Nop())

	writer, ok := producer.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "betslip_evaluations", writer.Topic)
	assert.NoError(t, producer.Close())
}

// TestKafkaProducer_Publish tests that each evaluation becomes one keyed message
func TestKafkaProducer_Publish(t *testing.T) {
	writer := &recordingWriter{}
	producer := newKafkaProducer(writer, "betslip_evaluations", zerolog.Nop())

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	msgs := []*models.KafkaEvaluationMessage{
		{Evaluation: &models.Evaluation{ID: ids[0], Status: models.StatusEvaluated}, BatchID: "b1"},
		{Evaluation: &models.Evaluation{ID: ids[1], Status: models.StatusNotEvaluable}, BatchID: "b1"},
	}

	require.NoError(t, producer.Publish(context.Background(), msgs))
	require.Len(t, writer.messages, 2)

	for i, msg := range writer.messages {
		assert.Equal(t, ids[i].String(), string(msg.Key))

		var decoded models.KafkaEvaluationMessage
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, ids[i], decoded.Evaluation.ID)
		assert.Equal(t, "b1", decoded.BatchID)
	}
	assert.Equal(t, models.StatusNotEvaluable, decodeStatus(t, writer.messages[1].Value))
}

func decodeStatus(t *testing.T, value []byte) models.EvaluationStatus {
	t.Helper()
	var decoded models.KafkaEvaluationMessage
	require.NoError(t, json.Unmarshal(value, &decoded))
	return decoded.Evaluation.Status
}

// TestKafkaProducer_PublishEmpty tests that an empty batch writes nothing
func TestKafkaProducer_PublishEmpty(t *testing.T) {
	writer := &recordingWriter{err: errors.New("must not be called")}
	producer := newKafkaProducer(writer, "betslip_evaluations", zerolog.Nop())

	assert.NoError(t, producer.Publish(context.Background(), nil))
}

// TestKafkaProducer_PublishError tests that writer failures are wrapped
func TestKafkaProducer_PublishError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("leader not available")}
	producer := newKafkaProducer(writer, "betslip_evaluations", zerolog.Nop())

	err := producer.Publish(context.Background(), []*models.KafkaEvaluationMessage{
		{Evaluation: &models.Evaluation{ID: uuid.New()}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write evaluations")
}

// TestKafkaProducer_Close tests that closing closes the writer
func TestKafkaProducer_Close(t *testing.T) {
	writer := &recordingWriter{}
	producer := newKafkaProducer(writer, "betslip_evaluations", zerolog.Nop())

	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)
}
