package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishFileUploaded(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "file-uploads", logger: logger.Nop()}

	uploadedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := models.FileEvent{
		FileID:     42,
		OwnerID:    7,
		FileType:   "pdf",
		FileSize:   1024,
		StorageKey: "uploads/2026/03/01/abc_report.pdf",
		UploadedAt: uploadedAt,
	}

	require.NoError(t, p.PublishFileUploaded(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, uploadedAt, msg.Time)

	var decoded models.FileEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.FileID, decoded.FileID)
	assert.Equal(t, event.StorageKey, decoded.StorageKey)
	assert.True(t, event.UploadedAt.Equal(decoded.UploadedAt))
}

func TestKafkaPublisher_PublishFileUploaded_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &KafkaPublisher{writer: w, topic: "file-uploads", logger: logger.Nop()}

	err := p.PublishFileUploaded(context.Background(), models.FileEvent{FileID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPublishingEvent)
	assert.Contains(t, err.Error(), "file-uploads")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "t", logger: logger.Nop()}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	p, err := NewKafkaPublisher(config.Broker{}, logger.Nop())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrBrokersNotConfigured)
}

func TestNewPublisher(t *testing.T) {
	t.Run("disabled returns nop", func(t *testing.T) {
		p, err := NewPublisher(config.Broker{}, logger.Nop())
		require.NoError(t, err)
		assert.IsType(t, NopPublisher{}, p)
		assert.NoError(t, p.PublishFileUploaded(context.Background(), models.FileEvent{}))
		assert.NoError(t, p.Close())
	})

	t.Run("enabled returns kafka publisher", func(t *testing.T) {
		p, err := NewPublisher(config.Broker{
			Brokers:      []string{"localhost:9092"},
			UploadsTopic: "file-uploads",
		}, logger.Nop())
		require.NoError(t, err)
		kp, ok := p.(*KafkaPublisher)
		require.True(t, ok)
		assert.Equal(t, "file-uploads", kp.topic)
		assert.NoError(t, kp.Close())
	})
}
