package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/models"
)

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes FileEvent values as JSON to the uploads topic, keyed
// by file id so every event of one file lands on the same partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *logger.Logger
}

func NewKafkaPublisher(cfg config.Broker, log *logger.Logger) (*KafkaPublisher, error) {
	if !cfg.Enabled() {
		return nil, ErrBrokersNotConfigured
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.UploadsTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           publishTimeout,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.UploadsTopic,
		logger: log,
	}, nil
}

func (p *KafkaPublisher) PublishFileUploaded(ctx context.Context, event models.FileEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", ErrPublishingEvent, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.FileID, 10)),
		Value: data,
		Time:  event.UploadedAt,
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic %s: %w", ErrPublishingEvent, p.topic, err)
	}

	p.logger.Debug().Int64("file_id", event.FileID).Str("topic", p.topic).Msg("upload event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewPublisher returns a KafkaPublisher when brokers are configured and a
// NopPublisher otherwise.
func NewPublisher(cfg config.Broker, log *logger.Logger) (Publisher, error) {
	if !cfg.Enabled() {
		log.Info().Msg("kafka brokers not configured, upload events are disabled")
		return NopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg, log)
}
