package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/models"
)

const (
	maxApplyAttempts = 3
	maxMessageBytes  = 1 << 20
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusApplier records a processing result for a file.
type StatusApplier interface {
	ApplyStatus(ctx context.Context, id int64, status models.FileStatus) (models.UploadedFile, error)
}

// StatusConsumer applies FileStatusEvent messages from the status topic.
// Every message is committed once handled, including malformed ones and
// ones describing a transition the file no longer allows.
type StatusConsumer struct {
	reader  messageReader
	applier StatusApplier
	backoff time.Duration
	logger  *logger.Logger
}

func NewStatusConsumer(cfg config.Broker, applier StatusApplier, log *logger.Logger) (*StatusConsumer, error) {
	if !cfg.Enabled() {
		return nil, ErrBrokersNotConfigured
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.StatusTopic,
		MinBytes: 1,
		MaxBytes: maxMessageBytes,
		MaxWait:  time.Second,
	})

	return &StatusConsumer{
		reader:  reader,
		applier: applier,
		backoff: 200 * time.Millisecond,
		logger:  log,
	}, nil
}

// Run consumes until ctx is cancelled. It returns nil on cancellation and an
// error when the broker connection fails.
func (c *StatusConsumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("closing status reader")
		}
	}()

	c.logger.Info().Msg("status consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetching status message: %w", err)
		}

		c.handle(ctx, msg)

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("committing status message at offset %d: %w", msg.Offset, err)
		}
	}
}

func (c *StatusConsumer) handle(ctx context.Context, msg kafka.Message) {
	event, err := decodeStatusEvent(msg.Value)
	if err != nil {
		c.logger.Warn().Err(err).Int64("offset", msg.Offset).Msg("skipping status message")
		return
	}

	for attempt := 1; ; attempt++ {
		_, err = c.applier.ApplyStatus(ctx, event.FileID, event.Status)
		if err == nil {
			c.logger.Info().Int64("file_id", event.FileID).Str("status", string(event.Status)).Msg("file status applied")
			return
		}

		if permanent(err) {
			c.logger.Warn().Err(err).Int64("file_id", event.FileID).Str("status", string(event.Status)).Msg("status event rejected")
			return
		}
		if attempt >= maxApplyAttempts {
			c.logger.Error().Err(err).Int64("file_id", event.FileID).Int("attempts", attempt).Msg("status event dropped")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
}

func permanent(err error) bool {
	return errors.Is(err, service.ErrInvalidTransition) || errors.Is(err, service.ErrFileNotFound)
}

func decodeStatusEvent(data []byte) (models.FileStatusEvent, error) {
	var event models.FileStatusEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return models.FileStatusEvent{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if event.FileID <= 0 {
		return models.FileStatusEvent{}, fmt.Errorf("%w: file_id must be positive", ErrMalformedEvent)
	}
	if !event.Status.Valid() {
		return models.FileStatusEvent{}, fmt.Errorf("%w: unknown status %q", ErrMalformedEvent, event.Status)
	}
	return event, nil
}
