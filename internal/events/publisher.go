package events

//go:generate mockgen -source=publisher.go -destination=../mock/events_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-upload-desk/models"
)

// Publisher sends upload events to the processing pipeline.
type Publisher interface {
	PublishFileUploaded(ctx context.Context, event models.FileEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishFileUploaded(context.Context, models.FileEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
