package events

import "errors"

var (
	ErrBrokersNotConfigured = errors.New("kafka brokers are not configured")
	ErrPublishingEvent      = errors.New("error publishing event")
	ErrMalformedEvent       = errors.New("malformed event")
)
