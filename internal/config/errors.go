package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing anti-forgery signing key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unknown blob backend).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, missing listen address or a zero rate limit window).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidBrokerConfigs indicates Kafka brokers were given without
	// the topics and group they are used with.
	ErrInvalidBrokerConfigs = errors.New("invalid broker configuration")
)
