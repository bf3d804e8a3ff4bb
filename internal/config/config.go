// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// upload-desk server. It aggregates all sub-configurations and is populated
// by merging values from flags, environment variables, an optional JSON file
// and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the anti-forgery token
	// signing key and the public base URL.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends, including
	// the relational database and the blob store for uploaded files.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network, timeout, CORS and rate limiting settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Broker holds the Kafka settings for upload events. Leaving Brokers
	// empty disables publishing and the status consumer.
	Broker Broker `envPrefix:"BROKER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the optional path to a .env file loaded before the
	// environment is parsed. Variables already set in the process win.
	DotEnvPath string `env:"DOTENV"`
}

// App holds application-level configuration values.
type App struct {
	// CSRFSignKey is the HMAC key used to sign anti-forgery tokens.
	// Must be kept confidential.
	// Env: APP_CSRF_SIGN_KEY
	CSRFSignKey string `env:"CSRF_SIGN_KEY"`

	// CSRFTokenTTL is how long an issued anti-forgery token stays valid.
	// Env: APP_CSRF_TOKEN_TTL
	CSRFTokenTTL time.Duration `env:"CSRF_TOKEN_TTL"`

	// EnforceCSRF makes POST /api/search reject requests without a valid
	// X-CSRF-Token header.
	// Env: APP_ENFORCE_CSRF
	EnforceCSRF bool `env:"ENFORCE_CSRF"`

	// PublicBaseURL overrides the scheme and host used to build file_url
	// values (e.g. "https://files.example.com"). When empty the request
	// host is used.
	// Env: APP_PUBLIC_BASE_URL
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the blob storage settings for uploaded files.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by its scheme: "postgres://..." opens pgx,
	// "sqlite://<path>" or "file:<path>" opens sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files backends.
const (
	FilesBackendLocal = "local"
	FilesBackendS3    = "s3"
)

// Files holds blob storage settings.
type Files struct {
	// Backend is either "local" or "s3".
	// Env: STORAGE_FILES_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the root directory of the local backend.
	// Env: STORAGE_FILES_DIR
	Dir string `env:"DIR"`

	// S3 holds the object storage settings used by the "s3" backend.
	S3 S3 `envPrefix:"S3_"`
}

// S3 holds settings for an S3 compatible object storage.
type S3 struct {
	// Endpoint overrides the AWS endpoint, e.g. a MinIO URL.
	// Env: STORAGE_FILES_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT" json:"endpoint"`
	// Env: STORAGE_FILES_S3_REGION
	Region string `env:"REGION" json:"region"`
	// Env: STORAGE_FILES_S3_BUCKET
	Bucket string `env:"BUCKET" json:"bucket"`
	// Env: STORAGE_FILES_S3_ACCESS_KEY_ID
	AccessKeyID string `env:"ACCESS_KEY_ID" json:"access_key_id"`
	// Env: STORAGE_FILES_S3_SECRET_ACCESS_KEY
	SecretAccessKey string `env:"SECRET_ACCESS_KEY" json:"secret_access_key"`
	// UsePathStyle is required by most self-hosted S3 implementations.
	// Env: STORAGE_FILES_S3_USE_PATH_STYLE
	UsePathStyle bool `env:"USE_PATH_STYLE" json:"use_path_style"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// AllowedOrigins lists the CORS origins of the web client.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// RateLimit throttles the register and login endpoints per client IP.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

// RateLimit holds the register/login throttling settings.
type RateLimit struct {
	// Requests is the number of requests allowed per Window.
	// Env: SERVER_RATE_LIMIT_REQUESTS
	Requests int `env:"REQUESTS"`

	// Window is the length of a rate limiting window.
	// Env: SERVER_RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`

	// RedisURI switches the limiter to a shared Redis counter
	// (e.g. "redis://localhost:6379/0"). Empty keeps it in process.
	// Env: SERVER_RATE_LIMIT_REDIS_URI
	RedisURI string `env:"REDIS_URI"`
}

// Broker holds Kafka settings.
type Broker struct {
	// Brokers is the list of Kafka bootstrap addresses.
	// Env: BROKER_KAFKA_BROKERS (comma separated)
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// UploadsTopic receives a FileEvent for every stored upload.
	// Env: BROKER_UPLOADS_TOPIC
	UploadsTopic string `env:"UPLOADS_TOPIC"`

	// StatusTopic carries processing results consumed by the status worker.
	// Env: BROKER_STATUS_TOPIC
	StatusTopic string `env:"STATUS_TOPIC"`

	// GroupID is the consumer group of the status worker.
	// Env: BROKER_GROUP_ID
	GroupID string `env:"GROUP_ID"`
}

// Enabled reports whether Kafka integration is configured.
func (b Broker) Enabled() bool {
	return len(b.Brokers) > 0
}

// defaultConfig is merged last and fills every field no other source set.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			CSRFTokenTTL: 2 * time.Hour,
			LogLevel:     "info",
		},
		Storage: Storage{
			Files: Files{
				Backend: FilesBackendLocal,
				Dir:     "media",
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimit{
				Requests: 20,
				Window:   time.Minute,
			},
		},
		Broker: Broker{
			UploadsTopic: "file-uploads",
			StatusTopic:  "file-status",
			GroupID:      "upload-desk",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Command-line flags
//  2. Environment variables (after loading the optional .env file)
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withDotEnv().
		withEnv().
		withJSON().
		withDefaults().
		build()
}
