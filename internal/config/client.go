package config

import (
	"errors"
	"fmt"
	"time"
)

// ClientConfig configures the command line client.
type ClientConfig struct {
	// ServerURL is the base URL of the upload desk API.
	// Env: UPLOAD_DESK_URL
	ServerURL string `env:"UPLOAD_DESK_URL" envDefault:"http://localhost:8080"`

	// Token is the API token sent as "Authorization: Token <key>".
	// Env: UPLOAD_DESK_TOKEN
	Token string `env:"UPLOAD_DESK_TOKEN"`

	// RequestTimeout bounds every API call.
	// Env: UPLOAD_DESK_TIMEOUT
	RequestTimeout time.Duration `env:"UPLOAD_DESK_TIMEOUT" envDefault:"30s"`

	// LogLevel is a zerolog level name.
	// Env: UPLOAD_DESK_LOG_LEVEL
	LogLevel string `env:"UPLOAD_DESK_LOG_LEVEL" envDefault:"warn"`
}

// ErrInvalidClientConfigs indicates an unusable client configuration.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// GetClientConfig reads the client configuration from the environment after
// loading the optional .env file.
func GetClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(""); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerURL == "" {
		return fmt.Errorf("%w: empty server url", ErrInvalidClientConfigs)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidClientConfigs)
	}
	return nil
}
