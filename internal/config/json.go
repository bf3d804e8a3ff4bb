package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON names and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		CSRFSignKey   string   `json:"csrf_sign_key"`
		CSRFTokenTTL  Duration `json:"csrf_token_ttl"`
		EnforceCSRF   bool     `json:"enforce_csrf"`
		PublicBaseURL string   `json:"public_base_url"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			Backend string `json:"backend"`
			Dir     string `json:"dir"`
			S3      S3     `json:"s3,omitempty"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		AllowedOrigins  []string `json:"allowed_origins"`
		RateLimit       struct {
			Requests int      `json:"requests"`
			Window   Duration `json:"window"`
			RedisURI string   `json:"redis_uri"`
		} `json:"rate_limit,omitempty"`
	} `json:"server,omitempty"`

	Broker struct {
		Brokers      []string `json:"kafka_brokers"`
		UploadsTopic string   `json:"uploads_topic"`
		StatusTopic  string   `json:"status_topic"`
		GroupID      string   `json:"group_id"`
	} `json:"broker,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			CSRFSignKey:   jsonCfg.App.CSRFSignKey,
			CSRFTokenTTL:  time.Duration(jsonCfg.App.CSRFTokenTTL),
			EnforceCSRF:   jsonCfg.App.EnforceCSRF,
			PublicBaseURL: jsonCfg.App.PublicBaseURL,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				Backend: jsonCfg.Storage.Files.Backend,
				Dir:     jsonCfg.Storage.Files.Dir,
				S3:      jsonCfg.Storage.Files.S3,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			AllowedOrigins:  jsonCfg.Server.AllowedOrigins,
			RateLimit: RateLimit{
				Requests: jsonCfg.Server.RateLimit.Requests,
				Window:   time.Duration(jsonCfg.Server.RateLimit.Window),
				RedisURI: jsonCfg.Server.RateLimit.RedisURI,
			},
		},
		Broker: Broker{
			Brokers:      jsonCfg.Broker.Brokers,
			UploadsTopic: jsonCfg.Broker.UploadsTopic,
			StatusTopic:  jsonCfg.Broker.StatusTopic,
			GroupID:      jsonCfg.Broker.GroupID,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
