// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.CSRFSignKey == "" {
		return fmt.Errorf("%w: csrf sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.CSRFTokenTTL <= 0 {
		return fmt.Errorf("%w: csrf token ttl must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	switch cfg.Storage.Files.Backend {
	case FilesBackendLocal:
		if cfg.Storage.Files.Dir == "" {
			return fmt.Errorf("%w: local files dir is required", ErrInvalidStorageConfigs)
		}
	case FilesBackendS3:
		if cfg.Storage.Files.S3.Bucket == "" || cfg.Storage.Files.S3.Region == "" {
			return fmt.Errorf("%w: s3 bucket and region are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown files backend %q", ErrInvalidStorageConfigs, cfg.Storage.Files.Backend)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimit.Requests <= 0 || cfg.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: rate limit requests and window must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Broker.Enabled() &&
		(cfg.Broker.UploadsTopic == "" || cfg.Broker.StatusTopic == "" || cfg.Broker.GroupID == "") {
		return fmt.Errorf("%w: topics and group id are required", ErrInvalidBrokerConfigs)
	}

	return nil
}
