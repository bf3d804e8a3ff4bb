package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
)

// CSRFIssuer is the "iss" claim of every anti-forgery token.
const CSRFIssuer = "upload-desk"

// csrfService mints short-lived signed anti-forgery tokens. Each token has
// its own random jti, so two responses never carry the same value.
type csrfService struct {
	signKey string
	ttl     time.Duration
	ids     *utils.UUIDGenerator
}

func NewCSRFService(cfg config.App) CSRFService {
	return &csrfService{
		signKey: cfg.CSRFSignKey,
		ttl:     cfg.CSRFTokenTTL,
		ids:     utils.NewUUIDGenerator(),
	}
}

func (c *csrfService) Issue(_ context.Context) (string, error) {
	token, err := utils.GenerateCSRFToken(CSRFIssuer, c.ids.Generate(), c.ttl, c.signKey)
	if err != nil {
		return "", fmt.Errorf("issuing csrf token: %w", err)
	}
	return token, nil
}

func (c *csrfService) Verify(_ context.Context, token string) error {
	if token == "" {
		return ErrInvalidCSRFToken
	}
	if err := utils.ValidateCSRFToken(token, c.signKey, CSRFIssuer); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCSRFToken, err)
	}
	return nil
}
