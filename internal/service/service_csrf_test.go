package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-upload-desk/internal/config"
)

func TestCSRFService_IssueAndVerify(t *testing.T) {
	svc := NewCSRFService(config.App{CSRFSignKey: "secret", CSRFTokenTTL: time.Hour})
	ctx := context.Background()

	first, err := svc.Issue(ctx)
	require.NoError(t, err)
	second, err := svc.Issue(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "every token carries its own jti")
	assert.NoError(t, svc.Verify(ctx, first))
	assert.NoError(t, svc.Verify(ctx, second))
}

func TestCSRFService_Verify_Rejects(t *testing.T) {
	svc := NewCSRFService(config.App{CSRFSignKey: "secret", CSRFTokenTTL: time.Hour})
	other := NewCSRFService(config.App{CSRFSignKey: "other", CSRFTokenTTL: time.Hour})
	ctx := context.Background()

	foreign, err := other.Issue(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(ctx, ""), ErrInvalidCSRFToken)
	assert.ErrorIs(t, svc.Verify(ctx, "garbage"), ErrInvalidCSRFToken)
	assert.ErrorIs(t, svc.Verify(ctx, foreign), ErrInvalidCSRFToken)
}

func TestCSRFService_Issue_MisconfiguredKey(t *testing.T) {
	svc := NewCSRFService(config.App{CSRFTokenTTL: time.Hour})

	_, err := svc.Issue(context.Background())
	assert.Error(t, err)
}
