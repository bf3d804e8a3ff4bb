package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient that retries idempotent requests twice
// on transport errors and 5xx responses.
//
// Example usage:
//
//	client := utils.NewHTTPClient("upload-desk-cli")
//	resp, err := client.R().Get("https://example.com")
func NewHTTPClient(userAgent string) *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil || r.Request == nil {
				return err != nil
			}
			switch r.Request.Method {
			case "GET", "HEAD", "DELETE", "PUT":
				return err != nil || r.StatusCode() >= 500
			}
			return false
		})

	return &HTTPClient{Client: client}
}
