package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client that accepts JSON and gives up on a
// single request after timeout. Retries stay disabled.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
