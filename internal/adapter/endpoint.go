package adapter

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

const (
	apiPrefix       = "/v1/"
	tokenHeader     = "X-Vault-Token"
	pathLookupSelf  = "auth/token/lookup-self"
	pathHealth      = "sys/health"
	listQueryParam  = "list"
	listQueryValue  = "true"
	jsonContentType = "application/json"
)

// credentials holds the endpoint and token shared by in-flight requests.
type credentials struct {
	mu       sync.RWMutex
	endpoint string
	token    string
}

func (c *credentials) setEndpoint(raw string) error {
	base, err := normalizeBaseURL(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.endpoint = base
	c.mu.Unlock()
	return nil
}

func (c *credentials) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

func (c *credentials) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// url resolves path against the API prefix of the current endpoint.
func (c *credentials) url(path string) (string, error) {
	endpoint := c.Endpoint()
	if endpoint == "" {
		return "", ErrNoEndpoint
	}
	return endpoint + apiPrefix + strings.TrimPrefix(path, "/"), nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidEndpoint)
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidEndpoint)
	}

	return strings.TrimRight(u.String(), "/"), nil
}
