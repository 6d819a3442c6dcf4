package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/vault/api"

	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/models"
)

type vaultAPIAdapter struct {
	credentials

	client *api.Client
	logger *logger.Logger
}

// NewVaultAPIAdapter constructs a [VaultAdapter] on top of the official
// hashicorp/vault/api client with retries disabled.
func NewVaultAPIAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (VaultAdapter, error) {
	client, err := api.NewClient(&api.Config{
		Address:    "https://127.0.0.1:8200",
		MaxRetries: 0,
		Timeout:    adapterCfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create vault client: %w", err)
	}
	// NewClient picks up VAULT_TOKEN on its own; the adapter owns the token.
	client.ClearToken()

	return &vaultAPIAdapter{client: client, logger: log}, nil
}

// SetEndpoint implements [VaultAdapter].
func (v *vaultAPIAdapter) SetEndpoint(raw string) error {
	if err := v.setEndpoint(raw); err != nil {
		return err
	}
	if err := v.client.SetAddress(v.Endpoint()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	return nil
}

// SetToken implements [VaultAdapter].
func (v *vaultAPIAdapter) SetToken(token string) {
	v.credentials.SetToken(token)
	if t := v.Token(); t != "" {
		v.client.SetToken(t)
	} else {
		v.client.ClearToken()
	}
}

// List implements [VaultAdapter].
func (v *vaultAPIAdapter) List(ctx context.Context, path string) ([]string, error) {
	var out models.ListResponse
	if err := v.do(ctx, http.MethodGet, path, true, nil, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	return out.Data.Keys, nil
}

// Read implements [VaultAdapter].
func (v *vaultAPIAdapter) Read(ctx context.Context, path string) (*models.SecretData, error) {
	var out models.ReadResponse
	if err := v.do(ctx, http.MethodGet, path, false, nil, &out); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if out.Data == nil {
		return models.NewSecretData(), nil
	}
	return out.Data, nil
}

// Write implements [VaultAdapter].
func (v *vaultAPIAdapter) Write(ctx context.Context, path string, data *models.SecretData) error {
	if err := v.do(ctx, http.MethodPost, path, false, data, nil); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Delete implements [VaultAdapter].
func (v *vaultAPIAdapter) Delete(ctx context.Context, path string) error {
	if err := v.do(ctx, http.MethodDelete, path, false, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// LookupSelf implements [VaultAdapter]. It uses the typed token API of the
// vault client.
func (v *vaultAPIAdapter) LookupSelf(ctx context.Context) (models.TokenInfo, error) {
	if v.Endpoint() == "" {
		return models.TokenInfo{}, ErrNoEndpoint
	}

	secret, err := v.client.Auth().Token().LookupSelfWithContext(ctx)
	if err != nil {
		return models.TokenInfo{}, fmt.Errorf("lookup-self: %w", v.mapClientError(err))
	}
	if secret == nil || secret.Data == nil {
		return models.TokenInfo{}, fmt.Errorf("lookup-self: %w: empty data", ErrMalformedResponse)
	}

	raw, err := json.Marshal(secret.Data)
	if err != nil {
		return models.TokenInfo{}, fmt.Errorf("lookup-self: %w: %w", ErrMalformedResponse, err)
	}
	var info models.TokenInfo
	if err = json.Unmarshal(raw, &info); err != nil {
		return models.TokenInfo{}, fmt.Errorf("lookup-self: %w: %w", ErrMalformedResponse, err)
	}
	return info, nil
}

// Health implements [VaultAdapter].
func (v *vaultAPIAdapter) Health(ctx context.Context) ([]byte, error) {
	if v.Endpoint() == "" {
		return nil, ErrNoEndpoint
	}

	req := v.client.NewRequest(http.MethodGet, apiPrefix+pathHealth)
	req.ClientToken = ""

	statusCode, body, err := v.raw(ctx, req)
	if err != nil && statusCode == 0 {
		return nil, fmt.Errorf("health request: %w", err)
	}
	if !isHealthStatus(statusCode) {
		return nil, mapHTTPError(statusCode, body)
	}

	return body, nil
}

func (v *vaultAPIAdapter) do(ctx context.Context, method, path string, list bool, body any, result any) error {
	if v.Endpoint() == "" {
		return ErrNoEndpoint
	}

	req := v.client.NewRequest(method, apiPrefix+path)
	if list {
		req.Params.Set(listQueryParam, listQueryValue)
	}
	if body != nil {
		if err := req.SetJSONBody(body); err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
	}

	statusCode, respBody, err := v.raw(ctx, req)
	if err != nil && statusCode == 0 {
		return fmt.Errorf("request: %w", err)
	}
	if err = mapHTTPError(statusCode, respBody); err != nil {
		v.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return err
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err = json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// raw sends req and returns the status code with the whole body. A non-2xx
// answer comes back with a status code and a non-nil error; a zero status
// code means no response was received.
func (v *vaultAPIAdapter) raw(ctx context.Context, req *api.Request) (int, []byte, error) {
	//nolint:staticcheck // SA1019
	resp, err := v.client.RawRequestWithContext(ctx, req)
	if resp == nil {
		if err == nil {
			err = errors.New("empty response")
		}
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return 0, nil, fmt.Errorf("read body: %w", readErr)
	}
	return resp.StatusCode, body, err
}

func (v *vaultAPIAdapter) mapClientError(err error) error {
	var respErr *api.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}

	body, marshalErr := json.Marshal(models.ErrorResponse{Errors: respErr.Errors})
	if marshalErr != nil {
		body = nil
	}
	return mapHTTPError(respErr.StatusCode, body)
}
