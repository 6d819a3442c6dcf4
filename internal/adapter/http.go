package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/utils"
	"github.com/MKhiriev/vault-browser/models"
)

type httpVaultAdapter struct {
	credentials

	client *utils.HTTPClient
	logger *logger.Logger
}

// NewVaultAdapter constructs the [VaultAdapter] selected by
// adapterCfg.Driver. The address and token from configuration are applied
// when present; an empty address is accepted and must be set later with
// SetEndpoint.
func NewVaultAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (VaultAdapter, error) {
	var (
		adapter VaultAdapter
		err     error
	)

	switch adapterCfg.Driver {
	case config.DriverVaultAPI:
		adapter, err = NewVaultAPIAdapter(adapterCfg, log)
	case config.DriverResty, "":
		adapter = NewHTTPVaultAdapter(adapterCfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", config.ErrInvalidAdapterConfigs, adapterCfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if adapterCfg.Address != "" {
		if err = adapter.SetEndpoint(adapterCfg.Address); err != nil {
			return nil, fmt.Errorf("invalid adapter address: %w", err)
		}
	}
	adapter.SetToken(adapterCfg.Token)

	return adapter, nil
}

// NewHTTPVaultAdapter constructs the go-resty implementation of [VaultAdapter].
func NewHTTPVaultAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) VaultAdapter {
	return &httpVaultAdapter{
		client: utils.NewHTTPClient(adapterCfg.RequestTimeout),
		logger: log,
	}
}

// SetEndpoint implements [VaultAdapter].
func (h *httpVaultAdapter) SetEndpoint(raw string) error {
	return h.setEndpoint(raw)
}

// List implements [VaultAdapter]. It sends GET path?list=true.
func (h *httpVaultAdapter) List(ctx context.Context, path string) ([]string, error) {
	var out models.ListResponse
	if err := h.do(ctx, http.MethodGet, path, true, nil, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	return out.Data.Keys, nil
}

// Read implements [VaultAdapter].
func (h *httpVaultAdapter) Read(ctx context.Context, path string) (*models.SecretData, error) {
	var out models.ReadResponse
	if err := h.do(ctx, http.MethodGet, path, false, nil, &out); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if out.Data == nil {
		return models.NewSecretData(), nil
	}
	return out.Data, nil
}

// Write implements [VaultAdapter]. The payload is POSTed as JSON.
func (h *httpVaultAdapter) Write(ctx context.Context, path string, data *models.SecretData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("write %s: encode payload: %w", path, err)
	}

	if err = h.do(ctx, http.MethodPost, path, false, body, nil); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Delete implements [VaultAdapter].
func (h *httpVaultAdapter) Delete(ctx context.Context, path string) error {
	if err := h.do(ctx, http.MethodDelete, path, false, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// LookupSelf implements [VaultAdapter].
func (h *httpVaultAdapter) LookupSelf(ctx context.Context) (models.TokenInfo, error) {
	var out models.TokenLookupResponse
	if err := h.do(ctx, http.MethodGet, pathLookupSelf, false, nil, &out); err != nil {
		return models.TokenInfo{}, fmt.Errorf("lookup-self: %w", err)
	}

	return out.Data, nil
}

// Health implements [VaultAdapter].
func (h *httpVaultAdapter) Health(ctx context.Context) ([]byte, error) {
	url, err := h.url(pathHealth)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("health request: %w", err)
	}
	if !isHealthStatus(resp.StatusCode()) {
		return nil, mapRestyError(resp)
	}

	return resp.Body(), nil
}

func (h *httpVaultAdapter) do(ctx context.Context, method, path string, list bool, body []byte, result any) error {
	url, err := h.url(path)
	if err != nil {
		return err
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader(tokenHeader, h.Token())
	if list {
		req.SetQueryParam(listQueryParam, listQueryValue)
	}
	if body != nil {
		req.SetHeader("Content-Type", jsonContentType).SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if err = mapRestyError(resp); err != nil {
		h.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return err
	}

	if result == nil {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
