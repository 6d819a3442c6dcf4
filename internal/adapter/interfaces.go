// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and a
// Vault-style secret store HTTP API.
//
// The primary abstraction is [VaultAdapter], which decouples the walker and
// the service layer from the underlying HTTP client. Two drivers are shipped:
// a go-resty implementation (default) and one built on the official
// hashicorp/vault/api client. Both address resources as
// endpoint + "/v1/" + path and authenticate with the X-Vault-Token header.
//
// Non-2xx responses are mapped by mapHTTPError to a [*ResponseError] that
// keeps the raw body and wraps one of the sentinel values from errors.go, so
// callers can use [errors.Is] (e.g. [ErrForbidden] for 403, [ErrNotFound]
// for 404) and still show the server payload.
package adapter

import (
	"context"

	"github.com/MKhiriev/vault-browser/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_adapter_mock.go -package=mock

// VaultAdapter defines authenticated access to the secret store. All methods
// are safe for concurrent use.
type VaultAdapter interface {
	// SetEndpoint validates and stores the base URL of the API. A scheme of
	// http is assumed when raw has none.
	SetEndpoint(raw string) error

	// Endpoint returns the normalised base URL, or "" if none is set.
	Endpoint() string

	// SetToken stores the bearer token attached to subsequent requests.
	SetToken(token string)

	// Token returns the stored bearer token.
	Token() string

	// List returns the child names of a directory path. Names ending with
	// "/" are directories.
	List(ctx context.Context, path string) ([]string, error)

	// Read returns the data object of a leaf path in payload order.
	Read(ctx context.Context, path string) (*models.SecretData, error)

	// Write replaces the data stored at path.
	Write(ctx context.Context, path string, data *models.SecretData) error

	// Delete removes path.
	Delete(ctx context.Context, path string) error

	// LookupSelf returns metadata of the current token.
	LookupSelf(ctx context.Context) (models.TokenInfo, error)

	// Health returns the raw JSON body of sys/health. It is sent without a
	// token; standby and sealed statuses are not errors.
	Health(ctx context.Context) ([]byte, error)
}
