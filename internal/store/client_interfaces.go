package store

import (
	"context"

	"github.com/MKhiriev/vault-browser/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository persists the client state remembered between runs.
type SessionRepository interface {
	// Load returns the remembered state, or a zero state if none was saved.
	Load(ctx context.Context) (models.SessionState, error)
	// Save replaces the remembered state.
	Save(ctx context.Context, state models.SessionState) error
	// SetDisplayName caches the display name of the remembered token.
	SetDisplayName(ctx context.Context, name string) error
	// ClearToken forgets the token and its display name, keeping the endpoint.
	ClearToken(ctx context.Context) error
}
