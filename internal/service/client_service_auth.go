package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/models"
)

// AuthService looks up the current token and caches its display name until
// the token changes or is forgotten.
type AuthService struct {
	adapter adapter.VaultAdapter
	repo    store.SessionRepository
	logger  *logger.Logger

	group singleflight.Group

	mu          sync.RWMutex
	displayName string
	info        *models.TokenInfo
}

// NewAuthService constructs an AuthService. repo may be nil, in which case
// the display name is not persisted.
func NewAuthService(a adapter.VaultAdapter, repo store.SessionRepository, log *logger.Logger) *AuthService {
	return &AuthService{adapter: a, repo: repo, logger: log}
}

// DisplayName returns the cached display name, or "".
func (s *AuthService) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayName
}

// TokenInfo returns the metadata of the last successful lookup.
func (s *AuthService) TokenInfo() (models.TokenInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return models.TokenInfo{}, false
	}
	return *s.info, true
}

// SetDisplayName seeds the cache, e.g. with the value remembered from the
// previous run.
func (s *AuthService) SetDisplayName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayName = name
}

// Forget drops everything cached about the token.
func (s *AuthService) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayName = ""
	s.info = nil
}

// EnsureDisplayName returns the cached display name, looking it up first if
// nothing is cached yet.
func (s *AuthService) EnsureDisplayName(ctx context.Context) (string, error) {
	if name := s.DisplayName(); name != "" {
		return name, nil
	}

	info, err := s.LookupSelf(ctx)
	if err != nil {
		return "", err
	}
	return info.DisplayName, nil
}

// LookupSelf asks the server about the current token. Concurrent lookups for
// the same token share one request.
func (s *AuthService) LookupSelf(ctx context.Context) (models.TokenInfo, error) {
	token := s.adapter.Token()
	if token == "" {
		return models.TokenInfo{}, ErrNotLoggedIn
	}

	v, err, shared := s.group.Do(token, func() (any, error) {
		info, err := s.adapter.LookupSelf(ctx)
		if err != nil {
			return models.TokenInfo{}, err
		}
		s.remember(ctx, token, info)
		return info, nil
	})
	if err != nil {
		return models.TokenInfo{}, fmt.Errorf("lookup token: %w", err)
	}
	s.logger.Debug().Bool("shared", shared).Msg("token looked up")

	return v.(models.TokenInfo), nil
}

func (s *AuthService) remember(ctx context.Context, token string, info models.TokenInfo) {
	s.mu.Lock()
	// the token may have changed while the request was in flight
	if s.adapter.Token() != token {
		s.mu.Unlock()
		return
	}
	s.displayName = info.DisplayName
	s.info = &info
	s.mu.Unlock()

	if s.repo == nil {
		return
	}
	if err := s.repo.SetDisplayName(ctx, info.DisplayName); err != nil {
		s.logger.Err(err).Msg("error persisting display name")
	}
}
