// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/internal/walker"
)

// SyncService owns the walk that fills the secret store. At most one walk
// feeds the store at a time: starting a new one cancels the previous one.
type SyncService struct {
	adapter  adapter.VaultAdapter
	walker   *walker.Walker
	secrets  *store.SecretStore
	auth     *AuthService
	reporter ErrorReporter
	root     secrets.Path
	logger   *logger.Logger

	mu      sync.Mutex
	current *walker.Walk
}

// NewSyncService wires a SyncService walking from root.
func NewSyncService(
	a adapter.VaultAdapter,
	secretStore *store.SecretStore,
	auth *AuthService,
	reporter ErrorReporter,
	root secrets.Path,
	log *logger.Logger,
) *SyncService {
	return &SyncService{
		adapter:  a,
		walker:   walker.New(a, log),
		secrets:  secretStore,
		auth:     auth,
		reporter: reporter,
		root:     root,
		logger:   log,
	}
}

// Root returns the directory every reload walks from.
func (s *SyncService) Root() secrets.Path {
	return s.root
}

// ReloadAll clears the store and refills it from a new walk of the root. The
// store turns populated when the walk completes. If no display name is
// cached yet, the token is looked up in the background.
//
// ctx bounds the walk; it should outlive the caller's own request.
func (s *SyncService) ReloadAll(ctx context.Context) (*walker.Walk, error) {
	if s.adapter.Endpoint() == "" || s.adapter.Token() == "" {
		s.reporter.Report(ErrNotLoggedIn)
		return nil, ErrNotLoggedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Cancel()
	}

	gen := s.secrets.Reset()
	w := s.walker.Walk(ctx, s.root, func(c *secrets.Collection) {
		s.secrets.Append(gen, c)
	}, s.reporter.Report, walker.WithFinish(func(cancelled bool) {
		// a superseded generation is ignored by the store
		if !cancelled {
			s.secrets.Complete(gen)
		}
	}))
	s.current = w

	s.logger.Info().Str("walk_id", w.ID()).Uint64("generation", gen).Msg("reload started")

	go s.lookupDisplayName(ctx)

	return w, nil
}

func (s *SyncService) lookupDisplayName(ctx context.Context) {
	if s.auth == nil {
		return
	}
	if _, err := s.auth.EnsureDisplayName(ctx); err != nil {
		s.reporter.Report(err)
	}
}

// Current returns the latest walk, or nil.
func (s *SyncService) Current() *walker.Walk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Cancel stops the current walk, if any. The store is left as it is.
func (s *SyncService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Cancel()
		s.current = nil
	}
}
