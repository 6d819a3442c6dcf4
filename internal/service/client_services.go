// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/store"
)

// ClientServices groups every service used by the TUI.
type ClientServices struct {
	Session   *Session
	Sync      *SyncService
	Auth      *AuthService
	Health    *HealthService
	Mutations *MutationCoordinator
	Form      *EditForm
	Errors    *ErrorSink
	// Secrets is the store filled by Sync; the TUI only reads it.
	Secrets *store.SecretStore
}

// NewClientServices wires the services around one adapter and one set of
// storages.
func NewClientServices(a adapter.VaultAdapter, storages *store.ClientStorages, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	root := secrets.Path(cfg.Sync.RootPath)

	errs := NewErrorSink(log)
	auth := NewAuthService(a, storages.SessionRepository, log)
	syncSvc := NewSyncService(a, storages.Secrets, auth, errs, root, log)
	form := NewEditForm(root)

	return &ClientServices{
		Session:   NewSession(a, storages.SessionRepository, storages.Secrets, syncSvc, auth, errs, cfg.Adapter, log),
		Sync:      syncSvc,
		Auth:      auth,
		Health:    NewHealthService(a),
		Mutations: NewMutationCoordinator(a, syncSvc, form, errs, log),
		Form:      form,
		Errors:    errs,
		Secrets:   storages.Secrets,
	}
}
