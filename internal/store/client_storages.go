package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
)

// ClientStorages groups client-side storage: the in-memory secret tree and
// the SQLite-backed remembered session.
type ClientStorages struct {
	// Secrets is the synchronized set of collections fetched by walks.
	Secrets *SecretStore
	// SessionRepository persists endpoint, token and display name.
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages opens the SQLite file from cfg.DB.DSN, runs migrations
// and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Secrets:           NewSecretStore(),
		SessionRepository: NewSessionRepository(db, logger),
		db:                db,
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
