package store

import (
	"database/sql"

	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/migrations"
)

// DB is an open local database.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
