// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vault-browser/models"
)

const (
	sessionTable = "session"
	// the table holds a single row
	sessionRowID = 1
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildLoadSessionQuery() (string, []any, error) {
	return psql.
		Select("endpoint", "token", "display_name").
		From(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}

func buildSaveSessionQuery(state models.SessionState, now time.Time) (string, []any, error) {
	return psql.
		Insert(sessionTable).
		Columns("id", "endpoint", "token", "display_name", "updated_at").
		Values(sessionRowID, state.Endpoint, state.Token, state.DisplayName, now).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			endpoint = excluded.endpoint,
			token = excluded.token,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at`).
		ToSql()
}

func buildClearTokenQuery(now time.Time) (string, []any, error) {
	return psql.
		Update(sessionTable).
		Set("token", "").
		Set("display_name", "").
		Set("updated_at", now).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}

func buildSetDisplayNameQuery(name string, now time.Time) (string, []any, error) {
	return psql.
		Update(sessionTable).
		Set("display_name", name).
		Set("updated_at", now).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}
