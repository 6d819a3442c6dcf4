package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/models"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionRepository returns the SQLite-backed [SessionRepository].
func NewSessionRepository(db *DB, log *logger.Logger) SessionRepository {
	return &sessionRepository{DB: db, logger: log, now: time.Now}
}

func (r *sessionRepository) Load(ctx context.Context) (models.SessionState, error) {
	query, args, err := buildLoadSessionQuery()
	if err != nil {
		return models.SessionState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var state models.SessionState
	err = r.QueryRowContext(ctx, query, args...).Scan(&state.Endpoint, &state.Token, &state.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionState{}, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Load").Msg("error loading session")
		return models.SessionState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return state, nil
}

func (r *sessionRepository) Save(ctx context.Context, state models.SessionState) error {
	query, args, err := buildSaveSessionQuery(state, r.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Save").Msg("error saving session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) SetDisplayName(ctx context.Context, name string) error {
	query, args, err := buildSetDisplayNameQuery(name, r.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.SetDisplayName").Msg("error saving display name")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) ClearToken(ctx context.Context) error {
	query, args, err := buildClearTokenQuery(r.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.ClearToken").Msg("error clearing token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
