package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
)

// stateRepository is the PostgreSQL-backed implementation of [StateRepository].
type stateRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStateRepository constructs a [StateRepository] backed by the provided
// database connection and logger.
func NewStateRepository(db *DB, logger *logger.Logger) StateRepository {
	logger.Debug().Msg("creating state repository")
	return &stateRepository{
		db:     db,
		logger: logger,
	}
}

// FindStateByCode resolves a lifecycle descriptor by its code, e.g. "Active"
// or "Blocked".
//
// Error handling:
//   - No matching row → [ErrStateNotFound].
//   - Any other failure → wrapped as [ErrScanningRow].
func (r *stateRepository) FindStateByCode(ctx context.Context, code string) (models.UserState, error) {
	log := logger.FromContext(ctx)

	var state models.UserState
	err := r.db.QueryRowContext(ctx, findStateByCode, code).Scan(&state.StateID, &state.Code, &state.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserState{}, ErrStateNotFound
		}
		log.Err(err).Str("func", "*stateRepository.FindStateByCode").Msg("error scanning state row")
		return models.UserState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return state, nil
}
