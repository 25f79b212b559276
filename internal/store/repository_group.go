package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
)

// groupRepository is the PostgreSQL-backed implementation of [GroupRepository].
type groupRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGroupRepository constructs a [GroupRepository] backed by the provided
// database connection and logger.
func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	logger.Debug().Msg("creating group repository")
	return &groupRepository{
		db:     db,
		logger: logger,
	}
}

// FindGroupByCode resolves a role descriptor by its short code, e.g. "Admin".
//
// Error handling:
//   - No matching row → [ErrGroupNotFound].
//   - Any other failure → wrapped as [ErrScanningRow].
func (r *groupRepository) FindGroupByCode(ctx context.Context, code string) (models.UserGroup, error) {
	return r.findGroup(ctx, findGroupByCode, code)
}

// FindGroupByID resolves a role descriptor by its primary key. Used by the
// credential verifier to turn an account's group reference into a role code.
func (r *groupRepository) FindGroupByID(ctx context.Context, groupID int64) (models.UserGroup, error) {
	return r.findGroup(ctx, findGroupByID, groupID)
}

func (r *groupRepository) findGroup(ctx context.Context, query string, arg any) (models.UserGroup, error) {
	log := logger.FromContext(ctx)

	var group models.UserGroup
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&group.GroupID, &group.Code, &group.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserGroup{}, ErrGroupNotFound
		}
		log.Err(err).Str("func", "*groupRepository.findGroup").Msg("error scanning group row")
		return models.UserGroup{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return group, nil
}
