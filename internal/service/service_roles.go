package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

// roleService is the concrete implementation of [RoleService]. It carries no
// state beyond its repositories: every resolution, including the
// administrative-group check, goes to the store so that code-to-id bindings
// may change underneath without restarts.
type roleService struct {
	groupRepository store.GroupRepository
	stateRepository store.StateRepository
	logger          *logger.Logger
}

// NewRoleService constructs a [RoleService] backed by the given group and
// state repositories.
func NewRoleService(groupRepository store.GroupRepository, stateRepository store.StateRepository, logger *logger.Logger) RoleService {
	return &roleService{
		groupRepository: groupRepository,
		stateRepository: stateRepository,
		logger:          logger,
	}
}

// GroupIDByCode resolves a group code to its row id.
//
// An unknown code yields store.ErrGroupNotFound; callers must check the error
// before using the id.
func (r *roleService) GroupIDByCode(ctx context.Context, code string) (int64, error) {
	group, err := r.groupRepository.FindGroupByCode(ctx, code)
	if err != nil {
		return 0, err
	}

	return group.GroupID, nil
}

// StateIDByCode resolves a lifecycle state code to its row id.
//
// An unknown code yields store.ErrStateNotFound.
func (r *roleService) StateIDByCode(ctx context.Context, code string) (int64, error) {
	state, err := r.stateRepository.FindStateByCode(ctx, code)
	if err != nil {
		return 0, err
	}

	return state.StateID, nil
}

// IsAdministrative reports whether groupID currently holds the administrative
// code. The administrative group's id is re-resolved from the store on every
// call: the store may in principle rebind the code to another row, so the id
// must never be latched.
//
// A directory without an administrative group at all answers false for every
// group.
func (r *roleService) IsAdministrative(ctx context.Context, groupID int64) (bool, error) {
	log := logger.FromContext(ctx)

	adminGroup, err := r.groupRepository.FindGroupByCode(ctx, models.GroupAdmin)
	if err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return false, nil
		}
		log.Err(err).Msg("administrative group resolution failed")
		return false, fmt.Errorf("administrative group resolution failed: %w", err)
	}

	return groupID == adminGroup.GroupID, nil
}
