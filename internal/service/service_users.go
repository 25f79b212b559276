package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
)

// userService is the concrete implementation of [UserService]. It owns the
// admission gate: a single process-wide mutex serializing account creation.
//
// The mutex guards exactly two cross-row invariants — login uniqueness and
// the administrative-singleton rule — and nothing else. Reads, credential
// verification, and state transitions never take it. A multi-instance
// deployment must replace the gate with a store-level unique index plus a
// guarded insert; the unique index on users.login already backs the first
// invariant there.
type userService struct {
	userRepository store.UserRepository
	roleService    RoleService
	validator      validators.Validator

	// admissionMu is the process-wide admission gate. It is held across the
	// blocking store calls of the critical section: releasing it before the
	// insert commit completes would reopen the race it exists to close.
	admissionMu sync.Mutex

	plainSecrets bool
	bcryptCost   int

	logger *logger.Logger
}

// NewUserService constructs a [UserService] wired to the given repository,
// role resolver, and request validator, with the secret storage mode taken
// from cfg.
func NewUserService(userRepository store.UserRepository, roleService RoleService, validator validators.Validator, cfg config.Auth, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		roleService:    roleService,
		validator:      validator,
		plainSecrets:   cfg.PlainSecrets,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// CreateUser runs the admission protocol for a candidate account.
//
// Protocol:
//  1. Unsynchronized login check — an advisory fast rejection only; the
//     authoritative check happens under the gate.
//  2. Critical section (see admit): double-checked login uniqueness, group
//     resolution, administrative-singleton check, synchronous insert commit.
//  3. Outside the gate: Active state resolution and an awaited asynchronous
//     state-assignment commit. Activation cannot violate uniqueness, so it
//     does not belong to the critical section.
//
// Between steps 2 and 3 the committed account has no lifecycle state. That
// window is tolerated: readers see "state unset", and the state sweeper
// repairs it if this process dies before activating.
//
// Error handling:
//   - Missing or oversized login, secret, or group code →
//     [ErrInvalidDataProvided] wrapping the validator's verdict.
//   - Login already committed → store.ErrLoginAlreadyExists.
//   - Unknown group code → store.ErrGroupNotFound.
//   - Administrative group already occupied → [ErrAdminAlreadyExists].
//   - Unresolvable Active state → [ErrActiveStateMissing] (server fault; the
//     account row exists without a state at this point).
func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("login", req.Login).Str("group", req.UserGroup).Msg("invalid creation request")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	// Advisory fast path: cheap rejection of the common duplicate case.
	taken, err := s.userRepository.LoginExists(ctx, req.Login)
	if err != nil {
		log.Err(err).Str("login", req.Login).Msg("login existence check failed")
		return models.User{}, fmt.Errorf("login existence check failed: %w", err)
	}
	if taken {
		return models.User{}, store.ErrLoginAlreadyExists
	}

	candidate := req.ToUser()
	candidate.Secret, err = s.storedSecret(req.Secret)
	if err != nil {
		log.Err(err).Msg("secret hashing failed")
		return models.User{}, fmt.Errorf("secret hashing failed: %w", err)
	}

	created, err := s.admit(ctx, candidate, req.UserGroup)
	if err != nil {
		return models.User{}, err
	}

	stateID, err := s.roleService.StateIDByCode(ctx, models.StateActive)
	if err != nil {
		if errors.Is(err, store.ErrStateNotFound) {
			log.Error().Int64("id", created.UserID).Msg("active state missing: account committed without a state")
			return models.User{}, ErrActiveStateMissing
		}
		log.Err(err).Msg("active state resolution failed")
		return models.User{}, fmt.Errorf("active state resolution failed: %w", err)
	}

	if err := <-s.userRepository.UpdateUserStateAsync(ctx, created.UserID, stateID); err != nil {
		log.Err(err).Int64("id", created.UserID).Msg("activation commit failed")
		return models.User{}, fmt.Errorf("activation commit failed: %w", err)
	}

	created.UserStateID = &stateID
	log.Info().Int64("id", created.UserID).Str("login", created.Login).Msg("account admitted")

	return created, nil
}

// admit is the critical section of the admission protocol. It holds the
// admission gate from the authoritative uniqueness check through the insert
// commit, so the n-th admission observes every commit of admissions 1..n-1.
//
// The section runs on a context stripped of cancellation: once an admission
// enters the gate it runs to completion — commit or definitive rejection —
// and caller timeouts never roll back partial work.
func (s *userService) admit(ctx context.Context, candidate models.User, groupCode string) (models.User, error) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)

	s.admissionMu.Lock()
	defer s.admissionMu.Unlock()

	// Double check: another admission may have committed this login between
	// the advisory check and gate entry.
	taken, err := s.userRepository.LoginExists(ctx, candidate.Login)
	if err != nil {
		log.Err(err).Str("login", candidate.Login).Msg("login existence double check failed")
		return models.User{}, fmt.Errorf("login existence check failed: %w", err)
	}
	if taken {
		return models.User{}, store.ErrLoginAlreadyExists
	}

	groupID, err := s.roleService.GroupIDByCode(ctx, groupCode)
	if err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return models.User{}, store.ErrGroupNotFound
		}
		log.Err(err).Str("group", groupCode).Msg("group resolution failed")
		return models.User{}, fmt.Errorf("group resolution failed: %w", err)
	}

	administrative, err := s.roleService.IsAdministrative(ctx, groupID)
	if err != nil {
		return models.User{}, err
	}
	if administrative {
		occupied, err := s.userRepository.AnyInGroup(ctx, groupID)
		if err != nil {
			log.Err(err).Int64("group_id", groupID).Msg("administrative occupancy check failed")
			return models.User{}, fmt.Errorf("administrative occupancy check failed: %w", err)
		}
		if occupied {
			return models.User{}, ErrAdminAlreadyExists
		}
	}

	candidate.UserGroupID = groupID

	// Synchronous commit: must be visible to the next admission's checks
	// before the gate is released.
	created, err := s.userRepository.CreateUser(ctx, candidate)
	if err != nil {
		log.Err(err).Str("login", candidate.Login).Msg("account insert failed")
		return models.User{}, err
	}

	return created, nil
}

// storedSecret converts the plain secret of a creation request into its
// stored representation: a bcrypt hash, or the plain value in compatibility
// mode.
func (s *userService) storedSecret(plain string) (string, error) {
	if s.plainSecrets {
		return plain, nil
	}

	return utils.HashSecret(plain, s.bcryptCost)
}

// DeactivateUser transitions an account to the Blocked state.
//
// The operation is idempotent: an already-Blocked account is a no-op success,
// leaving login and created date untouched. The account row is never removed.
//
// Error handling:
//   - Unknown account id → store.ErrUserNotFound.
//   - Unresolvable Blocked state → [ErrBlockedStateMissing] (server fault).
func (s *userService) DeactivateUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		log.Err(err).Int64("id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	stateID, err := s.roleService.StateIDByCode(ctx, models.StateBlocked)
	if err != nil {
		if errors.Is(err, store.ErrStateNotFound) {
			log.Error().Msg("blocked state missing in the directory")
			return ErrBlockedStateMissing
		}
		log.Err(err).Msg("blocked state resolution failed")
		return fmt.Errorf("blocked state resolution failed: %w", err)
	}

	if user.UserStateID != nil && *user.UserStateID == stateID {
		return nil
	}

	if err := s.userRepository.UpdateUserState(ctx, userID, stateID); err != nil {
		log.Err(err).Int64("id", userID).Msg("deactivation commit failed")
		return fmt.Errorf("deactivation commit failed: %w", err)
	}

	log.Info().Int64("id", userID).Msg("account deactivated")

	return nil
}

// GetUser returns a single account by id.
func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return s.userRepository.FindUserByID(ctx, userID)
}

// ListUsers returns the whole directory ordered by id.
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepository.ListUsers(ctx)
}

// ListUsersPage returns one 1-based page of the directory.
func (s *userService) ListUsersPage(ctx context.Context, page, pageSize uint64) ([]models.User, error) {
	if page == 0 || pageSize == 0 {
		return nil, ErrInvalidDataProvided
	}

	return s.userRepository.ListUsersPage(ctx, page, pageSize)
}
