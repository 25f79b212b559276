package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

// StateSweeper repairs the admission inconsistency window: an account whose
// insert committed but whose activation never did is left without a lifecycle
// state. The window is a liveness concern, not a safety one — the sweeper
// periodically assigns the Active state to such accounts once they are older
// than a grace period.
//
// The grace period keeps the sweeper away from admissions still in flight:
// only accounts whose activation is clearly overdue are touched.
type StateSweeper struct {
	userRepository store.UserRepository
	roleService    service.RoleService

	interval time.Duration
	grace    time.Duration

	ctx    context.Context
	logger *logger.Logger
}

// NewStateSweeper constructs a sweeper bound to ctx; cancelling ctx stops the
// sweep loop.
func NewStateSweeper(ctx context.Context, userRepository store.UserRepository, roleService service.RoleService, cfg config.Workers, logger *logger.Logger) *StateSweeper {
	return &StateSweeper{
		userRepository: userRepository,
		roleService:    roleService,
		interval:       cfg.SweepInterval,
		grace:          cfg.SweepGrace,
		ctx:            ctx,
		logger:         logger,
	}
}

// Run executes the sweep loop until the bound context is cancelled. With a
// zero interval the sweeper is disabled and Run returns immediately.
func (s *StateSweeper) Run() {
	if s.interval == 0 {
		s.logger.Info().Msg("state sweeper disabled")
		return
	}

	s.logger.Info().Dur("interval", s.interval).Dur("grace", s.grace).Msg("state sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info().Msg("state sweeper stopped")
			return
		case <-ticker.C:
			if err := s.sweep(s.ctx); err != nil {
				s.logger.Err(err).Msg("sweep pass failed")
			}
		}
	}
}

// sweep performs one repair pass: every stateless account older than the
// grace period gets the Active state assigned synchronously.
func (s *StateSweeper) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-s.grace)

	stale, err := s.userRepository.FindUsersWithoutState(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	stateID, err := s.roleService.StateIDByCode(ctx, models.StateActive)
	if err != nil {
		return err
	}

	for _, user := range stale {
		if err := s.userRepository.UpdateUserState(ctx, user.UserID, stateID); err != nil {
			// The account may have been deactivated or repaired by a
			// concurrent pass; only genuine failures are reported.
			if errors.Is(err, store.ErrUserNotFound) {
				continue
			}
			s.logger.Err(err).Int64("id", user.UserID).Msg("failed to repair stateless account")
			continue
		}
		s.logger.Warn().Int64("id", user.UserID).Str("login", user.Login).Msg("repaired account left without a state")
	}

	return nil
}
