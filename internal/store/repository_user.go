package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, listing, and lifecycle-state updates
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedDate).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account. A zero CreatedDate delegates
// timestamp assignment to the database.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var createdDate any
	if !user.CreatedDate.IsZero() {
		createdDate = user.CreatedDate
	}

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.Secret, createdDate, user.UserGroupID)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	created, err := scanUserRow(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return created, nil
}

// FindUserByLogin retrieves the account whose login exactly matches the one
// provided.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.findUser(ctx, findUserByLogin, login)
}

// FindUserByID retrieves the account with the given primary key.
//
// Error handling mirrors [userRepository.FindUserByLogin].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, userID)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// LoginExists reports whether an account with the given login is already
// committed. It backs the advisory fast-path check and the authoritative
// double check of the admission protocol; the visibility guarantee comes from
// the synchronous commit inside the admission critical section, not from this
// query.
func (r *userRepository) LoginExists(ctx context.Context, login string) (bool, error) {
	return r.exists(ctx, loginExists, login)
}

// AnyInGroup reports whether at least one account references the given group.
// The admission controller combines it with the dynamic administrative-group
// resolution to enforce the single-admin rule.
func (r *userRepository) AnyInGroup(ctx context.Context, groupID int64) (bool, error) {
	return r.exists(ctx, anyInGroup, groupID)
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*userRepository.exists").Msg("error executing existence query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// ListUsers returns every account in the directory ordered by id.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return r.listUsers(ctx, 0, 0)
}

// ListUsersPage returns one page of accounts ordered by id. Page numbering is
// 1-based, matching the HTTP pagination boundary.
func (r *userRepository) ListUsersPage(ctx context.Context, page, pageSize uint64) ([]models.User, error) {
	return r.listUsers(ctx, page, pageSize)
}

func (r *userRepository) listUsers(ctx context.Context, page, pageSize uint64) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(page, pageSize)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.listUsers").Msg("error building list query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.listUsers").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.listUsers").Msg("error scanning user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUserState assigns the given lifecycle state to an account and commits
// synchronously.
//
// Error handling:
//   - Zero affected rows → [ErrUserNotFound].
//   - Driver-level error → wrapped as [ErrExecutingStatement].
func (r *userRepository) UpdateUserState(ctx context.Context, userID, stateID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserState, userID, stateID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserState").Msg("error executing state update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateUserStateAsync commits the state assignment on a background goroutine
// and reports the outcome on the returned buffered channel.
//
// A failure classified as [Retryable] by the connected database's error
// classifier is retried once after a short pause. The channel is buffered, so
// an abandoned result does not leak the goroutine.
func (r *userRepository) UpdateUserStateAsync(ctx context.Context, userID, stateID int64) <-chan error {
	done := make(chan error, 1)

	go func() {
		err := r.UpdateUserState(ctx, userID, stateID)
		if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case <-time.After(retryPause):
			}
			err = r.UpdateUserState(ctx, userID, stateID)
		}
		done <- err
	}()

	return done
}

// retryPause separates the two attempts of an async state commit.
const retryPause = 100 * time.Millisecond

// FindUsersWithoutState returns accounts committed before olderThan that have
// no lifecycle state yet. These are leftovers of admissions interrupted
// between the insert commit and the activation commit.
func (r *userRepository) FindUsersWithoutState(ctx context.Context, olderThan time.Time) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findUsersWithoutState, olderThan)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUsersWithoutState").Msg("error executing sweep query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUserRow reads one users row in the canonical [userColumns] order,
// converting the nullable user_state_id column into a *int64.
func scanUserRow(row rowScanner) (models.User, error) {
	var user models.User
	var stateID sql.NullInt64

	err := row.Scan(&user.UserID, &user.Login, &user.Secret, &user.CreatedDate, &user.UserGroupID, &stateID)
	if err != nil {
		return models.User{}, err
	}

	if stateID.Valid {
		user.UserStateID = &stateID.Int64
	}

	return user, nil
}
