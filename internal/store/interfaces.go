package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-directory/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying. The PostgreSQL implementation inspects driver error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository is the Directory Store contract for account rows. It is the
// only persistence surface the admission controller, the credential verifier,
// and the state sweeper depend on.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock
type UserRepository interface {
	// CreateUser durably inserts the candidate account and returns the
	// canonical row with server-assigned fields (UserID, CreatedDate).
	// A unique-index violation on login surfaces as [ErrLoginAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin performs an exact-match lookup by login.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)

	// FindUserByID performs a lookup by primary key.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// LoginExists reports whether any account holds the given login.
	LoginExists(ctx context.Context, login string) (bool, error)

	// AnyInGroup reports whether any account belongs to the given group.
	AnyInGroup(ctx context.Context, groupID int64) (bool, error)

	// ListUsers returns all accounts ordered by id.
	ListUsers(ctx context.Context) ([]models.User, error)

	// ListUsersPage returns one page of accounts ordered by id; page is
	// 1-based.
	ListUsersPage(ctx context.Context, page, pageSize uint64) ([]models.User, error)

	// UpdateUserState synchronously assigns the given lifecycle state to an
	// account. Targeting a missing account yields [ErrUserNotFound].
	UpdateUserState(ctx context.Context, userID, stateID int64) error

	// UpdateUserStateAsync commits the state assignment on a background
	// goroutine and reports the outcome on the returned channel. Transient
	// database failures are retried once. The channel is buffered, so the
	// caller may abandon it without leaking the goroutine.
	UpdateUserStateAsync(ctx context.Context, userID, stateID int64) <-chan error

	// FindUsersWithoutState returns accounts that still have no lifecycle
	// state and were created before the given cutoff. Used by the state
	// sweeper to repair interrupted admissions.
	FindUsersWithoutState(ctx context.Context, olderThan time.Time) ([]models.User, error)
}

// GroupRepository resolves role descriptors by code and by id.
type GroupRepository interface {
	FindGroupByCode(ctx context.Context, code string) (models.UserGroup, error)
	FindGroupByID(ctx context.Context, groupID int64) (models.UserGroup, error)
}

// StateRepository resolves lifecycle descriptors by code.
type StateRepository interface {
	FindStateByCode(ctx context.Context, code string) (models.UserState, error)
}
