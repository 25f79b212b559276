package service

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
)

// AuthService verifies inbound credential pairs and resolves the caller's
// role. It is read-only: authentication never mutates the directory.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock
type AuthService interface {
	// Authenticate extracts a Basic login:secret pair from a raw
	// Authorization header value, verifies it against the store, and
	// returns the authenticated identity with its role code.
	Authenticate(ctx context.Context, authHeader string) (models.Identity, error)
}

// RoleService maps directory codes to row ids and answers the dynamic
// "is this the administrative group" question.
type RoleService interface {
	// GroupIDByCode resolves a group code to its id. An unknown code yields
	// store.ErrGroupNotFound, never a zero id with a nil error.
	GroupIDByCode(ctx context.Context, code string) (int64, error)

	// StateIDByCode resolves a lifecycle state code to its id. An unknown
	// code yields store.ErrStateNotFound.
	StateIDByCode(ctx context.Context, code string) (int64, error)

	// IsAdministrative reports whether groupID is the id currently holding
	// the administrative code. The answer is recomputed from the store on
	// every call; the administrative id is never cached.
	IsAdministrative(ctx context.Context, groupID int64) (bool, error)
}

// UserService carries the admission controller, the lifecycle transition, and
// the read operations of the directory.
type UserService interface {
	// CreateUser runs the full admission protocol and returns the admitted,
	// activated account.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)

	// DeactivateUser transitions an account to the Blocked state. Calling
	// it on an already-Blocked account is a no-op success.
	DeactivateUser(ctx context.Context, userID int64) error

	// GetUser returns a single account by id.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// ListUsers returns the whole directory.
	ListUsers(ctx context.Context) ([]models.User, error)

	// ListUsersPage returns one 1-based page of the directory.
	ListUsersPage(ctx context.Context, page, pageSize uint64) ([]models.User, error)
}
