package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an INSERT into the users table
	// violates the unique index on login. The admission controller treats it
	// as a definitive "login taken" rejection; in a multi-instance
	// deployment it is also the store-level backstop for the uniqueness
	// invariant.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrUserNotFound is returned when a lookup by id or login matches no
	// account row, or when a state update targets a missing account.
	ErrUserNotFound = errors.New("user not found")

	// ErrGroupNotFound is returned when a group code or id resolves to no
	// user_groups row. Resolution failure is a first-class outcome; callers
	// must check it explicitly before using the resolved id.
	ErrGroupNotFound = errors.New("user group not found")

	// ErrStateNotFound is returned when a state code resolves to no
	// user_states row. For the well-known Active/Blocked codes this signals
	// a deployment defect, not a client error.
	ErrStateNotFound = errors.New("user state not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an invalid pagination argument).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
