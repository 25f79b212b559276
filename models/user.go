package models

import "time"

// Well-known directory codes. The rows behind them are created by the
// migrations, but resolution is always performed against the store at
// runtime: the ids these codes map to must never be assumed fixed.
const (
	// GroupAdmin is the code of the distinguished administrative group.
	// At most one account may belong to it at any point in time.
	GroupAdmin = "Admin"

	// GroupUser is the code of the default non-privileged group.
	GroupUser = "User"

	// StateActive is the lifecycle state of a fully admitted account.
	StateActive = "Active"

	// StateBlocked is the lifecycle state of a deactivated account.
	// Deactivation never removes the row; it only assigns this state.
	StateBlocked = "Blocked"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the account,
	// assigned by the database on insert.
	UserID int64 `json:"id"`

	// Login is the unique account login. Uniqueness is enforced both by
	// the admission controller and by a unique index on the column.
	Login string `json:"login"`

	// Secret is the account credential. Depending on configuration it
	// holds either a bcrypt hash or (in compatibility mode) the plain
	// value. It is never serialized.
	Secret string `json:"-"`

	// CreatedDate is assigned by the database on insert unless the
	// creation request carried an explicit value.
	CreatedDate time.Time `json:"created_date"`

	// UserGroupID references the user_groups row resolved during admission.
	UserGroupID int64 `json:"user_group_id"`

	// UserStateID references the user_states row. It is nil for an account
	// inside the admission window between the insert commit and the
	// activation commit; readers must treat nil as "state unset", not as
	// an error.
	UserStateID *int64 `json:"user_state_id"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserGroup represents a role descriptor row. The group whose Code equals
// [GroupAdmin] is the administrative group.
type UserGroup struct {
	GroupID     int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the UserGroup model.
func (g UserGroup) TableName() string {
	return "user_groups"
}

// UserState represents a lifecycle descriptor row, e.g. [StateActive] or
// [StateBlocked].
type UserState struct {
	StateID     int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the UserState model.
func (s UserState) TableName() string {
	return "user_states"
}

// Identity is the authenticated caller produced by credential verification.
// It carries only the claims downstream handlers need and no credential data.
type Identity struct {
	// UserID is the internal identifier of the authenticated account.
	UserID int64 `json:"id"`

	// Login is the account login the credentials were verified against.
	Login string `json:"login"`

	// Role is the code of the account's group, e.g. "Admin" or "User".
	Role string `json:"role"`
}
