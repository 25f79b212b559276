package service

import "errors"

// Sentinel errors of the authentication path. All of them collapse to an
// HTTP 401 at the boundary, but they are kept distinct so logs tell apart a
// broken header, a bad credential pair, and a dangling group reference.
var (
	// ErrMalformedCredentials is returned when the authorization value is
	// absent, uses a scheme other than Basic, is not valid base64, or does
	// not decode into exactly two colon-separated parts.
	ErrMalformedCredentials = errors.New("malformed credentials")

	// ErrUnauthenticated is returned when no account holds the presented
	// login or the presented secret does not match the stored one.
	ErrUnauthenticated = errors.New("invalid login or secret")

	// ErrRoleMissing is returned when an authenticated account's group
	// reference does not resolve to an existing group row.
	ErrRoleMissing = errors.New("user has no role assigned")
)

// Sentinel errors of the admission and lifecycle paths.
var (
	// ErrInvalidDataProvided is returned when a creation request is missing
	// the login, the secret, or the requested group code.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAdminAlreadyExists is returned when an admission requests the
	// administrative group while another account already occupies it.
	ErrAdminAlreadyExists = errors.New("admin already exists")

	// ErrActiveStateMissing is returned when the Active state row cannot be
	// resolved during activation. This is a deployment defect, not a client
	// error: the admitted account row already exists without a state.
	ErrActiveStateMissing = errors.New("active state is missing in the directory")

	// ErrBlockedStateMissing is returned when the Blocked state row cannot
	// be resolved during deactivation. Like ErrActiveStateMissing it is a
	// server-side configuration fault.
	ErrBlockedStateMissing = errors.New("blocked state is missing in the directory")
)
