package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin       = errors.New("login is required")
	ErrLoginTooLong     = errors.New("login exceeds maximum length")
	ErrEmptySecret      = errors.New("secret is required")
	ErrSecretTooLong    = errors.New("secret exceeds maximum length")
	ErrEmptyGroup       = errors.New("user group is required")
	ErrGroupCodeTooLong = errors.New("user group code exceeds maximum length")
)
