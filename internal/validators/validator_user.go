package validators

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldLogin targets the unique login of a candidate account.
	FieldLogin = "login"

	// FieldSecret targets the plain secret of a creation request.
	FieldSecret = "secret"

	// FieldGroup targets the group code of a creation request.
	FieldGroup = "user_group"
)

// Length limits mirror the directory column widths. The secret limit bounds
// the plain input, not the stored bcrypt hash.
const (
	loginMaxLen     = 50
	secretMaxLen    = 50
	groupCodeMaxLen = 5
)

// UserValidator implements the Validator interface for the account admission
// request model.
//
// It supports both value and pointer receivers and allows optional
// field-level scoping via variadic field name arguments.
type UserValidator struct {
}

// NewUserValidator constructs a new UserValidator and returns it as the
// Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches validation based on the dynamic type of obj. Both the
// value and pointer forms of [models.CreateUserRequest] are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// all fields of the request are validated.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateUserRequest:
		return v.validateCreateUserRequest(ctx, value, fields...)
	case *models.CreateUserRequest:
		return v.validateCreateUserRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

// validateCreateUserRequest checks that a creation request carries a
// non-empty login, secret, and group code, each within its column width.
//
// Returns the first encountered validation error or nil.
func (v *UserValidator) validateCreateUserRequest(_ context.Context, req models.CreateUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldSecret, FieldGroup}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if req.Login == "" {
				return ErrEmptyLogin
			}
			if len(req.Login) > loginMaxLen {
				return ErrLoginTooLong
			}
		case FieldSecret:
			if req.Secret == "" {
				return ErrEmptySecret
			}
			if len(req.Secret) > secretMaxLen {
				return ErrSecretTooLong
			}
		case FieldGroup:
			if req.UserGroup == "" {
				return ErrEmptyGroup
			}
			if len(req.UserGroup) > groupCodeMaxLen {
				return ErrGroupCodeTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
