// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validCreateUserRequest() models.CreateUserRequest {
	return models.CreateUserRequest{
		Login:     "john",
		Secret:    "s1",
		UserGroup: models.GroupUser,
	}
}

// ---------------------------------------------------------------------------
// TestNewUserValidator
// ---------------------------------------------------------------------------

func TestNewUserValidator(t *testing.T) {
	v := NewUserValidator()
	require.NotNil(t, v)
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		err := v.Validate(ctx, "a string")
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("CreateUserRequest value", func(t *testing.T) {
		r := validCreateUserRequest()
		err := v.Validate(ctx, r)
		require.NoError(t, err)
	})

	t.Run("CreateUserRequest pointer", func(t *testing.T) {
		r := validCreateUserRequest()
		err := v.Validate(ctx, &r)
		require.NoError(t, err)
	})
}

// ---------------------------------------------------------------------------
// TestValidateCreateUserRequest
// ---------------------------------------------------------------------------

func TestValidateCreateUserRequest(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("valid with defaults", func(t *testing.T) {
		r := validCreateUserRequest()
		require.NoError(t, v.Validate(ctx, r))
	})

	t.Run("empty login", func(t *testing.T) {
		r := validCreateUserRequest()
		r.Login = ""
		require.ErrorIs(t, v.Validate(ctx, r, FieldLogin), ErrEmptyLogin)
	})

	t.Run("login over column width", func(t *testing.T) {
		r := validCreateUserRequest()
		r.Login = strings.Repeat("a", 51)
		require.ErrorIs(t, v.Validate(ctx, r, FieldLogin), ErrLoginTooLong)
	})

	t.Run("login at column width", func(t *testing.T) {
		r := validCreateUserRequest()
		r.Login = strings.Repeat("a", 50)
		require.NoError(t, v.Validate(ctx, r, FieldLogin))
	})

	t.Run("empty secret", func(t *testing.T) {
		r := validCreateUserRequest()
		r.Secret = ""
		require.ErrorIs(t, v.Validate(ctx, r, FieldSecret), ErrEmptySecret)
	})

	t.Run("secret over limit", func(t *testing.T) {
		r := validCreateUserRequest()
		r.Secret = strings.Repeat("s", 51)
		require.ErrorIs(t, v.Validate(ctx, r, FieldSecret), ErrSecretTooLong)
	})

	t.Run("empty group", func(t *testing.T) {
		r := validCreateUserRequest()
		r.UserGroup = ""
		require.ErrorIs(t, v.Validate(ctx, r, FieldGroup), ErrEmptyGroup)
	})

	t.Run("group code over column width", func(t *testing.T) {
		r := validCreateUserRequest()
		r.UserGroup = "Admins"
		require.ErrorIs(t, v.Validate(ctx, r, FieldGroup), ErrGroupCodeTooLong)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := validCreateUserRequest()
		require.ErrorIs(t, v.Validate(ctx, r, "no-such-field"), ErrUnknownField)
	})

	t.Run("field scoping skips unnamed fields", func(t *testing.T) {
		r := validCreateUserRequest()
		r.Secret = strings.Repeat("s", 51)
		require.NoError(t, v.Validate(ctx, r, FieldLogin, FieldGroup))
	})
}
