package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
)

// basicScheme is the only authorization scheme the verifier accepts.
const basicScheme = "Basic"

// authService is the concrete implementation of [AuthService].
// It verifies HTTP Basic credential pairs against the user repository and
// resolves the caller's role through the group repository.
type authService struct {
	// userRepository is the data-access layer used to look up accounts by login.
	userRepository store.UserRepository

	// groupRepository resolves an account's group reference into a role code.
	groupRepository store.GroupRepository

	// plainSecrets selects the legacy plain-equality comparison instead of
	// bcrypt verification. Comparison stays constant-time in both modes.
	plainSecrets bool

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given repositories
// and configured with the credential comparison mode from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, groupRepository store.GroupRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		groupRepository: groupRepository,
		plainSecrets:    cfg.PlainSecrets,
		logger:          logger,
	}
}

// Authenticate verifies a raw Authorization header value and resolves the
// caller's identity.
//
// The pipeline is: scheme and payload extraction → account lookup by login →
// secret comparison → role resolution. It is read-only.
//
// Error handling:
//   - Absent header, wrong scheme, broken base64, or a payload that does not
//     split into exactly login:secret → [ErrMalformedCredentials].
//   - Unknown login or secret mismatch → [ErrUnauthenticated]. The two cases
//     are deliberately indistinguishable to the caller.
//   - Account group reference resolving to no row → [ErrRoleMissing].
func (a *authService) Authenticate(ctx context.Context, authHeader string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	login, secret, err := decodeBasicCredentials(authHeader)
	if err != nil {
		log.Err(err).Msg("authorization header rejected")
		return models.Identity{}, err
	}

	user, err := a.userRepository.FindUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn().Str("login", login).Msg("authentication failed: unknown login")
			return models.Identity{}, ErrUnauthenticated
		}
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return models.Identity{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !a.secretMatches(user.Secret, secret) {
		log.Warn().Int64("id", user.UserID).Str("login", user.Login).Msg("authentication failed: wrong secret")
		return models.Identity{}, ErrUnauthenticated
	}

	group, err := a.groupRepository.FindGroupByID(ctx, user.UserGroupID)
	if err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			log.Error().Int64("id", user.UserID).Int64("group_id", user.UserGroupID).Msg("account references a missing group")
			return models.Identity{}, ErrRoleMissing
		}
		log.Err(err).Int64("id", user.UserID).Msg("group resolution failed")
		return models.Identity{}, fmt.Errorf("group resolution failed: %w", err)
	}

	return models.Identity{
		UserID: user.UserID,
		Login:  user.Login,
		Role:   group.Code,
	}, nil
}

// secretMatches compares the stored secret with the presented one according
// to the configured storage mode.
func (a *authService) secretMatches(stored, presented string) bool {
	if a.plainSecrets {
		return utils.EqualSecrets(stored, presented)
	}

	return utils.VerifySecret(stored, presented)
}

// decodeBasicCredentials extracts the login and secret from a raw
// Authorization header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: Basic <base64(login:secret)>
//
// It returns [ErrMalformedCredentials] when the header is empty, the scheme
// is not Basic, the payload is not valid base64, or the decoded payload does
// not split into exactly two colon-separated parts.
func decodeBasicCredentials(authHeader string) (login, secret string, err error) {
	if authHeader == "" {
		return "", "", ErrMalformedCredentials
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], basicScheme) {
		return "", "", ErrMalformedCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", ErrMalformedCredentials
	}

	pair := strings.Split(string(decoded), ":")
	if len(pair) != 2 {
		return "", "", ErrMalformedCredentials
	}

	return pair[0], pair[1], nil
}
