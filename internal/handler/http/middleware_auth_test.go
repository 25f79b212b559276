package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/mock"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---- Helpers ----

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: authSvc,
		},
	}
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func TestAuthMiddleware_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := models.Identity{UserID: 3, Login: "john", Role: models.GroupUser}

	mockAuth := mock.NewMockAuthService(ctrl)
	mockAuth.EXPECT().Authenticate(gomock.Any(), "Basic am9objpzMQ==").Return(identity, nil)

	h := newHandlerWithAuthService(mockAuth)

	var gotIdentity models.Identity
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, gotOK = utils.GetIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := executeAuth(h, "Basic am9objpzMQ==", next)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, gotOK, "identity must be stored in the request context")
	assert.Equal(t, identity, gotIdentity)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authErr    error
		wantStatus int
	}{
		{name: "malformed header", authErr: service.ErrMalformedCredentials, wantStatus: http.StatusUnauthorized},
		{name: "bad credentials", authErr: service.ErrUnauthenticated, wantStatus: http.StatusUnauthorized},
		{name: "dangling role", authErr: service.ErrRoleMissing, wantStatus: http.StatusUnauthorized},
		{name: "store failure", authErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuth := mock.NewMockAuthService(ctrl)
			mockAuth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(models.Identity{}, tt.authErr)

			h := newHandlerWithAuthService(mockAuth)

			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			rr := executeAuth(h, "Basic whatever", next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.False(t, nextCalled, "rejected requests must not reach the handler")
		})
	}
}

func TestAuthMiddleware_PassesRawHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// the middleware does no parsing of its own: the raw value, scheme
	// included, goes to the verifier
	mockAuth := mock.NewMockAuthService(ctrl)
	mockAuth.EXPECT().Authenticate(gomock.Any(), "").Return(models.Identity{}, service.ErrMalformedCredentials)

	h := newHandlerWithAuthService(mockAuth)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rr := executeAuth(h, "", next)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
