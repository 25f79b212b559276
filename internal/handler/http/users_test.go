package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/mock"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---- Helpers ----

func newHandlerWithUserService(userSvc service.UserService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			UserService: userSvc,
		},
	}
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// userRouter mounts the directory routes without the auth middleware, so the
// handlers can be exercised in isolation. chi is still required: the handlers
// read URL params from the route context.
func userRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/api/users", h.listUsers)
	router.Get("/api/users/{id}", h.getUser)
	router.Get("/api/users/{page}/{pageSize}", h.listUsersPage)
	router.Post("/api/users", h.createUser)
	router.Delete("/api/users/{id}", h.deleteUser)
	return router
}

func executeRequest(h *Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = injectNopLogger(req)

	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)
	return rr
}

// ─────────────────────────────────────────────
// POST /api/users
// ─────────────────────────────────────────────

func TestCreateUserHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock.NewMockUserService(ctrl)
	h := newHandlerWithUserService(mockUsers)

	stateID := int64(1)
	created := models.User{
		UserID:      7,
		Login:       "john",
		Secret:      "$2a$10$hash",
		CreatedDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		UserGroupID: 2,
		UserStateID: &stateID,
	}

	mockUsers.EXPECT().CreateUser(gomock.Any(), models.CreateUserRequest{
		Login:     "john",
		Secret:    "s1",
		UserGroup: models.GroupUser,
	}).Return(created, nil)

	body := []byte(`{"login":"john","secret":"s1","user_group":"User"}`)
	rr := executeRequest(h, http.MethodPost, "/api/users", body)

	require.Equal(t, http.StatusOK, rr.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "john", got.Login)
	require.NotNil(t, got.UserStateID)
	assert.Equal(t, stateID, *got.UserStateID)

	// the stored secret must never leave the server
	assert.NotContains(t, rr.Body.String(), "$2a$10$hash")
	assert.NotContains(t, rr.Body.String(), "secret")
}

func TestCreateUserHandler_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHandlerWithUserService(mock.NewMockUserService(ctrl))

	rr := executeRequest(h, http.MethodPost, "/api/users", []byte(`{"login":`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateUserHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "invalid data", serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "login taken", serviceErr: store.ErrLoginAlreadyExists, wantStatus: http.StatusConflict},
		{name: "unknown group", serviceErr: store.ErrGroupNotFound, wantStatus: http.StatusBadRequest},
		{name: "admin exists", serviceErr: service.ErrAdminAlreadyExists, wantStatus: http.StatusConflict},
		{name: "active state missing", serviceErr: service.ErrActiveStateMissing, wantStatus: http.StatusInternalServerError},
		{name: "unexpected failure", serviceErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUsers := mock.NewMockUserService(ctrl)
			mockUsers.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.serviceErr)

			h := newHandlerWithUserService(mockUsers)

			body := []byte(`{"login":"john","secret":"s1","user_group":"User"}`)
			rr := executeRequest(h, http.MethodPost, "/api/users", body)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ─────────────────────────────────────────────
// DELETE /api/users/{id}
// ─────────────────────────────────────────────

func TestDeleteUserHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock.NewMockUserService(ctrl)
	mockUsers.EXPECT().DeactivateUser(gomock.Any(), int64(7)).Return(nil)

	h := newHandlerWithUserService(mockUsers)

	rr := executeRequest(h, http.MethodDelete, "/api/users/7", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDeleteUserHandler_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHandlerWithUserService(mock.NewMockUserService(ctrl))

	rr := executeRequest(h, http.MethodDelete, "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteUserHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock.NewMockUserService(ctrl)
	mockUsers.EXPECT().DeactivateUser(gomock.Any(), int64(404)).Return(store.ErrUserNotFound)

	h := newHandlerWithUserService(mockUsers)

	rr := executeRequest(h, http.MethodDelete, "/api/users/404", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ─────────────────────────────────────────────
// GET /api/users/{id}
// ─────────────────────────────────────────────

func TestGetUserHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock.NewMockUserService(ctrl)
	mockUsers.EXPECT().GetUser(gomock.Any(), int64(7)).Return(models.User{UserID: 7, Login: "john"}, nil)

	h := newHandlerWithUserService(mockUsers)

	rr := executeRequest(h, http.MethodGet, "/api/users/7", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "john", got.Login)
}

func TestGetUserHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock.NewMockUserService(ctrl)
	mockUsers.EXPECT().GetUser(gomock.Any(), int64(404)).Return(models.User{}, store.ErrUserNotFound)

	h := newHandlerWithUserService(mockUsers)

	rr := executeRequest(h, http.MethodGet, "/api/users/404", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ─────────────────────────────────────────────
// GET /api/users and GET /api/users/{page}/{pageSize}
// ─────────────────────────────────────────────

func TestListUsersHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock.NewMockUserService(ctrl)
	mockUsers.EXPECT().ListUsers(gomock.Any()).Return([]models.User{
		{UserID: 1, Login: "admin"},
		{UserID: 2, Login: "john"},
	}, nil)

	h := newHandlerWithUserService(mockUsers)

	rr := executeRequest(h, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestListUsersPageHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock.NewMockUserService(ctrl)
	mockUsers.EXPECT().ListUsersPage(gomock.Any(), uint64(2), uint64(10)).Return([]models.User{
		{UserID: 11, Login: "u11"},
	}, nil)

	h := newHandlerWithUserService(mockUsers)

	rr := executeRequest(h, http.MethodGet, "/api/users/2/10", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestListUsersPageHandler_InvalidBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// the service is never reached with invalid bounds
	h := newHandlerWithUserService(mock.NewMockUserService(ctrl))

	rr := executeRequest(h, http.MethodGet, "/api/users/0/10", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = executeRequest(h, http.MethodGet, "/api/users/1/0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
