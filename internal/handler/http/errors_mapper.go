package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrMalformedCredentials: http.StatusUnauthorized,
	service.ErrUnauthenticated:      http.StatusUnauthorized,
	service.ErrRoleMissing:          http.StatusUnauthorized,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrAdminAlreadyExists:  http.StatusConflict,
	service.ErrActiveStateMissing:  http.StatusInternalServerError,
	service.ErrBlockedStateMissing: http.StatusInternalServerError,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrGroupNotFound:      http.StatusBadRequest,
	store.ErrStateNotFound:      http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
