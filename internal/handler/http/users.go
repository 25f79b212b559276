package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/go-chi/chi/v5"
)

// createUser admits a new account. The heavy lifting — uniqueness, the
// single-admin rule, activation — happens in the admission controller; this
// handler only maps the payload and the rejection reasons.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.UserService.CreateUser(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrLoginAlreadyExists):
			log.Err(err).Str("login", req.Login).Msg("login already exists")
			http.Error(w, "login already exists", http.StatusConflict)
			return
		case errors.Is(err, store.ErrGroupNotFound):
			log.Err(err).Str("group", req.UserGroup).Msg("requested group not found")
			http.Error(w, "requested group not found", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrAdminAlreadyExists):
			log.Err(err).Msg("admin already exists")
			http.Error(w, "admin already exists", http.StatusConflict)
			return
		case errors.Is(err, service.ErrActiveStateMissing):
			log.Err(err).Msg("active state missing in the directory")
			http.Error(w, "active state missing in the directory", http.StatusInternalServerError)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during account creation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, created, http.StatusOK)
}

// deleteUser deactivates an account: the row survives with the Blocked state
// assigned. Repeated calls succeed without modifying the account.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.DeactivateUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("deactivation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getUser returns a single account by id.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// listUsers returns the whole directory.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.UserService.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user listing failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

// listUsersPage returns one page of the directory; page numbering is 1-based.
func (h *Handler) listUsersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	page, err := strconv.ParseUint(chi.URLParam(r, "page"), 10, 64)
	if err != nil || page == 0 {
		http.Error(w, "invalid page number", http.StatusBadRequest)
		return
	}

	pageSize, err := strconv.ParseUint(chi.URLParam(r, "pageSize"), 10, 64)
	if err != nil || pageSize == 0 {
		http.Error(w, "invalid page size", http.StatusBadRequest)
		return
	}

	users, err := h.services.UserService.ListUsersPage(ctx, page, pageSize)
	if err != nil {
		log.Err(err).Uint64("page", page).Uint64("page_size", pageSize).Msg("user page listing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}
