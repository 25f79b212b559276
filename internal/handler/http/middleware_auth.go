// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/utils"
)

// auth is an HTTP middleware that enforces Basic authentication.
//
// It passes the raw "Authorization" header to
// [service.AuthService.Authenticate] and — on success — stores the resolved
// identity in the request context under [utils.IdentityCtxKey] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The header is absent, carries a scheme other than Basic, or its payload
//     does not decode into a login:secret pair ([service.ErrMalformedCredentials]).
//   - The credential pair does not verify ([service.ErrUnauthenticated]).
//   - The account's group reference is dangling ([service.ErrRoleMissing]).
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		identity, err := h.services.AuthService.Authenticate(ctx, r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMalformedCredentials),
				errors.Is(err, service.ErrUnauthenticated),
				errors.Is(err, service.ErrRoleMissing):
				log.Err(err).Msg("authentication rejected")
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("unexpected error occurred during authentication")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		// Store the authenticated identity in the context so that downstream
		// handlers can retrieve it without re-verifying credentials.
		ctx = context.WithValue(ctx, utils.IdentityCtxKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
