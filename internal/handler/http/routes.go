package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authentication
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
	})

	// user directory routes behind Basic authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users", h.listUsers)
		r.Get("/api/users/{id}", h.getUser)
		r.Get("/api/users/{page}/{pageSize}", h.listUsersPage)
		r.Post("/api/users", h.createUser)
		r.Delete("/api/users/{id}", h.deleteUser)
	})

	return router
}

// health is the unauthenticated liveness probe used by the healthcheck CLI
// and container orchestration.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
