package handler

import (
	httphandler "github.com/MKhiriev/go-user-directory/internal/handler/http"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
)

// Handlers aggregates the transport-level handlers of the application.
// The user directory exposes a single HTTP surface.
type Handlers struct {
	HTTP *httphandler.Handler
}

func NewHandlers(services *service.Services, logger *logger.Logger) *Handlers {
	return &Handlers{
		HTTP: httphandler.NewHandler(services, logger),
	}
}
