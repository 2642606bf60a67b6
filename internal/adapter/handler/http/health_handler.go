package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vraxaserver/eygarpayment/internal/config"
)

// HealthHandler reports liveness. It touches no downstream dependency.
type HealthHandler struct {
	service string
	version string
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		service: cfg.Service.Name,
		version: cfg.Service.Version,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}
