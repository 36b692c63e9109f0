package handler

import (
	"net/http"

	"clinicmap/internal/delivery/web/response"
	"clinicmap/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and the size of the loaded dataset
type HealthHandler struct {
	facilities repository.FacilityRepository
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(facilities repository.FacilityRepository) *HealthHandler {
	return &HealthHandler{facilities: facilities}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"status":     "ok",
		"facilities": h.facilities.Len(),
	})
}
