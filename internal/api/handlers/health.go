// Package handlers implements HTTP handlers for the pricing service API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"product-pricing-service/internal/cache"
	"product-pricing-service/internal/store"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	store store.Store
	cache cache.SnapshotCache
}

// NewHealthHandler creates a new HealthHandler. A nil store (memory mode)
// is skipped by the readiness check.
func NewHealthHandler(s store.Store, c cache.SnapshotCache) *HealthHandler {
	if c == nil {
		c = cache.Noop{}
	}
	return &HealthHandler{store: s, cache: c}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the store and cache are reachable, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			return c.JSON(
				http.StatusServiceUnavailable,
				StatusResponse{Status: "unavailable", Component: "store"},
			)
		}
	}

	if err := h.cache.Ping(ctx); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			StatusResponse{Status: "unavailable", Component: "cache"},
		)
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
