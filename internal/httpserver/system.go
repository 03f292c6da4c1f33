package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/nba_api/pkg/db"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

type SystemHTTP struct {
	DB      *gorm.DB
	Service string
	Version string
}

func (h *SystemHTTP) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": h.Service,
		"version": h.Version,
		"docs":    "/api/v1",
		"health":  "/health/ready",
	})
}

func (h *SystemHTTP) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SystemHTTP) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	if err := pkgdb.Ping(ctx, h.DB); err != nil {
		logging.FromContext(ctx).Error("readiness_failed", "status", http.StatusServiceUnavailable, "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}
