package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/internal/util"
)

// fail logs err under event and converts it to the HTTP error for its kind.
// Internal errors are never echoed to the client.
func fail(c echo.Context, l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
		l.Warn(event, "status", http.StatusBadRequest, "reason", msg)
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "invalid credentials")
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", http.StatusNotFound, "reason", err.Error())
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		msg := strings.TrimSuffix(err.Error(), ": "+service.ErrConflict.Error())
		l.Warn(event, "status", http.StatusConflict, "reason", msg)
		return echo.NewHTTPError(http.StatusConflict, msg)
	default:
		l.Error(event, "status", http.StatusInternalServerError, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

type pageParams struct {
	page, offset, limit int
}

func readPage(c echo.Context) pageParams {
	page := util.ClampPage(util.ParseIntDefault(c.QueryParam("page"), 1))
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	return pageParams{page: page, offset: offset, limit: limit}
}

func writePage[T any](c echo.Context, p pageParams, total int64, items []T) error {
	return c.JSON(http.StatusOK, util.NewPage(items, p.page, p.offset, p.limit, total))
}
