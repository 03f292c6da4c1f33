package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	p := readPage(c)
	total, items, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(c, l, "list_users_failed", err)
	}
	return writePage(c, p, total, items)
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.get")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "get_user_failed", err.Error(), err)
	}
	user, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(c, l, "get_user_failed", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) GetByUsername(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.get_by_username")

	user, err := h.Svc.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return fail(c, l, "get_user_failed", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_user_failed", "invalid body", err)
	}
	user, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(c, l, "create_user_failed", err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "update_user_failed", err.Error(), err)
	}
	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_user_failed", "invalid body", err)
	}
	user, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(c, l, "update_user_failed", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.deactivate")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "deactivate_user_failed", err.Error(), err)
	}
	user, err := h.Svc.Deactivate(ctx, id)
	if err != nil {
		return fail(c, l, "deactivate_user_failed", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "delete_user_failed", err.Error(), err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(c, l, "delete_user_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
