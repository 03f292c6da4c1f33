package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

type RoleHTTP struct {
	Svc *service.RoleService
}

func (h *RoleHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "roles.list")

	p := readPage(c)
	total, items, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(c, l, "list_roles_failed", err)
	}
	return writePage(c, p, total, items)
}

func (h *RoleHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "roles.get")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "get_role_failed", err.Error(), err)
	}
	role, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(c, l, "get_role_failed", err)
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "roles.create")

	var req transport.RoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_role_failed", "invalid body", err)
	}
	role, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(c, l, "create_role_failed", err)
	}
	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "roles.update")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "update_role_failed", err.Error(), err)
	}
	var req transport.RoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_role_failed", "invalid body", err)
	}
	role, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(c, l, "update_role_failed", err)
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "roles.delete")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "delete_role_failed", err.Error(), err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(c, l, "delete_role_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
