package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

type PlayerHTTP struct {
	Svc *service.PlayerService
}

func (h *PlayerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "players.list")

	p := readPage(c)
	total, items, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(c, l, "list_players_failed", err)
	}
	return writePage(c, p, total, items)
}

func (h *PlayerHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "players.search")

	p := readPage(c)
	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), p.offset, p.limit)
	if err != nil {
		return fail(c, l, "search_players_failed", err)
	}
	return writePage(c, p, total, items)
}

func (h *PlayerHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "players.get")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "get_player_failed", err.Error(), err)
	}
	player, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(c, l, "get_player_failed", err)
	}
	return c.JSON(http.StatusOK, player)
}

func (h *PlayerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "players.create")

	var req transport.PlayerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_player_failed", "invalid body", err)
	}
	player, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(c, l, "create_player_failed", err)
	}

	l.Info("create_player_success", "player_id", player.ID)
	return c.JSON(http.StatusCreated, player)
}

func (h *PlayerHTTP) Replace(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "players.replace")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "replace_player_failed", err.Error(), err)
	}
	var req transport.PlayerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "replace_player_failed", "invalid body", err)
	}
	player, err := h.Svc.Replace(ctx, id, req)
	if err != nil {
		return fail(c, l, "replace_player_failed", err)
	}
	return c.JSON(http.StatusOK, player)
}

func (h *PlayerHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "players.delete")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "delete_player_failed", err.Error(), err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(c, l, "delete_player_failed", err)
	}

	l.Info("delete_player_success", "player_id", id)
	return c.NoContent(http.StatusNoContent)
}
