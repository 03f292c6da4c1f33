package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

type TeamHTTP struct {
	Svc *service.TeamService
}

func (h *TeamHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.list")

	p := readPage(c)
	total, items, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(c, l, "list_teams_failed", err)
	}
	return writePage(c, p, total, items)
}

func (h *TeamHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.stats")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		return fail(c, l, "team_stats_failed", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *TeamHTTP) ByConference(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.by_conference")

	p := readPage(c)
	total, items, err := h.Svc.ByConference(ctx, c.Param("conference"), p.offset, p.limit)
	if err != nil {
		return fail(c, l, "list_teams_failed", err)
	}
	return writePage(c, p, total, items)
}

func (h *TeamHTTP) ByDivision(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.by_division")

	p := readPage(c)
	total, items, err := h.Svc.ByDivision(ctx, c.Param("division"), p.offset, p.limit)
	if err != nil {
		return fail(c, l, "list_teams_failed", err)
	}
	return writePage(c, p, total, items)
}

func (h *TeamHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.get")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "get_team_failed", err.Error(), err)
	}
	team, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(c, l, "get_team_failed", err)
	}
	return c.JSON(http.StatusOK, team)
}

func (h *TeamHTTP) Roster(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.roster")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "team_roster_failed", err.Error(), err)
	}
	players, err := h.Svc.Roster(ctx, id)
	if err != nil {
		return fail(c, l, "team_roster_failed", err)
	}
	return c.JSON(http.StatusOK, players)
}

func (h *TeamHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.create")

	var req transport.CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_team_failed", "invalid body", err)
	}
	team, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(c, l, "create_team_failed", err)
	}

	l.Info("create_team_success", "team_id", team.ID)
	return c.JSON(http.StatusCreated, team)
}

func (h *TeamHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.patch")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "patch_team_failed", err.Error(), err)
	}
	var req transport.PatchTeamRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_team_failed", "invalid body", err)
	}
	team, err := h.Svc.Patch(ctx, id, req)
	if err != nil {
		return fail(c, l, "patch_team_failed", err)
	}
	return c.JSON(http.StatusOK, team)
}

func (h *TeamHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teams.delete")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "delete_team_failed", err.Error(), err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(c, l, "delete_team_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TeamHTTP) Locations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "nba_map.locations")

	locs, err := h.Svc.Locations(ctx)
	if err != nil {
		return fail(c, l, "team_locations_failed", err)
	}
	return c.JSON(http.StatusOK, locs)
}

func (h *TeamHTTP) Info(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "nba_map.team_info")

	info, err := h.Svc.Info(ctx, c.Param("name"))
	if err != nil {
		return fail(c, l, "team_info_failed", err)
	}
	return c.JSON(http.StatusOK, info)
}
