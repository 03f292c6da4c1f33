package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nba_api/internal/middleware/auth"
	"github.com/Skotchmaster/nba_api/internal/models"
)

type Deps struct {
	Guard   *auth.Guard
	Auth    *AuthHTTP
	Players *PlayerHTTP
	Teams   *TeamHTTP
	Users   *UserHTTP
	Roles   *RoleHTTP
	System  *SystemHTTP
	Metrics echo.HandlerFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", d.System.Root)
	e.GET("/health/live", d.System.Live)
	e.GET("/health/ready", d.System.Ready)
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics)
	}

	g := d.Guard
	read := g.Require(models.CapReadPlayers)
	create := g.Require(models.CapCreatePlayers)
	update := g.Require(models.CapUpdatePlayers)
	remove := g.Require(models.CapDeletePlayers)

	v1 := e.Group("/api/v1")

	v1.POST("/auth/login", d.Auth.Login)
	v1.POST("/auth/register", d.Auth.Register)

	private := v1.Group("", g.Authenticate())
	private.GET("/auth/profile", d.Auth.Profile)

	players := private.Group("/players")
	players.GET("", d.Players.List, read)
	players.GET("/search", d.Players.Search, read)
	players.GET("/:id", d.Players.Get, read)
	players.POST("", d.Players.Create, create)
	players.PUT("/:id", d.Players.Replace, update)
	players.DELETE("/:id", d.Players.Delete, remove)

	teams := private.Group("/teams")
	teams.GET("", d.Teams.List, read)
	teams.GET("/stats", d.Teams.Stats, read)
	teams.GET("/conference/:conference", d.Teams.ByConference, read)
	teams.GET("/division/:division", d.Teams.ByDivision, read)
	teams.GET("/:id", d.Teams.Get, read)
	teams.GET("/:id/players", d.Teams.Roster, read)
	teams.POST("", d.Teams.Create, create)
	teams.PATCH("/:id", d.Teams.Patch, update)
	teams.DELETE("/:id", d.Teams.Delete, remove)

	nbaMap := private.Group("/nba-map", read)
	nbaMap.GET("/teams-locations", d.Teams.Locations)
	nbaMap.GET("/team-info/:name", d.Teams.Info)

	users := private.Group("/users", g.Require(models.CapManageUsers))
	users.GET("", d.Users.List)
	users.GET("/username/:username", d.Users.GetByUsername)
	users.GET("/:id", d.Users.Get)
	users.POST("", d.Users.Create)
	users.PUT("/:id", d.Users.Update)
	users.POST("/:id/deactivate", d.Users.Deactivate)
	users.DELETE("/:id", d.Users.Delete)

	roles := private.Group("/roles", g.RequireAdmin())
	roles.GET("", d.Roles.List)
	roles.GET("/:id", d.Roles.Get)
	roles.POST("", d.Roles.Create)
	roles.PUT("/:id", d.Roles.Update)
	roles.DELETE("/:id", d.Roles.Delete)
}
