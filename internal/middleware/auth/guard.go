package auth

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/pkg/logging"
	"github.com/Skotchmaster/nba_api/pkg/tokens"
)

const (
	tokenContextKey = "token"
	userContextKey  = "user"

	msgUnauthorized = "could not validate credentials"
)

// UserLookup resolves the subject of a verified token.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Guard authenticates bearer tokens and authorizes by role capability. The
// user and role are loaded on every request so permission changes apply to
// tokens already issued.
type Guard struct {
	Tokens *tokens.Issuer
	Users  UserLookup
}

func (g *Guard) Authenticate() echo.MiddlewareFunc {
	bearer := echojwt.WithConfig(echojwt.Config{
		ContextKey:  tokenContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(_ echo.Context, raw string) (any, error) {
			return g.Tokens.Verify(raw)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("auth_failed", "reason", "bad token", "error", err)
			return unauthorized(c)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return bearer(func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx)

			claims, ok := c.Get(tokenContextKey).(*tokens.Claims)
			if !ok {
				return unauthorized(c)
			}

			user, err := g.Users.GetByUsername(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, service.ErrNotFound) {
					l.Warn("auth_failed", "reason", "unknown subject", "subject", claims.Subject)
					return unauthorized(c)
				}
				l.Error("auth_failed", "reason", "user lookup", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
			if !user.IsActive {
				l.Warn("auth_failed", "reason", "inactive user", "user_id", user.ID)
				return unauthorized(c)
			}
			if user.Role == nil {
				l.Warn("auth_failed", "reason", "no role", "user_id", user.ID)
				return unauthorized(c)
			}

			c.Set(userContextKey, user)
			l = l.With("user_id", user.ID)
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))
			return next(c)
		})
	}
}

// Require passes only users whose role grants cap. It must run after
// Authenticate.
func (g *Guard) Require(cap models.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthorized(c)
			}
			if !user.Role.Allows(cap) {
				logging.FromContext(c.Request().Context()).Warn("access_denied", "capability", cap.String(), "role", user.Role.Name)
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

func (g *Guard) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthorized(c)
			}
			if !user.Role.IsAdmin() {
				logging.FromContext(c.Request().Context()).Warn("access_denied", "reason", "not admin", "role", user.Role.Name)
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user set by Authenticate, or nil.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userContextKey).(*models.User)
	return u
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
}
