package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/internal/testutil"
	"github.com/Skotchmaster/nba_api/pkg/tokens"
)

type guardEnv struct {
	e      *echo.Echo
	repo   *repo.GormRepo
	issuer *tokens.Issuer
	reader *models.Role
}

func newGuardEnv(t *testing.T) *guardEnv {
	t.Helper()

	r := repo.New(testutil.NewDB(t))
	ctx := context.Background()

	reader := &models.Role{Name: "reader", CanReadPlayers: true, IsActive: true}
	require.NoError(t, r.CreateRole(ctx, reader))
	admin := &models.Role{Name: "Admin", CanReadPlayers: true, CanManageUsers: true, IsActive: true}
	require.NoError(t, r.CreateRole(ctx, admin))

	for _, u := range []*models.User{
		{Username: "alice", PasswordHash: "x", IsActive: true, RoleID: &reader.ID},
		{Username: "root", PasswordHash: "x", IsActive: true, RoleID: &admin.ID},
		{Username: "ghost", PasswordHash: "x", IsActive: false, RoleID: &reader.ID},
		{Username: "orphan", PasswordHash: "x", IsActive: true},
	} {
		require.NoError(t, r.CreateUser(ctx, u))
	}

	issuer := tokens.NewIssuer([]byte("guard-test-secret"), time.Hour)
	g := &Guard{Tokens: issuer, Users: &service.UserService{Repo: r}}

	e := echo.New()
	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).Username)
	}
	grp := e.Group("", g.Authenticate())
	grp.GET("/read", ok, g.Require(models.CapReadPlayers))
	grp.GET("/create", ok, g.Require(models.CapCreatePlayers))
	grp.GET("/admin", ok, g.RequireAdmin())

	return &guardEnv{e: e, repo: r, issuer: issuer, reader: reader}
}

func (env *guardEnv) do(t *testing.T, path, authz string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *guardEnv) bearer(t *testing.T, subject string) string {
	t.Helper()
	tok, _, err := env.issuer.Issue(subject)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestGuard_Statuses(t *testing.T) {
	t.Parallel()

	env := newGuardEnv(t)
	expired, _, err := env.issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue("alice")
	require.NoError(t, err)

	cases := []struct {
		name  string
		path  string
		authz string
		want  int
	}{
		{"no header", "/read", "", http.StatusUnauthorized},
		{"wrong scheme", "/read", "Basic YWxpY2U6eA==", http.StatusUnauthorized},
		{"garbage token", "/read", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "/read", "Bearer " + expired, http.StatusUnauthorized},
		{"unknown subject", "/read", env.bearer(t, "nobody"), http.StatusUnauthorized},
		{"inactive user", "/read", env.bearer(t, "ghost"), http.StatusUnauthorized},
		{"no role", "/read", env.bearer(t, "orphan"), http.StatusUnauthorized},
		{"granted", "/read", env.bearer(t, "alice"), http.StatusOK},
		{"missing capability", "/create", env.bearer(t, "alice"), http.StatusForbidden},
		{"not admin", "/admin", env.bearer(t, "alice"), http.StatusForbidden},
		{"admin name ignores case", "/admin", env.bearer(t, "root"), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, tc.path, tc.authz)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
			if tc.want == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
			}
		})
	}
}

func TestGuard_RoleChangesApplyToExistingTokens(t *testing.T) {
	t.Parallel()

	env := newGuardEnv(t)
	ctx := context.Background()
	authz := env.bearer(t, "alice")

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusForbidden, env.do(t, "/create", authz).Code)
	}

	env.reader.CanCreatePlayers = true
	require.NoError(t, env.repo.SaveRole(ctx, env.reader))
	assert.Equal(t, http.StatusOK, env.do(t, "/create", authz).Code)

	env.reader.IsActive = false
	require.NoError(t, env.repo.SaveRole(ctx, env.reader))
	assert.Equal(t, http.StatusForbidden, env.do(t, "/read", authz).Code)
}
