package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nba_api/internal/middleware/auth"
	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/internal/seed"
	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/internal/testutil"
	"github.com/Skotchmaster/nba_api/internal/util"
	"github.com/Skotchmaster/nba_api/pkg/tokens"
)

var testSecret = []byte("router-test-secret")

type server struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := testutil.NewDB(t)
	r := repo.New(db)
	ctx := context.Background()
	require.NoError(t, seed.EnsureDefaultRoles(ctx, r))
	require.NoError(t, seed.EnsureAdmin(ctx, r, "root", "rootpass"))

	issuer := tokens.NewIssuer(testSecret, time.Hour)
	users := &service.UserService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		Guard:   &auth.Guard{Tokens: issuer, Users: users},
		Auth:    &AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: issuer}},
		Players: &PlayerHTTP{Svc: &service.PlayerService{Repo: r}},
		Teams:   &TeamHTTP{Svc: &service.TeamService{Repo: r}},
		Users:   &UserHTTP{Svc: users},
		Roles:   &RoleHTTP{Svc: &service.RoleService{Repo: r}},
		System:  &SystemHTTP{DB: db, Service: "nba_api", Version: "test"},
	})
	return &server{e: e, repo: r}
}

func (s *server) call(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *server) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["access_token"].(string)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

var lebron = map[string]any{
	"name":       "LeBron James",
	"team":       "Los Angeles Lakers",
	"position":   "SF",
	"height_m":   2.06,
	"weight_kg":  113.4,
	"birth_date": "1984-12-30",
}

func TestAliceScenario(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	rec := s.call(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, "alice", decode(t, rec)["username"])

	rec = s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(3600), body["expires_in"])
	assert.Equal(t, "bearer", body["token_type"])
	token := body["access_token"].(string)

	rec = s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.call(t, http.MethodPost, "/api/v1/players", token, lebron)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	userRole, err := s.repo.GetRoleByName(context.Background(), models.DefaultRoleName)
	require.NoError(t, err)
	admin := s.login(t, "root", "rootpass")
	rec = s.call(t, http.MethodPut, fmt.Sprintf("/api/v1/roles/%d", userRole.ID), admin, map[string]any{"can_create_players": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.call(t, http.MethodPost, "/api/v1/players", token, lebron)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "LeBron James", decode(t, rec)["name"])

	past := tokens.NewIssuer(testSecret, time.Hour).WithClock(func() time.Time { return time.Now().Add(-3 * time.Hour) })
	expired, _, err := past.Issue("alice")
	require.NoError(t, err)
	rec = s.call(t, http.MethodGet, "/api/v1/players", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestProfile(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	rec := s.call(t, http.MethodGet, "/api/v1/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t, "root", "rootpass")
	rec = s.call(t, http.MethodGet, "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "root", body["username"])
	assert.Equal(t, models.AdminRoleName, body["role"])
	assert.Equal(t, true, body["is_active"])
}

func TestPlayersCRUDAndPagination(t *testing.T) {
	t.Parallel()
	s := newServer(t)
	token := s.login(t, "root", "rootpass")

	rec := s.call(t, http.MethodPost, "/api/v1/players", token, map[string]any{"name": "", "team": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var ids []int
	for i := 0; i < 3; i++ {
		p := map[string]any{}
		for k, v := range lebron {
			p[k] = v
		}
		p["name"] = fmt.Sprintf("Player %d", i)
		rec := s.call(t, http.MethodPost, "/api/v1/players", token, p)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ids = append(ids, int(decode(t, rec)["id"].(float64)))
	}

	rec = s.call(t, http.MethodGet, "/api/v1/players?page=2&size=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["data"], 1)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, float64(2), meta["total_pages"])
	assert.Equal(t, true, meta["has_prev"])
	assert.Equal(t, false, meta["has_next"])

	rec = s.call(t, http.MethodGet, "/api/v1/players?page=100000000000000000&size=100", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Empty(t, body["data"])
	meta = body["meta"].(map[string]any)
	assert.Equal(t, float64(util.MaxPage), meta["page"])
	assert.Equal(t, false, meta["has_next"])

	rec = s.call(t, http.MethodGet, "/api/v1/players/search?q=player%201", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["meta"].(map[string]any)["total"])

	replaced := map[string]any{}
	for k, v := range lebron {
		replaced[k] = v
	}
	replaced["position"] = "PF"
	rec = s.call(t, http.MethodPut, fmt.Sprintf("/api/v1/players/%d", ids[0]), token, replaced)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PF", decode(t, rec)["position"])

	rec = s.call(t, http.MethodGet, "/api/v1/players/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.call(t, http.MethodDelete, fmt.Sprintf("/api/v1/players/%d", ids[0]), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.call(t, http.MethodGet, fmt.Sprintf("/api/v1/players/%d", ids[0]), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTeamsAndMap(t *testing.T) {
	t.Parallel()
	s := newServer(t)
	token := s.login(t, "root", "rootpass")

	rec := s.call(t, http.MethodPost, "/api/v1/teams", token, map[string]any{
		"name": "Los Angeles Lakers", "city": "Los Angeles", "state": "California",
		"stadium": "Crypto.com Arena", "latitude": 34.043, "longitude": -118.267,
		"conference": "West", "division": "Pacific",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	teamID := int(decode(t, rec)["id"].(float64))

	rec = s.call(t, http.MethodPost, "/api/v1/players", token, lebron)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.call(t, http.MethodGet, "/api/v1/teams/conference/west", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)

	rec = s.call(t, http.MethodGet, "/api/v1/teams/conference/south", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.call(t, http.MethodGet, "/api/v1/nba-map/team-info/los%20angeles%20lakers", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["player_count"])

	rec = s.call(t, http.MethodGet, "/api/v1/nba-map/teams-locations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Crypto.com Arena")

	rec = s.call(t, http.MethodPatch, fmt.Sprintf("/api/v1/teams/%d", teamID), token, map[string]any{"name": "LA Lakers"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.call(t, http.MethodGet, fmt.Sprintf("/api/v1/teams/%d/players", teamID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"team":"LA Lakers"`)

	rec = s.call(t, http.MethodGet, "/api/v1/teams/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"player_count":1`)

	rec = s.call(t, http.MethodDelete, fmt.Sprintf("/api/v1/teams/%d", teamID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUsersRequireManageUsers(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	rec := s.call(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	aliceID := int(decode(t, rec)["user_id"].(float64))
	alice := s.login(t, "alice", "secret1")

	rec = s.call(t, http.MethodGet, "/api/v1/users", alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := s.login(t, "root", "rootpass")
	rec = s.call(t, http.MethodGet, "/api/v1/users/username/alice", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.call(t, http.MethodPost, "/api/v1/users", admin, map[string]any{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	for i := 0; i < 2; i++ {
		rec = s.call(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/deactivate", aliceID), admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, decode(t, rec)["is_active"])
	}

	rec = s.call(t, http.MethodGet, "/api/v1/players", alice, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.call(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aliceID), admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRolesAdminOnlyAndDeleteInUse(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	rec := s.call(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	alice := s.login(t, "alice", "secret1")

	rec = s.call(t, http.MethodGet, "/api/v1/roles", alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin access required")

	admin := s.login(t, "root", "rootpass")
	userRole, err := s.repo.GetRoleByName(context.Background(), models.DefaultRoleName)
	require.NoError(t, err)

	rec = s.call(t, http.MethodDelete, fmt.Sprintf("/api/v1/roles/%d", userRole.ID), admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.call(t, http.MethodGet, fmt.Sprintf("/api/v1/roles/%d", userRole.ID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultRoleName, decode(t, rec)["name"])

	rec = s.call(t, http.MethodPost, "/api/v1/roles", admin, map[string]any{"name": "scout"})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["can_read_players"])
	assert.Equal(t, false, body["can_manage_users"])

	rec = s.call(t, http.MethodPost, "/api/v1/roles", admin, map[string]any{"name": "scout"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.call(t, http.MethodDelete, fmt.Sprintf("/api/v1/roles/%d", int(body["id"].(float64))), admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	assert.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/health/live", "", nil).Code)

	rec := s.call(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up", decode(t, rec)["database"])
}
