package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

const (
	minTeamNameLen = 3
	maxTeamNameLen = 100
)

type TeamService struct {
	Repo   *repo.GormRepo
	Index  PlayerIndex
	Events EventPublisher
}

type TeamInfo struct {
	models.Team
	PlayerCount int64 `json:"player_count"`
}

func (s *TeamService) List(ctx context.Context, offset, limit int) (int64, []models.Team, error) {
	return s.Repo.ListTeams(ctx, offset, limit)
}

func (s *TeamService) Get(ctx context.Context, id uint) (*models.Team, error) {
	t, err := s.Repo.GetTeam(ctx, id)
	return t, translate(err, "team")
}

func (s *TeamService) ByConference(ctx context.Context, conference string, offset, limit int) (int64, []models.Team, error) {
	conf, err := normalizeConference(conference)
	if err != nil {
		return 0, nil, err
	}
	return s.Repo.ListTeamsByConference(ctx, conf, offset, limit)
}

func (s *TeamService) ByDivision(ctx context.Context, division string, offset, limit int) (int64, []models.Team, error) {
	div, err := requireText("division", division, 50)
	if err != nil {
		return 0, nil, err
	}
	return s.Repo.ListTeamsByDivision(ctx, div, offset, limit)
}

func (s *TeamService) Roster(ctx context.Context, id uint) ([]models.Player, error) {
	t, err := s.Repo.GetTeam(ctx, id)
	if err != nil {
		return nil, translate(err, "team")
	}
	return s.Repo.ListPlayersByTeam(ctx, t.Name)
}

func (s *TeamService) Stats(ctx context.Context) ([]models.TeamWithPlayerCount, error) {
	return s.Repo.TeamsWithPlayerCount(ctx)
}

func (s *TeamService) Locations(ctx context.Context) ([]transport.TeamLocation, error) {
	teams, err := s.Repo.AllTeams(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.TeamLocation, 0, len(teams))
	for _, t := range teams {
		out = append(out, transport.TeamLocation{
			Name:       t.Name,
			City:       t.City,
			Stadium:    t.Stadium,
			Latitude:   t.Latitude,
			Longitude:  t.Longitude,
			Conference: t.Conference,
			Division:   t.Division,
		})
	}
	return out, nil
}

// Info looks a team up by name, ignoring case.
func (s *TeamService) Info(ctx context.Context, name string) (*TeamInfo, error) {
	t, err := s.Repo.GetTeamByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, translate(err, "team")
	}
	count, err := s.Repo.CountPlayersInTeam(ctx, t.Name)
	if err != nil {
		return nil, fmt.Errorf("count players: %w", err)
	}
	return &TeamInfo{Team: *t, PlayerCount: count}, nil
}

func (s *TeamService) Create(ctx context.Context, req transport.CreateTeamRequest) (*models.Team, error) {
	t := &models.Team{}
	patch := transport.PatchTeamRequest{
		Name:       &req.Name,
		City:       &req.City,
		State:      &req.State,
		Stadium:    &req.Stadium,
		Latitude:   &req.Latitude,
		Longitude:  &req.Longitude,
		Conference: &req.Conference,
		Division:   &req.Division,
	}
	if err := applyTeam(t, patch); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, t.Name, 0); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateTeam(ctx, t); err != nil {
		return nil, translate(err, "team")
	}

	publish(ctx, s.Events, TopicTeams, t.Name, map[string]any{
		"type":   "team_created",
		"teamID": t.ID,
		"name":   t.Name,
	})
	logging.FromContext(ctx).Info("team_created", "svc", "teams.create", "team_id", t.ID)
	return t, nil
}

// Patch applies the fields present in req. Renaming a team carries its
// players over to the new name.
func (s *TeamService) Patch(ctx context.Context, id uint, req transport.PatchTeamRequest) (*models.Team, error) {
	t, err := s.Repo.GetTeam(ctx, id)
	if err != nil {
		return nil, translate(err, "team")
	}

	previous := t.Name
	if err := applyTeam(t, req); err != nil {
		return nil, err
	}
	if t.Name != previous {
		if err := s.ensureNameFree(ctx, t.Name, t.ID); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.UpdateTeam(ctx, t, previous); err != nil {
		return nil, translate(err, "team")
	}
	if t.Name != previous {
		s.reindexRoster(ctx, t.Name)
	}

	publish(ctx, s.Events, TopicTeams, t.Name, map[string]any{
		"type":         "team_updated",
		"teamID":       t.ID,
		"name":         t.Name,
		"previousName": previous,
	})
	return t, nil
}

func (s *TeamService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteTeam(ctx, id); err != nil {
		return translate(err, "team")
	}
	publish(ctx, s.Events, TopicTeams, fmt.Sprint(id), map[string]any{
		"type":   "team_deleted",
		"teamID": id,
	})
	return nil
}

// reindexRoster pushes the renamed roster to the search index. Failures are
// logged; the database stays authoritative.
func (s *TeamService) reindexRoster(ctx context.Context, team string) {
	if s.Index == nil {
		return
	}
	l := logging.FromContext(ctx).With("svc", "teams.reindex", "team", team)

	players, err := s.Repo.ListPlayersByTeam(ctx, team)
	if err != nil {
		l.Warn("roster_reindex_failed", "error", err)
		return
	}
	for i := range players {
		if err := s.Index.IndexPlayer(ctx, &players[i]); err != nil {
			l.Warn("player_index_failed", "player_id", players[i].ID, "error", err)
		}
	}
}

func (s *TeamService) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.Repo.TeamNameTaken(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("check team name: %w", err)
	}
	if taken {
		return fmt.Errorf("team %q already exists: %w", name, ErrConflict)
	}
	return nil
}

func normalizeConference(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "east":
		return "East", nil
	case "west":
		return "West", nil
	default:
		return "", validationf("conference must be East or West")
	}
}

func applyTeam(t *models.Team, req transport.PatchTeamRequest) error {
	if req.Name != nil {
		name, err := requireText("name", *req.Name, maxTeamNameLen)
		if err != nil {
			return err
		}
		if len([]rune(name)) < minTeamNameLen {
			return validationf("name must be at least %d characters", minTeamNameLen)
		}
		t.Name = name
	}

	text := []struct {
		field string
		src   *string
		dst   *string
		max   int
	}{
		{"city", req.City, &t.City, 100},
		{"state", req.State, &t.State, 100},
		{"stadium", req.Stadium, &t.Stadium, 150},
		{"division", req.Division, &t.Division, 50},
	}
	for _, f := range text {
		if f.src == nil {
			continue
		}
		v, err := requireText(f.field, *f.src, f.max)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if req.Conference != nil {
		conf, err := normalizeConference(*req.Conference)
		if err != nil {
			return err
		}
		t.Conference = conf
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			return validationf("latitude must be between -90 and 90")
		}
		t.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			return validationf("longitude must be between -180 and 180")
		}
		t.Longitude = *req.Longitude
	}
	return nil
}
