package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

// PlayerIndex is the full-text side of the player store.
type PlayerIndex interface {
	IndexPlayer(ctx context.Context, p *models.Player) error
	DeletePlayer(ctx context.Context, id uint) error
	SearchPlayers(ctx context.Context, q string, offset, limit int) (int64, []models.Player, error)
}

type PlayerService struct {
	Repo   *repo.GormRepo
	Index  PlayerIndex
	Events EventPublisher
	Now    func() time.Time
}

func (s *PlayerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *PlayerService) List(ctx context.Context, offset, limit int) (int64, []models.Player, error) {
	return s.Repo.ListPlayers(ctx, offset, limit)
}

func (s *PlayerService) Get(ctx context.Context, id uint) (*models.Player, error) {
	p, err := s.Repo.GetPlayer(ctx, id)
	return p, translate(err, "player")
}

// Search queries the index when one is configured and falls back to the
// database when it is absent or failing.
func (s *PlayerService) Search(ctx context.Context, q string, offset, limit int) (int64, []models.Player, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, validationf("q is required")
	}

	if s.Index != nil {
		total, items, err := s.Index.SearchPlayers(ctx, q, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("player_search_fallback", "svc", "players.search", "error", err)
	}
	return s.Repo.SearchPlayers(ctx, q, offset, limit)
}

func (s *PlayerService) Create(ctx context.Context, req transport.PlayerRequest) (*models.Player, error) {
	p := &models.Player{}
	if err := s.apply(p, req); err != nil {
		return nil, err
	}
	if err := s.Repo.CreatePlayer(ctx, p); err != nil {
		return nil, translate(err, "player")
	}

	s.reindex(ctx, p)
	publish(ctx, s.Events, TopicPlayers, fmt.Sprint(p.ID), map[string]any{
		"type":     "player_created",
		"playerID": p.ID,
		"name":     p.Name,
		"team":     p.Team,
	})
	logging.FromContext(ctx).Info("player_created", "svc", "players.create", "player_id", p.ID)
	return p, nil
}

// Replace overwrites every editable field of an existing player.
func (s *PlayerService) Replace(ctx context.Context, id uint, req transport.PlayerRequest) (*models.Player, error) {
	p, err := s.Repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, translate(err, "player")
	}
	if err := s.apply(p, req); err != nil {
		return nil, err
	}
	if err := s.Repo.SavePlayer(ctx, p); err != nil {
		return nil, translate(err, "player")
	}

	s.reindex(ctx, p)
	publish(ctx, s.Events, TopicPlayers, fmt.Sprint(p.ID), map[string]any{
		"type":     "player_updated",
		"playerID": p.ID,
		"name":     p.Name,
		"team":     p.Team,
	})
	return p, nil
}

func (s *PlayerService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeletePlayer(ctx, id); err != nil {
		return translate(err, "player")
	}

	if s.Index != nil {
		if err := s.Index.DeletePlayer(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("player_unindex_failed", "player_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, TopicPlayers, fmt.Sprint(id), map[string]any{
		"type":     "player_deleted",
		"playerID": id,
	})
	return nil
}

func (s *PlayerService) reindex(ctx context.Context, p *models.Player) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexPlayer(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("player_index_failed", "player_id", p.ID, "error", err)
	}
}

func (s *PlayerService) apply(p *models.Player, req transport.PlayerRequest) error {
	name, err := requireText("name", req.Name, 255)
	if err != nil {
		return err
	}
	team, err := requireText("team", req.Team, 255)
	if err != nil {
		return err
	}
	position, err := requireText("position", req.Position, 50)
	if err != nil {
		return err
	}
	if req.HeightM <= 0 {
		return validationf("height_m must be positive")
	}
	if req.WeightKg <= 0 {
		return validationf("weight_kg must be positive")
	}
	birth, err := parseDate(req.BirthDate)
	if err != nil {
		return err
	}
	if birth.After(s.now()) {
		return validationf("birth_date cannot be in the future")
	}

	p.Name = name
	p.Team = team
	p.Position = position
	p.HeightM = req.HeightM
	p.WeightKg = req.WeightKg
	p.BirthDate = birth
	return nil
}
