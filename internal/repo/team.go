package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/models"
)

func (r *GormRepo) CreateTeam(ctx context.Context, t *models.Team) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) GetTeam(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	if err := r.DB.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *GormRepo) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	if err := r.DB.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *GormRepo) ListTeams(ctx context.Context, offset, limit int) (int64, []models.Team, error) {
	return paginate[models.Team](ctx, r.DB, offset, limit)
}

func (r *GormRepo) ListTeamsByConference(ctx context.Context, conference string, offset, limit int) (int64, []models.Team, error) {
	return paginate[models.Team](ctx, r.DB, offset, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(conference) = LOWER(?)", conference)
	})
}

func (r *GormRepo) ListTeamsByDivision(ctx context.Context, division string, offset, limit int) (int64, []models.Team, error) {
	return paginate[models.Team](ctx, r.DB, offset, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(division) = LOWER(?)", division)
	})
}

func (r *GormRepo) AllTeams(ctx context.Context) ([]models.Team, error) {
	items := make([]models.Team, 0)
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) TeamNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.Team{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) DeleteTeam(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Team{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TeamsWithPlayerCount joins players on the team name.
func (r *GormRepo) TeamsWithPlayerCount(ctx context.Context) ([]models.TeamWithPlayerCount, error) {
	rows := make([]models.TeamWithPlayerCount, 0)
	err := r.DB.WithContext(ctx).
		Model(&models.Team{}).
		Select("teams.*, COUNT(players.id) AS player_count").
		Joins("LEFT JOIN players ON players.team = teams.name").
		Group("teams.id").
		Order("teams.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) CountPlayersInTeam(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Player{}).Where("team = ?", name).Count(&count).Error
	return count, err
}

// UpdateTeam saves t and, when the name changed, moves the roster along with
// it in the same transaction.
func (r *GormRepo) UpdateTeam(ctx context.Context, t *models.Team, previousName string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		if previousName == "" || previousName == t.Name {
			return nil
		}
		return tx.Model(&models.Player{}).
			Where("team = ?", previousName).
			Update("team", t.Name).Error
	})
}
