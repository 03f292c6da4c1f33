package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/models"
)

func (r *GormRepo) CreatePlayer(ctx context.Context, p *models.Player) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) GetPlayer(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	if err := r.DB.WithContext(ctx).First(&player, id).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *GormRepo) ListPlayers(ctx context.Context, offset, limit int) (int64, []models.Player, error) {
	return paginate[models.Player](ctx, r.DB, offset, limit)
}

func (r *GormRepo) SavePlayer(ctx context.Context, p *models.Player) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeletePlayer(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Player{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchPlayers matches name, team or position case-insensitively.
func (r *GormRepo) SearchPlayers(ctx context.Context, q string, offset, limit int) (int64, []models.Player, error) {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	return paginate[models.Player](ctx, r.DB, offset, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(team) LIKE ? ESCAPE '\\' OR LOWER(position) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern,
		)
	})
}

func (r *GormRepo) ListPlayersByTeam(ctx context.Context, team string) ([]models.Player, error) {
	items := make([]models.Player, 0)
	if err := r.DB.WithContext(ctx).Where("team = ?", team).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
