package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/models"
)

var ErrRoleInUse = errors.New("role has assigned users")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

type scope = func(*gorm.DB) *gorm.DB

func paginate[T any](ctx context.Context, db *gorm.DB, offset, limit int, scopes ...scope) (int64, []T, error) {
	var model T
	var total int64
	if err := db.WithContext(ctx).Model(&model).Scopes(scopes...).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]T, 0, limit)
	if err := db.WithContext(ctx).Model(&model).Scopes(scopes...).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
