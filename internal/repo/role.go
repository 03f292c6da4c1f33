package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/models"
)

func (r *GormRepo) CreateRole(ctx context.Context, role *models.Role) error {
	return r.DB.WithContext(ctx).Create(role).Error
}

func (r *GormRepo) GetRoleByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.DB.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *GormRepo) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *GormRepo) ListRoles(ctx context.Context, offset, limit int) (int64, []models.Role, error) {
	return paginate[models.Role](ctx, r.DB, offset, limit)
}

func (r *GormRepo) RoleNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.Role{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) SaveRole(ctx context.Context, role *models.Role) error {
	return r.DB.WithContext(ctx).Save(role).Error
}

func countUsersWithRole(db *gorm.DB, roleID uint) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

// DeleteRole removes the role unless users still reference it, in which case it
// returns ErrRoleInUse and changes nothing.
func (r *GormRepo) DeleteRole(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, id).Error; err != nil {
			return err
		}

		assigned, err := countUsersWithRole(tx, id)
		if err != nil {
			return err
		}
		if assigned > 0 {
			return ErrRoleInUse
		}

		return tx.Delete(&role).Error
	})
}
