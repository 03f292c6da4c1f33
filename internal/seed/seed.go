// Package seed creates the built-in roles and the bootstrap administrator.
package seed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/pkg/hash"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

func defaultRoles() []models.Role {
	adminDesc := "Full access"
	userDesc := "Read-only access to players and teams"
	return []models.Role{
		{
			Name:             models.AdminRoleName,
			Description:      &adminDesc,
			CanCreatePlayers: true,
			CanReadPlayers:   true,
			CanUpdatePlayers: true,
			CanDeletePlayers: true,
			CanManageUsers:   true,
			IsActive:         true,
		},
		{
			Name:           models.DefaultRoleName,
			Description:    &userDesc,
			CanReadPlayers: true,
			IsActive:       true,
		},
	}
}

// EnsureDefaultRoles creates the admin and user roles when missing. Existing
// roles are never modified.
func EnsureDefaultRoles(ctx context.Context, r *repo.GormRepo) error {
	l := logging.FromContext(ctx)
	for _, role := range defaultRoles() {
		_, err := r.GetRoleByName(ctx, role.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load role %s: %w", role.Name, err)
		}
		if err := r.CreateRole(ctx, &role); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create role %s: %w", role.Name, err)
		}
		l.Info("role_seeded", "role", role.Name)
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator, or re-activates and
// promotes an existing account with that username. The password of an
// existing account is left untouched.
func EnsureAdmin(ctx context.Context, r *repo.GormRepo, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	l := logging.FromContext(ctx).With("username", username)

	admin, err := r.GetRoleByName(ctx, models.AdminRoleName)
	if err != nil {
		return fmt.Errorf("load admin role: %w", err)
	}

	user, err := r.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if user.IsActive && user.RoleID != nil && *user.RoleID == admin.ID {
			return nil
		}
		user.IsActive = true
		user.RoleID = &admin.ID
		if err := r.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		l.Info("admin_promoted")
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("load admin user: %w", err)
	}

	digest, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user = &models.User{
		Username:     username,
		PasswordHash: digest,
		IsActive:     true,
		RoleID:       &admin.ID,
	}
	if err := r.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	l.Info("admin_created", "user_id", user.ID)
	return nil
}

// EnsureTeams inserts every franchise whose name is not stored yet. Teams
// already present, including edited ones, are left alone.
func EnsureTeams(ctx context.Context, r *repo.GormRepo) error {
	created := 0
	for _, team := range nbaTeams {
		_, err := r.GetTeamByName(ctx, team.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load team %s: %w", team.Name, err)
		}
		if err := r.CreateTeam(ctx, &team); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create team %s: %w", team.Name, err)
		}
		created++
	}
	if created > 0 {
		logging.FromContext(ctx).Info("teams_seeded", "count", created)
	}
	return nil
}
