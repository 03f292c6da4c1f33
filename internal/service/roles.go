package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

const (
	maxRoleNameLen    = 50
	maxDescriptionLen = 255
)

type RoleService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *RoleService) List(ctx context.Context, offset, limit int) (int64, []models.Role, error) {
	return s.Repo.ListRoles(ctx, offset, limit)
}

func (s *RoleService) Get(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.Repo.GetRoleByID(ctx, id)
	return role, translate(err, "role")
}

// Create applies the defaults: read allowed, everything else denied, active.
func (s *RoleService) Create(ctx context.Context, req transport.RoleRequest) (*models.Role, error) {
	if req.Name == nil {
		return nil, validationf("name is required")
	}
	role := &models.Role{
		CanReadPlayers: true,
		IsActive:       true,
	}
	if err := applyRole(role, req); err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, role.Name, 0); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateRole(ctx, role); err != nil {
		return nil, translate(err, "role")
	}

	publish(ctx, s.Events, TopicRoles, role.Name, map[string]any{
		"type":   "role_created",
		"roleID": role.ID,
		"name":   role.Name,
	})
	logging.FromContext(ctx).Info("role_created", "svc", "roles.create", "role_id", role.ID)
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id uint, req transport.RoleRequest) (*models.Role, error) {
	role, err := s.Repo.GetRoleByID(ctx, id)
	if err != nil {
		return nil, translate(err, "role")
	}

	oldName := role.Name
	if err := applyRole(role, req); err != nil {
		return nil, err
	}
	if isReservedRole(oldName) {
		if role.Name != oldName {
			return nil, validationf("role %q is built in and cannot be renamed", oldName)
		}
		if !role.IsActive {
			return nil, validationf("role %q is built in and cannot be deactivated", oldName)
		}
	}
	if role.Name != oldName {
		if err := s.ensureNameFree(ctx, role.Name, role.ID); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.SaveRole(ctx, role); err != nil {
		return nil, translate(err, "role")
	}

	publish(ctx, s.Events, TopicRoles, role.Name, map[string]any{
		"type":   "role_updated",
		"roleID": role.ID,
		"name":   role.Name,
	})
	return role, nil
}

// Delete refuses to remove a role that still has users.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, repo.ErrRoleInUse) {
			return fmt.Errorf("role has assigned users: %w", ErrConflict)
		}
		return translate(err, "role")
	}

	publish(ctx, s.Events, TopicRoles, fmt.Sprint(id), map[string]any{
		"type":   "role_deleted",
		"roleID": id,
	})
	return nil
}

func (s *RoleService) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.Repo.RoleNameTaken(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("check role name: %w", err)
	}
	if taken {
		return fmt.Errorf("role %q already exists: %w", name, ErrConflict)
	}
	return nil
}

// isReservedRole reports whether name is one of the roles the service relies
// on: admin guards role management and user is attached at registration.
func isReservedRole(name string) bool {
	return strings.EqualFold(name, models.AdminRoleName) || strings.EqualFold(name, models.DefaultRoleName)
}

func applyRole(role *models.Role, req transport.RoleRequest) error {
	if req.Name != nil {
		name, err := requireText("name", *req.Name, maxRoleNameLen)
		if err != nil {
			return err
		}
		role.Name = name
	}
	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) > maxDescriptionLen {
			return validationf("description must be at most %d characters", maxDescriptionLen)
		}
		desc := *req.Description
		role.Description = &desc
	}

	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&role.CanCreatePlayers, req.CanCreatePlayers)
	set(&role.CanReadPlayers, req.CanReadPlayers)
	set(&role.CanUpdatePlayers, req.CanUpdatePlayers)
	set(&role.CanDeletePlayers, req.CanDeletePlayers)
	set(&role.CanManageUsers, req.CanManageUsers)
	set(&role.IsActive, req.IsActive)
	return nil
}
