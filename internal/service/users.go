package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/internal/transport"
	"github.com/Skotchmaster/nba_api/pkg/hash"
	"github.com/Skotchmaster/nba_api/pkg/logging"
)

type UserService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *UserService) List(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.Repo.GetUserByID(ctx, id)
	return u, translate(err, "user")
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.Repo.GetUserByUsername(ctx, username)
	return u, translate(err, "user")
}

func (s *UserService) Create(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.create")

	username := strings.TrimSpace(req.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	roleID, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}

	digest, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		IsActive:     true,
		RoleID:       roleID,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, translate(err, "user")
	}

	publish(ctx, s.Events, TopicUsers, user.Username, map[string]any{
		"type":     "user_created",
		"userID":   user.ID,
		"username": user.Username,
	})
	l.Info("user_created", "user_id", user.ID)
	return s.Get(ctx, user.ID)
}

func (s *UserService) Update(ctx context.Context, id uint, req transport.UpdateUserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.update", "user_id", id)

	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		if username != user.Username {
			if err := s.ensureUsernameFree(ctx, username, user.ID); err != nil {
				return nil, err
			}
			user.Username = username
		}
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		digest, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = digest
	}
	if req.RoleID != nil {
		roleID, err := s.resolveRole(ctx, req.RoleID)
		if err != nil {
			return nil, err
		}
		user.RoleID = roleID
		user.Role = nil
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, translate(err, "user")
	}

	publish(ctx, s.Events, TopicUsers, user.Username, map[string]any{
		"type":     "user_updated",
		"userID":   user.ID,
		"username": user.Username,
	})
	l.Info("user_updated")
	return s.Get(ctx, user.ID)
}

// Deactivate clears the active flag. Repeating it is a no-op.
func (s *UserService) Deactivate(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}
	if !user.IsActive {
		return user, nil
	}

	user.IsActive = false
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, translate(err, "user")
	}

	publish(ctx, s.Events, TopicUsers, user.Username, map[string]any{
		"type":   "user_deactivated",
		"userID": user.ID,
	})
	logging.FromContext(ctx).Info("user_deactivated", "svc", "users.deactivate", "user_id", id)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return translate(err, "user")
	}
	publish(ctx, s.Events, TopicUsers, fmt.Sprint(id), map[string]any{
		"type":   "user_deleted",
		"userID": id,
	})
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, excludeID uint) error {
	taken, err := s.Repo.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return fmt.Errorf("username already registered: %w", ErrConflict)
	}
	return nil
}

// resolveRole returns the requested role id after checking it exists, or the
// default role when none was requested.
func (s *UserService) resolveRole(ctx context.Context, requested *uint) (*uint, error) {
	if requested != nil {
		role, err := s.Repo.GetRoleByID(ctx, *requested)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationf("role %d does not exist", *requested)
			}
			return nil, fmt.Errorf("load role: %w", err)
		}
		return &role.ID, nil
	}

	role, err := s.Repo.GetRoleByName(ctx, models.DefaultRoleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load default role: %w", err)
	}
	return &role.ID, nil
}
