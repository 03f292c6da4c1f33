package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/models"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/pkg/hash"
	"github.com/Skotchmaster/nba_api/pkg/logging"
	"github.com/Skotchmaster/nba_api/pkg/tokens"
)

// dummyDigest is compared against when the handle is unknown, keeping that
// path as slow as a wrong password.
var dummyDigest, _ = hash.HashPassword("nba-api-dummy-password")

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Issuer
	Events EventPublisher
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	ExpiresAt   time.Time
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	taken, err := s.Repo.UsernameTaken(ctx, username, 0)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		l.Warn("register_rejected", "reason", "username taken")
		return nil, fmt.Errorf("username already registered: %w", ErrConflict)
	}

	digest, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		IsActive:     true,
	}

	role, err := s.Repo.GetRoleByName(ctx, models.DefaultRoleName)
	switch {
	case err == nil:
		user.RoleID = &role.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn("register_without_role", "reason", "default role missing")
	default:
		return nil, fmt.Errorf("load default role: %w", err)
	}

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username already registered: %w", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Events, TopicUsers, user.Username, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	l.Info("register_successful", "user_id", user.ID)
	return user, nil
}

// Authenticate resolves the user for a handle and password. Unknown handles,
// inactive accounts and wrong passwords all return ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.authenticate", "username", username)

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, validationf("username and password are required")
	}

	user, err := s.Repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash.CheckPassword(dummyDigest, password)
			l.Warn("login_failed", "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !user.IsActive {
		l.Warn("login_failed", "reason", "inactive user")
		return nil, ErrInvalidCredentials
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, exp, err := s.Tokens.Issue(user.Username)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{
		AccessToken: token,
		TokenType:   tokens.TokenType,
		ExpiresIn:   int64(s.Tokens.TTL() / time.Second),
		ExpiresAt:   exp,
	}, nil
}
