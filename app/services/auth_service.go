package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/audit"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
)

// AuthService registers users and issues JWTs on login.
type AuthService struct {
	users *repositories.UserRepository
	audit audit.Sink
}

func NewAuthService(users *repositories.UserRepository, sink audit.Sink) *AuthService {
	return &AuthService{users: users, audit: sink}
}

// Register creates a user with a bcrypt-hashed password and returns a
// token for the new account.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{Name: name, Email: email, Password: hash, Role: "user"}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	s.audit.Record(ctx, "user.registered", user.ID, map[string]any{"email": email})
	return user, token, nil
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	s.audit.Record(ctx, "user.login", user.ID, nil)
	return user, token, nil
}
