package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

// UserService handles user-related operations
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers lists users, optionally filtered by exact login.
func (s *UserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	sanitized := make([]*entities.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	return sanitized, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// CreateUser creates a user from the legacy POST /usuarios payload. The
// password is hashed before it reaches the store; id, favorites and admin
// are defaulted when absent.
func (s *UserService) CreateUser(ctx context.Context, req ports.CreateUserRequest) (*entities.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:         req.Name,
		Login:        req.Login,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Admin:        req.Admin,
		Favorites:    req.Favorites,
	}

	createdUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, entities.ErrLoginTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created successfully", "user_id", createdUser.ID, "login", createdUser.Login)

	return createdUser.Sanitized(), nil
}

// PatchUser shallow-merges the provided fields into the stored record.
// A provided password is hashed before it is persisted.
func (s *UserService) PatchUser(ctx context.Context, id string, req ports.UpdateUserRequest) (*entities.User, error) {
	patch := ports.UserPatch{
		Name:      req.Name,
		Login:     req.Login,
		Email:     req.Email,
		Admin:     req.Admin,
		Favorites: req.Favorites,
	}

	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash := string(hashedPassword)
		patch.PasswordHash = &hash
	}

	updatedUser, err := s.userRepo.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User patched", "user_id", id)

	return updatedUser.Sanitized(), nil
}

// GetFavorites returns the user's favorite item ids.
func (s *UserService) GetFavorites(ctx context.Context, id string) ([]string, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Favorites == nil {
		return []string{}, nil
	}
	return user.Favorites, nil
}
