package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoUpdateData = errors.New("no update data provided")
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Name      string
	Email     string
	Role      string
	AvatarURL *string
}

// UpdateUserInput represents input for updating a user; nil fields are left
// untouched.
type UpdateUserInput struct {
	Name      *string
	Email     *string
	Role      *string
	AvatarURL *string
}

// Create creates a new user
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		AvatarURL: input.AvatarURL,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// List returns all users
func (s *UserService) List() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns a user by ID
func (s *UserService) Get(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Update applies a partial update to a user; nil input fields are ignored
func (s *UserService) Update(id string, input UpdateUserInput) (*models.User, error) {
	if input.Name == nil && input.Email == nil && input.Role == nil && input.AvatarURL == nil {
		return nil, ErrNoUpdateData
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
