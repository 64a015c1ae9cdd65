package services

import (
	"errors"
	"fmt"

	"luxfur/internal/models"
	"luxfur/internal/utils"
)

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	Create(req *models.UserRegisterRequest, passwordHash string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}

// AuthService handles registration and credential checks.
type AuthService struct {
	users UserStore
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register validates the registration form, hashes the password with argon2id
// and persists the user.
func (s *AuthService) Register(req *models.UserRegisterRequest) (*models.User, error) {
	if errs := req.Validate(); errs.Any() {
		return nil, errs
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Create(req, hash)
}

// Authenticate verifies the credentials and returns the user. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.users.GetByID(id)
}
