package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"luxfur/internal/models"
)

// UserRepository handles user data operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const uniqueViolation = "23505"

// Create persists a new user. A duplicate email maps to ErrDuplicateEmail.
func (r *UserRepository) Create(req *models.UserRegisterRequest, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (email, first_name, last_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, first_name, last_name, password_hash, created_at`

	user := &models.User{}
	err := r.db.QueryRow(
		query,
		req.Email,
		req.FirstName,
		req.LastName,
		passwordHash,
		time.Now(),
	).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.get(`SELECT id, email, first_name, last_name, password_hash, created_at FROM users WHERE email = $1`, email)
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	return r.get(`SELECT id, email, first_name, last_name, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) get(query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
