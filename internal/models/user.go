package models

import (
	"fmt"
	"strings"
	"time"
)

// User represents a registered customer.
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
}

// UserRegisterRequest carries the registration form.
type UserRegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Validate checks the registration fields.
func (req *UserRegisterRequest) Validate() ValidationErrors {
	errs := make(ValidationErrors)

	requireField(errs, "first_name", req.FirstName)
	requireField(errs, "last_name", req.LastName)

	switch {
	case strings.TrimSpace(req.Email) == "":
		errs.Add("email", "is required")
	case len(req.Email) > 255:
		errs.Add("email", "must be at most 255 characters")
	case !orderEmailRegex.MatchString(req.Email):
		errs.Add("email", "is not a valid email address")
	}

	if len(req.Password) < 8 {
		errs.Add("password", "must be at least 8 characters")
	}

	return errs
}
