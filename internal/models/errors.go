package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors used throughout the application
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationErrors collects form validation failures keyed by field name.
// It implements error so services can return it through a plain error value
// and handlers can pick it back out with errors.As.
type ValidationErrors map[string][]string

// Add appends a message for the given field.
func (ve ValidationErrors) Add(field, message string) {
	ve[field] = append(ve[field], message)
}

// Any reports whether at least one field failed validation.
func (ve ValidationErrors) Any() bool {
	return len(ve) > 0
}

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
