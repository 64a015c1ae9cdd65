package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a completed checkout. Contact fields are immutable after
// creation; only Paid and UpdatedAt change afterwards.
type Order struct {
	ID         int         `json:"id" db:"id"`
	UserID     int         `json:"user_id" db:"user_id"`
	FirstName  string      `json:"first_name" db:"first_name"`
	LastName   string      `json:"last_name" db:"last_name"`
	Email      string      `json:"email" db:"email"`
	Phone      string      `json:"phone" db:"phone"`
	Address    string      `json:"address" db:"address"`
	PostalCode string      `json:"postal_code" db:"postal_code"`
	City       string      `json:"city" db:"city"`
	Paid       bool        `json:"paid" db:"paid"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem is one product line of an order. UnitPrice is copied from the
// cart line at checkout and never mutated.
type OrderItem struct {
	ID          int             `json:"id" db:"id"`
	OrderID     int             `json:"order_id" db:"order_id"`
	ProductID   int             `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// Cost returns quantity * unit price for this item.
func (i OrderItem) Cost() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalItems returns the number of units across the order's items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// TotalCost returns the exact decimal sum of the items' costs.
func (o *Order) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Cost())
	}
	return total
}

// OrderCreateRequest carries the checkout form plus the owning user.
type OrderCreateRequest struct {
	UserID     int    `json:"-"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

var orderEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate checks the checkout form fields and returns field-keyed messages.
func (req *OrderCreateRequest) Validate() ValidationErrors {
	errs := make(ValidationErrors)

	requireField(errs, "first_name", req.FirstName)
	requireField(errs, "last_name", req.LastName)
	requireField(errs, "address", req.Address)
	requireField(errs, "postal_code", req.PostalCode)
	requireField(errs, "city", req.City)

	switch {
	case strings.TrimSpace(req.Email) == "":
		errs.Add("email", "is required")
	case len(req.Email) > 255:
		errs.Add("email", "must be at most 255 characters")
	case !orderEmailRegex.MatchString(req.Email):
		errs.Add("email", "is not a valid email address")
	}

	// Phone is optional.
	if len(req.Phone) > 20 {
		errs.Add("phone", "must be at most 20 characters")
	}

	return errs
}

func requireField(errs ValidationErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "is required")
		return
	}
	if len(value) > 255 {
		errs.Add(field, "must be at most 255 characters")
	}
}
