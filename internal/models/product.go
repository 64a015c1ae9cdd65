package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product. Price is the current catalog price;
// cart lines snapshot it at add time and are not affected by later changes.
type Product struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Material    string          `json:"material" db:"material"`
	Description string          `json:"description" db:"description"`
	VendorCode  *int            `json:"vendor_code,omitempty" db:"vendor_code"`
	CategoryID  int             `json:"category_id" db:"category_id"`
	Height      float64         `json:"height" db:"height"`
	Length      float64         `json:"length" db:"length"`
	Width       float64         `json:"width" db:"width"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Category represents a product category.
type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}
