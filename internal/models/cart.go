package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product's entry in a cart. UnitPrice is snapshotted from
// the catalog when the line is created and never re-read afterwards, so a
// later catalog price change does not affect an existing line.
type CartLine struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal returns quantity * unit price.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the current visitor's pending selections. Lines are kept in
// insertion order and no two lines share a product id. The cart is owned by
// one session and serialized into it as JSON.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add puts a product into the cart or adjusts an existing line. A new line
// snapshots the product's current price. When replace is true the quantity is
// set to the given value, otherwise it is added to the existing quantity.
// Quantities that are zero or negative are rejected.
func (c *Cart) Add(product *Product, quantity int, replace bool) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID {
			if replace {
				c.Lines[i].Quantity = quantity
			} else {
				c.Lines[i].Quantity += quantity
			}
			return nil
		}
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	return nil
}

// Remove deletes the line for the given product id. Removing a product that
// is not in the cart is a no-op.
func (c *Cart) Remove(productID int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Line returns the line for the given product id, if present.
func (c *Cart) Line(productID int) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// TotalPrice returns the exact decimal sum of all line totals.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ProductIDs returns the ids of all products in the cart, in line order.
func (c *Cart) ProductIDs() []int {
	ids := make([]int, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}
