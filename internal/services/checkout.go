package services

import (
	"fmt"
	"log/slog"

	"luxfur/internal/models"
)

// OrderWriter persists orders atomically with their items.
type OrderWriter interface {
	Create(req *models.OrderCreateRequest, lines []models.CartLine) (*models.Order, error)
}

// CartEnumerator produces the enriched view of a cart's lines.
type CartEnumerator interface {
	Enumerate(cart *models.Cart) ([]CartItemView, error)
}

// Notifier announces a newly created order. Implementations must not block
// the caller and their failures must never affect the checkout result.
type Notifier interface {
	OrderCreated(orderID int)
}

// CheckoutService converts a validated checkout form plus the current cart
// into a persisted order.
type CheckoutService struct {
	carts    CartEnumerator
	orders   OrderWriter
	notifier Notifier
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts CartEnumerator, orders OrderWriter, notifier Notifier, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// PlaceOrder validates the form, persists the order with one item per cart
// line at the price captured in the cart, and fires the order notification.
// On validation failure it returns models.ValidationErrors and leaves the
// cart untouched. The caller is responsible for clearing the session cart
// once this returns successfully.
func (s *CheckoutService) PlaceOrder(cart *models.Cart, req *models.OrderCreateRequest) (*models.Order, error) {
	if errs := req.Validate(); errs.Any() {
		return nil, errs
	}

	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	// Re-enumerate so lines whose product vanished from the catalog are
	// dropped instead of breaking the order insert.
	views, err := s.carts.Enumerate(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate cart: %w", err)
	}
	if len(views) == 0 {
		return nil, models.ErrEmptyCart
	}

	lines := make([]models.CartLine, 0, len(views))
	for _, view := range views {
		lines = append(lines, models.CartLine{
			ProductID: view.Product.ID,
			Quantity:  view.Quantity,
			UnitPrice: view.UnitPrice,
		})
	}

	order, err := s.orders.Create(req, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"items", len(order.Items),
		"total", order.TotalCost())

	s.notifier.OrderCreated(order.ID)

	return order, nil
}
