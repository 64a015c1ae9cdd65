package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"luxfur/internal/models"
)

// CartSessionKey is the fixed session slot the cart is serialized into.
const CartSessionKey = "cart"

// ProductReader is the slice of the catalog the cart needs.
type ProductReader interface {
	GetByID(id int) (*models.Product, error)
	GetByIDs(ids []int) ([]*models.Product, error)
}

// CartService loads and saves the session-owned cart and joins its lines
// against the catalog.
type CartService struct {
	products ProductReader
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(products ProductReader, logger *slog.Logger) *CartService {
	return &CartService{products: products, logger: logger}
}

// Load reads the cart out of the session. An absent or undecodable value
// yields an empty cart; no catalog access happens here.
func (s *CartService) Load(session *sessions.Session) *models.Cart {
	raw, ok := session.Values[CartSessionKey]
	if !ok {
		return &models.Cart{}
	}

	encoded, ok := raw.(string)
	if !ok {
		return &models.Cart{}
	}

	cart := &models.Cart{}
	if err := json.Unmarshal([]byte(encoded), cart); err != nil {
		s.logger.Warn("discarding undecodable session cart", "error", err)
		return &models.Cart{}
	}
	return cart
}

// Save writes the cart back into the session. The caller persists the session
// itself (session.Save), which is what marks it modified for the transport.
func (s *CartService) Save(session *sessions.Session, cart *models.Cart) error {
	encoded, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	session.Values[CartSessionKey] = string(encoded)
	return nil
}

// Clear removes the cart slot from the session entirely.
func (s *CartService) Clear(session *sessions.Session) {
	delete(session.Values, CartSessionKey)
}

// CartItemView is a cart line enriched with full product detail.
type CartItemView struct {
	Product   *models.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Enumerate joins every cart line against the catalog with one bulk fetch and
// returns enriched views in line (insertion) order. A line whose product has
// been deleted from the catalog since it was added is skipped with a warning
// rather than failing the whole cart.
func (s *CartService) Enumerate(cart *models.Cart) ([]CartItemView, error) {
	if cart.IsEmpty() {
		return nil, nil
	}

	products, err := s.products.GetByIDs(cart.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	byID := make(map[int]*models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	views := make([]CartItemView, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			s.logger.Warn("cart line references missing product, skipping",
				"product_id", line.ProductID)
			continue
		}
		views = append(views, CartItemView{
			Product:   product,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
		})
	}
	return views, nil
}
