package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"luxfur/internal/middleware"
	"luxfur/internal/models"
	"luxfur/internal/services"
)

// OrderStore is the order read surface the handler needs.
type OrderStore interface {
	GetByID(id int) (*models.Order, error)
	GetByUser(userID, limit, offset int) ([]*models.Order, int, error)
}

// OrderHandler handles checkout and order views.
type OrderHandler struct {
	checkout *services.CheckoutService
	carts    *services.CartService
	orders   OrderStore
	store    sessions.Store
	logger   *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(checkout *services.CheckoutService, carts *services.CartService, orders OrderStore, store sessions.Store, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		carts:    carts,
		orders:   orders,
		store:    store,
		logger:   logger,
	}
}

type orderResponse struct {
	Order      *models.Order `json:"order"`
	TotalItems int           `json:"total_items"`
	TotalCost  string        `json:"total_cost"`
}

// Checkout turns the current cart plus the submitted contact form into a
// persisted order, then clears the cart.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	req := &models.OrderCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = user.ID

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.logger.Error("session error", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := h.carts.Load(session)

	order, err := h.checkout.PlaceOrder(cart, req)
	if err != nil {
		var validationErrs models.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			writeValidationErrors(w, validationErrs)
		case errors.Is(err, models.ErrEmptyCart):
			writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		default:
			h.logger.Error("checkout failed", "error", err)
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	h.carts.Clear(session)
	if err := session.Save(r, w); err != nil {
		// The order is already committed; losing the cart clear is the
		// lesser failure, so report success but log it.
		h.logger.Error("failed to clear cart after checkout",
			"order_id", order.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, orderResponse{
		Order:      order,
		TotalItems: order.TotalItems(),
		TotalCost:  order.TotalCost().StringFixed(2),
	})
}

// GetOrder returns one of the current user's orders with its items.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orders.GetByID(id)
	if errors.Is(err, models.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	// Other users' orders are indistinguishable from missing ones.
	if order.UserID != user.ID {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{
		Order:      order,
		TotalItems: order.TotalItems(),
		TotalCost:  order.TotalCost().StringFixed(2),
	})
}

// ListOrders returns a page of the current user's orders, newest first.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	orders, total, err := h.orders.GetByUser(user.ID, limit, offset)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
	})
}
