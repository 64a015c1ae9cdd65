package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"luxfur/internal/middleware"
	"luxfur/internal/models"
	"luxfur/internal/services"
)

// ProductGetter looks up single catalog products for cart mutations.
type ProductGetter interface {
	GetByID(id int) (*models.Product, error)
}

// CartHandler handles shopping cart requests.
type CartHandler struct {
	carts   *services.CartService
	catalog ProductGetter
	store   sessions.Store
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *services.CartService, catalog ProductGetter, store sessions.Store, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

type addToCartRequest struct {
	Quantity int  `json:"quantity"`
	Replace  bool `json:"replace"`
}

type cartResponse struct {
	Items      []services.CartItemView `json:"items"`
	Count      int                     `json:"count"`
	TotalPrice string                  `json:"total_price"`
}

// ViewCart returns the enriched cart contents.
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.logger.Error("session error", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := h.carts.Load(session)

	items, err := h.carts.Enumerate(cart)
	if err != nil {
		h.logger.Error("failed to enumerate cart", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if items == nil {
		items = []services.CartItemView{}
	}

	writeJSON(w, http.StatusOK, cartResponse{
		Items:      items,
		Count:      cart.Count(),
		TotalPrice: cart.TotalPrice().StringFixed(2),
	})
}

// AddToCart adds a product to the cart or adjusts its quantity. An omitted
// quantity defaults to one unit.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	req := addToCartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetByID(productID)
	if errors.Is(err, models.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.logger.Error("session error", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := h.carts.Load(session)
	if err := cart.Add(product, req.Quantity, req.Replace); err != nil {
		if errors.Is(err, models.ErrInvalidQuantity) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Error("failed to add to cart", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	if err := h.saveCart(w, r, session, cart); err != nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":       cart.Count(),
		"total_price": cart.TotalPrice().StringFixed(2),
	})
}

// RemoveFromCart deletes one product's line from the cart.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if _, err := h.catalog.GetByID(productID); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.logger.Error("session error", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := h.carts.Load(session)
	cart.Remove(productID)

	if err := h.saveCart(w, r, session, cart); err != nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":       cart.Count(),
		"total_price": cart.TotalPrice().StringFixed(2),
	})
}

// ClearCart removes the cart from the session entirely.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.logger.Error("session error", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	h.carts.Clear(session)
	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) saveCart(w http.ResponseWriter, r *http.Request, session *sessions.Session, cart *models.Cart) error {
	if err := h.carts.Save(session, cart); err != nil {
		h.logger.Error("failed to encode cart", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return err
	}
	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return err
	}
	return nil
}
