package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"luxfur/internal/models"
)

// CatalogStore is the catalog surface the shop handler reads from.
type CatalogStore interface {
	List(search string) ([]*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	ListCategories() ([]*models.Category, error)
	ListByCategory(slug string) ([]*models.Product, error)
}

// ShopHandler serves the product catalog.
type ShopHandler struct {
	catalog CatalogStore
	logger  *slog.Logger
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(catalog CatalogStore, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{catalog: catalog, logger: logger}
}

// ListProducts returns the catalog, optionally filtered by ?search=.
func (h *ShopHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// GetProduct returns one product by slug.
func (h *ShopHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetBySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, models.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

// ListCategories returns all categories.
func (h *ShopHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// CategoryProducts returns the products of one category.
func (h *ShopHandler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListByCategory(chi.URLParam(r, "slug"))
	if errors.Is(err, models.ErrCategoryNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to list category products", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}
