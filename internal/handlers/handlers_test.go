package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"luxfur/internal/middleware"
	"luxfur/internal/models"
	"luxfur/internal/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCatalog satisfies every catalog-shaped interface the handlers consume.
type fakeCatalog struct {
	products   []*models.Product
	categories []*models.Category
}

func (f *fakeCatalog) find(match func(*models.Product) bool) (*models.Product, error) {
	for _, p := range f.products {
		if match(p) {
			return p, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (f *fakeCatalog) GetByID(id int) (*models.Product, error) {
	return f.find(func(p *models.Product) bool { return p.ID == id })
}

func (f *fakeCatalog) GetBySlug(slug string) (*models.Product, error) {
	return f.find(func(p *models.Product) bool { return p.Slug == slug })
}

func (f *fakeCatalog) GetByIDs(ids []int) ([]*models.Product, error) {
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*models.Product
	for _, p := range f.products {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) List(search string) ([]*models.Product, error) {
	return f.products, nil
}

func (f *fakeCatalog) ListCategories() ([]*models.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalog) ListByCategory(slug string) ([]*models.Product, error) {
	var category *models.Category
	for _, c := range f.categories {
		if c.Slug == slug {
			category = c
			break
		}
	}
	if category == nil {
		return nil, models.ErrCategoryNotFound
	}
	var out []*models.Product
	for _, p := range f.products {
		if p.CategoryID == category.ID {
			out = append(out, p)
		}
	}
	return out, nil
}

// memOrderStore is an in-memory order repository serving both the checkout
// write path and the order read handlers.
type memOrderStore struct {
	nextID int
	orders map[int]*models.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{nextID: 1, orders: make(map[int]*models.Order)}
}

func (m *memOrderStore) Create(req *models.OrderCreateRequest, lines []models.CartLine) (*models.Order, error) {
	order := &models.Order{
		ID:         m.nextID,
		UserID:     req.UserID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
	}
	m.nextID++
	for i, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ID:        order.ID*100 + i,
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	m.orders[order.ID] = order
	return order, nil
}

func (m *memOrderStore) GetByID(id int) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (m *memOrderStore) GetByUser(userID, limit, offset int) ([]*models.Order, int, error) {
	var all []*models.Order
	for id := m.nextID - 1; id >= 1; id-- {
		if order, ok := m.orders[id]; ok && order.UserID == userID {
			all = append(all, order)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

type noopNotifier struct{}

func (noopNotifier) OrderCreated(int) {}

type fakeUserLoader struct {
	users map[int]*models.User
}

func (f *fakeUserLoader) GetUser(id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

// testEnv wires the full router the way cmd/server does, with in-memory
// stores, and carries session cookies across requests like a browser would.
type testEnv struct {
	router  chi.Router
	catalog *fakeCatalog
	orders  *memOrderStore
	cookies map[string]*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog := &fakeCatalog{
		categories: []*models.Category{{ID: 1, Name: "Sofas", Slug: "sofas"}},
		products: []*models.Product{
			{ID: 1, Name: "Sofa", Slug: "sofa", Price: decimal.RequireFromString("1500.00"), CategoryID: 1},
			{ID: 2, Name: "Armchair", Slug: "armchair", Price: decimal.RequireFromString("750.00"), CategoryID: 1},
		},
	}
	orders := newMemOrderStore()
	users := &fakeUserLoader{users: map[int]*models.User{
		1: {ID: 1, Email: "anna@example.com", FirstName: "Anna"},
		2: {ID: 2, Email: "bob@example.com", FirstName: "Bob"},
	}}

	store := sessions.NewCookieStore([]byte("test-secret"))
	logger := discardLogger()

	carts := services.NewCartService(catalog, logger)
	checkout := services.NewCheckoutService(carts, orders, noopNotifier{}, logger)

	shopHandler := NewShopHandler(catalog, logger)
	cartHandler := NewCartHandler(carts, catalog, store, logger)
	orderHandler := NewOrderHandler(checkout, carts, orders, store, logger)

	auth := middleware.NewAuthMiddleware(store, users)

	r := chi.NewRouter()
	r.Use(auth.LoadUser)

	r.Get("/products", shopHandler.ListProducts)
	r.Get("/products/{slug}", shopHandler.GetProduct)
	r.Get("/categories", shopHandler.ListCategories)
	r.Get("/categories/{slug}", shopHandler.CategoryProducts)

	r.Get("/cart", cartHandler.ViewCart)
	r.Post("/cart/items/{productID}", cartHandler.AddToCart)
	r.Delete("/cart/items/{productID}", cartHandler.RemoveFromCart)
	r.Delete("/cart", cartHandler.ClearCart)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/orders", orderHandler.Checkout)
		r.Get("/orders", orderHandler.ListOrders)
		r.Get("/orders/{id}", orderHandler.GetOrder)
	})

	// Test-only seam to bind a user to the session without going through
	// the full credential flow.
	r.Post("/test-login/{userID}", func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, middleware.SessionName)
		require.NoError(t, err)
		userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
		require.NoError(t, err)
		session.Values[middleware.UserSessionKey] = userID
		require.NoError(t, session.Save(r, w))
		w.WriteHeader(http.StatusNoContent)
	})

	return &testEnv{
		router:  r,
		catalog: catalog,
		orders:  orders,
		cookies: make(map[string]*http.Cookie),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range e.cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	for _, cookie := range rr.Result().Cookies() {
		e.cookies[cookie.Name] = cookie
	}
	return rr
}

func (e *testEnv) login(t *testing.T, userID int) {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/test-login/"+strconv.Itoa(userID), nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
