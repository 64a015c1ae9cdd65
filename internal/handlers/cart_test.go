package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_AddAndView(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": 2})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, "3000.00", body["total_price"])

	rr = env.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Sofa", item["product"].(map[string]any)["name"])
	assert.Equal(t, float64(2), item["quantity"])
}

func TestCartHandler_AddDefaultsToOneUnit(t *testing.T) {
	env := newTestEnv(t)

	// No body at all.
	rr := env.do(t, http.MethodPost, "/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decodeBody(t, rr)["count"])
}

func TestCartHandler_AddIncrementsThenReplaces(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": 2})
	rr := env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(5), decodeBody(t, rr)["count"])

	rr = env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": 2, "replace": true})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(2), decodeBody(t, rr)["count"])
}

func TestCartHandler_AddUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/cart/items/99", map[string]any{"quantity": 1})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCartHandler_AddNegativeQuantity(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": -3})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCartHandler_Remove(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": 2})
	env.do(t, http.MethodPost, "/cart/items/2", map[string]any{"quantity": 1})

	rr := env.do(t, http.MethodDelete, "/cart/items/1", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "750.00", body["total_price"])
}

func TestCartHandler_RemoveUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodDelete, "/cart/items/99", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": 2})

	rr := env.do(t, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["items"])
}

func TestCartHandler_CartSurvivesLogin(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items/1", map[string]any{"quantity": 2})

	env.login(t, 1)

	rr := env.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(2), decodeBody(t, rr)["count"])
}
