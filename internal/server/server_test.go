package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethive/pethive/app/fallback"
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/testkit"
)

// startAPI boots the full middleware stack and route table against an
// in-memory store, with a cookie jar so sessions behave like a browser.
func startAPI(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	testkit.SetupDB(t,
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Cart{}, &models.Message{})

	srv := httptest.NewServer(BuildHandler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestHealth(t *testing.T) {
	srv, client := startAPI(t)

	resp := getJSON(t, client, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data map[string]string `json:"data"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "ok", body.Data["status"])
}

func TestRegisterLoginMeFlow(t *testing.T) {
	srv, client := startAPI(t)

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
		"name":     "Jane",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The session cookie from register keeps the identity across requests.
	resp = getJSON(t, client, srv.URL+"/api/auth/me")
	var me struct {
		Data struct {
			User *models.Identity `json:"user"`
		} `json:"data"`
	}
	decode(t, resp, &me)
	require.NotNil(t, me.Data.User)
	assert.Equal(t, "jane@example.com", me.Data.User.Email)

	resp = postJSON(t, client, srv.URL+"/api/auth/logout", nil)
	resp.Body.Close()

	resp = getJSON(t, client, srv.URL+"/api/auth/me")
	decode(t, resp, &me)
	assert.Nil(t, me.Data.User)
}

func TestRegisterValidation(t *testing.T) {
	srv, client := startAPI(t)

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "123",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	srv, client := startAPI(t)

	resp := postJSON(t, client, srv.URL+"/api/auth/login", map[string]string{
		"email":    "admin@pethive.dev",
		"password": "wrong-password",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrdersRequireSession(t *testing.T) {
	srv, client := startAPI(t)

	resp := getJSON(t, client, srv.URL+"/api/orders")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGate(t *testing.T) {
	srv, client := startAPI(t)

	// Anonymous: 401.
	resp := getJSON(t, client, srv.URL+"/api/admin/stats")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Customer: 403.
	resp = postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":    "customer@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, client, srv.URL+"/api/admin/stats")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Demo admin: 200.
	resp = postJSON(t, client, srv.URL+"/api/auth/login", map[string]string{
		"email":    "admin@pethive.dev",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, client, srv.URL+"/api/admin/stats")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutFlow(t *testing.T) {
	srv, client := startAPI(t)

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":    "shopper@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, srv.URL+"/api/cart", map[string]interface{}{
		"items": []map[string]interface{}{{"productId": 1, "quantity": 2, "price": 10}},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, srv.URL+"/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{{"productId": 1, "quantity": 2, "price": 10}},
		"total": 20,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Checkout consumed the cart.
	resp = getJSON(t, client, srv.URL+"/api/cart")
	var cart struct {
		Data struct {
			Items models.CartItems `json:"items"`
		} `json:"data"`
	}
	decode(t, resp, &cart)
	assert.Empty(t, cart.Data.Items)

	resp = getJSON(t, client, srv.URL+"/api/orders")
	var orders struct {
		Data struct {
			Orders []models.Order `json:"orders"`
		} `json:"data"`
	}
	decode(t, resp, &orders)
	require.Len(t, orders.Data.Orders, 1)
	assert.Equal(t, 20.0, orders.Data.Orders[0].Total)
}

func TestCheckoutRejectsEmptyItems(t *testing.T) {
	srv, client := startAPI(t)

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":    "shopper@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, srv.URL+"/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{},
		"total": 0,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCheckoutRejectsInvalidItems(t *testing.T) {
	srv, client := startAPI(t)

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]string{
		"email":    "shopper@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Zero quantity and a negative price must both fail per-item validation.
	resp = postJSON(t, client, srv.URL+"/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{{"productId": 1, "quantity": 0, "price": -5}},
		"total": 0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Nothing was persisted.
	resp = getJSON(t, client, srv.URL+"/api/orders")
	var orders struct {
		Data struct {
			Orders []models.Order `json:"orders"`
		} `json:"data"`
	}
	decode(t, resp, &orders)
	assert.Empty(t, orders.Data.Orders)
}

func TestProductsServeDemoCatalogWhenEmpty(t *testing.T) {
	srv, client := startAPI(t)

	resp := getJSON(t, client, srv.URL+"/api/products")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Products []models.Product `json:"products"`
		} `json:"data"`
	}
	decode(t, resp, &body)
	assert.Len(t, body.Data.Products, len(fallback.Products()))
}

func TestGraphQLProducts(t *testing.T) {
	srv, client := startAPI(t)

	resp := postJSON(t, client, srv.URL+"/api/graphql", map[string]string{
		"query": `{ products { id name price } }`,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Products []struct {
				Name string `json:"name"`
			} `json:"products"`
		} `json:"data"`
	}
	decode(t, resp, &body)
	assert.Len(t, body.Data.Products, len(fallback.Products()))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, client := startAPI(t)

	resp := getJSON(t, client, srv.URL+"/metrics")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
