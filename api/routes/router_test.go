package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jngsolar/storefront-backend/api/controllers"
	cartsvc "github.com/jngsolar/storefront-backend/internal/cart"
	"github.com/jngsolar/storefront-backend/internal/catalog"
	chatsvc "github.com/jngsolar/storefront-backend/internal/chat"
	checkoutsvc "github.com/jngsolar/storefront-backend/internal/checkout"
	purchasesvc "github.com/jngsolar/storefront-backend/internal/purchases"
	"github.com/jngsolar/storefront-backend/internal/storage/docstore"
	"github.com/jngsolar/storefront-backend/pkg/config"
	"github.com/jngsolar/storefront-backend/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := docstore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	catalogService, err := catalog.NewService(docstore.NewCatalogRepository(store))
	require.NoError(t, err)
	require.NoError(t, catalogService.EnsureSeed(context.Background()))

	cartStore := cartsvc.NewMemoryStore()
	cartService, err := cartsvc.NewService(cartStore, catalogService)
	require.NoError(t, err)

	purchaseRepo := docstore.NewPurchasesRepository(store)
	purchaseService, err := purchasesvc.NewService(purchaseRepo)
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "router-test"})
	checkoutService, err := checkoutsvc.NewService(cartStore, purchaseRepo, logg)
	require.NoError(t, err)

	cfg := &config.Config{
		App:     config.AppConfig{Env: "dev"},
		Session: config.SessionConfig{CookieName: "storefront_session", CartTTL: 168 * time.Hour},
		Location: config.LocationConfig{
			Name:    "JNG Solar & Security",
			Address: "Maputo, Mozambique",
			Phone:   "+258 84 000 0000",
			Hours:   "Mon-Fri 08:00 - 17:00",
			MapURL:  "https://maps.google.com/?q=Maputo%2C%20Mozambique",
		},
	}

	handler := NewRouter(cfg, logg, Deps{
		Catalog:   catalogService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Purchases: purchaseService,
		Chat:      chatsvc.NewScriptedService(),
		Pingers:   map[string]controllers.Pinger{},
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getJSON(t *testing.T, client *http.Client, url string, out any) int {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, client *http.Client, url string, payload, out any) int {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	var live struct {
		Data map[string]string `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/health/live", &live))
	assert.Equal(t, "live", live.Data["status"])

	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/health/ready", nil))
}

func TestProductEndpoints(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	var list struct {
		Data []struct {
			ID       string `json:"id"`
			Featured bool   `json:"featured"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/api/products", &list))
	require.Len(t, list.Data, 4)
	assert.Equal(t, "p1", list.Data[0].ID)

	var featured struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/api/products/featured", &featured))
	assert.Len(t, featured.Data, 3)

	var single struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/api/products/p2", &single))
	assert.Equal(t, "Hybrid Inverter", single.Data.Name)

	assert.Equal(t, http.StatusNotFound, getJSON(t, client, server.URL+"/api/products/nope", nil))
}

func TestCartAndCheckoutFlow(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	var view struct {
		Data struct {
			Items []struct {
				ProductID string `json:"product_id"`
				Qty       int    `json:"qty"`
			} `json:"items"`
			Total string `json:"total"`
		} `json:"data"`
	}

	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/cart/add", map[string]any{"product_id": "p1", "qty": 2}, &view))
	require.Len(t, view.Data.Items, 1)
	assert.Equal(t, 2, view.Data.Items[0].Qty)

	// same session merges quantities
	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/cart/add", map[string]any{"product_id": "p1", "qty": 3}, &view))
	require.Len(t, view.Data.Items, 1)
	assert.Equal(t, 5, view.Data.Items[0].Qty)
	assert.Equal(t, "945", view.Data.Total)

	// update clamps to one
	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/cart/update", map[string]any{"product_id": "p1", "qty": 0}, &view))
	assert.Equal(t, 1, view.Data.Items[0].Qty)

	// unknown product is a 404
	assert.Equal(t, http.StatusNotFound,
		postJSON(t, client, server.URL+"/api/cart/add", map[string]any{"product_id": "ghost"}, nil))

	var receipt struct {
		Data struct {
			Message    string `json:"message"`
			PurchaseID int64  `json:"purchaseId"`
			Total      string `json:"total"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/checkout",
			map[string]any{"name": "Ana", "email": "ana@example.com", "address": "Maputo"}, &receipt))
	assert.Equal(t, "Purchase complete", receipt.Data.Message)
	assert.Equal(t, int64(1), receipt.Data.PurchaseID)
	assert.Equal(t, "189", receipt.Data.Total)

	// cart is empty after checkout
	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/api/cart", &view))
	assert.Empty(t, view.Data.Items)

	// purchase is readable
	var record struct {
		Data struct {
			Purchase struct {
				Name string `json:"name"`
			} `json:"purchase"`
			Items []struct {
				ProductID string `json:"product_id"`
			} `json:"items"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/api/purchases/1", &record))
	assert.Equal(t, "Ana", record.Data.Purchase.Name)
	require.Len(t, record.Data.Items, 1)

	assert.Equal(t, http.StatusNotFound, getJSON(t, client, server.URL+"/api/purchases/99", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, client, server.URL+"/api/purchases/abc", nil))
}

func TestCheckoutEmptyCart(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status := postJSON(t, client, server.URL+"/api/checkout",
		map[string]any{"name": "Ana", "email": "ana@example.com", "address": "Maputo"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSessionsAreIsolated(t *testing.T) {
	server := newTestServer(t)
	first := newClient(t)
	second := newClient(t)

	require.Equal(t, http.StatusOK,
		postJSON(t, first, server.URL+"/api/cart/add", map[string]any{"product_id": "p1", "qty": 1}, nil))

	var view struct {
		Data struct {
			Items []any `json:"items"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, second, server.URL+"/api/cart", &view))
	assert.Empty(t, view.Data.Items)
}

func TestChatAndLocation(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	var chat struct {
		Data struct {
			Reply string `json:"reply"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/chat", map[string]any{"message": "Do you install panels?"}, &chat))
	assert.Contains(t, chat.Data.Reply, "Do you install panels?")

	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/chat", map[string]any{"message": ""}, &chat))
	assert.Equal(t, "Please share how we can help.", chat.Data.Reply)

	var location struct {
		Data struct {
			Name   string `json:"name"`
			MapURL string `json:"map_url"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, client, server.URL+"/api/location", &location))
	assert.Equal(t, "JNG Solar & Security", location.Data.Name)
	assert.NotEmpty(t, location.Data.MapURL)
}

func TestAdminProductEndpoints(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	payload := map[string]any{
		"id":    "p9",
		"name":  "Solar Water Pump",
		"price": "349.00",
	}
	require.Equal(t, http.StatusCreated,
		postJSON(t, client, server.URL+"/api/admin/products", payload, nil))

	// duplicate id conflicts
	assert.Equal(t, http.StatusConflict,
		postJSON(t, client, server.URL+"/api/admin/products", payload, nil))

	// toggle featured
	var toggled struct {
		Data struct {
			Featured bool `json:"featured"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/admin/products/p9/feature", map[string]any{}, &toggled))
	assert.True(t, toggled.Data.Featured)

	// toggling an unknown id is tolerated
	require.Equal(t, http.StatusOK,
		postJSON(t, client, server.URL+"/api/admin/products/nope/feature", map[string]any{}, nil))

	// delete, then delete again (no-op)
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/admin/products/p9", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPaymentsRouteWithoutGateway(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	status := postJSON(t, client, server.URL+"/create-checkout-session", map[string]any{}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
