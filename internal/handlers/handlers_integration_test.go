package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stationery/internal/handlers"
	"stationery/internal/models"
	"stationery/internal/repositories"
	"stationery/internal/services"
)

var dbCounter atomic.Int64

// setupApp builds a Fiber app backed by a fresh in-memory SQLite
// database with the GORM repositories, so the conditional decrement and
// the revenue join run against real SQL.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}))

	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	txManager := repositories.NewGormTxManager(db)

	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, txManager, nil) // nil RabbitMQ client

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func createProduct(t *testing.T, app *fiber.App, name, brand, category string, price float64, quantity int) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":        name,
		"brand":       brand,
		"price":       price,
		"category":    category,
		"description": "integration test product",
		"quantity":    quantity,
		"inStock":     quantity > 0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateProduct(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":        "Fountain Pen",
		"brand":       "Lamy",
		"price":       24.99,
		"category":    "Writing",
		"description": "Fine nib fountain pen",
		"quantity":    15,
		"inStock":     true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Fountain Pen", body["name"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateProduct_InvalidCategory(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":        "Fountain Pen",
		"brand":       "Lamy",
		"price":       24.99,
		"category":    "Groceries",
		"description": "Fine nib fountain pen",
		"quantity":    15,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestGetProducts_Search(t *testing.T) {
	app := setupApp(t)
	createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 24.99, 15)
	createProduct(t, app, "Stapler", "Maped", "Office Supplies", 7.5, 30)

	resp, all := doJSONList(t, app, "/api/v1/products")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, all, 2)

	// Case-insensitive substring match against name, brand, or category.
	resp, matched := doJSONList(t, app, "/api/v1/products?searchTerm=lamy")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Fountain Pen", matched[0]["name"])

	resp, matched = doJSONList(t, app, "/api/v1/products?searchTerm=office")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Stapler", matched[0]["name"])
}

func TestGetProductByID_NotFound(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["error"])
}

func TestUpdateProduct_Partial(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 24.99, 15)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/products/"+id, map[string]interface{}{
		"price": 99.0,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 99.0, body["price"])

	// Only the price changed.
	assert.Equal(t, "Fountain Pen", body["name"])
	assert.Equal(t, "Lamy", body["brand"])
	assert.Equal(t, float64(15), body["quantity"])
}

func TestDeleteProduct(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 24.99, 15)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/v1/products/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Product deleted successfully", body["message"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["error"])
}

func TestPlaceOrder(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 10.0, 5)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email":      "Buyer@Example.com",
		"product":    id,
		"quantity":   2,
		"totalPrice": 20.0,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Order completed successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "buyer@example.com", data["email"])
	assert.Equal(t, float64(2), data["quantity"])

	// Stock decreased on the product record.
	resp, product := doJSON(t, app, http.MethodGet, "/api/v1/products/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), product["quantity"])
	assert.Equal(t, true, product["inStock"])
}

func TestPlaceOrder_DrainsStock(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 10.0, 2)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email":      "buyer@example.com",
		"product":    id,
		"quantity":   2,
		"totalPrice": 20.0,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	_, product := doJSON(t, app, http.MethodGet, "/api/v1/products/"+id, nil)
	assert.Equal(t, float64(0), product["quantity"])
	assert.Equal(t, false, product["inStock"])
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 10.0, 2)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email":      "buyer@example.com",
		"product":    id,
		"quantity":   3,
		"totalPrice": 30.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["error"])

	// Failed placement leaves the product unmodified.
	_, product := doJSON(t, app, http.MethodGet, "/api/v1/products/"+id, nil)
	assert.Equal(t, float64(2), product["quantity"])
}

func TestPlaceOrder_PriceMismatch(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 10.0, 5)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email":      "buyer@example.com",
		"product":    id,
		"quantity":   2,
		"totalPrice": 15.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PRICE_MISMATCH", body["error"])

	_, product := doJSON(t, app, http.MethodGet, "/api/v1/products/"+id, nil)
	assert.Equal(t, float64(5), product["quantity"])
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email":      "buyer@example.com",
		"product":    "does-not-exist",
		"quantity":   1,
		"totalPrice": 10.0,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["error"])
}

func TestPlaceOrder_MalformedEmail(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Fountain Pen", "Lamy", "Writing", 10.0, 5)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email":      "not-an-email",
		"product":    id,
		"quantity":   1,
		"totalPrice": 10.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestRevenue(t *testing.T) {
	app := setupApp(t)

	// No orders yet.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/orders/revenue", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 0.0, data["totalRevenue"])

	idA := createProduct(t, app, "Pencil", "Staedtler", "Writing", 10.0, 50)
	idB := createProduct(t, app, "Eraser", "Maped", "Office Supplies", 5.0, 50)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email": "a@b.com", "product": idA, "quantity": 2, "totalPrice": 20.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email": "a@b.com", "product": idB, "quantity": 3, "totalPrice": 15.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/orders/revenue", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, 35.0, data["totalRevenue"])

	// Deleting a product drops its orders from the aggregate.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+idB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/orders/revenue", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, 20.0, data["totalRevenue"])
}

func TestGetOrders(t *testing.T) {
	app := setupApp(t)
	id := createProduct(t, app, "Pencil", "Staedtler", "Writing", 10.0, 50)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"email": "a@b.com", "product": id, "quantity": 1, "totalPrice": 10.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, orders := doJSONList(t, app, "/api/v1/orders")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, orders, 1)

	orderID := orders[0]["id"].(string)
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/orders/"+orderID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orderID, body["id"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ORDER_NOT_FOUND", body["error"])
}
