package orders

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unexpected"})
		},
	})
	app.Post("/api/orders", CreateOrderHandler())
	app.Get("/api/orders", ListOrdersHandler())
	app.Get("/api/orders/:id", GetOrderHandler())
	app.Put("/api/orders/:id/status", UpdateOrderStatusHandler())
	app.Delete("/api/orders/:id", DeleteOrderHandler())
	return app
}

func seedProduct(t *testing.T, name string, current int) *models.Product {
	t.Helper()
	p := models.Product{Name: name, Barcode: name + "-" + t.Name(), InitialQuantity: current, CurrentQuantity: current}
	require.NoError(t, database.DB.Create(&p).Error)
	return &p
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func createOrder(t *testing.T, app *fiber.App, items string) int {
	t.Helper()
	body := fmt.Sprintf(`{"client_name":"Karim","wilaya":"Alger","address":"12 rue des Lilas","items":%s}`, items)
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/orders", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return int(decoded["id"].(float64))
}

func TestCreateOrderComputesTotalFromItems(t *testing.T) {
	app := setupApp(t)
	a := seedProduct(t, "Battery", 10)
	b := seedProduct(t, "Fuse box", 10)

	items := fmt.Sprintf(
		`[{"product_id":%d,"product_name":"Battery","quantity":2,"price":50,"total":100},{"product_id":%d,"product_name":"Fuse box","quantity":1,"price":20,"total":20}]`,
		a.ID, b.ID)
	body := fmt.Sprintf(`{"client_name":"Karim","wilaya":"Alger","address":"12 rue des Lilas","items":%s}`, items)

	resp, decoded := doJSON(t, app, http.MethodPost, "/api/orders", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, 120.0, decoded["total"])
	require.Equal(t, "pending", decoded["status"])
	require.Len(t, decoded["items"].([]any), 2)
}

func TestCreateOrderRejectsMissingFields(t *testing.T) {
	app := setupApp(t)

	for _, body := range []string{
		`{"wilaya":"Alger","address":"a","items":[{"product_id":1,"product_name":"x","quantity":1}]}`,     // no client_name
		`{"client_name":"K","address":"a","items":[{"product_id":1,"product_name":"x","quantity":1}]}`,    // no wilaya
		`{"client_name":"K","wilaya":"Alger","items":[{"product_id":1,"product_name":"x","quantity":1}]}`, // no address
		`{"client_name":"K","wilaya":"Alger","address":"a","items":[]}`,                                   // empty items
	} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", body)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}

	var count int64
	database.DB.Model(&models.Order{}).Count(&count)
	require.Zero(t, count)
}

func TestCompletedStatusDecrementsStock(t *testing.T) {
	app := setupApp(t)
	a := seedProduct(t, "Brake disc", 10)
	b := seedProduct(t, "Coolant", 1)

	items := fmt.Sprintf(
		`[{"product_id":%d,"product_name":"Brake disc","quantity":2,"total":40},{"product_id":%d,"product_name":"Coolant","quantity":3,"total":30}]`,
		a.ID, b.ID)
	id := createOrder(t, app, items)

	resp, decoded := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), `{"status":"completed"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "completed", decoded["status"])

	var gotA, gotB models.Product
	require.NoError(t, database.DB.First(&gotA, a.ID).Error)
	require.NoError(t, database.DB.First(&gotB, b.ID).Error)
	require.Equal(t, 8, gotA.CurrentQuantity)
	require.Equal(t, 0, gotB.CurrentQuantity, "decrement must floor-clamp at zero")
}

func TestConfirmedStatusLeavesStockUntouched(t *testing.T) {
	app := setupApp(t)
	a := seedProduct(t, "Headlight", 5)

	items := fmt.Sprintf(`[{"product_id":%d,"product_name":"Headlight","quantity":2,"total":80}]`, a.ID)
	id := createOrder(t, app, items)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), `{"status":"confirmed"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Product
	require.NoError(t, database.DB.First(&got, a.ID).Error)
	require.Equal(t, 5, got.CurrentQuantity)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	app := setupApp(t)
	a := seedProduct(t, "Mirror", 5)

	items := fmt.Sprintf(`[{"product_id":%d,"product_name":"Mirror","quantity":1,"total":25}]`, a.ID)
	id := createOrder(t, app, items)

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var items64 int64
	database.DB.Model(&models.OrderItem{}).Where("order_id = ?", id).Count(&items64)
	require.Zero(t, items64)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
