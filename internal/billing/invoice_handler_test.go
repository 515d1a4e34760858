package billing

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
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	database.DB = setupDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unexpected"})
		},
	})
	app.Post("/api/invoices", CreateInvoiceHandler())
	app.Get("/api/invoices", ListInvoicesHandler())
	app.Get("/api/invoices/:id", GetInvoiceHandler())
	app.Put("/api/invoices/:id/pay", PayInvoiceHandler())
	app.Delete("/api/invoices/:id", DeleteInvoiceHandler())
	return app
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

func TestCreateInvoiceEndpoint(t *testing.T) {
	app := setupApp(t)
	p := seedProduct(t, database.DB, "Radiator", 4, 4)

	body := fmt.Sprintf(`{"type":"sale","total":30,"items":[{"productId":%d,"productName":"Radiator","quantity":2,"sellingPrice":15,"total":30}]}`, p.ID)
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/invoices", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	inv, ok := decoded["invoice"].(map[string]any)
	require.True(t, ok, "response must contain the invoice: %#v", decoded)
	require.Equal(t, "sale", inv["type"])
	require.Equal(t, 30.0, inv["total"])

	var got models.Product
	require.NoError(t, database.DB.First(&got, p.ID).Error)
	require.Equal(t, 2, got.CurrentQuantity)
}

func TestCreateInvoiceEndpointRejectsMissingFields(t *testing.T) {
	app := setupApp(t)

	for _, body := range []string{
		`{"total":10,"items":[{"product_id":1,"product_name":"x","quantity":1}]}`,    // no type
		`{"type":"sale","items":[{"product_id":1,"product_name":"x","quantity":1}]}`, // no total
		`{"type":"sale","total":10,"items":[]}`,                                      // empty items
	} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/invoices", body)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}

	var count int64
	database.DB.Model(&models.Invoice{}).Count(&count)
	require.Zero(t, count)
}

func TestPayInvoiceEndpointIncrements(t *testing.T) {
	app := setupApp(t)
	p := seedProduct(t, database.DB, "Alternator", 5, 5)

	body := fmt.Sprintf(`{"type":"sale","total":100,"items":[{"product_id":%d,"product_name":"Alternator","quantity":1,"total":100}]}`, p.ID)
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/invoices", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	invID := int(decoded["invoice"].(map[string]any)["id"].(float64))

	resp, decoded = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/invoices/%d/pay", invID), `{"amount_paid":40}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 40.0, decoded["amount_paid"])

	resp, decoded = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/invoices/%d/pay", invID), `{"amount_paid":25}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 65.0, decoded["amount_paid"])
}

func TestDeleteInvoiceEndpointCascadesItems(t *testing.T) {
	app := setupApp(t)
	p := seedProduct(t, database.DB, "Clutch kit", 5, 5)

	body := fmt.Sprintf(`{"type":"sale","total":50,"items":[{"product_id":%d,"product_name":"Clutch kit","quantity":1,"total":50}]}`, p.ID)
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/invoices", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	invID := int(decoded["invoice"].(map[string]any)["id"].(float64))

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/invoices/%d", invID), "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var items int64
	database.DB.Model(&models.InvoiceItem{}).Where("invoice_id = ?", invID).Count(&items)
	require.Zero(t, items)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/invoices/%d", invID), "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
