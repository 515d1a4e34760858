package dashboard

import (
	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LowStockProduct struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Barcode         string `json:"barcode"`
	CurrentQuantity int    `json:"current_quantity"`
	MinQuantity     int    `json:"min_quantity"`
}

type RecentInvoice struct {
	ID         uint    `json:"id"`
	Type       string  `json:"type"`
	ClientName string  `json:"client_name"`
	Total      float64 `json:"total"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

type StatsResponse struct {
	Products       int64             `json:"products"`
	Customers      int64             `json:"customers"`
	Suppliers      int64             `json:"suppliers"`
	Employees      int64             `json:"employees"`
	PendingOrders  int64             `json:"pending_orders"`
	SalesTotal     float64           `json:"sales_total"`
	PurchasesTotal float64           `json:"purchases_total"`
	LowStock       []LowStockProduct `json:"low_stock"`
	RecentInvoices []RecentInvoice   `json:"recent_invoices"`
}

// GET /api/dashboard/stats
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var res StatsResponse
		db := database.DB

		db.Model(&models.Product{}).Count(&res.Products)
		db.Model(&models.Customer{}).Count(&res.Customers)
		db.Model(&models.Supplier{}).Count(&res.Suppliers)
		db.Model(&models.Employee{}).Count(&res.Employees)
		db.Model(&models.Order{}).Where("status = ?", models.OrderPending).Count(&res.PendingOrders)

		// COALESCE keeps the sums zero instead of NULL on an empty table.
		db.Model(&models.Invoice{}).Where("type = ?", models.InvoiceSale).
			Select("COALESCE(SUM(total), 0)").Scan(&res.SalesTotal)
		db.Model(&models.Invoice{}).Where("type = ?", models.InvoicePurchase).
			Select("COALESCE(SUM(total), 0)").Scan(&res.PurchasesTotal)

		var low []models.Product
		if err := db.Where("current_quantity <= min_quantity").
			Order("current_quantity asc").Limit(20).Find(&low).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Low stock list could not be loaded")
		}
		res.LowStock = make([]LowStockProduct, 0, len(low))
		for _, p := range low {
			res.LowStock = append(res.LowStock, LowStockProduct{
				ID:              p.ID,
				Name:            p.Name,
				Barcode:         p.Barcode,
				CurrentQuantity: p.CurrentQuantity,
				MinQuantity:     p.MinQuantity,
			})
		}

		var recent []models.Invoice
		if err := db.Order("id desc").Limit(5).Find(&recent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Recent invoices could not be loaded")
		}
		res.RecentInvoices = make([]RecentInvoice, 0, len(recent))
		for _, inv := range recent {
			res.RecentInvoices = append(res.RecentInvoices, RecentInvoice{
				ID:         inv.ID,
				Type:       string(inv.Type),
				ClientName: inv.ClientName,
				Total:      inv.Total,
				Status:     inv.Status,
				CreatedAt:  inv.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
