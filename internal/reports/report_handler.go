package reports

import (
	"sort"
	"time"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PeriodPoint struct {
	Label     string  `json:"label"` // "2025-06" or "2025-06-14"
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
	Invoices  int     `json:"invoices"`
}

type SummaryResponse struct {
	From           string        `json:"from"`
	To             string        `json:"to"`
	Period         string        `json:"period"` // daily | monthly
	SalesTotal     float64       `json:"sales_total"`
	PurchasesTotal float64       `json:"purchases_total"`
	Points         []PeriodPoint `json:"points"`
}

// GET /api/reports/summary?from=2025-01-01&to=2025-06-30&period=monthly
// Rows are loaded and bucketed in Go so the grouping works the same on
// sqlite and postgres.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "from and to dates are required (YYYY-MM-DD)")
		}
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
		}
		// include the whole "to" day
		to = to.Add(24*time.Hour - time.Nanosecond)

		period := c.Query("period", "monthly")
		if period != "monthly" && period != "daily" {
			return fiber.NewError(fiber.StatusBadRequest, "period must be daily or monthly")
		}

		var invoices []models.Invoice
		if err := database.DB.
			Where("created_at >= ? AND created_at <= ?", from, to).
			Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Invoices could not be loaded")
		}

		layout := "2006-01"
		if period == "daily" {
			layout = "2006-01-02"
		}

		res := SummaryResponse{From: fromStr, To: toStr, Period: period}
		buckets := map[string]*PeriodPoint{}
		for _, inv := range invoices {
			label := inv.CreatedAt.Format(layout)
			pt, ok := buckets[label]
			if !ok {
				pt = &PeriodPoint{Label: label}
				buckets[label] = pt
			}
			pt.Invoices++
			switch inv.Type {
			case models.InvoiceSale:
				pt.Sales += inv.Total
				res.SalesTotal += inv.Total
			case models.InvoicePurchase:
				pt.Purchases += inv.Total
				res.PurchasesTotal += inv.Total
			}
		}

		res.Points = make([]PeriodPoint, 0, len(buckets))
		for _, pt := range buckets {
			res.Points = append(res.Points, *pt)
		}
		sort.Slice(res.Points, func(i, j int) bool { return res.Points[i].Label < res.Points[j].Label })

		return c.JSON(res)
	}
}
