package reports

import (
	"fmt"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/logging"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/inventory/export returns the current inventory as an xlsx download.
func InventoryExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be loaded")
		}

		f := excelize.NewFile()
		defer func() { _ = f.Close() }()

		const sheet = "Inventory"
		f.SetSheetName(f.GetSheetName(0), sheet)

		headers := []string{"ID", "Name", "Barcode", "Brand", "Buying Price", "Selling Price", "Current Qty", "Min Qty"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}

		for row, p := range products {
			values := []interface{}{p.ID, p.Name, p.Barcode, p.Brand, p.BuyingPrice, p.SellingPrice, p.CurrentQuantity, p.MinQuantity}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			logging.L().WithError(err).Error("inventory export failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Export could not be generated")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "inventory.xlsx"))
		return c.Send(buf.Bytes())
	}
}
