package billing

import (
	"errors"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/logging"
	"autoparts-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateInvoiceRequest struct {
	Type          string      `json:"type" validate:"required,oneof=purchase sale"`
	SupplierID    *uint       `json:"supplierId"`
	ClientID      *uint       `json:"clientId"`
	ClientName    string      `json:"client_name"`
	Total         *float64    `json:"total" validate:"required"`
	AmountPaid    float64     `json:"amount_paid"`
	Items         []ItemInput `json:"items" validate:"required,min=1"`
	CreatedBy     *uint       `json:"createdBy"`
	CreatedByType string      `json:"createdByType"`
}

type PayInvoiceRequest struct {
	AmountPaid float64 `json:"amount_paid" validate:"required,gt=0"`
}

type InvoiceItemResponse struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Barcode       string  `json:"barcode"`
	PurchasePrice float64 `json:"purchase_price"`
	MarginPercent float64 `json:"margin_percent"`
	SellingPrice  float64 `json:"selling_price"`
	Quantity      int     `json:"quantity"`
	MinQuantity   int     `json:"min_quantity"`
	Total         float64 `json:"total"`
}

type InvoiceResponse struct {
	ID            uint                  `json:"id"`
	Type          string                `json:"type"`
	SupplierID    *uint                 `json:"supplierId"`
	ClientID      *uint                 `json:"clientId"`
	ClientName    string                `json:"client_name"`
	Total         float64               `json:"total"`
	AmountPaid    float64               `json:"amount_paid"`
	Status        string                `json:"status"`
	CreatedBy     *uint                 `json:"createdBy"`
	CreatedByType string                `json:"createdByType"`
	CreatedAt     string                `json:"created_at"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}

func toInvoiceResponse(inv *models.Invoice) InvoiceResponse {
	res := InvoiceResponse{
		ID:            inv.ID,
		Type:          string(inv.Type),
		SupplierID:    inv.SupplierID,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		Total:         inv.Total,
		AmountPaid:    inv.AmountPaid,
		Status:        inv.Status,
		CreatedBy:     inv.CreatedByID,
		CreatedByType: string(inv.CreatedByType),
		CreatedAt:     inv.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, it := range inv.Items {
		res.Items = append(res.Items, InvoiceItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Barcode:       it.Barcode,
			PurchasePrice: it.PurchasePrice,
			MarginPercent: it.MarginPercent,
			SellingPrice:  it.SellingPrice,
			Quantity:      it.Quantity,
			MinQuantity:   it.MinQuantity,
			Total:         it.Total,
		})
	}
	return res
}

// POST /api/invoices
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "type, total and a non-empty items list are required")
		}

		inv, warnings, err := CreateInvoice(database.DB, CreateInvoiceInput{
			Type:          models.InvoiceType(body.Type),
			SupplierID:    body.SupplierID,
			ClientID:      body.ClientID,
			ClientName:    body.ClientName,
			Total:         *body.Total,
			AmountPaid:    body.AmountPaid,
			Items:         body.Items,
			CreatedByID:   body.CreatedBy,
			CreatedByType: models.ActorType(body.CreatedByType),
		})
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return fiber.NewError(fiber.StatusBadRequest, verr.Msg)
			}
			logging.L().WithError(err).Error("invoice creation failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Invoice could not be created")
		}

		res := fiber.Map{"invoice": toInvoiceResponse(inv)}
		if len(warnings) > 0 {
			res["warnings"] = warnings
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/invoices?type=purchase|sale
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Invoice{}).Preload("Items")
		if t := c.Query("type"); t != "" {
			dbq = dbq.Where("type = ?", t)
		}

		var invoices []models.Invoice
		if err := dbq.Order("id desc").Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Invoices could not be listed")
		}

		res := make([]InvoiceResponse, 0, len(invoices))
		for i := range invoices {
			res = append(res, toInvoiceResponse(&invoices[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var inv models.Invoice
		if err := database.DB.Preload("Items").First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return c.JSON(toInvoiceResponse(&inv))
	}
}

// PUT /api/invoices/:id/pay
// Increments amount_paid; the stored status stays advisory.
func PayInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body PayInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "amount_paid must be a positive number")
		}

		var inv models.Invoice
		if err := database.DB.First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}

		inv.AmountPaid += body.AmountPaid
		if err := database.DB.Save(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Payment could not be recorded")
		}
		return c.JSON(toInvoiceResponse(&inv))
	}
}

// DELETE /api/invoices/:id
func DeleteInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var inv models.Invoice
		if err := database.DB.First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&inv).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Invoice could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
