package inventory

import (
	"strings"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SupplierResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type SupplierRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func toSupplierResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		Company: s.Company,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
		Notes:   s.Notes,
	}
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppliers could not be listed")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			res = append(res, toSupplierResponse(&suppliers[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/suppliers/:id
func GetSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Supplier
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}
		return c.JSON(toSupplierResponse(&s))
	}
}

// POST /api/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		s := models.Supplier{
			Name:    body.Name,
			Company: strings.TrimSpace(body.Company),
			Phone:   strings.TrimSpace(body.Phone),
			Email:   strings.TrimSpace(body.Email),
			Address: strings.TrimSpace(body.Address),
			Notes:   body.Notes,
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Supplier could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(&s))
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Supplier
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		var body SupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			s.Name = name
		}
		s.Company = strings.TrimSpace(body.Company)
		s.Phone = strings.TrimSpace(body.Phone)
		s.Email = strings.TrimSpace(body.Email)
		s.Address = strings.TrimSpace(body.Address)
		s.Notes = body.Notes

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Supplier could not be updated")
		}
		return c.JSON(toSupplierResponse(&s))
	}
}

// DELETE /api/suppliers/:id
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Supplier{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Supplier could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
