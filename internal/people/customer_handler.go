package people

import (
	"strings"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CustomerResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func toCustomerResponse(m *models.Customer) CustomerResponse {
	return CustomerResponse{ID: m.ID, Name: m.Name, Phone: m.Phone, Email: m.Email, Address: m.Address}
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customers could not be listed")
		}

		res := make([]CustomerResponse, 0, len(customers))
		for i := range customers {
			res = append(res, toCustomerResponse(&customers[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		m := models.Customer{
			Name:    body.Name,
			Phone:   strings.TrimSpace(body.Phone),
			Email:   strings.TrimSpace(body.Email),
			Address: strings.TrimSpace(body.Address),
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(&m))
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.Customer
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			m.Name = name
		}
		m.Phone = strings.TrimSpace(body.Phone)
		m.Email = strings.TrimSpace(body.Email)
		m.Address = strings.TrimSpace(body.Address)

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be updated")
		}
		return c.JSON(toCustomerResponse(&m))
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
