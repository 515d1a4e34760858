package people

import (
	"strings"
	"time"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmployeeResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
	HireDate string  `json:"hire_date,omitempty"`
}

type EmployeeRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
	HireDate string  `json:"hire_date"` // "2025-03-01"
}

func toEmployeeResponse(e *models.Employee) EmployeeResponse {
	res := EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Phone:    e.Phone,
		Position: e.Position,
		Salary:   e.Salary,
	}
	if e.HireDate != nil {
		res.HireDate = e.HireDate.Format("2006-01-02")
	}
	return res
}

// GET /api/employees
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employees []models.Employee
		if err := database.DB.Order("name asc").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Employees could not be listed")
		}

		res := make([]EmployeeResponse, 0, len(employees))
		for i := range employees {
			res = append(res, toEmployeeResponse(&employees[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/employees
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		e := models.Employee{
			Name:     body.Name,
			Email:    strings.TrimSpace(strings.ToLower(body.Email)),
			Phone:    strings.TrimSpace(body.Phone),
			Position: strings.TrimSpace(body.Position),
			Salary:   body.Salary,
		}
		if body.HireDate != "" {
			d, err := time.Parse("2006-01-02", body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "hire_date must be YYYY-MM-DD")
			}
			e.HireDate = &d
		}

		if err := database.DB.Create(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Employee could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(&e))
	}
}

// PUT /api/employees/:id
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var e models.Employee
		if err := database.DB.First(&e, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employee not found")
		}

		var body EmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			e.Name = name
		}
		if email := strings.TrimSpace(strings.ToLower(body.Email)); email != "" {
			e.Email = email
		}
		e.Phone = strings.TrimSpace(body.Phone)
		e.Position = strings.TrimSpace(body.Position)
		if body.Salary > 0 {
			e.Salary = body.Salary
		}
		if body.HireDate != "" {
			d, err := time.Parse("2006-01-02", body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "hire_date must be YYYY-MM-DD")
			}
			e.HireDate = &d
		}

		if err := database.DB.Save(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Employee could not be updated")
		}
		return c.JSON(toEmployeeResponse(&e))
	}
}

// DELETE /api/employees/:id
func DeleteEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Employee{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Employee could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
