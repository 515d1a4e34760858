package site

import (
	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ContactResponse struct {
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	WhatsApp  string `json:"whatsapp"`
}

type UpdateContactRequest struct {
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	WhatsApp  *string `json:"whatsapp"`
}

// GET /api/contacts is public and returns the singleton row.
func GetContactHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Contact
		if err := database.DB.First(&m, 1).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Contact details could not be loaded")
		}
		return c.JSON(ContactResponse{
			Phone:     m.Phone,
			Email:     m.Email,
			Address:   m.Address,
			Facebook:  m.Facebook,
			Instagram: m.Instagram,
			WhatsApp:  m.WhatsApp,
		})
	}
}

// PUT /api/contacts
func UpdateContactHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Contact
		if err := database.DB.First(&m, 1).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Contact details could not be loaded")
		}

		var body UpdateContactRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Phone != nil {
			m.Phone = *body.Phone
		}
		if body.Email != nil {
			m.Email = *body.Email
		}
		if body.Address != nil {
			m.Address = *body.Address
		}
		if body.Facebook != nil {
			m.Facebook = *body.Facebook
		}
		if body.Instagram != nil {
			m.Instagram = *body.Instagram
		}
		if body.WhatsApp != nil {
			m.WhatsApp = *body.WhatsApp
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Contact details could not be updated")
		}
		return c.JSON(ContactResponse{
			Phone:     m.Phone,
			Email:     m.Email,
			Address:   m.Address,
			Facebook:  m.Facebook,
			Instagram: m.Instagram,
			WhatsApp:  m.WhatsApp,
		})
	}
}
