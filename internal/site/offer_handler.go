package site

import (
	"strings"
	"time"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OfferResponse struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ProductID       *uint   `json:"product_id"`
	DiscountPercent float64 `json:"discount_percent"`
	ImagePath       string  `json:"image_path"`
	StartsAt        string  `json:"starts_at,omitempty"`
	EndsAt          string  `json:"ends_at,omitempty"`
	Active          bool    `json:"active"`
}

type OfferRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ProductID       *uint   `json:"product_id"`
	DiscountPercent float64 `json:"discount_percent"`
	ImagePath       string  `json:"image_path"`
	StartsAt        string  `json:"starts_at"` // "2025-06-01"
	EndsAt          string  `json:"ends_at"`
	Active          *bool   `json:"active"`
}

func toOfferResponse(o *models.SpecialOffer) OfferResponse {
	res := OfferResponse{
		ID:              o.ID,
		Title:           o.Title,
		Description:     o.Description,
		ProductID:       o.ProductID,
		DiscountPercent: o.DiscountPercent,
		ImagePath:       o.ImagePath,
		Active:          o.Active,
	}
	if o.StartsAt != nil {
		res.StartsAt = o.StartsAt.Format("2006-01-02")
	}
	if o.EndsAt != nil {
		res.EndsAt = o.EndsAt.Format("2006-01-02")
	}
	return res
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GET /api/offers?active=true
func ListOffersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.SpecialOffer{})
		if c.Query("active") == "true" {
			dbq = dbq.Where("active = ?", true)
		}

		var offers []models.SpecialOffer
		if err := dbq.Order("id desc").Find(&offers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Offers could not be listed")
		}

		res := make([]OfferResponse, 0, len(offers))
		for i := range offers {
			res = append(res, toOfferResponse(&offers[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/offers
func CreateOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title is required")
		}

		startsAt, err := parseDay(body.StartsAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "starts_at must be YYYY-MM-DD")
		}
		endsAt, err := parseDay(body.EndsAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ends_at must be YYYY-MM-DD")
		}

		o := models.SpecialOffer{
			Title:           body.Title,
			Description:     body.Description,
			ProductID:       body.ProductID,
			DiscountPercent: body.DiscountPercent,
			ImagePath:       body.ImagePath,
			StartsAt:        startsAt,
			EndsAt:          endsAt,
			Active:          true,
		}
		if body.Active != nil {
			o.Active = *body.Active
		}

		if err := database.DB.Create(&o).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Offer could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(toOfferResponse(&o))
	}
}

// PUT /api/offers/:id
func UpdateOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var o models.SpecialOffer
		if err := database.DB.First(&o, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Offer not found")
		}

		var body OfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if title := strings.TrimSpace(body.Title); title != "" {
			o.Title = title
		}
		if body.Description != "" {
			o.Description = body.Description
		}
		if body.ProductID != nil {
			o.ProductID = body.ProductID
		}
		if body.DiscountPercent > 0 {
			o.DiscountPercent = body.DiscountPercent
		}
		if body.ImagePath != "" {
			o.ImagePath = body.ImagePath
		}
		if body.StartsAt != "" {
			startsAt, err := parseDay(body.StartsAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "starts_at must be YYYY-MM-DD")
			}
			o.StartsAt = startsAt
		}
		if body.EndsAt != "" {
			endsAt, err := parseDay(body.EndsAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "ends_at must be YYYY-MM-DD")
			}
			o.EndsAt = endsAt
		}
		if body.Active != nil {
			o.Active = *body.Active
		}

		if err := database.DB.Save(&o).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Offer could not be updated")
		}
		return c.JSON(toOfferResponse(&o))
	}
}

// DELETE /api/offers/:id
func DeleteOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.SpecialOffer{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Offer could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
