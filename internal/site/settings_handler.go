package site

import (
	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WebsiteSettingsResponse struct {
	SiteName    string `json:"site_name"`
	Tagline     string `json:"tagline"`
	LogoPath    string `json:"logo_path"`
	BannerPath  string `json:"banner_path"`
	AboutText   string `json:"about_text"`
	FooterText  string `json:"footer_text"`
	Maintenance bool   `json:"maintenance"`
}

type UpdateWebsiteSettingsRequest struct {
	SiteName    *string `json:"site_name"`
	Tagline     *string `json:"tagline"`
	LogoPath    *string `json:"logo_path"`
	BannerPath  *string `json:"banner_path"`
	AboutText   *string `json:"about_text"`
	FooterText  *string `json:"footer_text"`
	Maintenance *bool   `json:"maintenance"`
}

func toSettingsResponse(s *models.WebsiteSettings) WebsiteSettingsResponse {
	return WebsiteSettingsResponse{
		SiteName:    s.SiteName,
		Tagline:     s.Tagline,
		LogoPath:    s.LogoPath,
		BannerPath:  s.BannerPath,
		AboutText:   s.AboutText,
		FooterText:  s.FooterText,
		Maintenance: s.Maintenance,
	}
}

// GET /api/settings returns the singleton row seeded at bootstrap.
func GetWebsiteSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.WebsiteSettings
		if err := database.DB.First(&s, 1).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Settings could not be loaded")
		}
		return c.JSON(toSettingsResponse(&s))
	}
}

// PUT /api/settings
func UpdateWebsiteSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.WebsiteSettings
		if err := database.DB.First(&s, 1).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Settings could not be loaded")
		}

		var body UpdateWebsiteSettingsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.SiteName != nil {
			s.SiteName = *body.SiteName
		}
		if body.Tagline != nil {
			s.Tagline = *body.Tagline
		}
		if body.LogoPath != nil {
			s.LogoPath = *body.LogoPath
		}
		if body.BannerPath != nil {
			s.BannerPath = *body.BannerPath
		}
		if body.AboutText != nil {
			s.AboutText = *body.AboutText
		}
		if body.FooterText != nil {
			s.FooterText = *body.FooterText
		}
		if body.Maintenance != nil {
			s.Maintenance = *body.Maintenance
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Settings could not be updated")
		}
		return c.JSON(toSettingsResponse(&s))
	}
}
