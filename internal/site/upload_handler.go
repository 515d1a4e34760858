package site

import (
	"os"
	"path/filepath"
	"strings"

	"autoparts-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// POST /api/uploads accepts a multipart "image" field. Files get a uuid name so
// uploads can never collide or overwrite each other.
func UploadImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "image file is required")
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			return fiber.NewError(fiber.StatusBadRequest, "unsupported image type")
		}

		if err := os.MkdirAll(cfg.UploadPath, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "upload directory unavailable")
		}

		name := uuid.New().String() + ext
		dst := filepath.Join(cfg.UploadPath, name)
		if err := c.SaveFile(file, dst); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "file could not be saved")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"path": "/uploads/" + name,
		})
	}
}
