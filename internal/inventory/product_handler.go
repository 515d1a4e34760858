package inventory

import (
	"strings"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Barcode         string  `json:"barcode"`
	Brand           string  `json:"brand"`
	Category        string  `json:"category"`
	CategoryID      *uint   `json:"category_id"`
	BuyingPrice     float64 `json:"buying_price"`
	SellingPrice    float64 `json:"selling_price"`
	MarginPercent   float64 `json:"margin_percent"`
	InitialQuantity int     `json:"initial_quantity"`
	CurrentQuantity int     `json:"current_quantity"`
	MinQuantity     int     `json:"min_quantity"`
	SupplierID      *uint   `json:"supplier_id"`
	ImagePath       string  `json:"image_path"`
}

type CreateProductRequest struct {
	Name            string  `json:"name"`
	Barcode         string  `json:"barcode"`
	Brand           string  `json:"brand"`
	CategoryID      *uint   `json:"category_id"`
	BuyingPrice     float64 `json:"buying_price"`
	SellingPrice    float64 `json:"selling_price"`
	MarginPercent   float64 `json:"margin_percent"`
	InitialQuantity int     `json:"initial_quantity"`
	MinQuantity     int     `json:"min_quantity"`
	SupplierID      *uint   `json:"supplier_id"`
	ImagePath       string  `json:"image_path"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Barcode       *string  `json:"barcode"`
	Brand         *string  `json:"brand"`
	CategoryID    *uint    `json:"category_id"`
	BuyingPrice   *float64 `json:"buying_price"`
	SellingPrice  *float64 `json:"selling_price"`
	MarginPercent *float64 `json:"margin_percent"`
	MinQuantity   *int     `json:"min_quantity"`
	SupplierID    *uint    `json:"supplier_id"`
	ImagePath     *string  `json:"image_path"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Barcode:         p.Barcode,
		Brand:           p.Brand,
		Category:        p.Category,
		CategoryID:      p.CategoryID,
		BuyingPrice:     p.BuyingPrice,
		SellingPrice:    p.SellingPrice,
		MarginPercent:   p.MarginPercent,
		InitialQuantity: p.InitialQuantity,
		CurrentQuantity: p.CurrentQuantity,
		MinQuantity:     p.MinQuantity,
		SupplierID:      p.SupplierID,
		ImagePath:       p.ImagePath,
	}
}

// GET /api/products?search=&category_id=&low_stock=true
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("lower(name) LIKE ? OR lower(brand) LIKE ? OR barcode = ?", like, like, search)
		}
		if cid := c.Query("category_id"); cid != "" {
			dbq = dbq.Where("category_id = ?", cid)
		}
		if c.Query("low_stock") == "true" {
			dbq = dbq.Where("current_quantity <= min_quantity")
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be listed")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return c.JSON(toProductResponse(&p))
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Barcode = strings.TrimSpace(body.Barcode)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		if body.Barcode != "" {
			var existing models.Product
			if err := database.DB.Where("barcode = ?", body.Barcode).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "This barcode is already in use")
			}
		}

		p := models.Product{
			Name:            body.Name,
			Barcode:         body.Barcode,
			Brand:           strings.TrimSpace(body.Brand),
			CategoryID:      body.CategoryID,
			BuyingPrice:     body.BuyingPrice,
			SellingPrice:    body.SellingPrice,
			MarginPercent:   body.MarginPercent,
			InitialQuantity: body.InitialQuantity,
			CurrentQuantity: body.InitialQuantity,
			MinQuantity:     body.MinQuantity,
			SupplierID:      body.SupplierID,
			ImagePath:       body.ImagePath,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			p.Name = name
		}
		if body.Barcode != nil {
			p.Barcode = strings.TrimSpace(*body.Barcode)
		}
		if body.Brand != nil {
			p.Brand = strings.TrimSpace(*body.Brand)
		}
		if body.CategoryID != nil {
			p.CategoryID = body.CategoryID
		}
		if body.BuyingPrice != nil {
			p.BuyingPrice = *body.BuyingPrice
		}
		if body.SellingPrice != nil {
			p.SellingPrice = *body.SellingPrice
		}
		if body.MarginPercent != nil {
			p.MarginPercent = *body.MarginPercent
		}
		if body.MinQuantity != nil {
			p.MinQuantity = *body.MinQuantity
		}
		if body.SupplierID != nil {
			p.SupplierID = body.SupplierID
		}
		if body.ImagePath != nil {
			p.ImagePath = *body.ImagePath
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be updated")
		}
		return c.JSON(toProductResponse(&p))
	}
}

// DELETE /api/products/:id
// Does not touch invoice_items referencing the product; their snapshots keep
// the history readable.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
