package orders

import (
	"strings"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/logging"
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/stock"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type OrderItemRequest struct {
	ProductID   uint    `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type CreateOrderRequest struct {
	ClientName    string             `json:"client_name" validate:"required"`
	ClientEmail   string             `json:"client_email"`
	ClientPhone   string             `json:"client_phone"`
	Wilaya        string             `json:"wilaya" validate:"required"`
	Address       string             `json:"address" validate:"required"`
	Notes         string             `json:"notes"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	ClientName    string              `json:"client_name"`
	ClientEmail   string              `json:"client_email"`
	ClientPhone   string              `json:"client_phone"`
	Wilaya        string              `json:"wilaya"`
	Address       string              `json:"address"`
	Notes         string              `json:"notes"`
	PaymentMethod string              `json:"payment_method"`
	Total         float64             `json:"total"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	CreatedAt     string              `json:"created_at"`
	Items         []OrderItemResponse `json:"items"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	res := OrderResponse{
		ID:            o.ID,
		ClientName:    o.ClientName,
		ClientEmail:   o.ClientEmail,
		ClientPhone:   o.ClientPhone,
		Wilaya:        o.Wilaya,
		Address:       o.Address,
		Notes:         o.Notes,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		res.Items = append(res.Items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}
	return res
}

// POST /api/orders
// Storefront order intake. The order total is summed server-side from the
// item totals before anything is written.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "client_name, wilaya, address and a non-empty items list are required")
		}

		var total float64
		for _, it := range body.Items {
			total += it.Total
		}

		order := models.Order{
			ClientName:    strings.TrimSpace(body.ClientName),
			ClientEmail:   strings.TrimSpace(body.ClientEmail),
			ClientPhone:   strings.TrimSpace(body.ClientPhone),
			Wilaya:        strings.TrimSpace(body.Wilaya),
			Address:       strings.TrimSpace(body.Address),
			Notes:         body.Notes,
			PaymentMethod: body.PaymentMethod,
			Total:         total,
			Status:        models.OrderPending,
			PaymentStatus: "unpaid",
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			for _, it := range body.Items {
				row := models.OrderItem{
					OrderID:     order.ID,
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					Quantity:    it.Quantity,
					Price:       it.Price,
					Total:       it.Total,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				order.Items = append(order.Items, row)
			}
			return nil
		})
		if err != nil {
			logging.L().WithError(err).Error("order creation failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Order could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(&order))
	}
}

// GET /api/orders?status=pending
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Order{}).Preload("Items")
		if s := c.Query("status"); s != "" {
			dbq = dbq.Where("status = ?", s)
		}

		var list []models.Order
		if err := dbq.Order("id desc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Orders could not be listed")
		}

		res := make([]OrderResponse, 0, len(list))
		for i := range list {
			res = append(res, toOrderResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.Order
		if err := database.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return c.JSON(toOrderResponse(&order))
	}
}

// PUT /api/orders/:id/status
// Moving an order to "completed" is the moment stock leaves the shelf: every
// item decrements its product through the shared stock helper, inside the
// same transaction as the status change. Any other status leaves stock
// untouched, and reverting from "completed" does not restock.
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "status is required")
		}

		var order models.Order
		if err := database.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		newStatus := models.OrderStatus(body.Status)
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if newStatus == models.OrderCompleted && order.Status != models.OrderCompleted {
				for _, it := range order.Items {
					if _, err := stock.Decrement(tx, it.ProductID, it.Quantity); err != nil {
						return err
					}
				}
			}
			return tx.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("status", newStatus).Error
		})
		if err != nil {
			logging.L().WithError(err).Error("order status update failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Order status could not be updated")
		}

		order.Status = newStatus
		return c.JSON(toOrderResponse(&order))
	}
}

// DELETE /api/orders/:id
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Order could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
