package main

import (
	"strings"

	"autoparts-backend/internal/auth"
	"autoparts-backend/internal/billing"
	"autoparts-backend/internal/config"
	"autoparts-backend/internal/dashboard"
	"autoparts-backend/internal/database"
	"autoparts-backend/internal/inventory"
	"autoparts-backend/internal/logging"
	"autoparts-backend/internal/orders"
	"autoparts-backend/internal/people"
	"autoparts-backend/internal/reports"
	"autoparts-backend/internal/site"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log := logging.L()
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.WithError(err).Error("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Static("/uploads", cfg.UploadPath)

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public storefront: browsing, offers, contact details, order intake
	api.Get("/products", inventory.ListProductsHandler())
	api.Get("/products/:id", inventory.GetProductHandler())
	api.Get("/categories", inventory.ListCategoriesHandler())
	api.Get("/offers", site.ListOffersHandler())
	api.Get("/contacts", site.GetContactHandler())
	api.Get("/settings", site.GetWebsiteSettingsHandler())
	api.Post("/orders", orders.CreateOrderHandler())

	// Back office (auth required)
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Put("/auth/password", auth.ChangePasswordHandler())

	// Catalog
	protected.Post("/products", inventory.CreateProductHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler())
	protected.Delete("/products/:id", inventory.DeleteProductHandler())
	protected.Post("/categories", inventory.CreateCategoryHandler())
	protected.Put("/categories/:id", inventory.UpdateCategoryHandler())
	protected.Delete("/categories/:id", inventory.DeleteCategoryHandler())
	protected.Get("/suppliers", inventory.ListSuppliersHandler())
	protected.Get("/suppliers/:id", inventory.GetSupplierHandler())
	protected.Post("/suppliers", inventory.CreateSupplierHandler())
	protected.Put("/suppliers/:id", inventory.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", inventory.DeleteSupplierHandler())

	// Invoices (purchase & sale), the transactional write path
	protected.Post("/invoices", billing.CreateInvoiceHandler())
	protected.Get("/invoices", billing.ListInvoicesHandler())
	protected.Get("/invoices/:id", billing.GetInvoiceHandler())
	protected.Put("/invoices/:id/pay", billing.PayInvoiceHandler())
	protected.Delete("/invoices/:id", billing.DeleteInvoiceHandler())

	// Storefront order management
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler())
	protected.Put("/orders/:id/status", orders.UpdateOrderStatusHandler())
	protected.Delete("/orders/:id", orders.DeleteOrderHandler())

	// People
	protected.Get("/customers", people.ListCustomersHandler())
	protected.Post("/customers", people.CreateCustomerHandler())
	protected.Put("/customers/:id", people.UpdateCustomerHandler())
	protected.Delete("/customers/:id", people.DeleteCustomerHandler())
	protected.Get("/employees", people.ListEmployeesHandler())
	protected.Post("/employees", people.CreateEmployeeHandler())
	protected.Put("/employees/:id", people.UpdateEmployeeHandler())
	protected.Delete("/employees/:id", people.DeleteEmployeeHandler())

	// Site content
	protected.Post("/offers", site.CreateOfferHandler())
	protected.Put("/offers/:id", site.UpdateOfferHandler())
	protected.Delete("/offers/:id", site.DeleteOfferHandler())
	protected.Put("/contacts", site.UpdateContactHandler())
	protected.Put("/settings", site.UpdateWebsiteSettingsHandler())
	protected.Post("/uploads", site.UploadImageHandler(cfg))

	// Dashboard & reports
	protected.Get("/dashboard/stats", dashboard.StatsHandler())
	protected.Get("/reports/summary", reports.SummaryHandler())
	protected.Get("/reports/inventory/export", reports.InventoryExportHandler())

	log.Infof("server listening on port %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
