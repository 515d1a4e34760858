package database

import (
	"fmt"

	"autoparts-backend/internal/config"
	"autoparts-backend/internal/logging"
	"autoparts-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the store and brings the schema up to date. A failure here is
// fatal: the server must not start serving requests on an unusable schema.
func Init(cfg *config.Config) {
	log := logging.L()

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("cannot connect to database (%s): %v", cfg.DBDriver, err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := Seed(DB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seeding defaults failed: %v", err)
	}

	log.Infof("database ready (driver=%s)", cfg.DBDriver)
}

// Migrate creates missing tables and additively patches columns onto tables
// that predate them. Running it twice is a no-op.
func Migrate(db *gorm.DB) error {
	// Columns added after the original release of their table. Patched
	// before AutoMigrate so pre-existing rows get an explicit backfill
	// instead of whatever the column default would leave behind.
	type patch struct {
		model    interface{}
		table    string
		column   string
		addSQL   string
		backfill string
	}
	patches := []patch{
		{
			model:    &models.Order{},
			table:    "orders",
			column:   "payment_status",
			addSQL:   "ALTER TABLE orders ADD COLUMN payment_status varchar(20)",
			backfill: "UPDATE orders SET payment_status = 'unpaid' WHERE payment_status IS NULL",
		},
		{
			model:    &models.Invoice{},
			table:    "invoices",
			column:   "created_by_type",
			addSQL:   "ALTER TABLE invoices ADD COLUMN created_by_type varchar(20)",
			backfill: "UPDATE invoices SET created_by_type = 'admin' WHERE created_by_type IS NULL AND created_by_id IS NOT NULL",
		},
		{
			model:  &models.Product{},
			table:  "products",
			column: "category_id",
			addSQL: "ALTER TABLE products ADD COLUMN category_id bigint",
			// backfilled below by normalizeCategories, needs category rows
		},
	}
	for _, p := range patches {
		if !db.Migrator().HasTable(p.model) {
			continue
		}
		if !db.Migrator().HasColumn(p.model, p.column) {
			if err := db.Exec(p.addSQL).Error; err != nil {
				return fmt.Errorf("add %s.%s: %w", p.table, p.column, err)
			}
		}
		if p.backfill != "" {
			if err := db.Exec(p.backfill).Error; err != nil {
				return fmt.Errorf("backfill %s.%s: %w", p.table, p.column, err)
			}
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Customer{},
		&models.Supplier{},
		&models.Category{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.SpecialOffer{},
		&models.Contact{},
		&models.WebsiteSettings{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return normalizeCategories(db)
}

// normalizeCategories is the one-time pass from the legacy free-text
// products.category column to the category_id foreign key. Products already
// linked are left alone, so reruns do nothing.
func normalizeCategories(db *gorm.DB) error {
	var products []models.Product
	if err := db.Where("category_id IS NULL AND category <> ''").Find(&products).Error; err != nil {
		return fmt.Errorf("load unlinked products: %w", err)
	}
	for _, p := range products {
		var cat models.Category
		if err := db.Where("name = ?", p.Category).
			FirstOrCreate(&cat, models.Category{Name: p.Category}).Error; err != nil {
			return fmt.Errorf("find-or-create category %q: %w", p.Category, err)
		}
		if err := db.Model(&models.Product{}).Where("id = ?", p.ID).
			Update("category_id", cat.ID).Error; err != nil {
			return fmt.Errorf("link product %d: %w", p.ID, err)
		}
	}
	return nil
}

// Seed inserts the default admin account and the id=1 singleton rows for
// website settings and contacts when they are missing.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		admin := models.User{
			Name:         "Administrator",
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	settings := models.WebsiteSettings{ID: 1, SiteName: "Auto Parts Store"}
	if err := db.FirstOrCreate(&settings, models.WebsiteSettings{ID: 1}).Error; err != nil {
		return fmt.Errorf("seed website settings: %w", err)
	}
	contact := models.Contact{ID: 1}
	if err := db.FirstOrCreate(&contact, models.Contact{ID: 1}).Error; err != nil {
		return fmt.Errorf("seed contacts: %w", err)
	}
	return nil
}
