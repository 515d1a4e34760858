package database

import (
	"fmt"
	"testing"

	"autoparts-backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	// still exactly one of each patched column
	cols, err := db.Migrator().ColumnTypes(&models.Order{})
	require.NoError(t, err)
	seen := 0
	for _, col := range cols {
		if col.Name() == "payment_status" {
			seen++
		}
	}
	require.Equal(t, 1, seen)
}

func TestSeedCreatesDefaultsOnce(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, Seed(db, "admin@shop.test", "secret-pass"))
	require.NoError(t, Seed(db, "admin@shop.test", "secret-pass"))

	var users int64
	db.Model(&models.User{}).Count(&users)
	require.Equal(t, int64(1), users)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@shop.test").First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("secret-pass")))

	var settings, contacts int64
	db.Model(&models.WebsiteSettings{}).Count(&settings)
	db.Model(&models.Contact{}).Count(&contacts)
	require.Equal(t, int64(1), settings)
	require.Equal(t, int64(1), contacts)
}

func TestSeedKeepsExistingAdmin(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Migrate(db))

	existing := models.User{Name: "Owner", Email: "owner@shop.test", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, Seed(db, "admin@shop.test", "secret-pass"))

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestCategoryBackfillLinksLegacyText(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Migrate(db))

	p1 := models.Product{Name: "Oil filter", Barcode: "OF-1", Category: "Filters"}
	p2 := models.Product{Name: "Air filter", Barcode: "AF-1", Category: "Filters"}
	p3 := models.Product{Name: "Brake pad", Barcode: "BP-1", Category: "Brakes"}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)
	require.NoError(t, db.Create(&p3).Error)

	require.NoError(t, Migrate(db))

	var cats []models.Category
	require.NoError(t, db.Order("name asc").Find(&cats).Error)
	require.Len(t, cats, 2)
	require.Equal(t, "Brakes", cats[0].Name)
	require.Equal(t, "Filters", cats[1].Name)

	var got1, got2 models.Product
	require.NoError(t, db.First(&got1, p1.ID).Error)
	require.NoError(t, db.First(&got2, p2.ID).Error)
	require.NotNil(t, got1.CategoryID)
	require.NotNil(t, got2.CategoryID)
	require.Equal(t, *got1.CategoryID, *got2.CategoryID, "same legacy label links to the same category")
}
