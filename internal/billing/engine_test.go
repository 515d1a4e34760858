package billing

import (
	"encoding/json"
	"fmt"
	"testing"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, initial, current int) *models.Product {
	t.Helper()
	p := models.Product{
		Name:            name,
		Barcode:         fmt.Sprintf("%s-%s", name, t.Name()),
		InitialQuantity: initial,
		CurrentQuantity: current,
		BuyingPrice:     10,
		SellingPrice:    15,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestCreateInvoiceRejectsMissingFields(t *testing.T) {
	db := setupDB(t)

	_, _, err := CreateInvoice(db, CreateInvoiceInput{Type: "refund", Total: 10, Items: []ItemInput{{ProductID: 1, ProductName: "x"}}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, _, err = CreateInvoice(db, CreateInvoiceInput{Type: models.InvoiceSale, Total: 10})
	require.ErrorAs(t, err, &verr)
}

func TestCreateInvoiceAtomicRollbackOnBadItem(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Oil filter", 10, 10)

	// second item has no product id: the whole invoice must roll back,
	// including the stock change already applied for the first item
	_, _, err := CreateInvoice(db, CreateInvoiceInput{
		Type:  models.InvoiceSale,
		Total: 100,
		Items: []ItemInput{
			{ProductID: p.ID, ProductName: p.Name, Quantity: 4, Total: 60},
			{ProductName: "orphan", Quantity: 1, Total: 40},
		},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	var invCount, itemCount int64
	db.Model(&models.Invoice{}).Count(&invCount)
	db.Model(&models.InvoiceItem{}).Count(&itemCount)
	require.Zero(t, invCount)
	require.Zero(t, itemCount)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	require.Equal(t, 10, got.CurrentQuantity)
}

func TestCreateInvoicePurchaseUpdatesStock(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Spark plug", 10, 10)
	supplier := models.Supplier{Name: "Motor Supply"}
	require.NoError(t, db.Create(&supplier).Error)

	inv, warnings, err := CreateInvoice(db, CreateInvoiceInput{
		Type:       models.InvoicePurchase,
		SupplierID: &supplier.ID,
		Total:      60,
		Items: []ItemInput{
			{ProductID: p.ID, ProductName: p.Name, Quantity: 5, BuyingPrice: 12, SellingPrice: 18, Total: 60},
		},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.NotZero(t, inv.ID)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	require.Equal(t, 15, got.InitialQuantity)
	require.Equal(t, 15, got.CurrentQuantity)
	require.NotNil(t, got.SupplierID)
	require.Equal(t, supplier.ID, *got.SupplierID)
}

func TestCreateInvoiceSaleClampsAndRecordsFullQuantity(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Timing belt", 3, 3)

	inv, _, err := CreateInvoice(db, CreateInvoiceInput{
		Type:  models.InvoiceSale,
		Total: 150,
		Items: []ItemInput{
			{ProductID: p.ID, ProductName: p.Name, Quantity: 10, SellingPrice: 15, Total: 150},
		},
	})
	require.NoError(t, err)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	require.Equal(t, 0, got.CurrentQuantity)

	// the invoice still records the full requested quantity and total
	var item models.InvoiceItem
	require.NoError(t, db.Where("invoice_id = ?", inv.ID).First(&item).Error)
	require.Equal(t, 10, item.Quantity)
	require.Equal(t, 150.0, item.Total)
	require.Equal(t, 150.0, inv.Total)
}

func TestCreateInvoiceSaleCreatesPlaceholderCustomer(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Wiper blade", 5, 5)

	inv, _, err := CreateInvoice(db, CreateInvoiceInput{
		Type:  models.InvoiceSale,
		Total: 15,
		Items: []ItemInput{{ProductID: p.ID, ProductName: p.Name, Quantity: 1, Total: 15}},
	})
	require.NoError(t, err)
	require.NotNil(t, inv.ClientID)

	var client models.Customer
	require.NoError(t, db.First(&client, *inv.ClientID).Error)
	require.Contains(t, client.Name, fmt.Sprintf("#%d", inv.ID))

	var stored models.Invoice
	require.NoError(t, db.First(&stored, inv.ID).Error)
	require.NotNil(t, stored.ClientID)
	require.Equal(t, client.ID, *stored.ClientID)
}

func TestCreateInvoiceMissingProductRecordsItemWithWarning(t *testing.T) {
	db := setupDB(t)

	inv, warnings, err := CreateInvoice(db, CreateInvoiceInput{
		Type:  models.InvoicePurchase,
		Total: 30,
		Items: []ItemInput{{ProductID: 999, ProductName: "Discontinued part", Quantity: 3, Total: 30}},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, uint(999), warnings[0].ProductID)

	var item models.InvoiceItem
	require.NoError(t, db.Where("invoice_id = ?", inv.ID).First(&item).Error)
	require.Equal(t, "Discontinued part", item.ProductName)
}

func TestCreateInvoiceTotalIsPersistedVerbatim(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Air filter", 5, 5)

	// caller total deliberately disagrees with the item totals
	inv, _, err := CreateInvoice(db, CreateInvoiceInput{
		Type:  models.InvoiceSale,
		Total: 999,
		Items: []ItemInput{{ProductID: p.ID, ProductName: p.Name, Quantity: 1, Total: 15}},
	})
	require.NoError(t, err)

	var stored models.Invoice
	require.NoError(t, db.First(&stored, inv.ID).Error)
	require.Equal(t, 999.0, stored.Total)
}

func TestItemInputNormalizesAliases(t *testing.T) {
	cases := []struct {
		name string
		body string
		want ItemInput
	}{
		{
			name: "snake_case",
			body: `{"product_id":3,"product_name":"Pad","buying_price":5,"selling_price":8,"quantity":2,"min_quantity":1,"total":16}`,
			want: ItemInput{ProductID: 3, ProductName: "Pad", BuyingPrice: 5, SellingPrice: 8, Quantity: 2, MinQuantity: 1, Total: 16},
		},
		{
			name: "camelCase",
			body: `{"productId":3,"productName":"Pad","buyingPrice":5,"sellingPrice":8,"qty":2,"minQuantity":1,"total":16}`,
			want: ItemInput{ProductID: 3, ProductName: "Pad", BuyingPrice: 5, SellingPrice: 8, Quantity: 2, MinQuantity: 1, Total: 16},
		},
		{
			name: "bare id and price",
			body: `{"id":3,"name":"Pad","purchase_price":5,"price":8,"quantity":2,"min_quantity":1,"total":16}`,
			want: ItemInput{ProductID: 3, ProductName: "Pad", BuyingPrice: 5, SellingPrice: 8, Quantity: 2, MinQuantity: 1, Total: 16},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ItemInput
			require.NoError(t, json.Unmarshal([]byte(tc.body), &got))
			require.Equal(t, tc.want, got)
		})
	}
}
