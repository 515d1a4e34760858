package models

import "time"

type InvoiceType string

const (
	InvoicePurchase InvoiceType = "purchase" // stock inflow, supplier-facing
	InvoiceSale     InvoiceType = "sale"     // stock outflow, customer-facing
)

// ActorType discriminates who recorded an invoice: a back-office admin
// account or a store employee.
type ActorType string

const (
	ActorAdmin    ActorType = "admin"
	ActorEmployee ActorType = "employee"
)

type Invoice struct {
	ID   uint        `gorm:"primaryKey"`
	Type InvoiceType `gorm:"size:20;not null;index"`

	SupplierID *uint `gorm:"index"` // purchase invoices
	Supplier   *Supplier
	ClientID   *uint `gorm:"index"` // sale invoices
	Client     *Customer
	ClientName string `gorm:"size:100"` // denormalized snapshot

	Total      float64 `gorm:"not null"`
	AmountPaid float64 `gorm:"not null;default:0"`
	Status     string  `gorm:"size:20;not null;default:pending"` // pending | partial | paid (advisory)

	CreatedByID   *uint
	CreatedByType ActorType `gorm:"size:20"`

	Items []InvoiceItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvoiceItem struct {
	ID        uint `gorm:"primaryKey"`
	InvoiceID uint `gorm:"index;not null"`

	ProductID   uint   `gorm:"index;not null"`
	ProductName string `gorm:"size:150;not null"` // snapshot, survives product deletion
	Barcode     string `gorm:"size:64"`

	PurchasePrice float64
	MarginPercent float64
	SellingPrice  float64
	Quantity      int `gorm:"not null"`
	MinQuantity   int
	Total         float64 `gorm:"not null"`

	CreatedAt time.Time
}
