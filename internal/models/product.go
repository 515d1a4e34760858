package models

import "time"

type Product struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:150;not null"`
	Barcode string `gorm:"size:64;uniqueIndex"`
	Brand   string `gorm:"size:100"`

	// Category is the legacy free-text label kept readable for old rows.
	// CategoryID is canonical; the bootstrap backfills it once from the text.
	Category   string `gorm:"size:100"`
	CategoryID *uint  `gorm:"index"`

	BuyingPrice   float64 `gorm:"not null;default:0"`
	SellingPrice  float64 `gorm:"not null;default:0"`
	MarginPercent float64 `gorm:"not null;default:0"`

	InitialQuantity int `gorm:"not null;default:0"`
	CurrentQuantity int `gorm:"not null;default:0"`
	MinQuantity     int `gorm:"not null;default:0"` // low-stock alert threshold

	SupplierID *uint  `gorm:"index"`
	ImagePath  string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
