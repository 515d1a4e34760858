package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
)

// Order: storefront order placed without an account. Completion is the
// point where stock actually leaves the shelf.
type Order struct {
	ID            uint   `gorm:"primaryKey"`
	ClientName    string `gorm:"size:100;not null"`
	ClientEmail   string `gorm:"size:100"`
	ClientPhone   string `gorm:"size:30"`
	Wilaya        string `gorm:"size:50;not null"`
	Address       string `gorm:"size:255;not null"`
	Notes         string `gorm:"size:500"`
	PaymentMethod string `gorm:"size:30"`

	Total         float64     `gorm:"not null"` // summed from item totals at creation
	Status        OrderStatus `gorm:"size:20;not null;default:pending;index"`
	PaymentStatus string      `gorm:"size:20;not null;default:unpaid"`

	Items []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey"`
	OrderID     uint    `gorm:"index;not null"`
	ProductID   uint    `gorm:"index;not null"`
	ProductName string  `gorm:"size:150;not null"`
	Quantity    int     `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Total       float64 `gorm:"not null"`
	CreatedAt   time.Time
}
