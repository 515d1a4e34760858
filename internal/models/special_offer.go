package models

import "time"

type SpecialOffer struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"size:150;not null"`
	Description     string `gorm:"size:500"`
	ProductID       *uint  `gorm:"index"`
	Product         *Product
	DiscountPercent float64
	ImagePath       string `gorm:"size:255"`
	StartsAt        *time.Time
	EndsAt          *time.Time
	Active          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
