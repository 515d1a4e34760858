package models

import "time"

type Employee struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100;uniqueIndex"`
	Phone     string `gorm:"size:30"`
	Position  string `gorm:"size:100"`
	Salary    float64
	HireDate  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
