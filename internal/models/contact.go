package models

import "time"

// Contact: singleton row holding the shop's public contact details.
// The CHECK constraint pins it to id=1 so there is never a second row.
type Contact struct {
	ID        uint   `gorm:"primaryKey;check:id = 1"`
	Phone     string `gorm:"size:30"`
	Email     string `gorm:"size:100"`
	Address   string `gorm:"size:255"`
	Facebook  string `gorm:"size:255"`
	Instagram string `gorm:"size:255"`
	WhatsApp  string `gorm:"size:30"`
	UpdatedAt time.Time
}
