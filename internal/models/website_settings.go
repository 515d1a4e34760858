package models

import "time"

// WebsiteSettings: singleton row (id=1) for the public storefront.
type WebsiteSettings struct {
	ID          uint   `gorm:"primaryKey;check:id = 1"`
	SiteName    string `gorm:"size:100"`
	Tagline     string `gorm:"size:255"`
	LogoPath    string `gorm:"size:255"`
	BannerPath  string `gorm:"size:255"`
	AboutText   string `gorm:"size:2000"`
	FooterText  string `gorm:"size:500"`
	Maintenance bool   `gorm:"not null;default:false"`
	UpdatedAt   time.Time
}
