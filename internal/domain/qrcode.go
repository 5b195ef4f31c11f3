package domain

import "time"

// QRImageGenerator renders the PNG payload for a scan URL.
type QRImageGenerator interface {
	Generate(url string) (string, error)
}

type QRCode struct {
	ID        string `gorm:"primaryKey;size:20"`
	Name      string `gorm:"size:140"`
	URL       string `gorm:"size:500;not null"`
	Scans     int64  `gorm:"not null;default:0"`
	ImageData string `gorm:"type:text"` // base64 PNG
	CreatedAt time.Time
	UpdatedAt time.Time
}
