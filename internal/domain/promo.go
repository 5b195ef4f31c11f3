package domain

import (
	"time"

	"github.com/google/uuid"
)

type PromoCode struct {
	Code         string `gorm:"primaryKey;size:40"`
	Discount     int    `gorm:"not null"` // percent, 0-100
	CreatorName  string `gorm:"size:140"`
	PasswordHash string `gorm:"size:100"`
	CreatedAt    time.Time
}

type PromoCodeUsage struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code          string    `gorm:"size:40;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	UsedAt        time.Time
	EarningsCents int64 `gorm:"not null;default:0"` // EUR cents, recomputed by the order webhook
}

// CreatorStats aggregates a creator's affiliate performance.
type CreatorStats struct {
	Code        string
	CreatorName string
	Discount    int
	OrderCount  int
	SalesEUR    float64
	EarningsEUR float64
}
