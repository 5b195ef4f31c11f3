package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID string    `gorm:"size:60;index"`
	Name      string    `gorm:"size:140"`
	Email     string    `gorm:"size:140"`
	Rating    int       `gorm:"not null"` // 1-5
	Comment   string    `gorm:"type:text"`
	Language  string    `gorm:"size:5;default:'en'"`
	CreatedAt time.Time
}
