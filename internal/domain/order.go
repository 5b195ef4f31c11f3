package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Items         []OrderItem
	Email         string        `gorm:"size:140"`
	Name          string        `gorm:"size:140"`
	Phone         string        `gorm:"size:50"`
	Address       string        `gorm:"size:255"`
	City          string        `gorm:"size:100"`
	PostalCode    string        `gorm:"size:20"`
	Country       string        `gorm:"size:80"`
	Language      string        `gorm:"size:5;default:'en'"`
	TotalCents    int64         `gorm:"not null"`
	Currency      Currency      `gorm:"type:varchar(3);not null;default:'EUR';index"`
	PromoCode     *string       `gorm:"size:40;index"`
	PaymentMethod string        `gorm:"size:30;index"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'pending';index"`
	Notified      bool          `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ProductID      string    `gorm:"size:60;index"`
	ProductName    string    `gorm:"size:180"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	Currency       Currency  `gorm:"type:varchar(3);not null;default:'EUR'"`
}

// TotalEUR is the order total normalized to EUR.
func (o *Order) TotalEUR() float64 {
	return ToEUR(o.TotalCents, o.Currency)
}
