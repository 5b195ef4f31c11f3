package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]Order, error)
	List(ctx context.Context, status *PaymentStatus, page, pageSize int) ([]Order, int64, error)
}

type PromoRepo interface {
	FindByCode(ctx context.Context, code string) (*PromoCode, error)
	ListAll(ctx context.Context) ([]PromoCode, error)
	Save(ctx context.Context, p *PromoCode) error
	SaveUsage(ctx context.Context, u *PromoCodeUsage) error
	FindUsageByOrder(ctx context.Context, orderID uuid.UUID) (*PromoCodeUsage, error)
	ListUsages(ctx context.Context, code string) ([]PromoCodeUsage, error)
}

type MetricsRepo interface {
	Get(ctx context.Context) (*BusinessMetrics, error)
	Save(ctx context.Context, m *BusinessMetrics) error
	GetInvestor(ctx context.Context) (*InvestorData, error)
	SaveInvestor(ctx context.Context, d *InvestorData) error
}

type QRCodeRepo interface {
	Save(ctx context.Context, q *QRCode) error
	FindByID(ctx context.Context, id string) (*QRCode, error)
	ListAll(ctx context.Context) ([]QRCode, error)
	Delete(ctx context.Context, id string) error
	IncrementScans(ctx context.Context, id string) error
}

type ReviewRepo interface {
	Save(ctx context.Context, r *Review) error
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
}
