package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

var ErrBadCredentials = errors.New("invalid code or password")

type PromoUC struct {
	Promos domain.PromoRepo
	Orders domain.OrderRepo
}

// Validate uppercases and looks up a code. Absent codes map to ErrNotFound.
func (uc *PromoUC) Validate(ctx context.Context, code string) (*domain.PromoCode, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return nil, domain.ErrNotFound
	}
	return uc.Promos.FindByCode(ctx, c)
}

// TrackUsage records that an order was placed with a code. Earnings start at
// zero and are filled in by the order webhook.
func (uc *PromoUC) TrackUsage(ctx context.Context, code string, orderID uuid.UUID) error {
	p, err := uc.Promos.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	return uc.Promos.SaveUsage(ctx, &domain.PromoCodeUsage{
		ID:      uuid.New(),
		Code:    p.Code,
		OrderID: orderID,
	})
}

// UpdateEarnings recomputes a single usage row from the order total:
// earnings = total(EUR) x discount / 100.
func (uc *PromoUC) UpdateEarnings(ctx context.Context, o *domain.Order) error {
	u, err := uc.Promos.FindUsageByOrder(ctx, o.ID)
	if err != nil {
		return err
	}
	p, err := uc.Promos.FindByCode(ctx, u.Code)
	if err != nil {
		return err
	}
	earningsEUR := o.TotalEUR() * float64(p.Discount) / 100.0
	u.EarningsCents = int64(math.Round(earningsEUR * 100))
	return uc.Promos.SaveUsage(ctx, u)
}

// Login checks a creator's dashboard credentials.
func (uc *PromoUC) Login(ctx context.Context, code, password string) (*domain.PromoCode, error) {
	p, err := uc.Promos.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return p, nil
}

// CreatorStats aggregates sales and earnings for one code.
func (uc *PromoUC) CreatorStats(ctx context.Context, code string) (*domain.CreatorStats, error) {
	p, err := uc.Promos.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	usages, err := uc.Promos.ListUsages(ctx, p.Code)
	if err != nil {
		return nil, err
	}
	orders, err := uc.Orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := &domain.CreatorStats{Code: p.Code, CreatorName: p.CreatorName, Discount: p.Discount}
	for _, u := range usages {
		stats.EarningsEUR += float64(u.EarningsCents) / 100.0
	}
	for _, o := range orders {
		if o.PromoCode != nil && *o.PromoCode == p.Code {
			stats.OrderCount++
			stats.SalesEUR += o.TotalEUR()
		}
	}
	return stats, nil
}

// HashPassword is used when provisioning codes.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
