package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type PromoRepo struct{ db *gorm.DB }

func NewPromoRepo(db *gorm.DB) *PromoRepo { return &PromoRepo{db: db} }

func (r *PromoRepo) FindByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return nil, domain.ErrNotFound
	}
	var p domain.PromoCode
	if err := r.db.WithContext(ctx).First(&p, "code = ?", c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepo) ListAll(ctx context.Context) ([]domain.PromoCode, error) {
	var list []domain.PromoCode
	if err := r.db.WithContext(ctx).Order("code asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PromoRepo) Save(ctx context.Context, p *domain.PromoCode) error {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PromoRepo) SaveUsage(ctx context.Context, u *domain.PromoCodeUsage) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.UsedAt.IsZero() {
		u.UsedAt = time.Now()
	}
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *PromoRepo) FindUsageByOrder(ctx context.Context, orderID uuid.UUID) (*domain.PromoCodeUsage, error) {
	var u domain.PromoCodeUsage
	if err := r.db.WithContext(ctx).First(&u, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PromoRepo) ListUsages(ctx context.Context, code string) ([]domain.PromoCodeUsage, error) {
	var list []domain.PromoCodeUsage
	c := strings.ToUpper(strings.TrimSpace(code))
	if err := r.db.WithContext(ctx).Where("code = ?", c).Order("used_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
