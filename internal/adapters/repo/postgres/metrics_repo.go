package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type MetricsRepo struct{ db *gorm.DB }

func NewMetricsRepo(db *gorm.DB) *MetricsRepo { return &MetricsRepo{db: db} }

// Get returns the singleton metrics row, creating it on first access.
func (r *MetricsRepo) Get(ctx context.Context) (*domain.BusinessMetrics, error) {
	var m domain.BusinessMetrics
	err := r.db.WithContext(ctx).Order("id asc").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = domain.BusinessMetrics{}
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MetricsRepo) Save(ctx context.Context, m *domain.BusinessMetrics) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MetricsRepo) GetInvestor(ctx context.Context) (*domain.InvestorData, error) {
	var d domain.InvestorData
	if err := r.db.WithContext(ctx).Order("id asc").First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *MetricsRepo) SaveInvestor(ctx context.Context, d *domain.InvestorData) error {
	return r.db.WithContext(ctx).Save(d).Error
}
