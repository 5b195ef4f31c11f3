package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type QRCodeRepo struct{ db *gorm.DB }

func NewQRCodeRepo(db *gorm.DB) *QRCodeRepo { return &QRCodeRepo{db: db} }

func (r *QRCodeRepo) Save(ctx context.Context, q *domain.QRCode) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *QRCodeRepo) FindByID(ctx context.Context, id string) (*domain.QRCode, error) {
	var q domain.QRCode
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *QRCodeRepo) ListAll(ctx context.Context) ([]domain.QRCode, error) {
	var list []domain.QRCode
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *QRCodeRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.QRCode{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementScans bumps the counter in a single UPDATE so concurrent scans
// cannot lose an increment.
func (r *QRCodeRepo) IncrementScans(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.QRCode{}).Where("id = ?", id).
		UpdateColumn("scans", gorm.Expr("scans + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
