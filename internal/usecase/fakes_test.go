package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
	err    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.orders[o.ID]; ok {
		return errors.New("duplicate order id")
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListInRange(_ context.Context, from, to time.Time) ([]domain.Order, error) {
	all, err := f.ListAll(context.Background())
	if err != nil {
		return nil, err
	}
	out := []domain.Order{}
	for _, o := range all {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) List(_ context.Context, status *domain.PaymentStatus, page, pageSize int) ([]domain.Order, int64, error) {
	all, err := f.ListAll(context.Background())
	if err != nil {
		return nil, 0, err
	}
	out := []domain.Order{}
	for _, o := range all {
		if status == nil || o.PaymentStatus == *status {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

type fakePromoRepo struct {
	codes  map[string]*domain.PromoCode
	usages map[uuid.UUID]*domain.PromoCodeUsage
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{
		codes:  map[string]*domain.PromoCode{},
		usages: map[uuid.UUID]*domain.PromoCodeUsage{},
	}
}

func (f *fakePromoRepo) FindByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	p, ok := f.codes[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePromoRepo) ListAll(_ context.Context) ([]domain.PromoCode, error) {
	out := make([]domain.PromoCode, 0, len(f.codes))
	for _, p := range f.codes {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePromoRepo) Save(_ context.Context, p *domain.PromoCode) error {
	cp := *p
	f.codes[p.Code] = &cp
	return nil
}

func (f *fakePromoRepo) SaveUsage(_ context.Context, u *domain.PromoCodeUsage) error {
	cp := *u
	f.usages[u.OrderID] = &cp
	return nil
}

func (f *fakePromoRepo) FindUsageByOrder(_ context.Context, orderID uuid.UUID) (*domain.PromoCodeUsage, error) {
	u, ok := f.usages[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakePromoRepo) ListUsages(_ context.Context, code string) ([]domain.PromoCodeUsage, error) {
	out := []domain.PromoCodeUsage{}
	for _, u := range f.usages {
		if u.Code == code {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeMetricsRepo struct {
	metrics  domain.BusinessMetrics
	investor *domain.InvestorData
}

func (f *fakeMetricsRepo) Get(_ context.Context) (*domain.BusinessMetrics, error) {
	cp := f.metrics
	return &cp, nil
}

func (f *fakeMetricsRepo) Save(_ context.Context, m *domain.BusinessMetrics) error {
	f.metrics = *m
	return nil
}

func (f *fakeMetricsRepo) GetInvestor(_ context.Context) (*domain.InvestorData, error) {
	if f.investor == nil {
		return nil, domain.ErrNotFound
	}
	cp := *f.investor
	return &cp, nil
}

func (f *fakeMetricsRepo) SaveInvestor(_ context.Context, d *domain.InvestorData) error {
	cp := *d
	f.investor = &cp
	return nil
}

type fakeQRRepo struct {
	codes map[string]*domain.QRCode
}

func newFakeQRRepo() *fakeQRRepo { return &fakeQRRepo{codes: map[string]*domain.QRCode{}} }

func (f *fakeQRRepo) Save(_ context.Context, q *domain.QRCode) error {
	cp := *q
	f.codes[q.ID] = &cp
	return nil
}

func (f *fakeQRRepo) FindByID(_ context.Context, id string) (*domain.QRCode, error) {
	q, ok := f.codes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQRRepo) ListAll(_ context.Context) ([]domain.QRCode, error) {
	out := make([]domain.QRCode, 0, len(f.codes))
	for _, q := range f.codes {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQRRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.codes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.codes, id)
	return nil
}

func (f *fakeQRRepo) IncrementScans(_ context.Context, id string) error {
	q, ok := f.codes[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Scans++
	return nil
}

type fakeMailer struct {
	confirmations int
	admin         int
}

func (f *fakeMailer) SendOrderConfirmation(_ context.Context, _ *domain.Order) error {
	f.confirmations++
	return nil
}

func (f *fakeMailer) SendAdminNotification(_ context.Context, _ *domain.Order) error {
	f.admin++
	return nil
}

func (f *fakeMailer) SendTest(_ context.Context, _ string) error { return nil }
