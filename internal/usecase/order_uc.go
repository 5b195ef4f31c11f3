package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

var validate = validator.New()

type OrderUC struct {
	Orders domain.OrderRepo
	Promos *PromoUC
	Mailer domain.Mailer
}

type SubmitItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

type SubmitOrderRequest struct {
	Email         string       `json:"email" validate:"required,email"`
	Name          string       `json:"name" validate:"required,max=140"`
	Phone         string       `json:"phone" validate:"max=50"`
	Address       string       `json:"address" validate:"required,max=255"`
	City          string       `json:"city" validate:"required,max=100"`
	PostalCode    string       `json:"postal_code" validate:"required,max=20"`
	Country       string       `json:"country" validate:"required,max=80"`
	Language      string       `json:"language" validate:"omitempty,oneof=en sr"`
	Currency      string       `json:"currency" validate:"required,oneof=EUR RSD"`
	PaymentMethod string       `json:"payment_method" validate:"required,oneof=card cod"`
	PromoCode     string       `json:"promo_code" validate:"omitempty,max=40"`
	Items         []SubmitItem `json:"items" validate:"required,min=1,dive"`
}

var ErrUnknownProduct = errors.New("unknown product")

// Submit validates the checkout form, prices the items from the catalog,
// applies the promo discount and persists order plus items in one
// transaction. Confirmation emails are fired after success and never block
// or fail the order.
func (uc *OrderUC) Submit(ctx context.Context, req SubmitOrderRequest) (*domain.Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	currency := domain.Currency(req.Currency)
	lang := req.Language
	if lang == "" {
		lang = "en"
	}

	o := &domain.Order{
		ID:            uuid.New(),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Country:       strings.TrimSpace(req.Country),
		Language:      lang,
		Currency:      currency,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
	}

	total := int64(0)
	for _, it := range req.Items {
		p := domain.FindProduct(it.ProductID)
		if p == nil {
			return nil, ErrUnknownProduct
		}
		unit := p.Price(currency)
		o.Items = append(o.Items, domain.OrderItem{
			ID:             uuid.New(),
			OrderID:        o.ID,
			ProductID:      p.ID,
			ProductName:    p.Name(lang),
			Quantity:       it.Quantity,
			UnitPriceCents: unit,
			Currency:       currency,
		})
		total += unit * int64(it.Quantity)
	}

	var promo *domain.PromoCode
	if req.PromoCode != "" {
		p, err := uc.Promos.Validate(ctx, req.PromoCode)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if p != nil {
			promo = p
			total = total * int64(100-p.Discount) / 100
			code := p.Code
			o.PromoCode = &code
		}
	}
	o.TotalCents = total

	if err := uc.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if promo != nil {
		if err := uc.Promos.TrackUsage(ctx, promo.Code, o.ID); err != nil {
			log.Error().Err(err).Str("code", promo.Code).Str("order_id", o.ID.String()).Msg("track promo usage")
		}
	}

	go uc.notify(o)
	return o, nil
}

// notify sends both emails best-effort; individual failures are logged and
// swallowed so order success never depends on delivery.
func (uc *OrderUC) notify(o *domain.Order) {
	if uc.Mailer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := uc.Mailer.SendOrderConfirmation(ctx, o); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID.String()).Msg("customer confirmation email")
	}
	if err := uc.Mailer.SendAdminNotification(ctx, o); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID.String()).Msg("admin notification email")
	}
}

// HandleWebhook applies a payment status update. A paid order has its promo
// usage earnings recomputed and triggers the notification emails once.
func (uc *OrderUC) HandleWebhook(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) (*domain.Order, error) {
	o, err := uc.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.PaymentStatus = status

	notifyNow := false
	if status == domain.PaymentStatusPaid && !o.Notified {
		o.Notified = true
		notifyNow = true
	}
	if err := uc.Orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if o.PromoCode != nil {
		if err := uc.Promos.UpdateEarnings(ctx, o); err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Str("order_id", o.ID.String()).Msg("update promo earnings")
		}
	}
	if notifyNow {
		go uc.notify(o)
	}
	return o, nil
}
