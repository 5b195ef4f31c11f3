package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

func submitFixture() SubmitOrderRequest {
	return SubmitOrderRequest{
		Email:         "Ana@Example.com",
		Name:          "Ana",
		Address:       "Bulevar 1",
		City:          "Novi Sad",
		PostalCode:    "21000",
		Country:       "Serbia",
		Language:      "sr",
		Currency:      "RSD",
		PaymentMethod: "cod",
		Items: []SubmitItem{
			{ProductID: "stripy-classic-30", Quantity: 2},
			{ProductID: "stripy-sport-30", Quantity: 1},
		},
	}
}

func TestSubmitPricesFromCatalog(t *testing.T) {
	orders := newFakeOrderRepo()
	uc := &OrderUC{Orders: orders, Promos: &PromoUC{Promos: newFakePromoRepo()}}

	o, err := uc.Submit(context.Background(), submitFixture())
	if err != nil {
		t.Fatal(err)
	}
	want := int64(2*176100 + 211400)
	if o.TotalCents != want {
		t.Errorf("TotalCents = %d, want %d", o.TotalCents, want)
	}
	if o.Currency != domain.CurrencyRSD {
		t.Errorf("Currency = %s", o.Currency)
	}
	if o.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("PaymentStatus = %s", o.PaymentStatus)
	}
	if o.Email != "ana@example.com" {
		t.Errorf("Email = %q", o.Email)
	}
	if len(o.Items) != 2 {
		t.Fatalf("items = %d", len(o.Items))
	}
	if o.Items[0].ProductName != "Stripy Classic — pakovanje od 30" {
		t.Errorf("name snapshot = %q", o.Items[0].ProductName)
	}
	if _, ok := orders.orders[o.ID]; !ok {
		t.Error("order not persisted")
	}
}

func TestSubmitAppliesDiscount(t *testing.T) {
	orders := newFakeOrderRepo()
	promos := newFakePromoRepo()
	_ = promos.Save(context.Background(), &domain.PromoCode{Code: "STRIPY10", Discount: 10})
	uc := &OrderUC{Orders: orders, Promos: &PromoUC{Promos: promos}}

	req := submitFixture()
	req.Currency = "EUR"
	req.Items = []SubmitItem{{ProductID: "stripy-classic-30", Quantity: 1}}
	req.PromoCode = "stripy10"

	o, err := uc.Submit(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if o.TotalCents != 1349 { // 1499 * 90 / 100, truncated
		t.Errorf("TotalCents = %d, want 1349", o.TotalCents)
	}
	if o.PromoCode == nil || *o.PromoCode != "STRIPY10" {
		t.Errorf("PromoCode = %v", o.PromoCode)
	}
	if _, err := promos.FindUsageByOrder(context.Background(), o.ID); err != nil {
		t.Errorf("usage not tracked: %v", err)
	}
}

func TestSubmitUnknownPromoIsIgnored(t *testing.T) {
	orders := newFakeOrderRepo()
	uc := &OrderUC{Orders: orders, Promos: &PromoUC{Promos: newFakePromoRepo()}}

	req := submitFixture()
	req.PromoCode = "GHOST"
	o, err := uc.Submit(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if o.PromoCode != nil {
		t.Errorf("PromoCode = %v, want nil", o.PromoCode)
	}
}

func TestSubmitUnknownProduct(t *testing.T) {
	uc := &OrderUC{Orders: newFakeOrderRepo(), Promos: &PromoUC{Promos: newFakePromoRepo()}}
	req := submitFixture()
	req.Items = []SubmitItem{{ProductID: "mystery", Quantity: 1}}
	if _, err := uc.Submit(context.Background(), req); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("got %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	uc := &OrderUC{Orders: newFakeOrderRepo(), Promos: &PromoUC{Promos: newFakePromoRepo()}}
	cases := []struct {
		name string
		mut  func(*SubmitOrderRequest)
	}{
		{"missing email", func(r *SubmitOrderRequest) { r.Email = "" }},
		{"bad email", func(r *SubmitOrderRequest) { r.Email = "not-an-email" }},
		{"bad currency", func(r *SubmitOrderRequest) { r.Currency = "USD" }},
		{"bad payment method", func(r *SubmitOrderRequest) { r.PaymentMethod = "crypto" }},
		{"no items", func(r *SubmitOrderRequest) { r.Items = nil }},
		{"zero quantity", func(r *SubmitOrderRequest) { r.Items[0].Quantity = 0 }},
	}
	for _, c := range cases {
		req := submitFixture()
		c.mut(&req)
		if _, err := uc.Submit(context.Background(), req); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestNotifySendsBothEmails(t *testing.T) {
	m := &fakeMailer{}
	uc := &OrderUC{Orders: newFakeOrderRepo(), Promos: &PromoUC{Promos: newFakePromoRepo()}, Mailer: m}
	uc.notify(&domain.Order{})
	if m.confirmations != 1 || m.admin != 1 {
		t.Errorf("confirmations = %d, admin = %d", m.confirmations, m.admin)
	}

	// A nil mailer is a no-op, not a panic.
	uc.Mailer = nil
	uc.notify(&domain.Order{})
}

func TestHandleWebhook(t *testing.T) {
	orders := newFakeOrderRepo()
	promos := newFakePromoRepo()
	_ = promos.Save(context.Background(), &domain.PromoCode{Code: "STRIPY10", Discount: 10})
	uc := &OrderUC{Orders: orders, Promos: &PromoUC{Promos: promos}}

	req := submitFixture()
	req.Currency = "EUR"
	req.Items = []SubmitItem{{ProductID: "stripy-classic-90", Quantity: 1}}
	req.PromoCode = "STRIPY10"
	o, err := uc.Submit(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	updated, err := uc.HandleWebhook(context.Background(), o.ID, domain.PaymentStatusPaid)
	if err != nil {
		t.Fatal(err)
	}
	if updated.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("status = %s", updated.PaymentStatus)
	}
	if !updated.Notified {
		t.Error("expected notified flag set")
	}

	u, err := promos.FindUsageByOrder(context.Background(), o.ID)
	if err != nil {
		t.Fatal(err)
	}
	// 3599 * 90 / 100 = 3239 cents total, 10% of that.
	if u.EarningsCents != 324 {
		t.Errorf("EarningsCents = %d, want 324", u.EarningsCents)
	}

	if _, err := uc.HandleWebhook(context.Background(), o.ID, domain.PaymentStatusRefunded); err != nil {
		t.Fatal(err)
	}
	got, _ := orders.FindByID(context.Background(), o.ID)
	if got.PaymentStatus != domain.PaymentStatusRefunded {
		t.Errorf("status after refund = %s", got.PaymentStatus)
	}
}
