package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func metricsFixture(t *testing.T) (*MetricsUC, *fakeOrderRepo, *fakePromoRepo, *fakeMetricsRepo) {
	t.Helper()
	orders := newFakeOrderRepo()
	promos := newFakePromoRepo()
	metrics := &fakeMetricsRepo{}
	uc := &MetricsUC{
		Metrics: metrics,
		Orders:  orders,
		Promos:  promos,
		Now:     func() time.Time { return time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC) },
	}
	return uc, orders, promos, metrics
}

func addOrder(orders *fakeOrderRepo, totalCents int64, c domain.Currency, promo string) {
	o := &domain.Order{ID: uuid.New(), TotalCents: totalCents, Currency: c, PaymentStatus: domain.PaymentStatusPaid}
	if promo != "" {
		o.PromoCode = &promo
	}
	_ = orders.Create(context.Background(), o)
}

func TestRecomputeFullReport(t *testing.T) {
	uc, orders, promos, metrics := metricsFixture(t)
	metrics.metrics = domain.BusinessMetrics{
		InitialInvestment:  500,
		OperatingCosts:     100,
		InvestorPercentage: 15,
		// Two whole months before Now.
		InvestmentDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	_ = promos.Save(context.Background(), &domain.PromoCode{Code: "MILICA25", Discount: 25})

	// 600 EUR direct, 400 EUR via a 25% code, so payouts are 100.
	addOrder(orders, 60000, domain.CurrencyEUR, "")
	addOrder(orders, 40000, domain.CurrencyEUR, "MILICA25")

	m, err := uc.Recompute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d", m.TotalOrders)
	}
	if !almostEqual(m.GrossRevenue, 1000) {
		t.Errorf("GrossRevenue = %v", m.GrossRevenue)
	}
	if !almostEqual(m.TotalAffiliatePayouts, 100) {
		t.Errorf("TotalAffiliatePayouts = %v", m.TotalAffiliatePayouts)
	}
	if !almostEqual(m.NetRevenue, 900) {
		t.Errorf("NetRevenue = %v", m.NetRevenue)
	}
	if !almostEqual(m.OperatingCostsToDate, 200) {
		t.Errorf("OperatingCostsToDate = %v", m.OperatingCostsToDate)
	}
	if !almostEqual(m.Profit, 700) {
		t.Errorf("Profit = %v", m.Profit)
	}
	if !m.InvestmentRecovered {
		t.Error("expected investment recovered at profit 700 >= 500")
	}
	if !almostEqual(m.RemainingInvestment, 0) {
		t.Errorf("RemainingInvestment = %v", m.RemainingInvestment)
	}
	if !almostEqual(m.InvestorReturns, 105) {
		t.Errorf("InvestorReturns = %v", m.InvestorReturns)
	}
	if !almostEqual(m.CompanyProfit, 595) {
		t.Errorf("CompanyProfit = %v", m.CompanyProfit)
	}
	// Recompute persists.
	if !almostEqual(metrics.metrics.Profit, 700) {
		t.Errorf("persisted Profit = %v", metrics.metrics.Profit)
	}
}

func TestRecomputeMixedCurrencies(t *testing.T) {
	uc, orders, _, _ := metricsFixture(t)
	addOrder(orders, 10000, domain.CurrencyEUR, "")
	addOrder(orders, 1175000, domain.CurrencyRSD, "") // 11750 RSD = 100 EUR

	m, err := uc.Recompute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(m.GrossRevenue, 200) {
		t.Errorf("GrossRevenue = %v, want 200", m.GrossRevenue)
	}
}

func TestRecomputeNegativeProfit(t *testing.T) {
	uc, orders, _, metrics := metricsFixture(t)
	metrics.metrics = domain.BusinessMetrics{
		InitialInvestment:  1000,
		OperatingCosts:     500,
		InvestorPercentage: 20,
		InvestmentDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	addOrder(orders, 10000, domain.CurrencyEUR, "")

	m, err := uc.Recompute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if m.Profit >= 0 {
		t.Fatalf("expected negative profit, got %v", m.Profit)
	}
	if m.InvestorReturns != 0 || m.CompanyProfit != 0 {
		t.Errorf("no split on non-positive profit: %v / %v", m.InvestorReturns, m.CompanyProfit)
	}
	if m.InvestmentRecovered {
		t.Error("investment cannot be recovered at a loss")
	}
	if !almostEqual(m.RemainingInvestment, 1000-m.Profit) {
		t.Errorf("RemainingInvestment = %v", m.RemainingInvestment)
	}
}

func TestRecomputeIgnoresDeletedCode(t *testing.T) {
	uc, orders, _, _ := metricsFixture(t)
	// The code was removed after the order; its payout no longer counts.
	addOrder(orders, 20000, domain.CurrencyEUR, "GONE")

	m, err := uc.Recompute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(m.TotalAffiliatePayouts, 0) {
		t.Errorf("TotalAffiliatePayouts = %v, want 0", m.TotalAffiliatePayouts)
	}
}

func TestSaveInputsRecomputes(t *testing.T) {
	uc, orders, _, metrics := metricsFixture(t)
	addOrder(orders, 100000, domain.CurrencyEUR, "")

	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	m, err := uc.SaveInputs(context.Background(), 300, 50, 10, 10, date)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(m.OperatingCostsToDate, 150) { // three whole months at 50
		t.Errorf("OperatingCostsToDate = %v", m.OperatingCostsToDate)
	}
	if !metrics.metrics.InvestmentDate.Equal(date) {
		t.Error("inputs not persisted")
	}
}

func TestInvestorReportWithoutInvestor(t *testing.T) {
	uc, _, _, _ := metricsFixture(t)
	rep, err := uc.InvestorReport(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Investor != nil {
		t.Error("expected nil investor when none configured")
	}
	if rep.Metrics == nil {
		t.Error("expected metrics even without investor")
	}
}
