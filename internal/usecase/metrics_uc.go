package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type MetricsUC struct {
	Metrics domain.MetricsRepo
	Orders  domain.OrderRepo
	Promos  domain.PromoRepo

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (uc *MetricsUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Recompute reads every order and promo code, recalculates the full report in
// EUR and overwrites the singleton row. On any query error it logs and
// returns nil; the dashboard renders its previous state or empty.
func (uc *MetricsUC) Recompute(ctx context.Context) (*domain.BusinessMetrics, error) {
	m, err := uc.Metrics.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("metrics: load inputs")
		return nil, err
	}
	orders, err := uc.Orders.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("metrics: list orders")
		return nil, err
	}
	promos, err := uc.Promos.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("metrics: list promo codes")
		return nil, err
	}

	discountByCode := make(map[string]int, len(promos))
	for _, p := range promos {
		discountByCode[p.Code] = p.Discount
	}

	gross := 0.0
	payouts := 0.0
	for _, o := range orders {
		amount := o.TotalEUR()
		gross += amount
		if o.PromoCode != nil {
			if discount, ok := discountByCode[*o.PromoCode]; ok {
				payouts += amount * float64(discount) / 100.0
			}
		}
	}

	net := gross - payouts
	costs := m.OperatingCosts * float64(domain.MonthsSince(m.InvestmentDate, uc.now()))
	profit := net - costs

	m.TotalOrders = len(orders)
	m.GrossRevenue = gross
	m.TotalAffiliatePayouts = payouts
	m.NetRevenue = net
	m.OperatingCostsToDate = costs
	m.Profit = profit
	m.InvestmentRecovered = profit >= m.InitialInvestment
	m.RemainingInvestment = m.InitialInvestment - profit
	if m.RemainingInvestment < 0 {
		m.RemainingInvestment = 0
	}
	if profit > 0 {
		m.InvestorReturns = profit * m.InvestorPercentage / 100.0
		m.CompanyProfit = profit - m.InvestorReturns
	} else {
		m.InvestorReturns = 0
		m.CompanyProfit = 0
	}

	if err := uc.Metrics.Save(ctx, m); err != nil {
		log.Error().Err(err).Msg("metrics: save")
		return nil, err
	}
	return m, nil
}

// SaveInputs updates the configured inputs and recomputes.
func (uc *MetricsUC) SaveInputs(ctx context.Context, initialInvestment, operatingCosts, investorPct, affiliatePct float64, investmentDate time.Time) (*domain.BusinessMetrics, error) {
	m, err := uc.Metrics.Get(ctx)
	if err != nil {
		return nil, err
	}
	m.InitialInvestment = initialInvestment
	m.OperatingCosts = operatingCosts
	m.InvestorPercentage = investorPct
	m.AffiliatePercentage = affiliatePct
	m.InvestmentDate = investmentDate
	if err := uc.Metrics.Save(ctx, m); err != nil {
		return nil, err
	}
	return uc.Recompute(ctx)
}

// InvestorReport pairs the investor record with a fresh recompute.
type InvestorReport struct {
	Investor *domain.InvestorData
	Metrics  *domain.BusinessMetrics
}

func (uc *MetricsUC) InvestorReport(ctx context.Context) (*InvestorReport, error) {
	m, err := uc.Recompute(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := uc.Metrics.GetInvestor(ctx)
	if err != nil && err != domain.ErrNotFound {
		log.Error().Err(err).Msg("metrics: load investor")
		return nil, err
	}
	return &InvestorReport{Investor: inv, Metrics: m}, nil
}

func (uc *MetricsUC) SaveInvestor(ctx context.Context, d *domain.InvestorData) error {
	return uc.Metrics.SaveInvestor(ctx, d)
}
