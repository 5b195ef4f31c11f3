package domain

import "time"

// BusinessMetrics is a singleton row: configured inputs plus the derived
// figures of the last recompute. Derived amounts are EUR.
type BusinessMetrics struct {
	ID uint `gorm:"primaryKey"`

	// Configured inputs.
	InitialInvestment   float64   `gorm:"type:decimal(12,2);default:0"`
	InvestmentDate      time.Time
	OperatingCosts      float64 `gorm:"type:decimal(12,2);default:0"` // per month
	InvestorPercentage  float64 `gorm:"type:decimal(5,2);default:0"`
	AffiliatePercentage float64 `gorm:"type:decimal(5,2);default:0"`

	// Derived, overwritten on every recompute.
	TotalOrders           int     `gorm:"default:0"`
	GrossRevenue          float64 `gorm:"type:decimal(12,2);default:0"`
	TotalAffiliatePayouts float64 `gorm:"type:decimal(12,2);default:0"`
	NetRevenue            float64 `gorm:"type:decimal(12,2);default:0"`
	OperatingCostsToDate  float64 `gorm:"type:decimal(12,2);default:0"`
	Profit                float64 `gorm:"type:decimal(12,2);default:0"`
	InvestmentRecovered   bool    `gorm:"default:false"`
	RemainingInvestment   float64 `gorm:"type:decimal(12,2);default:0"`
	InvestorReturns       float64 `gorm:"type:decimal(12,2);default:0"`
	CompanyProfit         float64 `gorm:"type:decimal(12,2);default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvestorData struct {
	ID                  uint      `gorm:"primaryKey"`
	InvestorName        string    `gorm:"size:140"`
	InitialInvestment   float64   `gorm:"type:decimal(12,2);default:0"`
	InvestmentDate      time.Time
	OwnershipPercentage float64 `gorm:"type:decimal(5,2);default:0"`
	ReturnPerOrder      float64 `gorm:"type:decimal(12,2);default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
