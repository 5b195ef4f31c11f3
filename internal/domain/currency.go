package domain

import "time"

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyRSD Currency = "RSD"
)

// RSDPerEUR is the fixed exchange rate used for every aggregation.
// All reporting figures are expressed in EUR.
const RSDPerEUR = 117.5

// ToEUR converts an amount in minor units (cents/para) to EUR.
func ToEUR(amountCents int64, currency Currency) float64 {
	amount := float64(amountCents) / 100.0
	if currency == CurrencyRSD {
		return amount / RSDPerEUR
	}
	return amount
}

// MonthsSince returns the number of whole calendar months between t and now,
// never less than 1. Operating costs accrue from the first month.
func MonthsSince(t, now time.Time) int {
	if t.IsZero() || !t.Before(now) {
		return 1
	}
	months := (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
	if now.Day() < t.Day() {
		months--
	}
	if months < 1 {
		return 1
	}
	return months
}
