package domain

import (
	"math"
	"testing"
	"time"
)

func TestToEUR(t *testing.T) {
	if got := ToEUR(1499, CurrencyEUR); got != 14.99 {
		t.Errorf("EUR passthrough: got %v", got)
	}
	got := ToEUR(176100, CurrencyRSD)
	if math.Abs(got-1761.0/117.5) > 1e-9 {
		t.Errorf("RSD conversion: got %v", got)
	}
	if got := ToEUR(0, CurrencyRSD); got != 0 {
		t.Errorf("zero amount: got %v", got)
	}
}

func TestMonthsSince(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		from time.Time
		want int
	}{
		{"zero date", time.Time{}, 1},
		{"future date", now.AddDate(0, 1, 0), 1},
		{"same month", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 1},
		{"one full month", time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), 1},
		{"day not yet reached", time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), 1},
		{"two full months", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), 2},
		{"a year ago", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 12},
	}
	for _, c := range cases {
		if got := MonthsSince(c.from, now); got != c.want {
			t.Errorf("%s: got %d, want %d", c.name, got, c.want)
		}
	}
}

func TestOrderTotalEUR(t *testing.T) {
	o := &Order{TotalCents: 235000, Currency: CurrencyRSD}
	if got := o.TotalEUR(); math.Abs(got-20.0) > 1e-9 {
		t.Errorf("got %v, want 20", got)
	}
}

func TestFindProduct(t *testing.T) {
	if p := FindProduct("stripy-classic-30"); p == nil || p.PriceEURCents != 1499 {
		t.Fatalf("catalog lookup failed: %+v", p)
	}
	if p := FindProduct("nope"); p != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestProductLocalization(t *testing.T) {
	p := FindProduct("stripy-sport-30")
	if p.Name("sr") == p.Name("en") {
		t.Error("expected distinct Serbian name")
	}
	if p.Name("de") != p.NameEN {
		t.Error("unknown language should fall back to English")
	}
	if p.Price(CurrencyRSD) != p.PriceRSDCents || p.Price(CurrencyEUR) != p.PriceEURCents {
		t.Error("price by currency mismatch")
	}
}
