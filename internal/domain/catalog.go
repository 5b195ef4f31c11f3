package domain

// Product is a static catalog entry. The catalog is small and ships with the
// binary; only orders, reviews and usage events are persisted.
type Product struct {
	ID            string
	NameEN        string
	NameSR        string
	DescEN        string
	DescSR        string
	PriceEURCents int64
	PriceRSDCents int64
	Image         string
}

// Name returns the product name for a storefront language ("en" or "sr").
func (p Product) Name(lang string) string {
	if lang == "sr" && p.NameSR != "" {
		return p.NameSR
	}
	return p.NameEN
}

func (p Product) Desc(lang string) string {
	if lang == "sr" && p.DescSR != "" {
		return p.DescSR
	}
	return p.DescEN
}

// Price returns the unit price in minor units for the given currency.
func (p Product) Price(c Currency) int64 {
	if c == CurrencyRSD {
		return p.PriceRSDCents
	}
	return p.PriceEURCents
}

var Catalog = []Product{
	{
		ID:            "stripy-classic-30",
		NameEN:        "Stripy Classic — 30 pack",
		NameSR:        "Stripy Classic — pakovanje od 30",
		DescEN:        "Drug-free nasal strips that open your airways for easier breathing and quieter nights. One month supply.",
		DescSR:        "Nazalne trake bez lekova koje otvaraju disajne puteve za lakše disanje i mirnije noći. Zaliha za mesec dana.",
		PriceEURCents: 1499,
		PriceRSDCents: 176100,
		Image:         "/public/assets/img/stripy-classic.webp",
	},
	{
		ID:            "stripy-classic-90",
		NameEN:        "Stripy Classic — 90 pack",
		NameSR:        "Stripy Classic — pakovanje od 90",
		DescEN:        "Three month supply of Stripy Classic at a better price per strip.",
		DescSR:        "Zaliha Stripy Classic trake za tri meseca po boljoj ceni po traci.",
		PriceEURCents: 3599,
		PriceRSDCents: 422900,
		Image:         "/public/assets/img/stripy-classic-90.webp",
	},
	{
		ID:            "stripy-sport-30",
		NameEN:        "Stripy Sport — 30 pack",
		NameSR:        "Stripy Sport — pakovanje od 30",
		DescEN:        "Extra-hold strips built for training and competition. Stays on through sweat.",
		DescSR:        "Trake sa jačim prianjanjem za trening i takmičenje. Ostaju i kada se znojite.",
		PriceEURCents: 1799,
		PriceRSDCents: 211400,
		Image:         "/public/assets/img/stripy-sport.webp",
	},
}

// FindProduct returns the catalog entry with the given id, or nil.
func FindProduct(id string) *Product {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}
