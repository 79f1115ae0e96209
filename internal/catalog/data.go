package catalog

import (
	"sort"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

// Catalog is the reference data the pricing engine runs on.
type Catalog struct {
	Currencies []model.Currency   `json:"currencies"`
	Thresholds []model.Thresholds `json:"thresholds"`
}

// Rates are units of the currency per 1 USD.
var defaultRates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"BRL": 5.05,
	"MYR": 4.72,
	"AUD": 1.52,
	"JPY": 149.5,
	"SGD": 1.35,
	"PHP": 56.2,
	"CAD": 1.36,
	"INR": 83.2,
	"MXN": 17.1,
	"CHF": 0.88,
	"NZD": 1.64,
	"HKD": 7.82,
	"ZAR": 18.6,
}

var defaultThresholds = []model.Thresholds{
	{Currency: "USD", Tier1: 25000, Tier2: 1250000},
	{Currency: "GBP", Tier1: 20000, Tier2: 1000000, Tier3: 50000},
	{Currency: "EUR", Tier1: 23000, Tier2: 1150000},
}

// Default returns a fresh copy of the built-in tables, currencies sorted by code.
func Default() Catalog {
	currencies := make([]model.Currency, 0, len(defaultRates))
	for code, rate := range defaultRates {
		currencies = append(currencies, model.Currency{Code: code, Rate: rate})
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].Code < currencies[j].Code })

	thresholds := make([]model.Thresholds, len(defaultThresholds))
	copy(thresholds, defaultThresholds)

	return Catalog{Currencies: currencies, Thresholds: thresholds}
}
