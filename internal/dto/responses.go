package dto

import "github.com/anyulbade/transfer-calculator/internal/calculator"

type ExchangeRateResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Formatted string  `json:"formatted"`
}

type ConversionResponse struct {
	Amount          float64 `json:"amount"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	ConvertedAmount float64 `json:"converted_amount"`
	Rate            float64 `json:"rate"`
	FormattedRate   string  `json:"formatted_rate"`
}

type SessionResponse struct {
	ID    string           `json:"id"`
	State calculator.State `json:"state"`
}
