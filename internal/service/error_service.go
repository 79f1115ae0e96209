package service

import (
	"fmt"
	"math/rand"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

var expertCurrencies = map[string]bool{
	"AUD": true,
	"JPY": true,
	"SGD": true,
	"PHP": true,
}

var limitedCurrencies = map[string]string{
	"BRL": "Brazil",
	"MYR": "Malaysia",
}

// ErrorService maps amount-over-threshold situations to the messaging the
// calculator shows. None of these are failures.
type ErrorService struct {
	currencies *CurrencyService
	waitHours  func() int
}

func NewErrorService(currencies *CurrencyService) *ErrorService {
	return &ErrorService{
		currencies: currencies,
		waitHours:  func() int { return 2 + rand.Intn(4) },
	}
}

// WithWaitingHours overrides the source of the USD banner's waiting time.
func (s *ErrorService) WithWaitingHours(fn func() int) *ErrorService {
	s.waitHours = fn
	return s
}

func (s *ErrorService) DeriveErrorState(amount float64, currency string) model.ErrorState {
	t := s.currencies.Thresholds(currency)
	if amount <= t.Tier2 {
		return model.NoError()
	}

	if country, ok := limitedCurrencies[currency]; ok {
		return model.ErrorState{
			Type: model.ErrorBrazilMalaysiaLimit,
			Alert: &model.AlertConfig{
				Variant: "error",
				Title:   "This amount is over our limit",
				Message: fmt.Sprintf("Transfers from %s are limited to %s %.0f at a time.", country, currency, t.Tier2),
			},
			Message: &model.InlineMessage{
				Tone: "negative",
				Text: fmt.Sprintf("Enter %s %.0f or less to continue.", currency, t.Tier2),
			},
			HideCalculatorDetails: true,
		}
	}

	if currency == "USD" {
		hours := s.waitHours()
		return model.ErrorState{
			Type: model.ErrorUSDMarketHours,
			Alert: &model.AlertConfig{
				Variant:     "info",
				Title:       "Markets are closed right now",
				Message:     fmt.Sprintf("Large USD transfers are processed in market hours. Expect to wait about %d hours.", hours),
				Dismissible: true,
			},
			Message: &model.InlineMessage{
				Tone: "neutral",
				Text: fmt.Sprintf("We'll lock in your rate in about %d hours.", hours),
			},
			WaitingHours: hours,
		}
	}

	if expertCurrencies[currency] {
		return model.ErrorState{
			Type: model.ErrorTier2Overlay,
			Alert: &model.AlertConfig{
				Variant:     "warning",
				Title:       "Sending a large amount?",
				Message:     "Our specialists can help you get the most out of a large transfer.",
				Dismissible: true,
			},
			Message: &model.InlineMessage{
				Tone: "warning",
				Text: "Large transfers may need extra verification.",
			},
			Overlay: &model.OverlayConfig{
				Title:           "Talk to an expert",
				Body:            "For transfers this size a dedicated specialist will guide you through each step.",
				PrimaryAction:   "Book a call",
				SecondaryAction: "Continue on my own",
			},
		}
	}

	return model.NoError()
}
