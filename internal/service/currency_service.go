package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/transfer-calculator/internal/catalog"
	"github.com/anyulbade/transfer-calculator/internal/model"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

type CatalogLoader interface {
	Load(ctx context.Context) (catalog.Catalog, error)
}

// CurrencyService holds the current rate and threshold tables. Reads are
// served from an in-memory snapshot that Reload swaps atomically.
type CurrencyService struct {
	loader CatalogLoader

	mu         sync.RWMutex
	rates      map[string]float64
	thresholds map[string]model.Thresholds
}

func NewCurrencyService(loader CatalogLoader) *CurrencyService {
	s := &CurrencyService{loader: loader}
	s.apply(catalog.Default())
	return s
}

// Reload replaces the snapshot with whatever the loader returns. An empty
// currency list is rejected so a half-seeded table never wipes the rates.
func (s *CurrencyService) Reload(ctx context.Context) error {
	c, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if len(c.Currencies) == 0 {
		return errors.New("load catalog: no currencies")
	}

	s.apply(c)
	log.Info().
		Int("currencies", len(c.Currencies)).
		Int("thresholds", len(c.Thresholds)).
		Msg("currency catalog loaded")
	return nil
}

func (s *CurrencyService) apply(c catalog.Catalog) {
	rates := make(map[string]float64, len(c.Currencies))
	for _, cur := range c.Currencies {
		rates[cur.Code] = cur.Rate
	}
	thresholds := make(map[string]model.Thresholds, len(c.Thresholds))
	for _, t := range c.Thresholds {
		thresholds[t.Currency] = t
	}

	s.mu.Lock()
	s.rates = rates
	s.thresholds = thresholds
	s.mu.Unlock()
}

func (s *CurrencyService) Currencies() []model.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Currency, 0, len(s.rates))
	for code, rate := range s.rates {
		out = append(out, model.Currency{Code: code, Rate: rate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (s *CurrencyService) Supported(code string) bool {
	_, err := s.rate(code)
	return err == nil
}

func (s *CurrencyService) rate(code string) (float64, error) {
	s.mu.RLock()
	rate, ok := s.rates[code]
	s.mu.RUnlock()
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	return rate, nil
}

// ConvertCurrency pivots through USD: amount / fromRate * toRate.
func (s *CurrencyService) ConvertCurrency(amount float64, from, to string) (float64, error) {
	fromRate, err := s.rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := s.rate(to)
	if err != nil {
		return 0, err
	}
	if from == to {
		return amount, nil
	}
	return amount / fromRate * toRate, nil
}

func (s *CurrencyService) GetExchangeRate(from, to string) (float64, error) {
	return s.ConvertCurrency(1, from, to)
}

// Thresholds returns the explicit entry for code, or the USD thresholds
// scaled by the currency's rate. Unknown codes scale by 1.
func (s *CurrencyService) Thresholds(code string) model.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.thresholds[code]; ok {
		return t
	}

	usd, ok := s.thresholds["USD"]
	if !ok {
		usd = model.Thresholds{Tier1: 25000, Tier2: 1250000}
	}
	rate, ok := s.rates[code]
	if !ok || rate <= 0 {
		rate = 1
	}
	return model.Thresholds{
		Currency: code,
		Tier1:    usd.Tier1 * rate,
		Tier2:    usd.Tier2 * rate,
	}
}

// FormatExchangeRate rounds for display: 4 decimals below 1, 3 below 10, else 2.
func FormatExchangeRate(rate float64) string {
	switch {
	case rate < 1:
		return strconv.FormatFloat(rate, 'f', 4, 64)
	case rate < 10:
		return strconv.FormatFloat(rate, 'f', 3, 64)
	default:
		return strconv.FormatFloat(rate, 'f', 2, 64)
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
