package service

import (
	"math"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

const (
	tier1DiscountPoints = 0.2
	tier2FlatFee        = 0.1
)

type DiscountService struct {
	currencies *CurrencyService
}

func NewDiscountService(currencies *CurrencyService) *DiscountService {
	return &DiscountService{currencies: currencies}
}

// Tier classifies amount against the fee thresholds of currency. Tier3 is
// never returned here; it does not affect pricing.
func (s *DiscountService) Tier(amount float64, currency string) model.Tier {
	t := s.currencies.Thresholds(currency)
	switch {
	case amount > t.Tier2:
		return model.Tier2
	case amount > t.Tier1:
		return model.Tier1
	default:
		return model.TierNone
	}
}

func (s *DiscountService) CalculateDiscount(amount float64, currency string, baseFeePercentage float64) model.DiscountCalculation {
	tier := s.Tier(amount, currency)

	result := model.DiscountCalculation{
		Tier:                  tier,
		OriginalFeePercentage: round(baseFeePercentage, 4),
		FinalFeePercentage:    round(baseFeePercentage, 4),
	}

	switch tier {
	case model.Tier1:
		result.FinalFeePercentage = round(math.Max(0, baseFeePercentage-tier1DiscountPoints), 4)
	case model.Tier2:
		result.FinalFeePercentage = tier2FlatFee
	default:
		return result
	}

	result.HasDiscount = result.FinalFeePercentage < result.OriginalFeePercentage
	if result.HasDiscount {
		result.DiscountAmount = round(amount*(result.OriginalFeePercentage-result.FinalFeePercentage)/100, 2)
	}
	return result
}
