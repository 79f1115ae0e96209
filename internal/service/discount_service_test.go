package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

func TestDiscountService_CalculateDiscount(t *testing.T) {
	s := newTestServices(t).discounts

	tests := []struct {
		name       string
		amount     float64
		currency   string
		base       float64
		wantTier   model.Tier
		wantFinal  float64
		wantAmount float64
		wantHas    bool
	}{
		{"none below tier1", 25000, "USD", 0.31, model.TierNone, 0.31, 0, false},
		{"tier1 subtracts points", 30000, "USD", 0.5, model.Tier1, 0.3, 60, true},
		{"tier1 floors at zero", 30000, "USD", 0.15, model.Tier1, 0, 45, true},
		{"tier1 with zero base", 30000, "USD", 0, model.Tier1, 0, 0, false},
		{"tier2 is a flat fee", 2000000, "GBP", 1.74, model.Tier2, 0.1, 32800, true},
		{"tier2 below the flat fee is raised", 2000000, "GBP", 0.05, model.Tier2, 0.1, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.CalculateDiscount(tc.amount, tc.currency, tc.base)
			assert.Equal(t, tc.wantTier, got.Tier)
			assert.Equal(t, tc.base, got.OriginalFeePercentage)
			assert.Equal(t, tc.wantFinal, got.FinalFeePercentage)
			assert.Equal(t, tc.wantHas, got.HasDiscount)
			assert.Equal(t, tc.wantAmount, got.DiscountAmount)
		})
	}
}

func TestDiscountService_Tier(t *testing.T) {
	s := newTestServices(t).discounts

	assert.Equal(t, model.TierNone, s.Tier(0, "USD"))
	assert.Equal(t, model.TierNone, s.Tier(20000, "GBP"))
	assert.Equal(t, model.Tier1, s.Tier(20000.01, "GBP"))
	assert.Equal(t, model.Tier1, s.Tier(1000000, "GBP"))
	assert.Equal(t, model.Tier2, s.Tier(1000000.01, "GBP"))
}
