package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/transfer-calculator/internal/dto"
	"github.com/anyulbade/transfer-calculator/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCmd(t *testing.T) {
	t.Run("tier1 USD", func(t *testing.T) {
		out, err := run(t, "quote", "--amount", "30000", "--from", "USD")
		require.NoError(t, err)

		var fc model.FeeCalculation
		require.NoError(t, json.Unmarshal([]byte(out), &fc))
		assert.Equal(t, model.Tier1, fc.Tier)
		assert.InDelta(t, 0.01, fc.FeePercentage, 1e-9)
	})

	t.Run("unknown currency is priced with the fallback", func(t *testing.T) {
		out, err := run(t, "quote", "--amount", "1000", "--from", "XXX")
		require.NoError(t, err)

		var fc model.FeeCalculation
		require.NoError(t, json.Unmarshal([]byte(out), &fc))
		assert.Equal(t, model.TierNone, fc.Tier)
		assert.InDelta(t, 0.60, fc.FeePercentage, 1e-9)
	})

	t.Run("rates reject an unknown base", func(t *testing.T) {
		_, err := run(t, "rates", "--base", "XXX")
		assert.Error(t, err)
	})
}

func TestConvertCmd(t *testing.T) {
	out, err := run(t, "convert", "--amount", "100", "--from", "USD", "--to", "JPY")
	require.NoError(t, err)

	var resp dto.ConversionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.InDelta(t, 14950.0, resp.ConvertedAmount, 1e-6)
	assert.Equal(t, "149.50", resp.FormattedRate)
}

func TestRatesCmd(t *testing.T) {
	out, err := run(t, "rates", "--base", "EUR")
	require.NoError(t, err)

	var rates []dto.ExchangeRateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &rates))
	assert.Len(t, rates, 16)
	for _, r := range rates {
		assert.Equal(t, "EUR", r.From)
		if r.To == "EUR" {
			assert.Equal(t, "1.000", r.Formatted)
		}
	}
}

func TestErrorStateCmd(t *testing.T) {
	out, err := run(t, "error-state", "--amount", "7000000", "--currency", "MYR")
	require.NoError(t, err)

	var es model.ErrorState
	require.NoError(t, json.Unmarshal([]byte(out), &es))
	assert.Equal(t, model.ErrorBrazilMalaysiaLimit, es.Type)
	assert.True(t, es.HideCalculatorDetails)
}
