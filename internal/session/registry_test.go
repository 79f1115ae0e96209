package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/anyulbade/transfer-calculator/internal/calculator"
	"github.com/anyulbade/transfer-calculator/internal/repository"
	"github.com/anyulbade/transfer-calculator/internal/service"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	currencies := service.NewCurrencyService(repository.NewStaticCatalogRepository())
	require.NoError(t, currencies.Reload(context.Background()))
	discounts := service.NewDiscountService(currencies)

	r := NewRegistry(calculator.Deps{
		Currencies: currencies,
		Fees:       service.NewFeeService(currencies, discounts),
		Errors:     service.NewErrorService(currencies),
	})
	t.Cleanup(r.CloseAll)
	return r
}

func TestRegistry_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)
	r := newTestRegistry(t)

	id, m, err := r.Create(calculator.Init{FromCurrency: "GBP"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "GBP", m.State().FromCurrency)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, m, got)

	require.NoError(t, r.Delete(id))
	assert.ErrorIs(t, m.SetFromAmount("1"), calculator.ErrClosed)

	_, err = r.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.Delete(id), ErrSessionNotFound)
}

func TestRegistry_CreateRejectsBadInit(t *testing.T) {
	r := newTestRegistry(t)
	_, _, err := r.Create(calculator.Init{ToCurrency: "NOPE"})
	assert.ErrorIs(t, err, service.ErrUnsupportedCurrency)
	assert.Zero(t, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	r := newTestRegistry(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	staleID, stale, err := r.Create(calculator.Init{})
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	freshID, _, err := r.Create(calculator.Init{})
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, r.Sweep(30*time.Minute))

	_, err = r.Get(staleID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, stale.Blur(), calculator.ErrClosed)

	_, err = r.Get(freshID)
	assert.NoError(t, err)
}
