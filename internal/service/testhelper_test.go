package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anyulbade/transfer-calculator/internal/catalog"
	"github.com/anyulbade/transfer-calculator/internal/repository"
)

type stubLoader struct {
	catalog catalog.Catalog
	err     error
}

func (s stubLoader) Load(ctx context.Context) (catalog.Catalog, error) {
	return s.catalog, s.err
}

type testServices struct {
	currencies *CurrencyService
	discounts  *DiscountService
	fees       *FeeService
	errors     *ErrorService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	currencies := NewCurrencyService(repository.NewStaticCatalogRepository())
	require.NoError(t, currencies.Reload(context.Background()))
	discounts := NewDiscountService(currencies)

	return testServices{
		currencies: currencies,
		discounts:  discounts,
		fees:       NewFeeService(currencies, discounts),
		errors:     NewErrorService(currencies).WithWaitingHours(func() int { return 3 }),
	}
}
