package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/transfer-calculator/internal/catalog"
	"github.com/anyulbade/transfer-calculator/internal/model"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) Load(ctx context.Context) (catalog.Catalog, error) {
	g, gctx := errgroup.WithContext(ctx)

	var currencies []model.Currency
	var thresholds []model.Thresholds

	g.Go(func() error {
		var err error
		currencies, err = r.listCurrencies(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		thresholds, err = r.listThresholds(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return catalog.Catalog{}, err
	}

	return catalog.Catalog{Currencies: currencies, Thresholds: thresholds}, nil
}

func (r *CatalogRepository) listCurrencies(ctx context.Context) ([]model.Currency, error) {
	rows, err := r.pool.Query(ctx, `SELECT code, rate_per_usd FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query currencies: %w", err)
	}
	defer rows.Close()

	var results []model.Currency
	for rows.Next() {
		var c model.Currency
		if err := rows.Scan(&c.Code, &c.Rate); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (r *CatalogRepository) listThresholds(ctx context.Context) ([]model.Thresholds, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT currency_code, tier1, tier2, COALESCE(tier3, 0)
		FROM currency_thresholds ORDER BY currency_code`)
	if err != nil {
		return nil, fmt.Errorf("query thresholds: %w", err)
	}
	defer rows.Close()

	var results []model.Thresholds
	for rows.Next() {
		var t model.Thresholds
		if err := rows.Scan(&t.Currency, &t.Tier1, &t.Tier2, &t.Tier3); err != nil {
			return nil, fmt.Errorf("scan thresholds: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// StaticCatalogRepository serves the built-in tables.
type StaticCatalogRepository struct{}

func NewStaticCatalogRepository() *StaticCatalogRepository {
	return &StaticCatalogRepository{}
}

func (r *StaticCatalogRepository) Load(ctx context.Context) (catalog.Catalog, error) {
	return catalog.Default(), nil
}
