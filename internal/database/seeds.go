package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/transfer-calculator/internal/catalog"
)

// SeedData writes the built-in catalog. Existing rows are left untouched so
// edited rates survive a restart.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	c := catalog.Default()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, cur := range c.Currencies {
		batch.Queue(
			`INSERT INTO currencies (code, rate_per_usd) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
			cur.Code, cur.Rate)
	}
	for _, t := range c.Thresholds {
		var tier3 *float64
		if t.Tier3 > 0 {
			v := t.Tier3
			tier3 = &v
		}
		batch.Queue(
			`INSERT INTO currency_thresholds (currency_code, tier1, tier2, tier3) VALUES ($1, $2, $3, $4)
			ON CONFLICT (currency_code) DO NOTHING`,
			t.Currency, t.Tier1, t.Tier2, tier3)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	log.Info().
		Int("currencies", len(c.Currencies)).
		Int("thresholds", len(c.Thresholds)).
		Msg("catalog seeded")
	return nil
}
