// Command feecalc prices transfers from the terminal using the same engine
// as the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anyulbade/transfer-calculator/internal/database"
	"github.com/anyulbade/transfer-calculator/internal/dto"
	"github.com/anyulbade/transfer-calculator/internal/repository"
	"github.com/anyulbade/transfer-calculator/internal/service"
)

type engine struct {
	currencies *service.CurrencyService
	discounts  *service.DiscountService
	fees       *service.FeeService
	errors     *service.ErrorService
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		databaseURL string
		verbose     bool
		eng         engine
	)

	root := &cobra.Command{
		Use:          "feecalc",
		Short:        "Price transfers and convert amounts",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			e, err := loadEngine(cmd.Context(), databaseURL)
			if err != nil {
				return err
			}
			eng = e
			return nil
		},
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", "", "load rates from postgres instead of the built-in catalog")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newQuoteCmd(&eng),
		newConvertCmd(&eng),
		newRatesCmd(&eng),
		newErrorStateCmd(&eng),
	)
	return root
}

func loadEngine(ctx context.Context, databaseURL string) (engine, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var loader service.CatalogLoader = repository.NewStaticCatalogRepository()
	if databaseURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := database.NewPool(dbCtx, databaseURL)
		if err != nil {
			return engine{}, err
		}
		defer pool.Close()

		ctx = dbCtx
		loader = repository.NewCatalogRepository(pool)
	}

	currencies := service.NewCurrencyService(loader)
	if err := currencies.Reload(ctx); err != nil {
		return engine{}, err
	}
	return newEngine(currencies), nil
}

func newEngine(currencies *service.CurrencyService) engine {
	discounts := service.NewDiscountService(currencies)
	return engine{
		currencies: currencies,
		discounts:  discounts,
		fees:       service.NewFeeService(currencies, discounts),
		errors:     service.NewErrorService(currencies),
	}
}

func (e *engine) requireSupported(codes ...string) error {
	for _, code := range codes {
		if !e.currencies.Supported(code) {
			return fmt.Errorf("%w: %s", service.ErrUnsupportedCurrency, code)
		}
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newQuoteCmd(eng *engine) *cobra.Command {
	var (
		amount float64
		from   string
		method string
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show the fee breakdown for a transfer",
		Example: `  feecalc quote --amount 30000 --from USD
  feecalc quote --amount 500 --from GBP --method debit_card`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, eng.fees.CalculateFees(amount, from, method))
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 1000, "amount in the source currency")
	cmd.Flags().StringVar(&from, "from", "USD", "source currency")
	cmd.Flags().StringVar(&method, "method", "", "payment method id")
	return cmd
}

func newConvertCmd(eng *engine) *cobra.Command {
	var (
		amount   float64
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount between currencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			converted, err := eng.currencies.ConvertCurrency(amount, from, to)
			if err != nil {
				return err
			}
			rate, _ := eng.currencies.GetExchangeRate(from, to)
			return printJSON(cmd, dto.ConversionResponse{
				Amount:          amount,
				FromCurrency:    from,
				ToCurrency:      to,
				ConvertedAmount: converted,
				Rate:            rate,
				FormattedRate:   service.FormatExchangeRate(rate),
			})
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 1000, "amount in the source currency")
	cmd.Flags().StringVar(&from, "from", "USD", "source currency")
	cmd.Flags().StringVar(&to, "to", "EUR", "target currency")
	return cmd
}

func newRatesCmd(eng *engine) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "List every supported currency against a base",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := eng.requireSupported(base); err != nil {
				return err
			}
			var out []dto.ExchangeRateResponse
			for _, c := range eng.currencies.Currencies() {
				rate, err := eng.currencies.GetExchangeRate(base, c.Code)
				if err != nil {
					return err
				}
				out = append(out, dto.ExchangeRateResponse{
					From:      base,
					To:        c.Code,
					Rate:      rate,
					Formatted: service.FormatExchangeRate(rate),
				})
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&base, "base", "USD", "base currency")
	return cmd
}

func newErrorStateCmd(eng *engine) *cobra.Command {
	var (
		amount   float64
		currency string
	)
	cmd := &cobra.Command{
		Use:   "error-state",
		Short: "Show the messaging a large amount triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, eng.errors.DeriveErrorState(amount, currency))
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 1000, "amount in the source currency")
	cmd.Flags().StringVar(&currency, "currency", "USD", "source currency")
	return cmd
}
