package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"teambudget/internal/auditlog"
	"teambudget/internal/budget"
	"teambudget/internal/cli"
	"teambudget/internal/config"
	"teambudget/internal/database"
	"teambudget/internal/product"
	"teambudget/internal/purchase"
	"teambudget/internal/spend"
	"teambudget/internal/team"
	"teambudget/internal/transaction"
	"teambudget/internal/user"
)

var rootCmd = &cobra.Command{
	Use:   "teambudget",
	Short: "Terminal budget tracker for teams",
	Long: `teambudget is a terminal-driven budget tracker. Running it without a
subcommand starts the interactive login flow; the setup subcommand manages the
schema and mock data.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	_, db, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	pool := db.Pool()
	teams := team.NewRepository(pool)
	users := user.NewRepository(pool)
	products := product.NewRepository(pool)
	budgets := budget.NewRepository(pool)
	transactions := transaction.NewRepository(pool)
	logs := auditlog.NewRepository(pool)

	purchaser := purchase.NewService(budgets, transactions, logs)

	app := cli.NewApp(cli.Deps{
		Teams:        teams,
		Users:        users,
		Products:     products,
		Budgets:      budget.NewService(budgets, logs),
		Transactions: transactions,
		Logs:         logs,
		Purchaser:    purchaser,
		Planner:      spend.NewPlanner(budgets, products, users, purchaser),
	})

	return app.Run(cmd.Context())
}

// bootstrap loads configuration, configures logging, and opens the storage
// handle. The caller owns the returned DB and must Close it.
func bootstrap(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	setupLogger(cfg.LogLevel)

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to storage: %w", err)
	}

	return cfg, db, nil
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
