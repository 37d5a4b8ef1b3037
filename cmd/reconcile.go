package cmd

import (
	"context"
	"log"

	"koin-ledger/core/config"
	"koin-ledger/core/database"
	"koin-ledger/core/feed"
	"koin-ledger/core/logger"
	"koin-ledger/feature/account"
	"koin-ledger/feature/deposit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd runs a single reconciliation pass for one user.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [userId]",
	Short: "Reconcile recent donations for a user",
	Long: `Fetches the recent donation feed, matches events against the user's
pending code or registered email, and credits any unseen orders.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := args[0]

		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		store := account.NewStore(db)
		if err := store.Migrate(context.Background()); err != nil {
			logg.Fatal("Failed to run migrations", zap.Error(err))
		}

		svc := deposit.NewService(store, feed.NewClient(cfg.Feed), logg, cfg.Feed)

		result, err := svc.Reconcile(context.Background(), userID)
		if err != nil {
			return err
		}

		logg.Info("Reconciliation finished",
			zap.String("user_id", userID),
			zap.Int64("credited_koin", result.CreditedKoin),
			zap.Int64("total_balance", result.TotalBalance),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
}
