package cmd

import (
	"context"
	"log"

	"koin-ledger/core/config"
	"koin-ledger/core/database"
	"koin-ledger/core/logger"
	"koin-ledger/core/storage"
	"koin-ledger/feature/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd snapshots the donation ledger to object storage.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the donation ledger as CSV to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		exporter := ledger.NewExporter(db, client, cfg.Storage.Bucket, logg)
		object, err := exporter.Export(context.Background())
		if err != nil {
			return err
		}

		logg.Info("Export finished", zap.String("object", object))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}
