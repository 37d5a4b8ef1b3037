package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"koin-ledger/core/config"
	"koin-ledger/core/database"
	"koin-ledger/core/feed"
	"koin-ledger/core/loader"
	"koin-ledger/core/logger"
	"koin-ledger/core/middleware/auth"
	"koin-ledger/core/middleware/rayid"
	"koin-ledger/core/storage"

	"koin-ledger/feature/account"
	"koin-ledger/feature/deposit"
	"koin-ledger/feature/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "koin-ledger/docs/swagger"
)

// @title Koin Ledger API
// @version 1.0
// @description API for crediting koin from donation platform payments.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the koin ledger server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		// The dedup ledger lives here, so unlike storage this is not optional.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		store := account.NewStore(db)
		if err := store.Migrate(context.Background()); err != nil {
			logg.Fatal("Failed to run migrations", zap.Error(err))
		}

		// 4. Initialize Feed Client
		feedClient := feed.NewClient(cfg.Feed)

		// 5. Initialize Storage (Optional)
		// Only the ledger export feature needs it.
		storageClient, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Optional storage client failed, ledger exports disabled", zap.Error(err))
			storageClient = nil
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(deposit.NewFeature(store, feedClient, logg, cfg.Feed))
		mgr.Register(ledger.NewFeature(db, storageClient, cfg.Storage.Bucket, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
