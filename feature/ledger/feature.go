package ledger

import (
	"koin-ledger/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the ledger exporter into the feature loader.
type Feature struct {
	exporter *Exporter
	logger   *zap.Logger
}

// NewFeature creates the ledger feature.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Feature {
	return &Feature{
		exporter: NewExporter(db, client, bucket, logger),
		logger:   logger,
	}
}

// Name identifies the feature.
func (f *Feature) Name() string {
	return "ledger"
}

// IsEnabled reports whether the feature should be loaded.
// Exports need a storage client; without one the feature stays off.
func (f *Feature) IsEnabled() bool {
	return f.exporter.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.exporter, f.logger).RegisterRoutes(app)
	return nil
}

// Exporter exposes the underlying exporter for CLI use.
func (f *Feature) Exporter() *Exporter {
	return f.exporter
}
