package deposit

import (
	"koin-ledger/core/feed"
	"koin-ledger/feature/account"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the deposit service and handler into the feature loader.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the deposit feature.
func NewFeature(store account.Store, client feed.Client, logger *zap.Logger, cfg feed.Config) *Feature {
	return &Feature{
		service: NewService(store, client, logger, cfg),
		logger:  logger,
	}
}

// Name identifies the feature.
func (f *Feature) Name() string {
	return "deposit"
}

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service, f.logger).RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service for CLI use.
func (f *Feature) Service() *Service {
	return f.service
}
