package ledger

import (
	"koin-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for ledger exports.
type Handler struct {
	exporter *Exporter
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(exporter *Exporter, logger *zap.Logger) *Handler {
	return &Handler{exporter: exporter, logger: logger}
}

// RegisterRoutes registers the ledger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ledger")
	group.Post("/export", h.HandleExport)
}

// HandleExport uploads a CSV snapshot of the dedup ledger to object storage.
// @Summary Export Ledger
// @Description Write a CSV snapshot of all donation orders to object storage.
// @Tags ledger
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Export object name"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ledger/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	object, err := h.exporter.Export(c.Context())
	if err != nil {
		l.Error("Ledger export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "export failed",
		})
	}

	return c.JSON(fiber.Map{"object": object})
}
