package deposit

import (
	"errors"

	"koin-ledger/core/feed"
	"koin-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for deposits and reconciliation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the account/deposit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/accounts")
	group.Get("/:userId", h.HandleGetProfile)
	group.Post("/:userId/deposit", h.HandleRequestDeposit)
	group.Post("/:userId/verify", h.HandleVerify)
	group.Put("/:userId/email", h.HandleRegisterEmail)
}

// HandleRequestDeposit issues a fresh matching code for the user.
// @Summary Request Deposit
// @Description Generate a new matching code and deposit instructions for a user.
// @Tags deposit
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} deposit.DepositIntent "Deposit Intent"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts/{userId}/deposit [post]
func (h *Handler) HandleRequestDeposit(c *fiber.Ctx) error {
	userID := c.Params("userId")
	l := logger.WithRayID(h.logger, c)

	intent, err := h.service.RequestDeposit(c.Context(), userID)
	if err != nil {
		l.Error("Deposit request failed", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not create deposit request",
		})
	}

	return c.JSON(intent)
}

// HandleVerify runs one reconciliation pass for the user.
// @Summary Verify Donations
// @Description Match recent donations against the user's code and credit new koin.
// @Tags deposit
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} deposit.ReconciliationResult "Reconciliation Result"
// @Failure 404 {object} map[string]string "Unknown Account"
// @Failure 502 {object} map[string]string "Feed Unavailable"
// @Router /accounts/{userId}/verify [post]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	userID := c.Params("userId")
	l := logger.WithRayID(h.logger, c)

	result, err := h.service.Reconcile(c.Context(), userID)
	switch {
	case errors.Is(err, ErrUnknownAccount):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "account not found, request a deposit first",
		})
	case errors.Is(err, feed.ErrFeedUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "donation feed unavailable, try again later",
		})
	case err != nil:
		l.Error("Verification failed", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "verification failed, try again later",
		})
	}

	return c.JSON(result)
}

// HandleGetProfile returns the account profile with recent donation history.
// @Summary Get Profile
// @Description Get balance, totals and recent donation history for a user.
// @Tags deposit
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} deposit.Profile "Profile"
// @Failure 404 {object} map[string]string "Unknown Account"
// @Router /accounts/{userId} [get]
func (h *Handler) HandleGetProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")
	l := logger.WithRayID(h.logger, c)

	profile, err := h.service.Profile(c.Context(), userID)
	switch {
	case errors.Is(err, ErrUnknownAccount):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "account not found",
		})
	case err != nil:
		l.Error("Profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load profile",
		})
	}

	return c.JSON(profile)
}

// RegisterEmailRequest is the body for the email registration endpoint.
type RegisterEmailRequest struct {
	Email string `json:"email"`
}

// HandleRegisterEmail stores the legacy email matching key for the user.
// @Summary Register Email
// @Description Store the legacy email used as an alternate donation matching key.
// @Tags deposit
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param body body deposit.RegisterEmailRequest true "Email"
// @Success 200 {object} map[string]string "OK"
// @Failure 400 {object} map[string]string "Invalid Email"
// @Router /accounts/{userId}/email [put]
func (h *Handler) HandleRegisterEmail(c *fiber.Ctx) error {
	userID := c.Params("userId")
	l := logger.WithRayID(h.logger, c)

	var req RegisterEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	err := h.service.RegisterEmail(c.Context(), userID, req.Email)
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid email address",
		})
	case err != nil:
		l.Error("Email registration failed", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not register email",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
