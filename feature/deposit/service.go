package deposit

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"koin-ledger/core/feed"
	"koin-ledger/feature/account"
	"koin-ledger/feature/account/models"

	"go.uber.org/zap"
)

var (
	// ErrUnknownAccount is terminal for the call: the account must be
	// created (via a deposit request) first.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrInvalidEmail rejects malformed legacy registration input.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Same pragmatic check the registration flow has always used; full RFC
// parsing buys nothing when the address is only a matching token.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DepositIntent is what the front-end needs to walk a user through a deposit.
type DepositIntent struct {
	MatchCode      string `json:"match_code"`
	SupportMessage string `json:"support_message"`
	Instructions   string `json:"instructions"`
}

// ReconciliationResult reports one reconciliation pass.
type ReconciliationResult struct {
	CreditedKoin int64 `json:"credited_koin"`
	TotalBalance int64 `json:"total_balance"`
}

// Profile aggregates an account for display.
type Profile struct {
	UserID          string                 `json:"user_id"`
	Balance         int64                  `json:"balance"`
	Email           string                 `json:"email,omitempty"`
	TotalDonated    int64                  `json:"total_donated"`
	TotalKoinEarned int64                  `json:"total_koin_earned"`
	RecentOrders    []models.DonationOrder `json:"recent_orders"`
}

const recentOrderLimit = 5

const instructionsTemplate = `Follow these steps to complete your donation:

1. Open the donation page
2. Choose your donation amount
3. Put the following text in the message field: %s
4. Complete your payment

After paying, run donation verification to receive your koin.`

// Service is the reconciliation engine. It orchestrates matching, dedup,
// koin conversion and the atomic balance update.
type Service struct {
	store    account.Store
	feed     feed.Client
	logger   *zap.Logger
	pageSize int
	koinRate int64
}

// NewService creates the deposit/reconciliation service.
func NewService(store account.Store, client feed.Client, logger *zap.Logger, cfg feed.Config) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	koinRate := cfg.KoinRate
	if koinRate <= 0 {
		koinRate = 15
	}

	return &Service{
		store:    store,
		feed:     client,
		logger:   logger,
		pageSize: pageSize,
		koinRate: koinRate,
	}
}

// RequestDeposit issues a fresh matching code for the user and records it as
// the account's pending code, creating the account on first use. Any prior
// pending code is replaced whether or not it was ever redeemed.
func (s *Service) RequestDeposit(ctx context.Context, userID string) (DepositIntent, error) {
	code, err := account.GenerateMatchCode()
	if err != nil {
		return DepositIntent{}, fmt.Errorf("generate match code: %w", err)
	}

	_, err = s.store.CreateAccount(ctx, userID, code)
	if errors.Is(err, account.ErrAlreadyExists) {
		err = s.store.SetPendingMatchCode(ctx, userID, code)
	}
	if err != nil {
		s.logger.Error("deposit request failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return DepositIntent{}, err
	}

	supportMessage := code + " " + userID
	return DepositIntent{
		MatchCode:      code,
		SupportMessage: supportMessage,
		Instructions:   fmt.Sprintf(instructionsTemplate, supportMessage),
	}, nil
}

// RegisterEmail stores the legacy alternate matching key for the account,
// creating the account if needed.
func (s *Service) RegisterEmail(ctx context.Context, userID, email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	_, err := s.store.GetAccount(ctx, userID)
	if errors.Is(err, account.ErrNotFound) {
		code, genErr := account.GenerateMatchCode()
		if genErr != nil {
			return fmt.Errorf("generate match code: %w", genErr)
		}
		if _, err = s.store.CreateAccount(ctx, userID, code); err != nil && !errors.Is(err, account.ErrAlreadyExists) {
			return err
		}
	} else if err != nil {
		return err
	}

	return s.store.SetEmail(ctx, userID, email)
}

// Reconcile runs one reconciliation pass for the account against the feed's
// most recent window. Repeated calls are idempotent: events already in the
// dedup ledger are skipped, and the commit itself only credits orders it
// actually inserted. Donations that fall out of the feed window before a
// pass sees them are permanently unreconcilable; the platform offers no
// durable cursor.
func (s *Service) Reconcile(ctx context.Context, userID string) (ReconciliationResult, error) {
	acc, err := s.store.GetAccount(ctx, userID)
	if errors.Is(err, account.ErrNotFound) {
		s.logger.Warn("reconcile for unknown account", zap.String("user_id", userID))
		return ReconciliationResult{}, ErrUnknownAccount
	}
	if err != nil {
		s.logger.Error("reconcile account load failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return ReconciliationResult{}, err
	}

	events, err := s.feed.FetchRecent(ctx, s.pageSize, 1)
	if err != nil {
		// ErrFeedUnavailable, safe to retry: nothing was written.
		s.logger.Error("reconcile feed fetch failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return ReconciliationResult{}, err
	}

	var candidates []models.DonationOrder
	for _, event := range events {
		if !s.matches(acc, event) {
			continue
		}

		exists, err := s.store.OrderExists(ctx, event.OrderID)
		if err != nil {
			s.logger.Error("reconcile dedup check failed",
				zap.String("user_id", userID),
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
			return ReconciliationResult{}, err
		}
		if exists {
			// Expected steady state on re-verification, not an error.
			s.logger.Debug("duplicate order ignored",
				zap.String("user_id", userID),
				zap.String("order_id", event.OrderID),
			)
			continue
		}

		// Floor division; the sub-rate remainder is discarded, never
		// credited and never carried forward. A donation below the rate
		// converts to zero koin but is still recorded so the next pass
		// doesn't re-evaluate it.
		candidates = append(candidates, models.DonationOrder{
			OrderID:     event.OrderID,
			UserID:      userID,
			AmountMinor: event.AmountMinor,
			KoinAmount:  event.AmountMinor / s.koinRate,
		})
	}

	if len(candidates) == 0 {
		return ReconciliationResult{CreditedKoin: 0, TotalBalance: acc.Balance}, nil
	}

	res, err := s.store.RecordOrdersAndCredit(ctx, userID, candidates)
	if err != nil {
		s.logger.Error("reconcile commit failed",
			zap.String("user_id", userID),
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		return ReconciliationResult{}, err
	}

	s.logger.Info("reconciliation committed",
		zap.String("user_id", userID),
		zap.Int64("credited_koin", res.CreditedKoin),
		zap.Int64("total_balance", res.TotalBalance),
	)

	return ReconciliationResult{
		CreditedKoin: res.CreditedKoin,
		TotalBalance: res.TotalBalance,
	}, nil
}

// Profile returns the account's balance, ledger totals and recent orders.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	acc, err := s.store.GetAccount(ctx, userID)
	if errors.Is(err, account.ErrNotFound) {
		return Profile{}, ErrUnknownAccount
	}
	if err != nil {
		return Profile{}, err
	}

	totals, err := s.store.OrderTotals(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	orders, err := s.store.RecentOrders(ctx, userID, recentOrderLimit)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		UserID:          acc.UserID,
		Balance:         acc.Balance,
		Email:           acc.Email,
		TotalDonated:    totals.TotalDonated,
		TotalKoinEarned: totals.TotalKoin,
		RecentOrders:    orders,
	}, nil
}

// matches tests whether the event's free-text message contains one of the
// account's matching tokens. This is substring containment, not equality:
// the message is uncontrolled payer input. Codes are generated long and
// random enough that a cross-account false positive is practically
// negligible.
func (s *Service) matches(acc models.Account, event feed.Event) bool {
	if event.SupportMessage == "" {
		return false
	}
	if acc.PendingMatchCode != "" && strings.Contains(event.SupportMessage, acc.PendingMatchCode) {
		return true
	}
	// Legacy path: accounts registered by email before match codes existed.
	if acc.Email != "" && strings.Contains(event.SupportMessage, acc.Email) {
		return true
	}
	return false
}
