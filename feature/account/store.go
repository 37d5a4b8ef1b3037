package account

import (
	"context"
	"errors"

	"koin-ledger/feature/account/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when no account exists for the user id.
	ErrNotFound = errors.New("account not found")
	// ErrAlreadyExists is returned by CreateAccount for a known user id.
	ErrAlreadyExists = errors.New("account already exists")
)

// CreditResult reports what a commit actually applied.
type CreditResult struct {
	// CreditedKoin is the koin credited by this call. It is derived from the
	// orders actually inserted, never from the caller's candidate list.
	CreditedKoin int64
	// TotalBalance is the account balance after the commit.
	TotalBalance int64
}

// Totals aggregates the ledger for one account.
type Totals struct {
	TotalDonated int64
	TotalKoin    int64
}

// Store owns account state and the dedup ledger.
type Store interface {
	// Migrate creates the accounts and donation_orders tables.
	Migrate(ctx context.Context) error
	// GetAccount returns the account or ErrNotFound.
	GetAccount(ctx context.Context, userID string) (models.Account, error)
	// CreateAccount creates an account with balance 0 and the given pending
	// match code. It fails with ErrAlreadyExists for a known user id.
	CreateAccount(ctx context.Context, userID, matchCode string) (models.Account, error)
	// SetPendingMatchCode replaces the account's pending match code.
	SetPendingMatchCode(ctx context.Context, userID, code string) error
	// SetEmail stores the legacy alternate matching key.
	SetEmail(ctx context.Context, userID, email string) error
	// OrderExists reports whether an order id is already in the ledger.
	OrderExists(ctx context.Context, orderID string) (bool, error)
	// RecentOrders returns the newest ledger rows for the account.
	RecentOrders(ctx context.Context, userID string, limit int) ([]models.DonationOrder, error)
	// OrderTotals sums the account's ledger (donated amount, koin earned).
	OrderTotals(ctx context.Context, userID string) (Totals, error)
	// RecordOrdersAndCredit inserts the candidate orders and increments the
	// balance in one transaction. Orders already present are skipped via the
	// primary-key conflict, and only rows actually inserted count toward the
	// credited delta, so concurrent passes over the same feed window cannot
	// double-credit. Either all inserts and the balance update commit, or
	// nothing does.
	RecordOrdersAndCredit(ctx context.Context, userID string, orders []models.DonationOrder) (CreditResult, error)
}

// NewStore creates a gorm-backed account store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.Account{}, &models.DonationOrder{})
}

func (s *gormStore) GetAccount(ctx context.Context, userID string) (models.Account, error) {
	var acc models.Account
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	return acc, nil
}

func (s *gormStore) CreateAccount(ctx context.Context, userID, matchCode string) (models.Account, error) {
	acc := models.Account{
		UserID:           userID,
		Balance:          0,
		PendingMatchCode: matchCode,
	}
	err := s.db.WithContext(ctx).Create(&acc).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.Account{}, ErrAlreadyExists
	}
	if err != nil {
		return models.Account{}, err
	}
	return acc, nil
}

func (s *gormStore) SetPendingMatchCode(ctx context.Context, userID, code string) error {
	return s.updateAccountField(ctx, userID, "pending_match_code", code)
}

func (s *gormStore) SetEmail(ctx context.Context, userID, email string) error {
	return s.updateAccountField(ctx, userID, "email", email)
}

func (s *gormStore) updateAccountField(ctx context.Context, userID, column string, value any) error {
	res := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("user_id = ?", userID).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) OrderExists(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.DonationOrder{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormStore) RecentOrders(ctx context.Context, userID string, limit int) ([]models.DonationOrder, error) {
	var orders []models.DonationOrder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormStore) OrderTotals(ctx context.Context, userID string) (Totals, error) {
	var totals Totals
	err := s.db.WithContext(ctx).
		Model(&models.DonationOrder{}).
		Select("COALESCE(SUM(amount), 0) AS total_donated, COALESCE(SUM(koin_amount), 0) AS total_koin").
		Where("user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return Totals{}, err
	}
	return totals, nil
}

func (s *gormStore) RecordOrdersAndCredit(ctx context.Context, userID string, orders []models.DonationOrder) (CreditResult, error) {
	var result CreditResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var delta int64
		for _, order := range orders {
			order.UserID = userID
			ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&order)
			if ins.Error != nil {
				return ins.Error
			}
			// A row skipped on conflict was credited by an earlier pass
			// (or a concurrent one that won the race). Only rows this
			// transaction inserted count toward the credit.
			if ins.RowsAffected == 1 {
				delta += order.KoinAmount
			}
		}

		if delta > 0 {
			upd := tx.Model(&models.Account{}).
				Where("user_id = ?", userID).
				Update("balance", gorm.Expr("balance + ?", delta))
			if upd.Error != nil {
				return upd.Error
			}
			if upd.RowsAffected == 0 {
				return ErrNotFound
			}
		}

		var acc models.Account
		if err := tx.Where("user_id = ?", userID).First(&acc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		result = CreditResult{CreditedKoin: delta, TotalBalance: acc.Balance}
		return nil
	})
	if err != nil {
		return CreditResult{}, err
	}
	return result, nil
}
