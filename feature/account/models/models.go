package models

import "time"

// Account represents one user's koin account.
//
// Balance only ever increases through a committed reconciliation; nothing in
// this service decreases it. PendingMatchCode is replaced, not appended, on
// every deposit request, whether or not a prior code was redeemed.
type Account struct {
	UserID           string    `gorm:"column:user_id;primaryKey;size:32"`
	Balance          int64     `gorm:"column:balance;not null;default:0"`
	PendingMatchCode string    `gorm:"column:pending_match_code;size:64"`
	Email            string    `gorm:"column:email;size:255"` // legacy alternate matching key
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name for accounts.
func (Account) TableName() string {
	return "accounts"
}

// DonationOrder is one row of the dedup ledger.
//
// OrderID is the platform's unique donation identifier and the table's
// primary key. The uniqueness constraint on it is what makes crediting
// at-most-once: a row, once inserted, is never matched or credited again,
// even against a different account.
type DonationOrder struct {
	OrderID     string    `gorm:"column:order_id;primaryKey;size:64"`
	UserID      string    `gorm:"column:user_id;size:32;not null;index"`
	AmountMinor int64     `gorm:"column:amount;not null"`
	KoinAmount  int64     `gorm:"column:koin_amount;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name for the dedup ledger.
func (DonationOrder) TableName() string {
	return "donation_orders"
}
