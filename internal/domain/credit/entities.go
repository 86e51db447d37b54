package credit

import "time"

// BankAccountID is the ledger identity of the bank itself: the issuer of
// reward credits, the holder of pulled collateral and retained fees.
const BankAccountID = "00000000000000000000000000000000"

// Balance is one account's reward-credit holding, smallest units.
type Balance struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	AccountID string    `gorm:"column:account_id;size:32;not null;uniqueIndex:ux_credit_balances_account"`
	Amount    int64     `gorm:"column:amount;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Balance) TableName() string { return "credit_balances" }

// Allowance authorizes spender to move up to Amount credits out of owner's
// balance via TransferFrom. Spends reduce the remaining allowance.
type Allowance struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	OwnerID   string    `gorm:"column:owner_id;size:32;not null;uniqueIndex:ux_credit_allowances_pair,priority:1"`
	SpenderID string    `gorm:"column:spender_id;size:32;not null;uniqueIndex:ux_credit_allowances_pair,priority:2"`
	Amount    int64     `gorm:"column:amount;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Allowance) TableName() string { return "credit_allowances" }
