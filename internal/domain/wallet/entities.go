package wallet

import "time"

// VaultAccountID is the bank's own wallet: the native-asset pool that backs
// deposits and funds loan payouts. The solvency invariant is checked against
// its balance.
const VaultAccountID = "00000000000000000000000000000000"

// Wallet is one account's native-asset balance, smallest units.
type Wallet struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	AccountID string    `gorm:"column:account_id;size:32;not null;uniqueIndex:ux_wallets_account"`
	Balance   int64     `gorm:"column:balance;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Wallet) TableName() string { return "wallets" }
