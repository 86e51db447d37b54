package investor

import "time"

// Investor holds an account's deposit position. The row is created on first
// deposit and reused afterwards; closing a deposit resets it to the zero
// state rather than deleting it.
type Investor struct {
	ID        uint64 `gorm:"primaryKey;column:id"`
	AccountID string `gorm:"column:account_id;size:32;not null;uniqueIndex:ux_investors_account"`
	// Active is true iff a deposit is open. While false, Amount, StartBlock
	// and InterestPerSec are zero.
	Active bool `gorm:"column:active;not null;default:false"`
	// Amount is the principal currently deposited, native-asset smallest units.
	Amount int64 `gorm:"column:amount;not null;default:0"`
	// StartBlock is the block index at which the open deposit began.
	StartBlock uint64 `gorm:"column:start_block;not null;default:0"`
	// InterestPerSec snapshots the bank's derived per-second interest for one
	// minimum-deposit unit at the moment the deposit opened. Later rate
	// changes do not touch open deposits.
	InterestPerSec int64     `gorm:"column:interest_per_sec;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Investor) TableName() string { return "investors" }

// Close resets the record to the closed zero state, keeping the row.
func (i *Investor) Close() {
	i.Active = false
	i.Amount = 0
	i.StartBlock = 0
	i.InterestPerSec = 0
}
