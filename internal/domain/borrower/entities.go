package borrower

import "time"

// Borrower holds an account's loan position. Like investors, rows are reused:
// repayment resets the record instead of deleting it.
type Borrower struct {
	ID        uint64 `gorm:"primaryKey;column:id"`
	AccountID string `gorm:"column:account_id;size:32;not null;uniqueIndex:ux_borrowers_account"`
	// Active is true iff a loan is outstanding.
	Active bool `gorm:"column:active;not null;default:false"`
	// Amount is the principal borrowed, native-asset smallest units.
	Amount int64 `gorm:"column:amount;not null;default:0"`
	// Collateral is the reward credits posted against the loan.
	Collateral int64     `gorm:"column:collateral;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Borrower) TableName() string { return "borrowers" }

// Close resets the record to the closed zero state, keeping the row.
func (b *Borrower) Close() {
	b.Active = false
	b.Amount = 0
	b.Collateral = 0
}
