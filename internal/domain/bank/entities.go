package bank

import (
	"time"
)

// State is the single bank-wide accounting row. Amounts are smallest units:
// TotalDeposit and the vault are native asset, CollateralPool is reward
// credits. The two pools are never mixed (see DESIGN.md).
type State struct {
	ID uint64 `gorm:"primaryKey;column:id"`
	// TotalDeposit is the sum of all currently-open investor principals.
	TotalDeposit int64 `gorm:"column:total_deposit;not null;default:0"`
	// YearlyReturnRate is the nominal annual interest rate, integer percent in [1,100].
	YearlyReturnRate int64 `gorm:"column:yearly_return_rate;not null"`
	// InterestPerSecMinDeposit is the interest accrued per second for exactly
	// one minimum-deposit unit of principal. Recomputed on every rate change;
	// snapshotted into each investor record at deposit time.
	InterestPerSecMinDeposit int64 `gorm:"column:interest_per_sec_min_deposit;not null"`
	// CollateralPool tracks reward credits currently committed as loan collateral.
	CollateralPool int64     `gorm:"column:collateral_pool;not null;default:0"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (State) TableName() string { return "bank_state" }
