package mysql

import (
	"context"
	"errors"

	creditDomain "custodian-bank/internal/domain/credit"

	"gorm.io/gorm"
)

// CreditLedger is the table-backed reward-credit ledger. When constructed
// from a transaction-bound *gorm.DB (via the unit of work) its writes commit
// and roll back with the rest of the operation.
type CreditLedger struct{ db *gorm.DB }

func NewCreditLedger(db *gorm.DB) *CreditLedger { return &CreditLedger{db: db} }

func (l *CreditLedger) balanceForUpdate(ctx context.Context, accountID string) (*creditDomain.Balance, error) {
	var out creditDomain.Balance
	res := lockForUpdate(l.db.WithContext(ctx)).
		Where("account_id = ?", accountID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		out = creditDomain.Balance{AccountID: accountID}
		if err := l.db.WithContext(ctx).Create(&out).Error; err != nil {
			return nil, err
		}
		return &out, nil
	}
	return &out, res.Error
}

func (l *CreditLedger) Mint(ctx context.Context, accountID string, amount int64) error {
	if amount < 0 {
		return creditDomain.ErrInsufficientCredits
	}
	if amount == 0 {
		return nil
	}
	b, err := l.balanceForUpdate(ctx, accountID)
	if err != nil {
		return err
	}
	b.Amount += amount
	return l.db.WithContext(ctx).Save(b).Error
}

func (l *CreditLedger) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return creditDomain.ErrInsufficientCredits
	}
	src, err := l.balanceForUpdate(ctx, from)
	if err != nil {
		return err
	}
	if src.Amount < amount {
		return creditDomain.ErrInsufficientCredits
	}
	// a self-transfer moves nothing; loading the row twice would double-write
	if from == to {
		return nil
	}
	dst, err := l.balanceForUpdate(ctx, to)
	if err != nil {
		return err
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := l.db.WithContext(ctx).Save(src).Error; err != nil {
		return err
	}
	return l.db.WithContext(ctx).Save(dst).Error
}

func (l *CreditLedger) TransferFrom(ctx context.Context, spender, from, to string, amount int64) error {
	if amount <= 0 {
		return creditDomain.ErrInsufficientCredits
	}
	var allow creditDomain.Allowance
	res := lockForUpdate(l.db.WithContext(ctx)).
		Where("owner_id = ? AND spender_id = ?", from, spender).
		First(&allow)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) || (res.Error == nil && allow.Amount < amount) {
		return creditDomain.ErrInsufficientAllowance
	}
	if res.Error != nil {
		return res.Error
	}
	if err := l.Transfer(ctx, from, to, amount); err != nil {
		return err
	}
	allow.Amount -= amount
	return l.db.WithContext(ctx).Save(&allow).Error
}

func (l *CreditLedger) Approve(ctx context.Context, owner, spender string, amount int64) error {
	if amount < 0 {
		return creditDomain.ErrInsufficientAllowance
	}
	var allow creditDomain.Allowance
	res := l.db.WithContext(ctx).
		Where("owner_id = ? AND spender_id = ?", owner, spender).
		First(&allow)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		allow = creditDomain.Allowance{OwnerID: owner, SpenderID: spender, Amount: amount}
		return l.db.WithContext(ctx).Create(&allow).Error
	}
	if res.Error != nil {
		return res.Error
	}
	allow.Amount = amount
	return l.db.WithContext(ctx).Save(&allow).Error
}

func (l *CreditLedger) Allowance(ctx context.Context, owner, spender string) (int64, error) {
	var allow creditDomain.Allowance
	res := l.db.WithContext(ctx).
		Where("owner_id = ? AND spender_id = ?", owner, spender).
		First(&allow)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return allow.Amount, res.Error
}

func (l *CreditLedger) BalanceOf(ctx context.Context, accountID string) (int64, error) {
	var b creditDomain.Balance
	res := l.db.WithContext(ctx).Where("account_id = ?", accountID).First(&b)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return b.Amount, res.Error
}
