package mysql

import (
	"context"
	"errors"

	walletDomain "custodian-bank/internal/domain/wallet"

	"gorm.io/gorm"
)

// WalletRepository is the native-asset cash ledger, including the bank vault.
type WalletRepository struct{ db *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{db: db} }

func (r *WalletRepository) walletForUpdate(ctx context.Context, accountID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("account_id = ?", accountID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		out = walletDomain.Wallet{AccountID: accountID}
		if err := r.db.WithContext(ctx).Create(&out).Error; err != nil {
			return nil, err
		}
		return &out, nil
	}
	return &out, res.Error
}

func (r *WalletRepository) BalanceOf(ctx context.Context, accountID string) (int64, error) {
	var w walletDomain.Wallet
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&w)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return w.Balance, res.Error
}

func (r *WalletRepository) Credit(ctx context.Context, accountID string, amount int64) error {
	if amount <= 0 {
		return walletDomain.ErrInsufficientFunds
	}
	w, err := r.walletForUpdate(ctx, accountID)
	if err != nil {
		return err
	}
	w.Balance += amount
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WalletRepository) Debit(ctx context.Context, accountID string, amount int64) error {
	if amount <= 0 {
		return walletDomain.ErrInsufficientFunds
	}
	w, err := r.walletForUpdate(ctx, accountID)
	if err != nil {
		return err
	}
	if w.Balance < amount {
		return walletDomain.ErrInsufficientFunds
	}
	w.Balance -= amount
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WalletRepository) Move(ctx context.Context, from, to string, amount int64) error {
	if err := r.Debit(ctx, from, amount); err != nil {
		return err
	}
	return r.Credit(ctx, to, amount)
}
