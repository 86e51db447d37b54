package wallet

import (
	"context"
	"errors"
)

var ErrInsufficientFunds = errors.New("wallet: insufficient funds")

type Repository interface {
	// BalanceOf returns the balance, zero for accounts never seen.
	BalanceOf(ctx context.Context, accountID string) (int64, error)
	// Credit adds amount to the account, creating the wallet row if needed.
	Credit(ctx context.Context, accountID string, amount int64) error
	// Debit removes amount; fails with ErrInsufficientFunds, no partial write.
	Debit(ctx context.Context, accountID string, amount int64) error
	// Move debits from and credits to in one step.
	Move(ctx context.Context, from, to string, amount int64) error
}
