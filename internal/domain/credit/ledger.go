package credit

import (
	"context"
	"errors"
)

var (
	ErrInsufficientCredits   = errors.New("credit: insufficient balance")
	ErrInsufficientAllowance = errors.New("credit: insufficient allowance")
)

// Ledger is the reward-credit ledger the accounting engine calls into. The
// production implementation is table-backed and enlists in the engine's
// transaction, so a failed operation rolls ledger movements back too.
type Ledger interface {
	// Mint creates amount new credits on accountID. Only the bank issues.
	Mint(ctx context.Context, accountID string, amount int64) error
	// Transfer moves credits between balances.
	Transfer(ctx context.Context, from, to string, amount int64) error
	// TransferFrom moves credits out of from on behalf of spender, consuming
	// allowance. Fails with ErrInsufficientAllowance or ErrInsufficientCredits.
	TransferFrom(ctx context.Context, spender, from, to string, amount int64) error
	// Approve sets (replaces) the allowance owner grants spender.
	Approve(ctx context.Context, owner, spender string, amount int64) error
	Allowance(ctx context.Context, owner, spender string) (int64, error)
	BalanceOf(ctx context.Context, accountID string) (int64, error)
}
