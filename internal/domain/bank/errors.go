package bank

import "errors"

// Engine error taxonomy. Validation and state-conflict errors are rejected
// before any write; liquidity and collaborator errors roll the whole
// transaction back. All are terminal for the invocation.
var (
	// validation
	ErrInvalidAmount      = errors.New("bank: amount must be positive")
	ErrDepositBelowMin    = errors.New("bank: deposit below minimum")
	ErrRateOutOfRange     = errors.New("bank: yearly return rate must be in [1,100]")
	ErrRepayMismatch      = errors.New("bank: repayment must equal the borrowed amount exactly")
	ErrAmountOverflow     = errors.New("bank: amount arithmetic overflows int64")
	ErrReservedAccount    = errors.New("bank: reserved account id")
	// state conflicts
	ErrDepositAlreadyOpen = errors.New("bank: account already has an open deposit")
	ErrNoOpenDeposit      = errors.New("bank: account has no open deposit")
	ErrLoanAlreadyOpen    = errors.New("bank: account already has an open loan")
	ErrNoOpenLoan         = errors.New("bank: account has no open loan")
	// liquidity
	ErrInsufficientLiquidity = errors.New("bank: loan would breach depositor claims")
)
