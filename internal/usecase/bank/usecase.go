package bank

import (
	"context"
	"errors"
	"fmt"

	bankDomain "custodian-bank/internal/domain/bank"
	borrowerDomain "custodian-bank/internal/domain/borrower"
	creditDomain "custodian-bank/internal/domain/credit"
	investorDomain "custodian-bank/internal/domain/investor"
	"custodian-bank/internal/domain/oracle"
	"custodian-bank/internal/domain/uow"
	walletDomain "custodian-bank/internal/domain/wallet"
	"custodian-bank/pkg/blockclock"

	"gorm.io/gorm"
)

// Params are the bank parameters fixed at boot. Only the yearly return rate
// is mutable afterwards, through SetYearlyReturnRate.
type Params struct {
	MinDeposit         int64
	CollateralRatioPct int64
	LoanFeePct         int64
	BlockSeconds       int64
	SecondsPerYear     int64
}

// Usecase is the accounting engine. Every mutating operation runs inside one
// bank-row-locked transaction: preconditions are checked, account records are
// mutated, and only then do wallet and credit-ledger movements happen. Any
// failure rolls the whole operation back.
type Usecase struct {
	uow    uow.UnitOfWork
	oracle oracle.PriceOracle
	clock  blockclock.Clock
	params Params
}

func NewUsecase(u uow.UnitOfWork, o oracle.PriceOracle, c blockclock.Clock, p Params) *Usecase {
	return &Usecase{uow: u, oracle: o, clock: c, params: p}
}

// Bootstrap creates the bank state row on first boot with the derived
// per-second interest constant. Subsequent boots leave existing state alone.
func (u *Usecase) Bootstrap(ctx context.Context, yearlyReturnRate int64) error {
	if yearlyReturnRate < 1 || yearlyReturnRate > 100 {
		return bankDomain.ErrRateOutOfRange
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Bank.Init(ctx, &bankDomain.State{
			YearlyReturnRate:         yearlyReturnRate,
			InterestPerSecMinDeposit: DeriveInterestPerSec(u.params.MinDeposit, yearlyReturnRate, u.params.SecondsPerYear),
		})
	})
}

// Deposit opens a deposit for accountID, pulling amount from the caller's
// wallet into the vault. One open deposit per account.
func (u *Usecase) Deposit(ctx context.Context, accountID string, amount int64) (*PositionDTO, error) {
	if accountID == walletDomain.VaultAccountID {
		return nil, bankDomain.ErrReservedAccount
	}
	if amount <= 0 {
		return nil, bankDomain.ErrInvalidAmount
	}
	if amount < u.params.MinDeposit {
		return nil, bankDomain.ErrDepositBelowMin
	}
	var dto *PositionDTO
	err := u.uow.WithinBankTx(ctx, func(r uow.Repos, s *bankDomain.State) error {
		inv, err := r.Investors.GetByAccountIDForUpdate(ctx, accountID)
		switch {
		case err == nil:
			if inv.Active {
				return bankDomain.ErrDepositAlreadyOpen
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			inv = &investorDomain.Investor{AccountID: accountID}
			if err := r.Investors.Create(ctx, inv); err != nil {
				return err
			}
		default:
			return err
		}

		inv.Active = true
		inv.Amount = amount
		inv.StartBlock = u.clock.Block()
		inv.InterestPerSec = s.InterestPerSecMinDeposit
		if err := r.Investors.Save(ctx, inv); err != nil {
			return err
		}

		s.TotalDeposit += amount
		if err := r.Bank.Save(ctx, s); err != nil {
			return err
		}

		// ledger movement last: pull the attached value into the vault
		if err := r.Wallets.Move(ctx, accountID, walletDomain.VaultAccountID, amount); err != nil {
			return fmt.Errorf("deposit transfer: %w", err)
		}
		dto = investorPosition(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Withdraw closes the caller's deposit: pays the principal back in native
// asset and mints the accrued interest in reward credits.
func (u *Usecase) Withdraw(ctx context.Context, accountID string) (*WithdrawReceipt, error) {
	if accountID == walletDomain.VaultAccountID {
		return nil, bankDomain.ErrReservedAccount
	}
	var receipt *WithdrawReceipt
	err := u.uow.WithinBankTx(ctx, func(r uow.Repos, s *bankDomain.State) error {
		inv, err := r.Investors.GetByAccountIDForUpdate(ctx, accountID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bankDomain.ErrNoOpenDeposit
		}
		if err != nil {
			return err
		}
		if !inv.Active {
			return bankDomain.ErrNoOpenDeposit
		}

		now := u.clock.Block()
		blocks := uint64(0)
		if now > inv.StartBlock {
			blocks = now - inv.StartBlock
		}
		interest, err := InterestEarned(inv.InterestPerSec, inv.Amount, u.params.MinDeposit, blocks, u.params.BlockSeconds)
		if err != nil {
			return err
		}
		principal := inv.Amount

		s.TotalDeposit -= principal
		if err := r.Bank.Save(ctx, s); err != nil {
			return err
		}
		inv.Close()
		if err := r.Investors.Save(ctx, inv); err != nil {
			return err
		}

		// payout, then mint; a failure in either rolls everything back
		if err := r.Wallets.Move(ctx, walletDomain.VaultAccountID, accountID, principal); err != nil {
			return fmt.Errorf("withdraw payout: %w", err)
		}
		if interest > 0 {
			if err := r.Credits.Mint(ctx, accountID, interest); err != nil {
				return fmt.Errorf("interest mint: %w", err)
			}
		}
		receipt = &WithdrawReceipt{Principal: principal, Interest: interest, Blocks: blocks}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// SetYearlyReturnRate replaces the rate and recomputes the derived constant.
// Open deposits keep the constant they were opened with.
func (u *Usecase) SetYearlyReturnRate(ctx context.Context, rate int64) error {
	if rate < 1 || rate > 100 {
		return bankDomain.ErrRateOutOfRange
	}
	return u.uow.WithinBankTx(ctx, func(r uow.Repos, s *bankDomain.State) error {
		s.YearlyReturnRate = rate
		s.InterestPerSecMinDeposit = DeriveInterestPerSec(u.params.MinDeposit, rate, u.params.SecondsPerYear)
		return r.Bank.Save(ctx, s)
	})
}

// Borrow originates a loan: sizes collateral at the current oracle rate,
// pulls it from the caller's pre-authorized credit balance, and pays the
// loan amount out of the vault. Loans may never threaten depositor claims.
func (u *Usecase) Borrow(ctx context.Context, accountID string, amount int64) (*PositionDTO, error) {
	if accountID == walletDomain.VaultAccountID {
		return nil, bankDomain.ErrReservedAccount
	}
	if amount <= 0 {
		return nil, bankDomain.ErrInvalidAmount
	}
	rate, err := u.oracle.Rate(ctx)
	if err != nil {
		return nil, fmt.Errorf("oracle rate: %w", err)
	}
	collateral, err := CollateralRequired(amount, u.params.CollateralRatioPct, rate)
	if err != nil {
		return nil, err
	}
	var dto *PositionDTO
	err = u.uow.WithinBankTx(ctx, func(r uow.Repos, s *bankDomain.State) error {
		bor, err := r.Borrowers.GetByAccountIDForUpdate(ctx, accountID)
		switch {
		case err == nil:
			if bor.Active {
				return bankDomain.ErrLoanAlreadyOpen
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			bor = &borrowerDomain.Borrower{AccountID: accountID}
			if err := r.Borrowers.Create(ctx, bor); err != nil {
				return err
			}
		default:
			return err
		}

		vault, err := r.Wallets.BalanceOf(ctx, walletDomain.VaultAccountID)
		if err != nil {
			return err
		}
		if amount+s.TotalDeposit > vault {
			return bankDomain.ErrInsufficientLiquidity
		}

		bor.Active = true
		bor.Amount = amount
		bor.Collateral = collateral
		if err := r.Borrowers.Save(ctx, bor); err != nil {
			return err
		}
		s.CollateralPool += collateral
		if err := r.Bank.Save(ctx, s); err != nil {
			return err
		}

		// collateral pull requires a prior Approve by the caller
		if err := r.Credits.TransferFrom(ctx, creditDomain.BankAccountID, accountID, creditDomain.BankAccountID, collateral); err != nil {
			return fmt.Errorf("collateral pull: %w", err)
		}
		if err := r.Wallets.Move(ctx, walletDomain.VaultAccountID, accountID, amount); err != nil {
			return fmt.Errorf("loan payout: %w", err)
		}
		dto = borrowerPosition(bor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// RepayLoan settles a loan. The repayment must equal the borrowed amount
// exactly; the bank keeps a fee cut of the collateral and returns the rest.
func (u *Usecase) RepayLoan(ctx context.Context, accountID string, amount int64) (*RepayReceipt, error) {
	if accountID == walletDomain.VaultAccountID {
		return nil, bankDomain.ErrReservedAccount
	}
	if amount <= 0 {
		return nil, bankDomain.ErrInvalidAmount
	}
	var receipt *RepayReceipt
	err := u.uow.WithinBankTx(ctx, func(r uow.Repos, s *bankDomain.State) error {
		bor, err := r.Borrowers.GetByAccountIDForUpdate(ctx, accountID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bankDomain.ErrNoOpenLoan
		}
		if err != nil {
			return err
		}
		if !bor.Active {
			return bankDomain.ErrNoOpenLoan
		}
		if amount != bor.Amount {
			return bankDomain.ErrRepayMismatch
		}

		collateral := bor.Collateral
		fee := LoanFee(collateral, u.params.LoanFeePct)

		s.CollateralPool -= collateral
		if err := r.Bank.Save(ctx, s); err != nil {
			return err
		}
		bor.Close()
		if err := r.Borrowers.Save(ctx, bor); err != nil {
			return err
		}

		if err := r.Wallets.Move(ctx, accountID, walletDomain.VaultAccountID, amount); err != nil {
			return fmt.Errorf("repayment transfer: %w", err)
		}
		// the fee stays on the bank's credit balance
		if returned := collateral - fee; returned > 0 {
			if err := r.Credits.Transfer(ctx, creditDomain.BankAccountID, accountID, returned); err != nil {
				return fmt.Errorf("collateral release: %w", err)
			}
		}
		receipt = &RepayReceipt{Repaid: amount, Collateral: collateral, Fee: fee, Returned: collateral - fee}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// TopUpWallet funds an account's native-asset wallet. Operator-gated at the
// transport layer.
func (u *Usecase) TopUpWallet(ctx context.Context, accountID string, amount int64) error {
	if amount <= 0 {
		return bankDomain.ErrInvalidAmount
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Wallets.Credit(ctx, accountID, amount)
	})
}

// Positions returns the caller's investor and borrower records plus wallet
// and credit balances.
func (u *Usecase) Positions(ctx context.Context, accountID string) (*PositionsDTO, error) {
	var out PositionsDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investors.GetByAccountID(ctx, accountID)
		if err == nil {
			out.Deposit = investorPosition(inv)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		bor, err := r.Borrowers.GetByAccountID(ctx, accountID)
		if err == nil {
			out.Loan = borrowerPosition(bor)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if out.WalletBalance, err = r.Wallets.BalanceOf(ctx, accountID); err != nil {
			return err
		}
		if out.CreditBalance, err = r.Credits.BalanceOf(ctx, accountID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.AccountID = accountID
	return &out, nil
}

// StateSnapshot reports the bank-wide totals.
func (u *Usecase) StateSnapshot(ctx context.Context) (*BankStateDTO, error) {
	var dto BankStateDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Bank.Get(ctx)
		if err != nil {
			return err
		}
		vault, err := r.Wallets.BalanceOf(ctx, walletDomain.VaultAccountID)
		if err != nil {
			return err
		}
		dto = BankStateDTO{
			TotalDeposit:             s.TotalDeposit,
			YearlyReturnRate:         s.YearlyReturnRate,
			InterestPerSecMinDeposit: s.InterestPerSecMinDeposit,
			CollateralPool:           s.CollateralPool,
			VaultBalance:             vault,
			CurrentBlock:             u.clock.Block(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}
