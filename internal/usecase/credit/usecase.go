package credit

import (
	"context"

	bankDomain "custodian-bank/internal/domain/bank"
	creditDomain "custodian-bank/internal/domain/credit"
	"custodian-bank/internal/domain/uow"
)

// Usecase is the caller-facing slice of the reward-credit ledger: the
// approve/allowance surface borrowers need before the bank can pull
// collateral, plus balance lookups.
type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(u uow.UnitOfWork) *Usecase { return &Usecase{uow: u} }

type AllowanceDTO struct {
	OwnerID   string `json:"owner_id"`
	SpenderID string `json:"spender_id"`
	Amount    int64  `json:"amount"`
}

// ApproveBank authorizes the bank to pull up to amount credits from owner.
func (u *Usecase) ApproveBank(ctx context.Context, ownerID string, amount int64) (*AllowanceDTO, error) {
	if ownerID == creditDomain.BankAccountID {
		return nil, bankDomain.ErrReservedAccount
	}
	if amount < 0 {
		return nil, bankDomain.ErrInvalidAmount
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Credits.Approve(ctx, ownerID, creditDomain.BankAccountID, amount)
	})
	if err != nil {
		return nil, err
	}
	return &AllowanceDTO{OwnerID: ownerID, SpenderID: creditDomain.BankAccountID, Amount: amount}, nil
}

// BankAllowance reports how much the bank may still pull from owner.
func (u *Usecase) BankAllowance(ctx context.Context, ownerID string) (int64, error) {
	var out int64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = r.Credits.Allowance(ctx, ownerID, creditDomain.BankAccountID)
		return err
	})
	return out, err
}

func (u *Usecase) BalanceOf(ctx context.Context, accountID string) (int64, error) {
	var out int64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = r.Credits.BalanceOf(ctx, accountID)
		return err
	})
	return out, err
}
