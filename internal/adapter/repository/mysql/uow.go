package mysql

import (
	"context"

	bankDomain "custodian-bank/internal/domain/bank"
	"custodian-bank/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Bank:      &BankRepository{db: tx},
		Investors: &InvestorRepository{db: tx},
		Borrowers: &BorrowerRepository{db: tx},
		Credits:   &CreditLedger{db: tx},
		Wallets:   &WalletRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinBankTx(ctx context.Context, fn func(r uow.Repos, s *bankDomain.State) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the bank row up-front so mutating operations serialize
		s, err := r.Bank.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		return fn(r, s)
	})
}
