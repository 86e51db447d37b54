package uow

import (
	"context"

	"custodian-bank/internal/domain/bank"
	"custodian-bank/internal/domain/borrower"
	"custodian-bank/internal/domain/credit"
	"custodian-bank/internal/domain/investor"
	"custodian-bank/internal/domain/wallet"
)

// Repos bundles every repository bound to one transaction. The engine only
// touches state through a Repos handed to it inside WithinTx.
type Repos struct {
	Bank      bank.Repository
	Investors investor.Repository
	Borrowers borrower.Repository
	Credits   credit.Ledger
	Wallets   wallet.Repository
}

// UnitOfWork runs fn inside a single database transaction. If fn returns an
// error every write made through its Repos is rolled back, which is what
// makes each public bank operation all-or-nothing.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinBankTx locks the bank state row first and passes it in; every
	// mutating engine operation uses this so operations serialize.
	WithinBankTx(ctx context.Context, fn func(r Repos, s *bank.State) error) error
}
