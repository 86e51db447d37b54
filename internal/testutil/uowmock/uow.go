package uowmock

import (
	"context"
	"errors"

	"custodian-bank/internal/domain/bank"
	"custodian-bank/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinBankTxFn func(ctx context.Context, fn func(r uow.Repos, s *bank.State) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinBankTx(ctx context.Context, fn func(r uow.Repos, s *bank.State) error) error {
	if m.WithinBankTxFn != nil {
		return m.WithinBankTxFn(ctx, fn)
	}
	return errUnimplemented
}
