package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByAccountID(ctx context.Context, accountID string) (*Borrower, error)
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*Borrower, error)
	Save(ctx context.Context, b *Borrower) error
}
