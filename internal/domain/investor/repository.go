package investor

import "context"

type Repository interface {
	Create(ctx context.Context, i *Investor) error
	GetByAccountID(ctx context.Context, accountID string) (*Investor, error)
	// GetByAccountIDForUpdate locks the row for the enclosing transaction.
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*Investor, error)
	Save(ctx context.Context, i *Investor) error
}
