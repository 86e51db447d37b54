package bank

import "context"

type Repository interface {
	// Get returns the singleton state row.
	Get(ctx context.Context) (*State, error)
	// GetForUpdate locks the state row for the duration of the enclosing
	// transaction; every mutating engine operation goes through it.
	GetForUpdate(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
	// Init creates the state row if it does not exist yet.
	Init(ctx context.Context, s *State) error
}
