package collateral

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	// GetByUser returns ErrNotFound when the user never deposited.
	GetByUser(ctx context.Context, user string) (*Account, error)
	GetByUserForUpdate(ctx context.Context, user string) (*Account, error)
	Save(ctx context.Context, a *Account) error
}
