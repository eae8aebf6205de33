package user

import "context"

// Repository exposes user aggregate read/write operations.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	Save(ctx context.Context, u User) error
	List(ctx context.Context) ([]User, error)
}
