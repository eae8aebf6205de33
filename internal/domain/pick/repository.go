package pick

import "context"

// Repository exposes pick read/write operations.
type Repository interface {
	Upsert(ctx context.Context, p Pick) error
	GetByID(ctx context.Context, id string) (Pick, bool, error)
	ListByDate(ctx context.Context, date string) ([]Pick, error)
	ListByUser(ctx context.Context, username string) ([]Pick, error)
	ListByUserAndDate(ctx context.Context, username, date string) ([]Pick, error)
	ListPendingByDate(ctx context.Context, date string) ([]Pick, error)
	MarkResolved(ctx context.Context, id, result string, pointsEarned int) error
}
