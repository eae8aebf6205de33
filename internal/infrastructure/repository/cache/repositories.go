package cache

import (
	"context"

	"github.com/pickrush/pickrush/internal/domain/user"
	basecache "github.com/pickrush/pickrush/internal/platform/cache"
)

// UserRepository caches user aggregate reads in front of another
// repository. Saves invalidate every user key so leaderboard snapshots
// never outlive a resolution pass by more than one load.
type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

type cachedUserByUsername struct {
	value  user.User
	exists bool
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	key := "user:name:" + username
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		return cachedUserByUsername{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.User{}, false, err
	}

	cached, _ := v.(cachedUserByUsername)
	return cached.value, cached.exists, nil
}

func (r *UserRepository) Save(ctx context.Context, u user.User) error {
	if err := r.next.Save(ctx, u); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, "user:")
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	v, err := r.cache.GetOrLoad(ctx, "user:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]user.User(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]user.User)
	return append([]user.User(nil), items...), nil
}
