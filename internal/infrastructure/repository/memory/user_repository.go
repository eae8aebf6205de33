package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickrush/pickrush/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		items: make(map[string]user.User),
	}
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[username]
	if !ok {
		return user.User{}, false, nil
	}

	return cloneUser(u), true, nil
}

func (r *UserRepository) Save(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[u.Username] = cloneUser(u)
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, cloneUser(u))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Username < out[j].Username
	})
	return out, nil
}

// cloneUser copies the badge slice so callers cannot mutate stored state.
func cloneUser(u user.User) user.User {
	u.Badges = append([]user.EarnedBadge(nil), u.Badges...)
	return u
}
