package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pickrush/pickrush/internal/domain/user"
	basecache "github.com/pickrush/pickrush/internal/platform/cache"
)

type countingUserRepository struct {
	users map[string]user.User
	gets  int
	lists int
	saves int
}

var _ user.Repository = (*countingUserRepository)(nil)

func newCountingUserRepository(users ...user.User) *countingUserRepository {
	byName := make(map[string]user.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &countingUserRepository{users: byName}
}

func (r *countingUserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.gets++
	u, ok := r.users[username]
	return u, ok, nil
}

func (r *countingUserRepository) Save(_ context.Context, u user.User) error {
	r.saves++
	r.users[u.Username] = u
	return nil
}

func (r *countingUserRepository) List(_ context.Context) ([]user.User, error) {
	r.lists++
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func TestUserRepository_GetByUsernameCachesHits(t *testing.T) {
	t.Parallel()

	next := newCountingUserRepository(user.User{Username: "alice", TotalPoints: 30})
	repo := NewUserRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		u, ok, err := repo.GetByUsername(context.Background(), "alice")
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if !ok || u.TotalPoints != 30 {
			t.Fatalf("unexpected user: %+v ok=%v", u, ok)
		}
	}

	if next.gets != 1 {
		t.Fatalf("underlying gets = %d, want 1", next.gets)
	}
}

func TestUserRepository_MissesAreCachedToo(t *testing.T) {
	t.Parallel()

	next := newCountingUserRepository()
	repo := NewUserRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		_, ok, err := repo.GetByUsername(context.Background(), "ghost")
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if ok {
			t.Fatalf("expected miss for unknown user")
		}
	}

	if next.gets != 1 {
		t.Fatalf("underlying gets = %d, want 1", next.gets)
	}
}

func TestUserRepository_SaveInvalidatesUserKeys(t *testing.T) {
	t.Parallel()

	next := newCountingUserRepository(user.User{Username: "alice", TotalPoints: 30})
	repo := NewUserRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	if _, _, err := repo.GetByUsername(ctx, "alice"); err != nil {
		t.Fatalf("get user: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list users: %v", err)
	}

	if err := repo.Save(ctx, user.User{Username: "alice", TotalPoints: 40}); err != nil {
		t.Fatalf("save user: %v", err)
	}

	u, ok, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get user after save: %v", err)
	}
	if !ok || u.TotalPoints != 40 {
		t.Fatalf("expected refreshed user, got %+v ok=%v", u, ok)
	}
	if next.gets != 2 {
		t.Fatalf("underlying gets = %d, want 2", next.gets)
	}

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list users after save: %v", err)
	}
	if next.lists != 2 {
		t.Fatalf("underlying lists = %d, want 2", next.lists)
	}
}

func TestUserRepository_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	next := newCountingUserRepository(user.User{Username: "alice", TotalPoints: 30})
	repo := NewUserRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	first[0].TotalPoints = 999

	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list users again: %v", err)
	}
	if second[0].TotalPoints != 30 {
		t.Fatalf("cached list was mutated through a returned slice: %+v", second[0])
	}
}
