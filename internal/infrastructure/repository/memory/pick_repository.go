package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickrush/pickrush/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{
		items: make(map[string]pick.Pick),
	}
}

func (r *PickRepository) Upsert(_ context.Context, item pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *PickRepository) GetByID(_ context.Context, id string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return pick.Pick{}, false, nil
	}

	return p, true, nil
}

func (r *PickRepository) ListByDate(_ context.Context, date string) ([]pick.Pick, error) {
	return r.listMatching(func(p pick.Pick) bool {
		return p.Date == date
	}), nil
}

func (r *PickRepository) ListByUser(_ context.Context, username string) ([]pick.Pick, error) {
	return r.listMatching(func(p pick.Pick) bool {
		return p.Username == username
	}), nil
}

func (r *PickRepository) ListByUserAndDate(_ context.Context, username, date string) ([]pick.Pick, error) {
	return r.listMatching(func(p pick.Pick) bool {
		return p.Username == username && p.Date == date
	}), nil
}

func (r *PickRepository) ListPendingByDate(_ context.Context, date string) ([]pick.Pick, error) {
	return r.listMatching(func(p pick.Pick) bool {
		return p.Date == date && !p.IsResolved()
	}), nil
}

func (r *PickRepository) MarkResolved(_ context.Context, id, result string, pointsEarned int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok || p.IsResolved() {
		return nil
	}

	p.Result = result
	p.PointsEarned = pointsEarned
	r.items[id] = p
	return nil
}

// listMatching snapshots matching picks ordered by submission time, with the
// id as tiebreaker so listings are stable.
func (r *PickRepository) listMatching(match func(pick.Pick) bool) []pick.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pick.Pick
	for _, p := range r.items {
		if match(p) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
