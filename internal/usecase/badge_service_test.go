package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pickrush/pickrush/internal/domain/badge"
	"github.com/pickrush/pickrush/internal/domain/user"
)

func TestBadgeService_Catalog(t *testing.T) {
	t.Parallel()

	svc := NewBadgeService(newMemUserRepo())

	catalog := svc.Catalog(context.Background())
	if len(catalog) != 8 {
		t.Fatalf("catalog size = %d, want 8", len(catalog))
	}
	for _, def := range catalog {
		if def.ID == "" || def.Name == "" || def.Description == "" {
			t.Fatalf("incomplete definition %+v", def)
		}
	}
}

func TestBadgeService_UserBadges(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo(user.User{
		Username: "alice",
		Badges: []user.EarnedBadge{
			{ID: badge.FirstBlood, EarnedAt: feedNow.Add(-48 * time.Hour)},
			{ID: badge.PerfectNight, EarnedAt: feedNow.Add(-72 * time.Hour)},
			{ID: "retired-badge", EarnedAt: feedNow},
		},
	})
	svc := NewBadgeService(users)

	badges, err := svc.UserBadges(context.Background(), "alice")
	if err != nil {
		t.Fatalf("UserBadges: %v", err)
	}
	// The unknown id is dropped; the rest come back oldest first with
	// catalog names attached.
	if len(badges) != 2 {
		t.Fatalf("badges = %d, want 2", len(badges))
	}
	if badges[0].ID != badge.PerfectNight || badges[1].ID != badge.FirstBlood {
		t.Fatalf("order = %s, %s, want earliest first", badges[0].ID, badges[1].ID)
	}
	if badges[1].Name == "" || badges[1].Description == "" {
		t.Fatalf("badge missing catalog metadata: %+v", badges[1])
	}
}

func TestBadgeService_UserBadgesErrors(t *testing.T) {
	t.Parallel()

	svc := NewBadgeService(newMemUserRepo())

	if _, err := svc.UserBadges(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user err = %v, want ErrNotFound", err)
	}
	if _, err := svc.UserBadges(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank username err = %v, want ErrInvalidInput", err)
	}
}
