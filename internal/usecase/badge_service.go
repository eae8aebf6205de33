package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pickrush/pickrush/internal/domain/badge"
	"github.com/pickrush/pickrush/internal/domain/user"
)

// BadgeService exposes the badge catalog and each user's earned set.
type BadgeService struct {
	userRepo user.Repository
}

func NewBadgeService(userRepo user.Repository) *BadgeService {
	return &BadgeService{userRepo: userRepo}
}

func (s *BadgeService) Catalog(ctx context.Context) []badge.Definition {
	_, span := startUsecaseSpan(ctx, "usecase.BadgeService.Catalog")
	defer span.End()

	return badge.Catalog()
}

func (s *BadgeService) UserBadges(ctx context.Context, username string) ([]badge.Badge, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BadgeService.UserBadges")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	aggregate, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
	}

	badges := make([]badge.Badge, 0, len(aggregate.Badges))
	for _, earned := range aggregate.Badges {
		def, ok := badge.Lookup(earned.ID)
		if !ok {
			continue
		}
		badges = append(badges, badge.Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			EarnedAt:    earned.EarnedAt,
		})
	}

	sort.SliceStable(badges, func(i, j int) bool {
		return badges[i].EarnedAt.Before(badges[j].EarnedAt)
	})
	return badges, nil
}
