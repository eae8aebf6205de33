package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/pickrush/pickrush/internal/domain/user"
	qb "github.com/pickrush/pickrush/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	query, args, err := userBaseSelectBuilder().
		Where(
			qb.Eq("username", username),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}

	item, err := userFromRow(row)
	if err != nil {
		return user.User{}, false, err
	}
	return item, true, nil
}

func (r *UserRepository) Save(ctx context.Context, item user.User) error {
	badgesJSON, err := encodeBadges(item.Badges)
	if err != nil {
		return err
	}

	insertModel := userInsertModel{
		Username:      item.Username,
		DisplayName:   item.DisplayName,
		TotalPicks:    item.TotalPicks,
		CorrectPicks:  item.CorrectPicks,
		CurrentStreak: item.CurrentStreak,
		LongestStreak: item.LongestStreak,
		TotalPoints:   item.TotalPoints,
		WeeklyPoints:  item.WeeklyPoints,
		WeekNumber:    item.WeekNumber,
		BadgesJSON:    badgesJSON,
	}

	query, args, err := qb.InsertModel("users", insertModel, `ON CONFLICT (username)
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    total_picks = EXCLUDED.total_picks,
    correct_picks = EXCLUDED.correct_picks,
    current_streak = EXCLUDED.current_streak,
    longest_streak = EXCLUDED.longest_streak,
    total_points = EXCLUDED.total_points,
    weekly_points = EXCLUDED.weekly_points,
    week_number = EXCLUDED.week_number,
    badges_json = EXCLUDED.badges_json,
    updated_at = NOW()
RETURNING updated_at`)
	if err != nil {
		return fmt.Errorf("build user upsert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	defer rows.Close()

	var updatedAt time.Time
	if rows.Next() {
		if err := rows.Scan(&updatedAt); err != nil {
			return fmt.Errorf("scan user updated_at: %w", err)
		}
		return nil
	}

	return fmt.Errorf("upsert user: no row returned")
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := userBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("username").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		item, err := userFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func userFromRow(row userTableModel) (user.User, error) {
	badges, err := decodeBadges(row.BadgesJSON)
	if err != nil {
		return user.User{}, fmt.Errorf("decode badges for %s: %w", row.Username, err)
	}

	return user.User{
		Username:      row.Username,
		DisplayName:   row.DisplayName,
		TotalPicks:    row.TotalPicks,
		CorrectPicks:  row.CorrectPicks,
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
		TotalPoints:   row.TotalPoints,
		WeeklyPoints:  row.WeeklyPoints,
		WeekNumber:    row.WeekNumber,
		Badges:        badges,
		CreatedAt:     row.CreatedAt,
	}, nil
}

type badgeJSONModel struct {
	ID       string    `json:"id"`
	EarnedAt time.Time `json:"earned_at"`
}

func encodeBadges(badges []user.EarnedBadge) (string, error) {
	models := make([]badgeJSONModel, 0, len(badges))
	for _, b := range badges {
		models = append(models, badgeJSONModel{ID: b.ID, EarnedAt: b.EarnedAt})
	}

	encoded, err := sonic.Marshal(models)
	if err != nil {
		return "", fmt.Errorf("encode badges: %w", err)
	}
	return string(encoded), nil
}

func decodeBadges(raw string) ([]user.EarnedBadge, error) {
	if raw == "" {
		return nil, nil
	}

	var models []badgeJSONModel
	if err := sonic.Unmarshal([]byte(raw), &models); err != nil {
		return nil, err
	}

	out := make([]user.EarnedBadge, 0, len(models))
	for _, m := range models {
		out = append(out, user.EarnedBadge{ID: m.ID, EarnedAt: m.EarnedAt})
	}
	return out, nil
}

func userBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("users")
}
