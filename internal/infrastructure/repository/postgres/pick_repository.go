package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	qb "github.com/pickrush/pickrush/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) Upsert(ctx context.Context, item pick.Pick) error {
	insertModel := pickInsertModel{
		ID:           item.ID,
		Username:     item.Username,
		GameID:       item.GameID,
		GameDate:     item.Date,
		PickedTeamID: item.PickedTeamID,
		Sport:        string(item.Sport),
		Confidence:   item.Confidence,
		Result:       item.Result,
		PointsEarned: item.PointsEarned,
		SubmittedAt:  item.SubmittedAt,
	}

	query, args, err := qb.InsertModel("picks", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    picked_team_id = EXCLUDED.picked_team_id,
    confidence = EXCLUDED.confidence,
    submitted_at = EXCLUDED.submitted_at,
    updated_at = NOW()
RETURNING updated_at`)
	if err != nil {
		return fmt.Errorf("build pick upsert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("upsert pick: %w", err)
	}
	defer rows.Close()

	var updatedAt time.Time
	if rows.Next() {
		if err := rows.Scan(&updatedAt); err != nil {
			return fmt.Errorf("scan pick updated_at: %w", err)
		}
		return nil
	}

	return fmt.Errorf("upsert pick: no row returned")
}

func (r *PickRepository) GetByID(ctx context.Context, id string) (pick.Pick, bool, error) {
	query, args, err := pickBaseSelectBuilder().
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}

	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListByDate(ctx context.Context, date string) ([]pick.Pick, error) {
	return r.listWhere(ctx, "list picks by date",
		qb.Eq("game_date", date),
		qb.IsNull("deleted_at"),
	)
}

func (r *PickRepository) ListByUser(ctx context.Context, username string) ([]pick.Pick, error) {
	return r.listWhere(ctx, "list picks by user",
		qb.Eq("username", username),
		qb.IsNull("deleted_at"),
	)
}

func (r *PickRepository) ListByUserAndDate(ctx context.Context, username, date string) ([]pick.Pick, error) {
	return r.listWhere(ctx, "list picks by user and date",
		qb.Eq("username", username),
		qb.Eq("game_date", date),
		qb.IsNull("deleted_at"),
	)
}

func (r *PickRepository) ListPendingByDate(ctx context.Context, date string) ([]pick.Pick, error) {
	return r.listWhere(ctx, "list pending picks by date",
		qb.Eq("game_date", date),
		qb.Eq("result", pick.ResultPending),
		qb.IsNull("deleted_at"),
	)
}

func (r *PickRepository) listWhere(ctx context.Context, label string, conditions ...qb.Condition) ([]pick.Pick, error) {
	query, args, err := pickBaseSelectBuilder().
		Where(conditions...).
		OrderBy("submitted_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", label, err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

// MarkResolved writes a pick's final result once. The pending guard keeps a
// concurrent second resolution pass from rewriting an already settled pick.
func (r *PickRepository) MarkResolved(ctx context.Context, id, result string, pointsEarned int) error {
	query, args, err := qb.Update("picks").
		Set("result", result).
		Set("points_earned", pointsEarned).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("result", pick.ResultPending),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark pick resolved query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark pick resolved: %w", err)
	}
	return nil
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:           row.ID,
		Username:     row.Username,
		GameID:       row.GameID,
		Date:         row.GameDate,
		PickedTeamID: row.PickedTeamID,
		SubmittedAt:  row.SubmittedAt,
		Result:       row.Result,
		PointsEarned: row.PointsEarned,
		Sport:        game.Sport(row.Sport),
		Confidence:   row.Confidence,
	}
}

func pickBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("picks")
}
