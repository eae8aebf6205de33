package postgres

import "time"

type pickTableModel struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	GameID       string     `db:"game_id"`
	GameDate     string     `db:"game_date"`
	PickedTeamID string     `db:"picked_team_id"`
	Sport        string     `db:"sport"`
	Confidence   int        `db:"confidence"`
	Result       string     `db:"result"`
	PointsEarned int        `db:"points_earned"`
	SubmittedAt  time.Time  `db:"submitted_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type pickInsertModel struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	GameID       string    `db:"game_id"`
	GameDate     string    `db:"game_date"`
	PickedTeamID string    `db:"picked_team_id"`
	Sport        string    `db:"sport"`
	Confidence   int       `db:"confidence"`
	Result       string    `db:"result"`
	PointsEarned int       `db:"points_earned"`
	SubmittedAt  time.Time `db:"submitted_at"`
}
