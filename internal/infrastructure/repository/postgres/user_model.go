package postgres

import "time"

type userTableModel struct {
	Username      string     `db:"username"`
	DisplayName   string     `db:"display_name"`
	TotalPicks    int        `db:"total_picks"`
	CorrectPicks  int        `db:"correct_picks"`
	CurrentStreak int        `db:"current_streak"`
	LongestStreak int        `db:"longest_streak"`
	TotalPoints   int        `db:"total_points"`
	WeeklyPoints  int        `db:"weekly_points"`
	WeekNumber    int        `db:"week_number"`
	BadgesJSON    string     `db:"badges_json"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type userInsertModel struct {
	Username      string `db:"username"`
	DisplayName   string `db:"display_name"`
	TotalPicks    int    `db:"total_picks"`
	CorrectPicks  int    `db:"correct_picks"`
	CurrentStreak int    `db:"current_streak"`
	LongestStreak int    `db:"longest_streak"`
	TotalPoints   int    `db:"total_points"`
	WeeklyPoints  int    `db:"weekly_points"`
	WeekNumber    int    `db:"week_number"`
	BadgesJSON    string `db:"badges_json"`
}
