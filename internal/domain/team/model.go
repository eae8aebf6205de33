package team

import (
	"strconv"
	"strings"
)

// Team is an immutable snapshot supplied by the sports-data provider.
// The core never mutates teams; records are re-parsed on every use.
type Team struct {
	ID           string
	Name         string
	DisplayName  string
	Abbreviation string
	LogoURL      string
	Record       string
}

// Record holds the parsed win-loss counts of a team's record string.
type Record struct {
	Wins   int
	Losses int
}

// ParseRecord parses a "wins-losses" record string. Segments that fail to
// parse degrade to 0 rather than erroring; a malformed record reads as 0-0.
func ParseRecord(record string) Record {
	wins, losses := 0, 0
	parts := strings.SplitN(record, "-", 2)
	if len(parts) > 0 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			wins = v
		}
	}
	if len(parts) > 1 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			losses = v
		}
	}

	return Record{Wins: wins, Losses: losses}
}

// WinPct returns wins over games played, with a floor of one game so a
// 0-0 record reads as 0.0 instead of dividing by zero.
func (r Record) WinPct() float64 {
	games := r.Wins + r.Losses
	if games == 0 {
		games = 1
	}
	return float64(r.Wins) / float64(games)
}

// Winning reports whether the record has strictly more wins than losses.
func (r Record) Winning() bool {
	return r.Wins > r.Losses
}
