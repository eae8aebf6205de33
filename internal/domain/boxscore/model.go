package boxscore

import "strconv"

// StatLine maps provider stat labels (PTS, REB, YDS, ...) to numeric values.
type StatLine map[string]float64

// AthleteLine is one player's line inside a team's box score.
type AthleteLine struct {
	AthleteID string
	Name      string
	Position  string
	Stats     StatLine
}

// TeamBox groups the athlete lines for one side of a game.
type TeamBox struct {
	TeamID   string
	Athletes []AthleteLine
}

// BoxScore is the provider's per-game stat summary.
type BoxScore struct {
	GameID string
	Teams  []TeamBox
}

// BuildStatLine zips the provider's parallel label/value arrays into a stat
// line. Values that fail to parse as numbers are skipped, as are labels
// beyond the shorter of the two arrays.
func BuildStatLine(labels, values []string) StatLine {
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}

	line := make(StatLine, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			continue
		}
		line[labels[i]] = v
	}
	return line
}

// Get returns the value for a label, 0 when absent.
func (s StatLine) Get(label string) float64 {
	return s[label]
}
