package performance

import (
	"strconv"
	"strings"

	"github.com/pickrush/pickrush/internal/domain/boxscore"
	"github.com/pickrush/pickrush/internal/domain/game"
)

// Profile bundles the per-sport rules for player standout detection, stat
// headline building, and fantasy point scoring. Keeping these in one lookup
// table keyed by sport means adding a league touches exactly one place.
type Profile struct {
	Standout      func(boxscore.StatLine) bool
	Headline      func(boxscore.StatLine) string
	FantasyPoints func(boxscore.AthleteLine) float64
}

var profiles = map[game.Sport]Profile{
	game.SportBasketball: {
		Standout:      basketballStandout,
		Headline:      basketballHeadline,
		FantasyPoints: basketballFantasy,
	},
	game.SportFootball: {
		Standout:      footballStandout,
		Headline:      footballHeadline,
		FantasyPoints: footballFantasy,
	},
	game.SportHockey: {
		Standout:      hockeyStandout,
		Headline:      hockeyHeadline,
		FantasyPoints: hockeyFantasy,
	},
	game.SportBaseball: {
		Standout:      baseballStandout,
		Headline:      baseballHeadline,
		FantasyPoints: baseballFantasy,
	},
}

// For resolves the profile for a sport. Unknown sports return false and
// contribute no standouts or points.
func For(sport game.Sport) (Profile, bool) {
	p, ok := profiles[sport]
	return p, ok
}

func basketballStandout(s boxscore.StatLine) bool {
	if s.Get("PTS") >= 30 || s.Get("REB") >= 15 || s.Get("AST") >= 12 {
		return true
	}
	return s.Get("PTS") >= 25 && (s.Get("REB") >= 10 || s.Get("AST") >= 10)
}

func footballStandout(s boxscore.StatLine) bool {
	return s.Get("YDS") >= 300 || s.Get("TD") >= 3
}

func hockeyStandout(s boxscore.StatLine) bool {
	return s.Get("G") >= 3
}

func baseballStandout(s boxscore.StatLine) bool {
	return s.Get("HR") >= 3 || s.Get("RBI") >= 5
}

// statPart renders one "12 REB" headline fragment.
func statPart(s boxscore.StatLine, label string, min float64) (string, bool) {
	v := s.Get(label)
	if v < min {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + label, true
}

func joinParts(parts []string) string {
	if len(parts) == 0 {
		return "Great Game"
	}
	return strings.Join(parts, " | ")
}

func basketballHeadline(s boxscore.StatLine) string {
	var parts []string
	for _, rule := range []struct {
		label string
		min   float64
	}{
		{"PTS", 20}, {"REB", 10}, {"AST", 10}, {"STL", 3}, {"BLK", 3},
	} {
		if part, ok := statPart(s, rule.label, rule.min); ok {
			parts = append(parts, part)
		}
	}
	return joinParts(parts)
}

func footballHeadline(s boxscore.StatLine) string {
	var parts []string
	if part, ok := statPart(s, "YDS", 100); ok {
		parts = append(parts, part)
	}
	if part, ok := statPart(s, "TD", 2); ok {
		parts = append(parts, part)
	}
	return joinParts(parts)
}

func hockeyHeadline(s boxscore.StatLine) string {
	var parts []string
	if part, ok := statPart(s, "G", 2); ok {
		parts = append(parts, part)
	}
	if part, ok := statPart(s, "A", 2); ok {
		parts = append(parts, part)
	}
	return joinParts(parts)
}

func baseballHeadline(s boxscore.StatLine) string {
	var parts []string
	for _, rule := range []struct {
		label string
		min   float64
	}{
		{"HR", 1}, {"RBI", 3}, {"H", 3},
	} {
		if part, ok := statPart(s, rule.label, rule.min); ok {
			parts = append(parts, part)
		}
	}
	return joinParts(parts)
}

func basketballFantasy(a boxscore.AthleteLine) float64 {
	s := a.Stats
	return s.Get("PTS")*1.5 + s.Get("REB")*1.5 + s.Get("AST")*1.5 +
		s.Get("STL")*3 + s.Get("BLK")*3 - s.Get("TO")*1.5
}

func footballFantasy(a boxscore.AthleteLine) float64 {
	s := a.Stats
	switch strings.ToUpper(a.Position) {
	case "QB":
		return s.Get("PASS_YDS")*0.04 + s.Get("PASS_TD")*4 - s.Get("INT")*2 +
			s.Get("RUSH_YDS")*0.1 + s.Get("RUSH_TD")*6
	case "K":
		return s.Get("FG")*3 + s.Get("XP")
	default:
		return s.Get("RUSH_YDS")*0.1 + s.Get("REC_YDS")*0.1 + s.Get("REC") +
			(s.Get("RUSH_TD")+s.Get("REC_TD"))*6
	}
}

func hockeyFantasy(a boxscore.AthleteLine) float64 {
	s := a.Stats
	if strings.ToUpper(a.Position) == "G" {
		return s.Get("SV")*0.7 - s.Get("GA")*3.5 + s.Get("W")*6
	}
	return s.Get("G")*8 + s.Get("A")*5 + s.Get("SOG")*0.9 + s.Get("BLK")
}

func baseballFantasy(a boxscore.AthleteLine) float64 {
	s := a.Stats
	if strings.ToUpper(a.Position) == "P" {
		return s.Get("W")*8 + s.Get("SO")*0.5 + s.Get("SV")*5 -
			s.Get("L")*4 - s.Get("ER")*0.8 + s.Get("IP")*0.5 - s.Get("BB")*0.5
	}
	return s.Get("H")*1.5 + s.Get("HR")*4 + s.Get("RBI")*1.5 +
		s.Get("R")*1.5 + s.Get("SB")*3 + s.Get("BB")
}
