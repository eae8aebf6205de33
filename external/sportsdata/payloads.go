package sportsdata

type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Date        string       `json:"date"`
	Competitors []competitor `json:"competitors"`
	Status      statusInfo   `json:"status"`
}

type competitor struct {
	HomeAway string       `json:"homeAway"`
	Score    string       `json:"score"`
	Team     teamInfo     `json:"team"`
	Records  []recordInfo `json:"records"`
}

type teamInfo struct {
	ID           string `json:"id"`
	Name         string `json:"shortDisplayName"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

type recordInfo struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

type statusInfo struct {
	Type struct {
		State     string `json:"state"`
		Completed bool   `json:"completed"`
	} `json:"type"`
}

type summaryEnvelope struct {
	Header struct {
		ID           string        `json:"id"`
		Competitions []competition `json:"competitions"`
	} `json:"header"`
	Boxscore struct {
		Players []playersBlock `json:"players"`
	} `json:"boxscore"`
}

type playersBlock struct {
	Team       teamInfo     `json:"team"`
	Statistics []statsGroup `json:"statistics"`
}

type statsGroup struct {
	Labels   []string       `json:"labels"`
	Athletes []athleteEntry `json:"athletes"`
}

type athleteEntry struct {
	Athlete struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Position    struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"position"`
	} `json:"athlete"`
	Stats []string `json:"stats"`
}

type newsEnvelope struct {
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Published   string `json:"published"`
	Links       struct {
		Web struct {
			Href string `json:"href"`
		} `json:"web"`
	} `json:"links"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Categories []struct {
		Type string `json:"type"`
		Team struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"team"`
	} `json:"categories"`
}
