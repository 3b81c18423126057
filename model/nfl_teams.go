package model

import (
	"strings"
)

type NFLTeam struct {
	name   string
	loc    string
	mascot string
	alt    []string // other abbreviations seen in exports, e.g. JAX for JAC
}

func (t *NFLTeam) String() string {
	return t.name
}

var (
	TEAM_FA = &NFLTeam{name: "FA"}

	// NFC
	TEAM_ARI = &NFLTeam{name: "ARI", loc: "Arizona", mascot: "Cardinals"}
	TEAM_ATL = &NFLTeam{name: "ATL", loc: "Atlanta", mascot: "Falcons"}
	TEAM_CAR = &NFLTeam{name: "CAR", loc: "Carolina", mascot: "Panthers"}
	TEAM_CHI = &NFLTeam{name: "CHI", loc: "Chicago", mascot: "Bears"}
	TEAM_DAL = &NFLTeam{name: "DAL", loc: "Dallas", mascot: "Cowboys"}
	TEAM_DET = &NFLTeam{name: "DET", loc: "Detroit", mascot: "Lions"}
	TEAM_GB  = &NFLTeam{name: "GB", loc: "Green Bay", mascot: "Packers", alt: []string{"GBP"}}
	TEAM_LAR = &NFLTeam{name: "LAR", loc: "Los Angeles", mascot: "Rams", alt: []string{"LA"}}
	TEAM_MIN = &NFLTeam{name: "MIN", loc: "Minnesota", mascot: "Vikings"}
	TEAM_NO  = &NFLTeam{name: "NO", loc: "New Orleans", mascot: "Saints", alt: []string{"NOS"}}
	TEAM_NYG = &NFLTeam{name: "NYG", loc: "New York", mascot: "Giants"}
	TEAM_PHI = &NFLTeam{name: "PHI", loc: "Philadelphia", mascot: "Eagles"}
	TEAM_SF  = &NFLTeam{name: "SF", loc: "San Francisco", mascot: "49ers", alt: []string{"SFO"}}
	TEAM_SEA = &NFLTeam{name: "SEA", loc: "Seattle", mascot: "Seahawks"}
	TEAM_TB  = &NFLTeam{name: "TB", loc: "Tampa Bay", mascot: "Buccaneers", alt: []string{"TBB"}}
	TEAM_WAS = &NFLTeam{name: "WAS", loc: "Washington", mascot: "Commanders", alt: []string{"WSH"}}

	// AFC
	TEAM_BAL = &NFLTeam{name: "BAL", loc: "Baltimore", mascot: "Ravens"}
	TEAM_BUF = &NFLTeam{name: "BUF", loc: "Buffalo", mascot: "Bills"}
	TEAM_CIN = &NFLTeam{name: "CIN", loc: "Cincinnati", mascot: "Bengals"}
	TEAM_CLE = &NFLTeam{name: "CLE", loc: "Cleveland", mascot: "Browns"}
	TEAM_DEN = &NFLTeam{name: "DEN", loc: "Denver", mascot: "Broncos"}
	TEAM_HOU = &NFLTeam{name: "HOU", loc: "Houston", mascot: "Texans"}
	TEAM_IND = &NFLTeam{name: "IND", loc: "Indianapolis", mascot: "Colts"}
	TEAM_JAX = &NFLTeam{name: "JAX", loc: "Jacksonville", mascot: "Jaguars", alt: []string{"JAC"}}
	TEAM_KC  = &NFLTeam{name: "KC", loc: "Kansas City", mascot: "Chiefs", alt: []string{"KCC"}}
	TEAM_LV  = &NFLTeam{name: "LV", loc: "Las Vegas", mascot: "Raiders", alt: []string{"LVR", "OAK"}}
	TEAM_LAC = &NFLTeam{name: "LAC", loc: "Los Angeles", mascot: "Chargers"}
	TEAM_MIA = &NFLTeam{name: "MIA", loc: "Miami", mascot: "Dolphins"}
	TEAM_NE  = &NFLTeam{name: "NE", loc: "New England", mascot: "Patriots", alt: []string{"NEP"}}
	TEAM_NYJ = &NFLTeam{name: "NYJ", loc: "New York", mascot: "Jets"}
	TEAM_PIT = &NFLTeam{name: "PIT", loc: "Pittsburgh", mascot: "Steelers"}
	TEAM_TEN = &NFLTeam{name: "TEN", loc: "Tennessee", mascot: "Titans"}

	teamMap = buildTeamMap()
)

// ParseTeam looks a team up by abbreviation or mascot, case-insensitively.
// Unknown values return TEAM_FA. Locations are not used as keys because
// New York and Los Angeles are ambiguous.
func ParseTeam(t string) *NFLTeam {
	if team, found := teamMap[strings.ToLower(strings.TrimSpace(t))]; found {
		return team
	}
	return TEAM_FA
}

// IsDefenseID reports whether a player id is really a team abbreviation, which
// is how the modern platform identifies team defenses.
func IsDefenseID(id string) bool {
	if len(id) < 2 || len(id) > 3 || strings.ToUpper(id) != id {
		return false
	}
	return ParseTeam(id) != TEAM_FA
}

func buildTeamMap() map[string]*NFLTeam {
	teams := []*NFLTeam{
		TEAM_ARI, TEAM_ATL, TEAM_CAR, TEAM_CHI, TEAM_DAL, TEAM_DET, TEAM_GB, TEAM_LAR,
		TEAM_MIN, TEAM_NO, TEAM_NYG, TEAM_PHI, TEAM_SF, TEAM_SEA, TEAM_TB, TEAM_WAS,
		TEAM_BAL, TEAM_BUF, TEAM_CIN, TEAM_CLE, TEAM_DEN, TEAM_HOU, TEAM_IND, TEAM_JAX,
		TEAM_KC, TEAM_LV, TEAM_LAC, TEAM_MIA, TEAM_NE, TEAM_NYJ, TEAM_PIT, TEAM_TEN,
	}

	m := make(map[string]*NFLTeam)
	for _, t := range teams {
		m[strings.ToLower(t.name)] = t
		m[strings.ToLower(t.mascot)] = t
		for _, a := range t.alt {
			m[strings.ToLower(a)] = t
		}
	}
	return m
}
