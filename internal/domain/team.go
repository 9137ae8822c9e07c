package domain

// Team identifies one of the fixed catalog teams.
type Team string

const (
	TeamTurkis  Team = "turkis"
	TeamOransje Team = "oransje"
	TeamGronn   Team = "gronn"
	TeamSvart   Team = "svart"
	TeamRod     Team = "rod"
	TeamBla     Team = "bla"
)

// TeamInfo carries presentation metadata for a catalog team.
type TeamInfo struct {
	ID    Team   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// catalog is the closed set of selectable teams, in canonical order.
// Catalog order doubles as the stable tiebreak for standings.
var catalog = []TeamInfo{
	{ID: TeamTurkis, Name: "Turkis", Color: "#06b6d4"},
	{ID: TeamOransje, Name: "Oransje", Color: "#f97316"},
	{ID: TeamGronn, Name: "Grønn", Color: "#22c55e"},
	{ID: TeamSvart, Name: "Svart", Color: "#1f2937"},
	{ID: TeamRod, Name: "Rød", Color: "#ef4444"},
	{ID: TeamBla, Name: "Blå", Color: "#3b82f6"},
}

// Catalog returns the full ordered team catalog.
func Catalog() []TeamInfo {
	result := make([]TeamInfo, len(catalog))
	copy(result, catalog)
	return result
}

// CatalogTeams returns the catalog team identifiers in canonical order.
func CatalogTeams() []Team {
	result := make([]Team, 0, len(catalog))
	for _, info := range catalog {
		result = append(result, info.ID)
	}
	return result
}

// Valid reports whether the team belongs to the catalog.
func (t Team) Valid() bool {
	for _, info := range catalog {
		if info.ID == t {
			return true
		}
	}
	return false
}

// Info returns the catalog metadata for the team.
func (t Team) Info() (TeamInfo, bool) {
	for _, info := range catalog {
		if info.ID == t {
			return info, true
		}
	}
	return TeamInfo{}, false
}

// CatalogIndex returns the team's position in the canonical catalog order,
// or len(catalog) for unknown teams so they sort last.
func CatalogIndex(t Team) int {
	for i, info := range catalog {
		if info.ID == t {
			return i
		}
	}
	return len(catalog)
}

// DefaultActiveTeams is the active set used when none has been persisted.
func DefaultActiveTeams() []Team {
	return []Team{TeamTurkis, TeamOransje, TeamGronn, TeamSvart}
}

// ZeroScores returns a score map with every catalog team initialized to zero.
// A full map avoids sparse lookups standing in for "no goals yet".
func ZeroScores() map[Team]int {
	scores := make(map[Team]int, len(catalog))
	for _, info := range catalog {
		scores[info.ID] = 0
	}
	return scores
}
