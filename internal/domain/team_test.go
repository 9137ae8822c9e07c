package domain

import "testing"

func TestCatalogOrderIsStable(t *testing.T) {
	teams := CatalogTeams()
	want := []Team{TeamTurkis, TeamOransje, TeamGronn, TeamSvart, TeamRod, TeamBla}

	if len(teams) != len(want) {
		t.Fatalf("expected %d catalog teams, got %d", len(want), len(teams))
	}
	for i, team := range want {
		if teams[i] != team {
			t.Fatalf("expected %s at index %d, got %s", team, i, teams[i])
		}
	}
}

func TestTeamValid(t *testing.T) {
	if !TeamGronn.Valid() {
		t.Fatalf("expected gronn to be a catalog team")
	}
	if Team("lilla").Valid() {
		t.Fatalf("expected lilla to be rejected")
	}
}

func TestCatalogIndexUnknownSortsLast(t *testing.T) {
	if got := CatalogIndex(TeamTurkis); got != 0 {
		t.Fatalf("expected turkis at index 0, got %d", got)
	}
	if got := CatalogIndex(Team("lilla")); got != len(catalog) {
		t.Fatalf("expected unknown team to sort last, got index %d", got)
	}
}

func TestZeroScoresCoversCatalog(t *testing.T) {
	scores := ZeroScores()
	if len(scores) != len(catalog) {
		t.Fatalf("expected %d entries, got %d", len(catalog), len(scores))
	}
	for _, team := range CatalogTeams() {
		value, ok := scores[team]
		if !ok {
			t.Fatalf("expected %s to be initialized", team)
		}
		if value != 0 {
			t.Fatalf("expected %s to start at 0, got %d", team, value)
		}
	}
}

func TestDefaultActiveTeams(t *testing.T) {
	teams := DefaultActiveTeams()
	if len(teams) != 4 {
		t.Fatalf("expected 4 default teams, got %d", len(teams))
	}
	for _, team := range teams {
		if !team.Valid() {
			t.Fatalf("default team %s not in catalog", team)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0].Name = "mutated"

	if got := Catalog()[0].Name; got != "Turkis" {
		t.Fatalf("expected catalog to be immutable, got %s", got)
	}
}
