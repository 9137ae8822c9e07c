package stats

import (
	"math"
	"sort"
	"time"

	"fredagsliga-service/internal/domain"
	"fredagsliga-service/internal/timeutil"
)

// TeamStats is the derived per-team aggregate. Never persisted; recomputed
// from the history log on every query.
type TeamStats struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	GoalsFor      int `json:"goalsFor"`
	GoalsAgainst  int `json:"goalsAgainst"`
	MatchesPlayed int `json:"matchesPlayed"`
}

// GoalDifference returns goals for minus goals against.
func (s TeamStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// WinRatePercent returns wins over matches played as a rounded percent.
// An unplayed team rates 0.
func (s TeamStats) WinRatePercent() int {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return int(math.Round(float64(s.Wins) / float64(s.MatchesPlayed) * 100))
}

// Filter restricts aggregation to matching records.
type Filter func(domain.MatchRecord) bool

// OnDay keeps records from the same calendar day as the reference time.
func OnDay(day time.Time) Filter {
	return func(record domain.MatchRecord) bool {
		return timeutil.SameDay(day, record.Date)
	}
}

// Aggregate computes per-team aggregates over the records, every catalog
// team zero-initialized. A nil filter keeps everything. Pure function of
// its inputs.
func Aggregate(records []domain.MatchRecord, filter Filter) map[domain.Team]TeamStats {
	result := make(map[domain.Team]TeamStats, len(domain.CatalogTeams()))
	for _, team := range domain.CatalogTeams() {
		result[team] = TeamStats{}
	}

	for _, record := range records {
		if filter != nil && !filter(record) {
			continue
		}

		if winner, ok := result[record.Winner]; ok {
			winner.Wins++
			winner.GoalsFor += record.WinnerScore
			winner.GoalsAgainst += record.LoserScore
			winner.MatchesPlayed++
			result[record.Winner] = winner
		}
		if loser, ok := result[record.Loser]; ok {
			loser.Losses++
			loser.GoalsFor += record.LoserScore
			loser.GoalsAgainst += record.WinnerScore
			loser.MatchesPlayed++
			result[record.Loser] = loser
		}
	}
	return result
}

// Standing is one ranked row of the standings table.
type Standing struct {
	Team           domain.Team `json:"team"`
	Wins           int         `json:"wins"`
	Losses         int         `json:"losses"`
	GoalsFor       int         `json:"goalsFor"`
	GoalsAgainst   int         `json:"goalsAgainst"`
	GoalDifference int         `json:"goalDifference"`
	MatchesPlayed  int         `json:"matchesPlayed"`
	WinRatePercent int         `json:"winRatePercent"`
}

// Rankings orders teams by descending wins, then descending goal difference,
// then catalog order. Teams with no matches are excluded.
func Rankings(aggregates map[domain.Team]TeamStats) []Standing {
	standings := make([]Standing, 0, len(aggregates))
	for _, team := range domain.CatalogTeams() {
		s, ok := aggregates[team]
		if !ok || s.MatchesPlayed == 0 {
			continue
		}
		standings = append(standings, Standing{
			Team:           team,
			Wins:           s.Wins,
			Losses:         s.Losses,
			GoalsFor:       s.GoalsFor,
			GoalsAgainst:   s.GoalsAgainst,
			GoalDifference: s.GoalDifference(),
			MatchesPlayed:  s.MatchesPlayed,
			WinRatePercent: s.WinRatePercent(),
		})
	}

	// Catalog iteration above seeds the slice in catalog order; the stable
	// sort preserves it for teams equal on both keys.
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].GoalDifference > standings[j].GoalDifference
	})
	return standings
}

// Summary aggregates the whole log for the overview panel.
type Summary struct {
	MatchesPlayed          int `json:"matchesPlayed"`
	AverageDurationMinutes int `json:"averageDurationMinutes"`
	AverageGoalsPerMatch   int `json:"averageGoalsPerMatch"`
}

// Summarize computes overview figures: match count, rounded average match
// duration, and rounded average total goals per match.
func Summarize(records []domain.MatchRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	totalDuration := 0
	totalGoals := 0
	for _, record := range records {
		totalDuration += record.DurationMinutes
		totalGoals += record.WinnerScore + record.LoserScore
	}

	count := float64(len(records))
	return Summary{
		MatchesPlayed:          len(records),
		AverageDurationMinutes: int(math.Round(float64(totalDuration) / count)),
		AverageGoalsPerMatch:   int(math.Round(float64(totalGoals) / count)),
	}
}
