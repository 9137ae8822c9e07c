package domain

import "time"

// MatchRecord is one completed match, immutable once written to history.
// JSON field names match the persisted wire shape.
type MatchRecord struct {
	Date            time.Time `json:"date"`
	Winner          Team      `json:"winner"`
	Loser           Team      `json:"loser"`
	WinnerScore     int       `json:"winnerScore"`
	LoserScore      int       `json:"loserScore"`
	DurationMinutes int       `json:"duration"`
}

// Outcome names the winner and loser of a concluded match.
type Outcome struct {
	Winner Team `json:"winner"`
	Loser  Team `json:"loser"`
}
