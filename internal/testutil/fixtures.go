package testutil

import (
	"time"

	"fredagsliga-service/internal/domain"
)

// SampleRecord returns a finished-match fixture between the given teams.
func SampleRecord(winner, loser domain.Team, date time.Time) domain.MatchRecord {
	return domain.MatchRecord{
		Date:            date,
		Winner:          winner,
		Loser:           loser,
		WinnerScore:     3,
		LoserScore:      1,
		DurationMinutes: 5,
	}
}
