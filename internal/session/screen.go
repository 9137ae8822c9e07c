package session

// Screen enumerates the states of a play session.
type Screen string

const (
	ScreenSelectingTeams  Screen = "selecting_teams"
	ScreenSettingDuration Screen = "setting_duration"
	ScreenInProgress      Screen = "in_progress"
	ScreenTieBreak        Screen = "tie_break"
	ScreenResult          Screen = "result"
)

func (s Screen) String() string {
	return string(s)
}
