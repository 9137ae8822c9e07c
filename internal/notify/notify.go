package notify

// Token identifies one scheduled alarm. Zero is never a live token.
type Token uint64

// Scheduler fires a one-shot alarm after a number of seconds. At most one
// alarm is outstanding; scheduling a new one invalidates any prior token.
type Scheduler interface {
	Schedule(afterSeconds int) Token
	Cancel(token Token)
}

// Feedback receives the fire-and-forget match-end signal. Implementations
// must tolerate being called from the clock goroutine.
type Feedback interface {
	MatchEnded()
}
