package metrics

// Attribute keys shared by the otel instruments.
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrTeam    = "team"
	AttrFrom    = "from"
	AttrTo      = "to"
	AttrOutcome = "outcome"
	AttrOp      = "op"
)

// Match outcome attribute values.
const (
	OutcomeRegulation  = "regulation"
	OutcomeSuddenDeath = "sudden_death"
)
