package event

// Type represents the type of event.
type Type string

const (
	CommandExecuted Type = "command.executed"
	PlanCreated     Type = "plan.created"
	PlanApproved    Type = "plan.approved"
	PlanRejected    Type = "plan.rejected"
	PlanCompleted   Type = "plan.completed"
	PlanFailed      Type = "plan.failed"
	StepCompleted   Type = "step.completed"
	StepFailed      Type = "step.failed"
)

// Event represents an event to be published.
type Event struct {
	Type Type `json:"type"`
	Data any  `json:"data"`
}
