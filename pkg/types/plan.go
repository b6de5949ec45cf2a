package types

// Status is the lifecycle state shared by plans and their steps.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusExecuting Status = "executing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRejected  Status = "rejected"
)

// Terminal reports whether a status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRejected
}

// Plan is an ordered workflow of proposed steps awaiting approval and
// execution. Plans are kept in memory until explicitly deleted.
type Plan struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Steps       []*ProposedStep `json:"steps"`
	Status      Status          `json:"status"`
	// CreatedAt and CompletedAt are epoch milliseconds.
	CreatedAt   int64 `json:"createdAt"`
	CompletedAt int64 `json:"completedAt,omitempty"`
	// Duration is wall time in milliseconds from creation to completion.
	Duration int64 `json:"duration,omitempty"`
}

// ProposedStep is one unit of work within a plan. Its Order is fixed at
// creation and always matches its index in the plan's step list.
type ProposedStep struct {
	ID          string         `json:"id"`
	ToolID      string         `json:"toolId"`
	Input       map[string]any `json:"input"`
	Description string         `json:"description"`
	Status      Status         `json:"status"`
	Result      any            `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
	// Diff is a best-effort textual preview of what the step would change.
	Diff        string `json:"diff,omitempty"`
	Order       int    `json:"order"`
	CreatedAt   int64  `json:"createdAt"`
	CompletedAt int64  `json:"completedAt,omitempty"`
}

// StepResult is the structured outcome of executing one step. Failures
// of the underlying callback are an expected workflow outcome, so they
// are reported here rather than as errors.
type StepResult struct {
	Success  bool   `json:"success"`
	StepID   string `json:"stepId,omitempty"`
	Output   any    `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
	Duration int64  `json:"duration,omitempty"`
}
