package executor

import "fmt"

// NotFoundError reports an unknown plan or step ID. It is returned by
// the pure mutation operations, where an unknown ID is a caller bug
// rather than a workflow outcome.
type NotFoundError struct {
	Kind string // "plan" or "step"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// PreconditionError reports an operation applied to a plan or step that
// is not in the required state.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}
