package command

import "fmt"

// NotFoundError is returned when Execute is called with an unregistered
// command ID. Suggestion carries the closest registered ID, if any.
type NotFoundError struct {
	ID         string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Command %q not found", e.ID)
}

// IsNotFound checks whether an error is a command lookup failure.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
