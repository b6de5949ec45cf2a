// Package types defines the shared data model for the Quill command
// governance core: commands, audit events, agent tool schemas, and plans.
package types

import "context"

// Source identifies which kind of caller triggered a command execution.
type Source string

const (
	SourceUI     Source = "ui"
	SourcePlugin Source = "plugin"
	SourceAgent  Source = "agent"
)

// CommandCallback is the function invoked when a command executes.
// Collaborators supply it at registration time; the core treats it as
// opaque and only observes success or failure. Commands bound to agent
// tools receive their validated input map as the single argument.
type CommandCallback func(ctx context.Context, args ...any) (any, error)

// Hotkey is a single key binding for a command.
type Hotkey struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// Command is a named operation held by the registry. The registry keys
// commands by ID; ownership stays with the collaborator that registered it.
type Command struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Label       string          `json:"label,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Description string          `json:"description,omitempty"`
	Callback    CommandCallback `json:"-"`
	Hotkeys     []Hotkey        `json:"hotkeys,omitempty"`
	Category    string          `json:"category,omitempty"`

	// Audit controls whether executions are recorded in the audit log.
	// Nil means true.
	Audit *bool `json:"audit,omitempty"`
}

// Audited reports whether executions of this command are recorded.
func (c *Command) Audited() bool {
	return c.Audit == nil || *c.Audit
}

// CommandExecutedEvent is the in-memory notification delivered to
// listeners after every execution attempt, including not-found ones.
// It is never persisted.
type CommandExecutedEvent struct {
	CommandID string `json:"commandId"`
	Source    Source `json:"source"`
	Timestamp int64  `json:"timestamp"`
	Success   bool   `json:"success"`
	Args      []any  `json:"args,omitempty"`
}
