package types

// ToolParam describes one parameter of an agent tool.
type ToolParam struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// ToolSchema is a static descriptor for an agent-facing tool. Each tool
// wraps exactly one registered command; the catalog defines all schemas
// once at process start and never mutates them.
type ToolSchema struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ToolParam `json:"parameters"`
	CommandID   string               `json:"commandId"`
}
