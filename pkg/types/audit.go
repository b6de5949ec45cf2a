package types

// AuditEvent is an immutable record of one command execution attempt.
// Field names are the export/import wire contract; round-tripping through
// JSON must be lossless for every field, including the optional ones.
type AuditEvent struct {
	// Timestamp is epoch milliseconds.
	Timestamp int64  `json:"timestamp"`
	CommandID string `json:"commandId"`
	Source    Source `json:"source"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	// Metadata carries arbitrary JSON, typically the invocation arguments.
	Metadata map[string]any `json:"metadata,omitempty"`
}
