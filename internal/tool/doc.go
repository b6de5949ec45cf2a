// Package tool defines the static catalog of agent-facing tools. Each
// tool wraps exactly one registered command with a declared parameter
// schema; the catalog validates tool input and projects schemas into the
// OpenAI function-calling descriptor shape for LLM planners.
package tool
