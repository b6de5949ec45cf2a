// Package mcp projects the agent tool catalog over the Model Context
// Protocol so MCP-speaking agents propose work through the same
// governed pipeline as everything else. A tool call does not execute
// anything: it creates a single-step pending plan and reports the plan
// ID, preserving the propose -> approve -> execute gate.
package mcp
