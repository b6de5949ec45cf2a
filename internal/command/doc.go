// Package command implements the dispatch core: a registry of named
// commands invoked uniformly by the UI, plugins, and the agent. Every
// execution attempt notifies listeners and, unless the command opts out,
// writes an audit entry; that bookkeeping runs whether the callback
// succeeds or fails.
package command
