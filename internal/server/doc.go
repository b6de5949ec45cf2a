// Package server exposes a read-only HTTP inspection API over the
// governance core: registered commands, audit history, the tool
// catalog, and plan state. It exists for the desktop UI's debug panel;
// governance mutations (registration, approval, execution) stay
// in-process and are deliberately not reachable over HTTP.
package server
