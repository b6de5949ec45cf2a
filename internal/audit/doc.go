// Package audit keeps a bounded, append-only, in-memory record of every
// command invocation outcome. The log holds at most a fixed number of
// events; when full, the oldest entries are evicted first. Nothing is
// persisted across restarts unless explicitly exported to JSON.
package audit
