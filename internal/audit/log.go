package audit

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/quillnotes/quill/internal/logging"
	"github.com/quillnotes/quill/pkg/types"
)

// DefaultLimit is the event ceiling used when none is configured.
const DefaultLimit = 1000

// Log is the bounded audit log. Events are stored in insertion order;
// queries return them most-recent-first.
type Log struct {
	mu     sync.RWMutex
	events []types.AuditEvent
	limit  int
	log    zerolog.Logger
}

// New creates an audit log with the given event ceiling. A non-positive
// limit falls back to DefaultLimit.
func New(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{
		limit: limit,
		log:   logging.Component("audit"),
	}
}

// Record appends an event, evicting the oldest entries if the ceiling
// is exceeded. Events are never mutated after this point.
func (l *Log) Record(ev types.AuditEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, ev)
	if over := len(l.events) - l.limit; over > 0 {
		l.events = append([]types.AuditEvent(nil), l.events[over:]...)
	}
}

// Limit returns the configured event ceiling.
func (l *Log) Limit() int {
	return l.limit
}

// Count returns the number of retained events.
func (l *Log) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Clear discards all retained events.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// Events returns events most-recent-first, optionally filtered by exact
// command ID. A non-positive limit means no cap.
func (l *Log) Events(limit int, commandID string) []types.AuditEvent {
	return l.query(limit, func(ev types.AuditEvent) bool {
		return commandID == "" || ev.CommandID == commandID
	})
}

// EventsBySource returns events for one caller category, most-recent-first.
func (l *Log) EventsBySource(source types.Source, limit int) []types.AuditEvent {
	return l.query(limit, func(ev types.AuditEvent) bool {
		return ev.Source == source
	})
}

// FailedEvents returns failed events, most-recent-first.
func (l *Log) FailedEvents(limit int) []types.AuditEvent {
	return l.query(limit, func(ev types.AuditEvent) bool {
		return !ev.Success
	})
}

// EventsMatching returns events whose command ID matches a glob pattern
// (for example "file.*"), most-recent-first.
func (l *Log) EventsMatching(pattern string, limit int) ([]types.AuditEvent, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	return l.query(limit, func(ev types.AuditEvent) bool {
		ok, _ := doublestar.Match(pattern, ev.CommandID)
		return ok
	}), nil
}

func (l *Log) query(limit int, keep func(types.AuditEvent) bool) []types.AuditEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]types.AuditEvent, 0, len(l.events))
	for i := len(l.events) - 1; i >= 0; i-- {
		if !keep(l.events[i]) {
			continue
		}
		out = append(out, l.events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// ExportJSON serializes the full event list in insertion order.
func (l *Log) ExportJSON() (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := l.events
	if events == nil {
		events = []types.AuditEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("export audit log: %w", err)
	}
	return string(data), nil
}

// ImportJSON replaces the retained events with a previously exported
// list, preserving insertion order and re-applying the ceiling.
// Malformed input leaves existing state untouched.
func (l *Log) ImportJSON(data string) error {
	var events []types.AuditEvent
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		l.log.Error().Err(err).Msg("failed to import audit events")
		return fmt.Errorf("import audit log: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if over := len(events) - l.limit; over > 0 {
		events = events[over:]
	}
	l.events = events
	return nil
}
