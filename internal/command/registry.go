package command

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/quillnotes/quill/internal/audit"
	"github.com/quillnotes/quill/internal/event"
	"github.com/quillnotes/quill/internal/logging"
	"github.com/quillnotes/quill/pkg/types"
)

// maxSuggestDistance bounds the edit distance for "did you mean" hints.
const maxSuggestDistance = 3

// Listener receives a notification for every execution attempt.
type Listener func(types.CommandExecutedEvent)

// ListenerRef is a handle to a registered listener.
type ListenerRef struct {
	unsub func()
	once  sync.Once
}

// Unregister removes the listener. Safe to call more than once.
func (r *ListenerRef) Unregister() {
	r.once.Do(r.unsub)
}

// Stats summarizes the registered commands.
type Stats struct {
	Total       int            `json:"total"`
	ByCategory  map[string]int `json:"byCategory"`
	WithHotkeys int            `json:"withHotkeys"`
}

// Registry holds named commands and dispatches executions. Instances
// are constructed explicitly and passed to collaborators; there is no
// package-level singleton.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*types.Command

	auditLog *audit.Log
	bus      *event.Bus
	log      zerolog.Logger
}

// NewRegistry creates a registry writing to the given audit log and
// notifying listeners through the given bus. A nil bus gets a private one.
func NewRegistry(auditLog *audit.Log, bus *event.Bus) *Registry {
	if bus == nil {
		bus = event.NewBus()
	}
	return &Registry{
		commands: make(map[string]*types.Command),
		auditLog: auditLog,
		bus:      bus,
		log:      logging.Component("registry"),
	}
}

// Register inserts a command. Registering an ID that already exists is a
// no-op, not an error, so collaborators can re-register during UI
// re-mounts without clobbering the first registration.
func (r *Registry) Register(cmd *types.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.ID]; exists {
		r.log.Debug().Str("commandId", cmd.ID).Msg("duplicate registration ignored")
		return
	}
	r.commands[cmd.ID] = cmd
	r.log.Debug().Str("commandId", cmd.ID).Str("category", cmd.Category).Msg("command registered")
}

// Unregister removes a command, reporting whether it was present.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[id]; !ok {
		return false
	}
	delete(r.commands, id)
	return true
}

// Clear removes all commands.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = make(map[string]*types.Command)
}

// Get retrieves a command by ID.
func (r *Registry) Get(id string) (*types.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Has reports whether a command is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// All returns every registered command, sorted by ID.
func (r *Registry) All() []*types.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]*types.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].ID < cmds[j].ID })
	return cmds
}

// ByCategory returns the commands in one category, sorted by ID.
func (r *Registry) ByCategory(category string) []*types.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cmds []*types.Command
	for _, cmd := range r.commands {
		if cmd.Category == category {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].ID < cmds[j].ID })
	return cmds
}

// Stats returns counts over the registered commands.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		Total:      len(r.commands),
		ByCategory: make(map[string]int),
	}
	for _, cmd := range r.commands {
		if cmd.Category != "" {
			stats.ByCategory[cmd.Category]++
		}
		if len(cmd.Hotkeys) > 0 {
			stats.WithHotkeys++
		}
	}
	return stats
}

// OnCommandExecuted registers a listener called synchronously, in
// registration order, for every execution attempt (including not-found).
func (r *Registry) OnCommandExecuted(fn Listener) *ListenerRef {
	unsub := r.bus.Subscribe(event.CommandExecuted, func(e event.Event) {
		if ev, ok := e.Data.(types.CommandExecutedEvent); ok {
			fn(ev)
		}
	})
	return &ListenerRef{unsub: unsub}
}

// Execute looks up and invokes a command. The source is recorded
// verbatim in listener and audit events. Callback failures are returned
// to the caller unchanged, after bookkeeping has completed; an
// unregistered ID yields a NotFoundError, a failed listener event, and a
// failed audit entry.
func (r *Registry) Execute(ctx context.Context, id string, source types.Source, args ...any) (result any, err error) {
	r.mu.RLock()
	cmd, ok := r.commands[id]
	r.mu.RUnlock()

	if !ok {
		nf := &NotFoundError{ID: id, Suggestion: r.suggest(id)}
		r.record(id, source, args, true, nf)
		log := r.log.Warn().Str("commandId", id).Str("source", string(source))
		if nf.Suggestion != "" {
			log = log.Str("didYouMean", nf.Suggestion)
		}
		log.Msg("command not found")
		return nil, nf
	}

	start := time.Now()

	// Bookkeeping is deferred so it runs on the success and failure
	// paths alike; a failing callback cannot skip it.
	defer func() {
		elapsed := time.Since(start)
		r.record(id, source, args, cmd.Audited(), err)
		r.log.Debug().
			Str("commandId", id).
			Str("source", string(source)).
			Bool("success", err == nil).
			Dur("elapsed", elapsed).
			Msg("command executed")
	}()

	result, err = cmd.Callback(ctx, args...)
	return result, err
}

// record notifies listeners and writes the audit entry for one attempt.
func (r *Registry) record(id string, source types.Source, args []any, audited bool, execErr error) {
	now := time.Now().UnixMilli()

	r.bus.PublishSync(event.Event{
		Type: event.CommandExecuted,
		Data: types.CommandExecutedEvent{
			CommandID: id,
			Source:    source,
			Timestamp: now,
			Success:   execErr == nil,
			Args:      args,
		},
	})

	if !audited || r.auditLog == nil {
		return
	}

	ev := types.AuditEvent{
		Timestamp: now,
		CommandID: id,
		Source:    source,
		Success:   execErr == nil,
	}
	if execErr != nil {
		ev.Error = execErr.Error()
	}
	if len(args) > 0 {
		ev.Metadata = map[string]any{"args": args}
	}
	r.auditLog.Record(ev)
}

// suggest returns the registered ID closest to the given one, if any is
// within maxSuggestDistance edits.
func (r *Registry) suggest(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := ""
	bestDist := maxSuggestDistance + 1
	for candidate := range r.commands {
		if d := levenshtein.ComputeDistance(id, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
