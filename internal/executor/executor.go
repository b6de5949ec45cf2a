package executor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/quillnotes/quill/internal/command"
	"github.com/quillnotes/quill/internal/event"
	"github.com/quillnotes/quill/internal/logging"
	"github.com/quillnotes/quill/internal/tool"
	"github.com/quillnotes/quill/pkg/types"
)

// StepRequest is one proposed tool invocation used to build a plan.
type StepRequest struct {
	ToolID      string         `json:"toolId"`
	Input       map[string]any `json:"input"`
	Description string         `json:"description,omitempty"`
}

// Stats summarizes the held plans.
type Stats struct {
	Total    int                  `json:"total"`
	ByStatus map[types.Status]int `json:"byStatus"`
}

// Executor owns the plan map and drives approved steps through the
// command registry. Instances are constructed explicitly and shared by
// reference; there is no package-level singleton.
type Executor struct {
	mu    sync.RWMutex
	plans map[string]*types.Plan
	seq   []string // creation order

	registry *command.Registry
	catalog  *tool.Catalog
	bus      *event.Bus
	log      zerolog.Logger

	diffMaxChars int
}

// New creates an executor dispatching through the given registry and
// validating against the given catalog. A nil bus gets a private one.
func New(registry *command.Registry, catalog *tool.Catalog, bus *event.Bus) *Executor {
	if bus == nil {
		bus = event.NewBus()
	}
	return &Executor{
		plans:        make(map[string]*types.Plan),
		registry:     registry,
		catalog:      catalog,
		bus:          bus,
		log:          logging.Component("executor"),
		diffMaxChars: DefaultDiffMaxChars,
	}
}

// SetDiffMaxChars caps the length of diff previews.
func (e *Executor) SetDiffMaxChars(n int) {
	if n > 0 {
		e.diffMaxChars = n
	}
}

// CreatePlan builds a pending plan from the proposed steps, preserving
// their input order. Step IDs are namespaced by the plan ID.
func (e *Executor) CreatePlan(description string, reqs []StepRequest) *types.Plan {
	now := time.Now().UnixMilli()
	planID := ulid.Make().String()

	steps := make([]*types.ProposedStep, len(reqs))
	for i, req := range reqs {
		desc := req.Description
		if desc == "" {
			desc = req.ToolID
		}
		steps[i] = &types.ProposedStep{
			ID:          fmt.Sprintf("%s-step-%d", planID, i),
			ToolID:      req.ToolID,
			Input:       req.Input,
			Description: desc,
			Status:      types.StatusPending,
			Order:       i,
			CreatedAt:   now,
		}
	}

	plan := &types.Plan{
		ID:          planID,
		Description: description,
		Steps:       steps,
		Status:      types.StatusPending,
		CreatedAt:   now,
	}

	e.mu.Lock()
	e.plans[planID] = plan
	e.seq = append(e.seq, planID)
	e.mu.Unlock()

	e.log.Info().Str("planId", planID).Int("steps", len(steps)).Msg("plan created")
	e.bus.PublishSync(event.Event{Type: event.PlanCreated, Data: plan})
	return plan
}

// GetPlan retrieves a plan by ID.
func (e *Executor) GetPlan(id string) (*types.Plan, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	plan, ok := e.plans[id]
	return plan, ok
}

// AllPlans returns every held plan, newest first.
func (e *Executor) AllPlans() []*types.Plan {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*types.Plan, 0, len(e.seq))
	for i := len(e.seq) - 1; i >= 0; i-- {
		out = append(out, e.plans[e.seq[i]])
	}
	return out
}

// GetStep retrieves one step of a plan.
func (e *Executor) GetStep(planID, stepID string) (*types.ProposedStep, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	step, _, err := e.lookupLocked(planID, stepID)
	if err != nil {
		return nil, false
	}
	return step, true
}

// lookupLocked finds a plan and step; e.mu must be held.
func (e *Executor) lookupLocked(planID, stepID string) (*types.ProposedStep, *types.Plan, error) {
	plan, ok := e.plans[planID]
	if !ok {
		return nil, nil, &NotFoundError{Kind: "plan", ID: planID}
	}
	for _, step := range plan.Steps {
		if step.ID == stepID {
			return step, plan, nil
		}
	}
	return nil, plan, &NotFoundError{Kind: "step", ID: stepID}
}

// ApproveStep marks one step approved. When no step is left pending,
// the plan is promoted to approved.
func (e *Executor) ApproveStep(planID, stepID string) error {
	e.mu.Lock()

	step, plan, err := e.lookupLocked(planID, stepID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if step.Status.Terminal() {
		e.mu.Unlock()
		return &PreconditionError{Message: fmt.Sprintf("step %q cannot be approved (status: %s)", stepID, step.Status)}
	}

	step.Status = types.StatusApproved
	promoted := e.promoteIfReadyLocked(plan)
	e.mu.Unlock()

	if promoted {
		e.bus.PublishSync(event.Event{Type: event.PlanApproved, Data: plan})
	}
	return nil
}

// promoteIfReadyLocked moves a pending plan to approved once nothing is
// left merely pending. e.mu must be held.
func (e *Executor) promoteIfReadyLocked(plan *types.Plan) bool {
	if plan.Status != types.StatusPending {
		return false
	}
	for _, step := range plan.Steps {
		if step.Status == types.StatusPending || step.Status == types.StatusRejected {
			return false
		}
	}
	plan.Status = types.StatusApproved
	return true
}

// RejectStep marks one step rejected and the whole plan with it.
// Rejection of any step is fatal to the plan: partially approved plans
// have no well-defined skip-and-continue semantics when steps are
// causally linked.
func (e *Executor) RejectStep(planID, stepID, reason string) error {
	e.mu.Lock()

	step, plan, err := e.lookupLocked(planID, stepID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if step.Status.Terminal() {
		e.mu.Unlock()
		return &PreconditionError{Message: fmt.Sprintf("step %q cannot be rejected (status: %s)", stepID, step.Status)}
	}

	now := time.Now().UnixMilli()
	step.Status = types.StatusRejected
	if reason != "" {
		step.Error = reason
	}
	step.CompletedAt = now

	plan.Status = types.StatusRejected
	plan.CompletedAt = now
	e.mu.Unlock()

	e.log.Info().Str("planId", planID).Str("stepId", stepID).Str("reason", reason).Msg("plan rejected")
	e.bus.PublishSync(event.Event{Type: event.PlanRejected, Data: plan})
	return nil
}

// ApproveAll approves every step still pending and marks the plan
// approved.
func (e *Executor) ApproveAll(planID string) error {
	e.mu.Lock()

	plan, ok := e.plans[planID]
	if !ok {
		e.mu.Unlock()
		return &NotFoundError{Kind: "plan", ID: planID}
	}
	if plan.Status.Terminal() {
		e.mu.Unlock()
		return &PreconditionError{Message: fmt.Sprintf("plan %q cannot be approved (status: %s)", planID, plan.Status)}
	}

	for _, step := range plan.Steps {
		if step.Status == types.StatusPending {
			step.Status = types.StatusApproved
		}
	}
	plan.Status = types.StatusApproved
	e.mu.Unlock()

	e.bus.PublishSync(event.Event{Type: event.PlanApproved, Data: plan})
	return nil
}

// ExecuteStep runs one approved step through the registry. Workflow
// failures (unknown plan/step, unapproved step, missing command, failed
// callback) are reported in the result, never as an error: a failed
// step is an expected plan outcome, not a programming error.
func (e *Executor) ExecuteStep(ctx context.Context, planID, stepID string) *types.StepResult {
	e.mu.Lock()

	step, plan, err := e.lookupLocked(planID, stepID)
	if err != nil {
		e.mu.Unlock()
		return &types.StepResult{Success: false, StepID: stepID, Error: err.Error()}
	}
	if step.Status != types.StatusApproved {
		e.mu.Unlock()
		return &types.StepResult{
			Success: false,
			StepID:  stepID,
			Error:   fmt.Sprintf("step %q is not approved (status: %s)", stepID, step.Status),
		}
	}

	step.Status = types.StatusExecuting

	schema, ok := e.catalog.Get(step.ToolID)
	if !ok {
		return e.finishStepLocked(plan, step, nil, fmt.Errorf("tool %q not found in catalog", step.ToolID), 0)
	}
	if !e.registry.Has(schema.CommandID) {
		return e.finishStepLocked(plan, step, nil, fmt.Errorf("Command %q not found in registry", step.ToolID), 0)
	}
	if v := e.catalog.ValidateInput(step.ToolID, step.Input); !v.Valid {
		return e.finishStepLocked(plan, step, nil, fmt.Errorf("invalid input: %s", strings.Join(v.Errors, "; ")), 0)
	}
	input := e.catalog.WithDefaults(step.ToolID, step.Input)
	e.mu.Unlock()

	// The callback runs outside the lock; there is no timeout, so a
	// hung callback blocks plan progress indefinitely.
	start := time.Now()
	output, execErr := e.registry.Execute(ctx, schema.CommandID, types.SourceAgent, input)
	elapsed := time.Since(start).Milliseconds()

	e.mu.Lock()
	return e.finishStepLocked(plan, step, output, execErr, elapsed)
}

// finishStepLocked records a step outcome and the resulting plan
// transitions. e.mu must be held; it is released before events fire.
func (e *Executor) finishStepLocked(plan *types.Plan, step *types.ProposedStep, output any, execErr error, elapsed int64) *types.StepResult {
	now := time.Now().UnixMilli()
	step.CompletedAt = now

	var events []event.Event
	result := &types.StepResult{StepID: step.ID, Duration: elapsed}

	if execErr != nil {
		step.Status = types.StatusFailed
		step.Error = execErr.Error()
		result.Error = execErr.Error()

		plan.Status = types.StatusFailed
		plan.CompletedAt = now
		plan.Duration = now - plan.CreatedAt

		events = append(events,
			event.Event{Type: event.StepFailed, Data: step},
			event.Event{Type: event.PlanFailed, Data: plan},
		)
	} else {
		step.Status = types.StatusCompleted
		step.Result = output
		result.Success = true
		result.Output = output

		events = append(events, event.Event{Type: event.StepCompleted, Data: step})
		if e.planSettledLocked(plan) {
			plan.Status = types.StatusCompleted
			plan.CompletedAt = now
			plan.Duration = now - plan.CreatedAt
			events = append(events, event.Event{Type: event.PlanCompleted, Data: plan})
		}
	}
	e.mu.Unlock()

	for _, ev := range events {
		e.bus.PublishSync(ev)
	}
	return result
}

// planSettledLocked reports whether no step is left non-terminal.
func (e *Executor) planSettledLocked(plan *types.Plan) bool {
	for _, step := range plan.Steps {
		if !step.Status.Terminal() {
			return false
		}
	}
	return true
}

// ExecutePlan walks the plan's steps strictly in order, executing those
// currently approved and stopping at the first failure. It returns the
// results accumulated before the stop.
func (e *Executor) ExecutePlan(ctx context.Context, planID string) ([]*types.StepResult, error) {
	e.mu.Lock()
	plan, ok := e.plans[planID]
	if !ok {
		e.mu.Unlock()
		return nil, &NotFoundError{Kind: "plan", ID: planID}
	}
	if plan.Status != types.StatusApproved {
		e.mu.Unlock()
		return nil, &PreconditionError{Message: fmt.Sprintf("plan %q is not approved (status: %s)", planID, plan.Status)}
	}
	plan.Status = types.StatusExecuting
	stepIDs := make([]string, len(plan.Steps))
	for i, step := range plan.Steps {
		stepIDs[i] = step.ID
	}
	e.mu.Unlock()

	var results []*types.StepResult
	for _, stepID := range stepIDs {
		e.mu.RLock()
		step, _, err := e.lookupLocked(planID, stepID)
		approved := err == nil && step.Status == types.StatusApproved
		e.mu.RUnlock()
		if !approved {
			continue
		}

		res := e.ExecuteStep(ctx, planID, stepID)
		results = append(results, res)
		if !res.Success {
			break
		}
	}

	// Steps already terminal before this run can leave the plan
	// executing with nothing left to do.
	e.mu.Lock()
	if plan.Status == types.StatusExecuting {
		now := time.Now().UnixMilli()
		plan.Status = types.StatusCompleted
		plan.CompletedAt = now
		plan.Duration = now - plan.CreatedAt
		e.mu.Unlock()
		e.bus.PublishSync(event.Event{Type: event.PlanCompleted, Data: plan})
	} else {
		e.mu.Unlock()
	}

	return results, nil
}

// DeletePlan removes a plan, reporting whether it was present.
func (e *Executor) DeletePlan(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.plans[id]; !ok {
		return false
	}
	delete(e.plans, id)
	for i, pid := range e.seq {
		if pid == id {
			e.seq = append(e.seq[:i], e.seq[i+1:]...)
			break
		}
	}
	return true
}

// ClearPlans removes all plans.
func (e *Executor) ClearPlans() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.plans = make(map[string]*types.Plan)
	e.seq = nil
}

// Stats returns plan counts per status.
func (e *Executor) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := Stats{
		Total:    len(e.plans),
		ByStatus: make(map[types.Status]int),
	}
	for _, plan := range e.plans {
		stats.ByStatus[plan.Status]++
	}
	return stats
}
