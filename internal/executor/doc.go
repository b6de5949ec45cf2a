// Package executor drives the propose -> approve -> execute workflow for
// agent-proposed work. It builds plans from proposed tool invocations,
// tracks per-step and per-plan approval state, previews diffs, and walks
// approved steps sequentially through the command registry.
//
// Execution is strictly in step order and fail-fast: agent-proposed
// steps frequently have data dependencies, so running them out of order
// or continuing past a failure risks an inconsistent vault. Rejecting
// any single step rejects the whole plan for the same reason; steps
// cannot declare independence from each other, so the conservative
// all-or-nothing gate stands.
package executor
