package session

import "github.com/zhubert/parley/internal/gateway"

// Gate is the single-slot holder for an action awaiting user approval. Only
// one decision can be outstanding at a time: while the gate is pending, new
// user messages and uploads are rejected rather than queued.
//
// Close clears the pending flag but keeps the stored action, because the
// caller still needs to forward it to the backend. Clear discards it.
type Gate struct {
	pending bool
	action  gateway.PendingAction
}

// Open stores the action and marks the gate pending.
func (g *Gate) Open(action gateway.PendingAction) {
	g.action = action
	g.pending = true
}

// Close clears the pending flag. The stored action is retained until Clear.
func (g *Gate) Close() {
	g.pending = false
}

// Clear discards the stored action.
func (g *Gate) Clear() {
	g.action = nil
}

// Pending reports whether a decision is outstanding.
func (g *Gate) Pending() bool {
	return g.pending
}

// Action returns the stored action, which may survive a Close.
func (g *Gate) Action() gateway.PendingAction {
	return g.action
}
