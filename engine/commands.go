package engine

import "github.com/spaghettifunk/ember/engine/state"

// Commands queues resources to add to the live state. A handler borrows the
// live state for its whole call, so it writes into this scratch state
// instead; the App merges it after the running schedule finishes.
type Commands struct {
	pending *state.State
}

// Defer queues value as the resource of type T. It becomes visible to
// handlers of the next schedule that runs.
func Defer[T any](c *Commands, value T) {
	if c.pending == nil {
		c.pending = state.New()
	}
	state.Add(c.pending, value)
}

// Len is the number of queued resources.
func (c *Commands) Len() int {
	if c.pending == nil {
		return 0
	}
	return c.pending.Len()
}

func (c *Commands) take() *state.State {
	pending := c.pending
	c.pending = nil
	return pending
}
