package input

import (
	"cropprices/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State  state.State
	Cursor int
}

// CurrentID returns the crop under the grid cursor
func (c *ModelContext) CurrentID() string {
	if c.Cursor < 0 || c.Cursor >= len(c.State.Visible) {
		return ""
	}
	return c.State.Visible[c.Cursor]
}

// IsFetching reports whether a prediction is in flight
func (c *ModelContext) IsFetching() bool {
	return c.State.IsFetching()
}

// Query returns the current search query
func (c *ModelContext) Query() string {
	return c.State.Query
}
