package search

import (
	"context"
	"sync"

	syncsvc "github.com/altenburg/minierp/internal/service/sync"
)

// Controller holds the current filter text and keeps the sync engine's
// view scoped to it. Only real changes trigger a refresh.
type Controller struct {
	mu     sync.Mutex
	filter string
	engine *syncsvc.Engine
}

// NewController wires a controller onto the given engine.
func NewController(engine *syncsvc.Engine) *Controller {
	return &Controller{engine: engine}
}

// SetFilter stores the new text and triggers a scoped refresh when it
// differs from the current one.
func (c *Controller) SetFilter(ctx context.Context, text string) error {
	c.mu.Lock()
	if text == c.filter {
		c.mu.Unlock()
		return nil
	}
	c.filter = text
	c.mu.Unlock()

	return c.engine.Refresh(ctx, text)
}

// Filter returns the current filter text.
func (c *Controller) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Activate runs the initial scoped refresh, used right after a login
// submission so the optimistic session is put to the test immediately.
func (c *Controller) Activate(ctx context.Context) error {
	return c.engine.Refresh(ctx, c.Filter())
}
