package api

import (
	"context"
	"sync"

	"github.com/mr1hm/go-quake-viewer/internal/viewer"
)

// Controls is the page's dataset selector and sort button. Handlers are bound
// by the coordinator once the view is ready; until then every action reports
// viewer.ErrNotReady.
type Controls struct {
	mu       sync.RWMutex
	onChange func(ctx context.Context, value string) error
	onClick  func(ctx context.Context) error
}

func NewControls() *Controls {
	return &Controls{}
}

func (c *Controls) BindDatasetSelect(fn func(ctx context.Context, value string) error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
	return true
}

func (c *Controls) BindSortButton(fn func(ctx context.Context) error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClick = fn
	return true
}

func (c *Controls) Change(ctx context.Context, value string) error {
	c.mu.RLock()
	fn := c.onChange
	c.mu.RUnlock()
	if fn == nil {
		return viewer.ErrNotReady
	}
	return fn(ctx, value)
}

func (c *Controls) Click(ctx context.Context) error {
	c.mu.RLock()
	fn := c.onClick
	c.mu.RUnlock()
	if fn == nil {
		return viewer.ErrNotReady
	}
	return fn(ctx)
}
