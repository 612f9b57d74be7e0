// Package observability provides hooks for metrics, tracing, and logging of
// layout runs.
//
// Libraries in this module never depend on a metrics backend. Instead they
// emit events through small hook interfaces whose default implementations do
// nothing. An application registers its own implementations once at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, len(req.Intervals))
//	// ... assign lanes ...
//	observability.Layout().OnLayoutComplete(ctx, LayoutEvent{...}, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutEvent summarizes a finished layout run.
type LayoutEvent struct {
	Placed     int
	Categories int
	Lanes      int
	CacheHit   bool
	Duration   time.Duration
}

// LayoutHooks receives events from layout runs.
type LayoutHooks interface {
	// OnLayoutStart is called when a run begins, before validation.
	OnLayoutStart(ctx context.Context, intervals int)

	// OnLayoutComplete is called once per run. err is non-nil when the run
	// failed, in which case ev only carries Duration.
	OnLayoutComplete(ctx context.Context, ev LayoutEvent, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int)                   {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, LayoutEvent, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks. Nil is ignored.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
}
