package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/timelanes/pkg/cache"
	"github.com/matzehuels/timelanes/pkg/errors"
	"github.com/matzehuels/timelanes/pkg/observability"
	"github.com/matzehuels/timelanes/pkg/timeline"
)

const keyTypeLayout = "layout"

// Runner encapsulates layout execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Layout validates req and returns its layout, from the cache when possible.
//
// Validation errors carry pkg/errors codes; an interval with End < Start
// yields ErrCodeInvalidInterval and still matches lanes.ErrInvalidInterval.
func (r *Runner) Layout(ctx context.Context, req timeline.Request, opts Options) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(req.Intervals))
	defer func() {
		ev := observability.LayoutEvent{Duration: time.Since(start)}
		if res != nil {
			ev.Placed = res.Stats.Placed
			ev.Categories = res.Stats.Categories
			ev.Lanes = res.Stats.Lanes
			ev.CacheHit = res.CacheHit
		}
		hooks.OnLayoutComplete(ctx, ev, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := RequestHash(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash request")
	}
	runID := uuid.New()
	logger := r.Logger.With("run", runID.String()[:8])
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if l, ok := r.lookup(ctx, logger, key); ok {
			res = &Result{RunID: runID, RequestHash: hash, Layout: l, CacheHit: true}
			res.Stats = statsFor(req, l)
			res.Stats.Duration = time.Since(start)
			logger.Debug("layout from cache", "hash", hash[:12], "height", l.Height)
			return res, nil
		}
	}

	l, err := timeline.Build(req)
	if err != nil {
		return nil, err
	}

	if !opts.NoStore {
		r.store(ctx, logger, key, l)
	}

	res = &Result{RunID: runID, RequestHash: hash, Layout: l}
	res.Stats = statsFor(req, l)
	res.Stats.Duration = time.Since(start)

	logger.Debug("computed layout",
		"placed", res.Stats.Placed,
		"hidden", l.Hidden,
		"blocks", res.Stats.Categories,
		"height", l.Height,
		"duration", res.Stats.Duration)
	return res, nil
}

// lookup reads a cached layout. Errors and undecodable entries are misses.
func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string) (timeline.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return timeline.Layout{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return timeline.Layout{}, false
	}

	l, err := timeline.UnmarshalLayout(data)
	if err != nil {
		logger.Debug("discarding cached layout", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return timeline.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return l, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, l timeline.Layout) {
	data, err := timeline.MarshalLayout(l)
	if err != nil {
		logger.Debug("cannot encode layout for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
