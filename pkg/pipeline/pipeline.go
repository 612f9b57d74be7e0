// Package pipeline runs timeline layouts with caching, hooks and logging.
//
// The [Runner] is the single entry point shared by the CLI and library
// callers. It validates a [timeline.Request], looks the layout up in a
// [cache.Cache] keyed by the request hash, computes it with
// [timeline.Build] on a miss, and stores the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Layout(ctx, req, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Layout.Height, res.CacheHit)
//
// Results are all or nothing: a request with a single invalid interval
// produces an error and no layout. Cache failures never fail a run; they are
// logged at debug level and the layout is computed directly.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/timelanes/pkg/cache"
	"github.com/matzehuels/timelanes/pkg/timeline"
)

// Options control a single [Runner.Layout] call.
type Options struct {
	// Refresh skips the cache lookup. The fresh layout is still stored.
	Refresh bool

	// NoStore skips writing the layout to the cache.
	NoStore bool

	// Schema overrides cache.LayoutSchema in the cache key. Zero uses the
	// current schema.
	Schema int
}

// LayoutKeyOpts returns cache key options for these options.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Schema: o.Schema}
}

// Result contains the outputs of one layout run.
type Result struct {
	// RunID identifies this run in logs and hook events.
	RunID uuid.UUID

	// RequestHash is the content hash of the request.
	RequestHash string

	Layout timeline.Layout
	Stats  Stats

	// CacheHit reports whether Layout came from the cache.
	CacheHit bool
}

// Stats contains execution statistics.
type Stats struct {
	Intervals  int // intervals in the request
	Placed     int // intervals placed after filtering
	Categories int // category blocks
	Lanes      int // lanes summed over all blocks
	Duration   time.Duration
}

func statsFor(req timeline.Request, l timeline.Layout) Stats {
	s := Stats{
		Intervals:  len(req.Intervals),
		Placed:     len(l.Rows),
		Categories: len(l.Blocks),
	}
	for _, b := range l.Blocks {
		s.Lanes += b.Lanes
	}
	return s
}

// RequestHash returns the content hash of req, used as its cache identity.
func RequestHash(req timeline.Request) (string, error) {
	return cache.HashJSON(req)
}
