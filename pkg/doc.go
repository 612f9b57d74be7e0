// Package pkg provides the libraries behind timelanes, a lane layout engine
// for interval timelines.
//
// # Overview
//
// A timeline holds intervals (eras, events, lifetimes) grouped by category.
// Timelanes assigns every interval a lane so that no two overlapping
// intervals of one category share a row, then stacks the category blocks
// vertically. The pkg directory is organized as:
//
//  1. [lanes] - Lane assignment (pure, no I/O)
//  2. [timeline] - Requests, windows, category toggles, block stacking, codecs
//  3. [pipeline] - Orchestration with caching, hooks and logging
//  4. [cache] - File, Redis and null cache backends
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Data Flow
//
//	request.toml / request.json
//	         ↓
//	    [timeline] package (decode, validate, filter, coerce)
//	         ↓
//	    [lanes] package (assign lanes per category)
//	         ↓
//	    [timeline] package (stack blocks, rows with absolute Y)
//	         ↓
//	    layout.json
//
// # Quick Start
//
//	req, err := timeline.ReadRequestFile("antiquity.toml")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Layout(ctx, req, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	timeline.WriteLayout(os.Stdout, res.Layout)
//
// [lanes]: github.com/matzehuels/timelanes/pkg/lanes
// [timeline]: github.com/matzehuels/timelanes/pkg/timeline
// [pipeline]: github.com/matzehuels/timelanes/pkg/pipeline
// [cache]: github.com/matzehuels/timelanes/pkg/cache
// [errors]: github.com/matzehuels/timelanes/pkg/errors
// [observability]: github.com/matzehuels/timelanes/pkg/observability
// [buildinfo]: github.com/matzehuels/timelanes/pkg/buildinfo
package pkg
