// Package pkg provides the core libraries for Meanwhile pregnancy progress layouts.
//
// # Overview
//
// Meanwhile turns a small config document (start date, due date, milestones)
// into ready-to-draw layout data for four views: a day grid, weekly and
// monthly calendars, and a milestone timeline. The pkg directory is organized
// into four main areas:
//
//  1. [calendar], [layout], [textmetrics] - Domain logic (day derivation,
//     lane assignment, collapse fitting, text measurement)
//  2. [cache], [httputil], [observability] - Infrastructure
//  3. [github], [api] - External surfaces (config persistence, HTTP API)
//  4. [pipeline] - Orchestration (derive → measure → layout)
//
// # Architecture
//
// The typical data flow through Meanwhile:
//
//	Config Document (JSON/TOML/YAML)
//	         ↓
//	    [config] package (parse + validate)
//	         ↓
//	    [calendar] package (day set + milestone indices)
//	         ↓
//	    [layout] package (grids, lanes, collapse, gantt)
//	         ↓
//	    layout.json output
//
// # Quick Start
//
// Compute a timeline layout for a document:
//
//	import (
//	    "context"
//	    "github.com/mfbx9da4/meanwhile/pkg/config"
//	    "github.com/mfbx9da4/meanwhile/pkg/layout"
//	    "github.com/mfbx9da4/meanwhile/pkg/pipeline"
//	    "github.com/mfbx9da4/meanwhile/pkg/viewport"
//	)
//
//	// 1. Load and validate the document
//	doc, _ := config.Load("meanwhile.json")
//
//	// 2. Run the pipeline
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Document: doc,
//	    Viewport: viewport.Viewport{Width: 1280, Height: 800},
//	    View:     layout.ViewTimeline,
//	})
//
//	// 3. Hand the geometry to a renderer
//	data, _ := result.Layout.Marshal()
//
// # Main Packages
//
// ## Domain Logic
//
// [calendar] - Day derivation: the tracked day set, pregnancy month
// boundaries (nine equal parts), calendar month boundaries, and week grid
// positions under Sunday-first or Monday-first conventions.
//
// [layout] - Pure geometry: cell sizing for plain and sectioned grids, lane
// assignment for labels and gantt bars, and the collapse loop that shrinks
// labels until a stack fits its height budget.
//
// [textmetrics] - Text width measurement backed by a real font face, with a
// memoizing wrapper. Layout decisions depend on these widths.
//
// ## Infrastructure
//
// [cache] - Layout cache keyed by document hash plus layout options.
// FileCache for the CLI, RedisCache for server deployments, NullCache for
// tests and --no-cache.
//
// [httputil] - Retry with backoff and a namespaced file cache for outbound
// HTTP.
//
// ## External Surfaces
//
// [github] - GitHub contents API client used to fetch and commit config
// documents.
//
// [api] - The HTTP API: PIN-gated chat editing of the config document and a
// layout endpoint.
//
// ## Orchestration
//
// [pipeline] - Ties derivation and layout together with caching,
// observability hooks, and option validation. Both the CLI and the API go
// through pipeline.Runner.
package pkg
