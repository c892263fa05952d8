// Package pkg provides the core libraries for Deciviz decision graph tooling.
//
// # Overview
//
// Deciviz validates, repairs, and lays out decision-analysis graphs:
// directed graphs whose nodes are goals, decisions, options, factors,
// risks, and outcomes. The pkg directory is organized into four main
// areas:
//
//  1. Domain logic (graph types, validation, repair, layout)
//  2. Infrastructure (caching, document store, configuration)
//  3. Serialization (JSON import/export, DOT/SVG export)
//  4. Orchestration (the validate → repair → layout pipeline)
//
// # Architecture
//
// The typical data flow through Deciviz:
//
//	Graph JSON (editor or file)
//	         ↓
//	    [validate] package (issue detectors + health score)
//	         ↓
//	    [repair] package (apply suggested fixes)
//	         ↓
//	    [layout] package (semantic positioning)
//	         ↓
//	    positions / DOT / SVG output
//
// # Quick Start
//
// Validate a graph, fix what can be fixed, and compute a layout:
//
//	import (
//	    "context"
//	    "github.com/deciviz/deciviz/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), g, pipeline.Options{
//	    FixAll: true,
//	})
//	fmt.Println(result.Health.Score, result.Layout.Positions)
//
// # Main Packages
//
// ## Domain Logic
//
// [graph] - Node, edge, and action types shared by every component,
// plus kind normalization for aliases coming from older documents.
//
// [validate] - Seven issue detectors (dangling edges, orphan nodes,
// duplicate edges, self loops, cycles, missing labels, probability
// errors) producing a health report with a 0-100 score.
//
// [repair] - Applies suggested fixes individually or in bulk, in a
// fixed priority order so structural removals run before content fixes.
//
// [layout] - Layout engines: semantic (decision-flow layering), grid,
// hierarchy, and flow. Positions snap to a grid and respect locked and
// preserved nodes.
//
// ## Serialization
//
// [io] - Graph JSON import/export with kind normalization on read.
//
// [export] - DOT, SVG (via Graphviz), and JSON rendering with
// kind-specific shapes and colors.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, memory, Redis, and null
// backends, plus content-addressed key derivation for pipeline results.
//
// [store] - Versioned document store with file, memory, and MongoDB
// backends. Documents migrate forward on read.
//
// [config] - TOML configuration with defaults and backend factories.
//
// [errors] - Structured error codes shared by the CLI and the API.
//
// [observability] - Pluggable hooks for pipeline, cache, and store
// events.
//
// ## Orchestration
//
// [pipeline] - Complete validate → repair → layout pipeline used by
// CLI and API. Ensures consistent behavior across all entry points and
// caches stage results by graph content hash.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [graph]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/graph
// [validate]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/validate
// [repair]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/repair
// [layout]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/layout
// [io]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/io
// [export]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/export
// [cache]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/cache
// [store]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/store
// [config]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/deciviz/deciviz/pkg/pipeline
package pkg
