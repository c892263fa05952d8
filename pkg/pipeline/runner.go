package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/deciviz/deciviz/pkg/cache"
	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/layout"
	"github.com/deciviz/deciviz/pkg/observability"
	"github.com/deciviz/deciviz/pkg/repair"
	"github.com/deciviz/deciviz/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete validate → repair → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{Graph: g}

	// Stage 1: Validate
	validateStart := time.Now()
	health, validateHit, err := r.ValidateWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	result.Health = health
	result.Stats.ValidateTime = time.Since(validateStart)
	result.CacheInfo.ValidateHit = validateHit

	r.Logger.Info("validated graph",
		"score", health.Score,
		"issues", len(health.Issues),
		"duration", result.Stats.ValidateTime)

	// Stage 2: Repair (optional)
	if opts.FixAll {
		repairStart := time.Now()
		fixed := r.repairAll(ctx, &result.Graph, health, opts)
		result.FixedCount = fixed
		result.Stats.RepairTime = time.Since(repairStart)

		if fixed > 0 {
			// Re-validate the repaired graph so the report matches
			// what the caller gets back.
			result.Health = validate.Validate(result.Graph.Nodes, result.Graph.Edges)
			result.CacheInfo.ValidateHit = false
		}

		r.Logger.Info("applied fixes",
			"fixed", fixed,
			"score", result.Health.Score,
			"duration", result.Stats.RepairTime)
	}

	result.Stats.NodeCount = len(result.Graph.Nodes)
	result.Stats.EdgeCount = len(result.Graph.Edges)

	if data, err := graph.MarshalGraph(result.Graph); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	lay, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, result.Graph, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = lay
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"preset", opts.Preset,
		"positions", len(lay.Positions),
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// ValidateWithCacheInfo runs the detectors with caching and returns cache hit info.
func (r *Runner) ValidateWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (validate.Health, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return validate.Health{}, false, err
	}
	r.applyLogger(&opts)

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return validate.Health{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.HealthKey(cache.Hash(graphData))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached validate.Health
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "health")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "health")
	}

	observability.Pipeline().OnValidateStart(ctx, opts.GraphID, len(g.Nodes))
	start := time.Now()
	health := validate.Validate(g.Nodes, g.Edges)
	observability.Pipeline().OnValidateComplete(ctx, opts.GraphID, len(health.Issues), health.Score, time.Since(start), nil)

	if data, err := json.Marshal(health); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLHealth)
		observability.Cache().OnCacheSet(ctx, "health", len(data))
	}

	return health, false, nil
}

// Validate is a convenience wrapper that calls ValidateWithCacheInfo and discards the cache hit info.
func (r *Runner) Validate(ctx context.Context, g graph.Graph, opts Options) (validate.Health, error) {
	health, _, err := r.ValidateWithCacheInfo(ctx, g, opts)
	return health, err
}

// repairAll applies every suggested fix from the health report to the
// graph in place and returns the number of fixes applied.
func (r *Runner) repairAll(ctx context.Context, g *graph.Graph, health validate.Health, opts Options) int {
	fixable := 0
	for _, issue := range health.Issues {
		if issue.Fixable() {
			fixable++
		}
	}
	observability.Pipeline().OnRepairStart(ctx, opts.GraphID, fixable)

	start := time.Now()
	x := repair.New(opts.IDGen)
	g.Nodes, g.Edges = x.ApplyIssues(g.Nodes, g.Edges, health.Issues)
	observability.Pipeline().OnRepairComplete(ctx, opts.GraphID, fixable, time.Since(start), nil)

	return fixable
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Result{}, false, err
	}
	r.applyLogger(&opts)

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return layout.Result{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil && cached.Positions != nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	nodes, edges := layout.FromGraph(g.Nodes, g.Edges)

	observability.Pipeline().OnLayoutStart(ctx, string(opts.Preset), len(nodes))
	lay := layout.Compute(nodes, edges, opts.layoutOptions())
	observability.Pipeline().OnLayoutComplete(ctx, string(opts.Preset), lay.Duration, nil)

	if data, err := json.Marshal(lay); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return lay, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, opts Options) (layout.Result, error) {
	lay, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return lay, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
