package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deciviz/deciviz/pkg/layout"
	"github.com/deciviz/deciviz/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output    string   // output file path (stdout if empty)
	preset    string   // layout engine: semantic, grid, hierarchy, flow
	spacing   string   // spacing tier: compact, normal, spacious
	direction string   // flow direction: LR or TB
	grid      float64  // grid snap size in pixels (0 uses the preset default)
	preserve  []string // node IDs whose positions must not move
	fix       bool     // apply suggested repairs before layout
	noCache   bool     // disable result caching
	refresh   bool     // bypass cached results
}

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{
		preset:  string(pipeline.DefaultPreset),
		spacing: string(pipeline.DefaultSpacing),
	}

	cmd := &cobra.Command{
		Use:   "layout <graph.json>",
		Short: "Compute node positions for a decision graph",
		Long: `Compute node positions for a decision graph.

The semantic preset (default) layers nodes along the decision flow:
goals first, then decisions, options, factors, and outcomes last.
Positions snap to the grid and preserved nodes keep their place.

Presets: semantic, grid, hierarchy, flow
Spacing: compact, normal, spacious

Examples:
  deciviz layout decision.json -o positions.json
  deciviz layout decision.json --preset hierarchy --spacing spacious
  deciviz layout decision.json --preserve n1,n2 --direction TB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.preset, "preset", opts.preset, "layout preset: semantic (default), grid, hierarchy, flow")
	cmd.Flags().StringVar(&opts.spacing, "spacing", opts.spacing, "spacing tier: compact, normal (default), spacious")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "flow direction: LR (default) or TB")
	cmd.Flags().Float64Var(&opts.grid, "grid", 0, "grid snap size in pixels (preset default if 0)")
	cmd.Flags().StringSliceVar(&opts.preserve, "preserve", nil, "node IDs whose positions must not move (comma-separated)")
	cmd.Flags().BoolVar(&opts.fix, "fix", false, "apply suggested repairs before computing the layout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")

	return cmd
}

// layoutDocument is the JSON shape written by the layout command.
type layoutDocument struct {
	Preset    string                  `json:"preset"`
	Spacing   string                  `json:"spacing"`
	Positions map[string]layout.Point `json:"positions"`
}

// runLayout executes the pipeline and writes the computed positions.
func (c *CLI) runLayout(ctx context.Context, path string, opts layoutOpts) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(path, logger)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts, err := opts.pipelineOptions()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, g, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d nodes with the %s preset", len(result.Layout.Positions), popts.Preset))

	printScore(result.Health)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	if result.FixedCount > 0 {
		printInfo("Applied %d fixes before layout", result.FixedCount)
	}

	doc := layoutDocument{
		Preset:    string(popts.Preset),
		Spacing:   string(popts.Spacing),
		Positions: result.Layout.Positions,
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// pipelineOptions converts the CLI flags into pipeline options.
func (o layoutOpts) pipelineOptions() (pipeline.Options, error) {
	popts := pipeline.Options{
		Preset:      layout.Preset(o.preset),
		Spacing:     layout.SpacingTier(o.spacing),
		PreserveIDs: o.preserve,
		FixAll:      o.fix,
		Refresh:     o.refresh,
	}
	if o.direction != "" {
		d := layout.Direction(o.direction)
		if d != layout.DirectionLR && d != layout.DirectionTB {
			return pipeline.Options{}, fmt.Errorf("invalid direction: %s (must be 'LR' or 'TB')", o.direction)
		}
		popts.Policy.Direction = &d
	}
	if o.grid > 0 {
		grid := o.grid
		popts.Policy.Grid = &grid
	}
	return popts, nil
}
