package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deciviz/deciviz/pkg/export"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output     string // output file path (derived from input if empty)
	format     string // output format: dot, svg, json
	rankdir    string // Graphviz layout direction (TB if empty)
	confidence bool   // label edges with confidence percentages
}

// exportCommand creates the export command for rendering a graph.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{format: string(export.FormatDOT)}

	cmd := &cobra.Command{
		Use:   "export <graph.json>",
		Short: "Export a decision graph as DOT, SVG, or JSON",
		Long: `Export a decision graph as DOT, SVG, or JSON.

Each node kind gets a distinct Graphviz shape and color: goals are bold
rounded boxes, decisions diamonds, options rounded boxes, factors
ellipses, risks hexagons, and outcomes double-bordered boxes.

Examples:
  deciviz export decision.json                    # DOT to stdout
  deciviz export decision.json -f svg -o out.svg
  deciviz export decision.json --confidence       # show edge weights`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, json")
	cmd.Flags().StringVar(&opts.rankdir, "rankdir", "", "Graphviz rank direction: TB (default), LR, BT, RL")
	cmd.Flags().BoolVar(&opts.confidence, "confidence", false, "label edges with their confidence percentage")

	return cmd
}

// runExport renders the graph in the requested format.
func (c *CLI) runExport(ctx context.Context, path string, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	format := export.Format(strings.ToLower(opts.format))
	if err := export.ValidateFormat(format); err != nil {
		return err
	}

	g, err := loadGraph(path, logger)
	if err != nil {
		return err
	}

	var spin *Spinner
	if format == export.FormatSVG && opts.output != "" {
		spin = newSpinner("Rendering SVG")
		spin.Start()
	}

	data, err := export.Export(ctx, g, format, export.Options{
		Rankdir:        opts.rankdir,
		ShowConfidence: opts.confidence,
	})
	if spin != nil {
		if err != nil {
			spin.StopWithError("SVG rendering failed")
		} else {
			spin.StopWithSuccess(fmt.Sprintf("Rendered SVG (%d bytes)", len(data)))
		}
	}
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
