package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/deciviz/deciviz/pkg/io"
	"github.com/deciviz/deciviz/pkg/repair"
	"github.com/deciviz/deciviz/pkg/validate"
)

// fixOpts holds the command-line flags for the fix command.
type fixOpts struct {
	output string // output file path (stdout if empty)
	dryRun bool   // list fixes without applying them
}

// fixCommand creates the fix command for applying suggested repairs.
func (c *CLI) fixCommand() *cobra.Command {
	var opts fixOpts

	cmd := &cobra.Command{
		Use:   "fix <graph.json>",
		Short: "Apply suggested repairs to a decision graph",
		Long: `Apply suggested repairs to a decision graph.

Validates the graph and applies every issue's suggested fix in priority
order: dangling edges and self loops are removed first, then duplicate
edges and cycle-breaking removals, then label placeholders, and finally
orphan connections. The repaired graph is written as JSON.

Examples:
  deciviz fix decision.json -o repaired.json
  deciviz fix decision.json --dry-run          # preview without writing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFix(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list suggested fixes without applying them")

	return cmd
}

// runFix validates the graph and applies every suggested fix.
func (c *CLI) runFix(ctx context.Context, path string, opts fixOpts) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(path, logger)
	if err != nil {
		return err
	}

	health := validate.Validate(g.Nodes, g.Edges)
	fixable := countFixable(health.Issues)

	if opts.dryRun {
		printInfo("%d of %d issues have suggested fixes", fixable, len(health.Issues))
		for _, i := range health.Issues {
			if i.Fixable() {
				printIssue(i)
			}
		}
		return nil
	}

	if fixable == 0 {
		printSuccess("Nothing to fix")
		return nil
	}

	prog := newProgress(logger)
	result := repair.QuickFixAll(g.Nodes, g.Edges)
	g.Nodes, g.Edges = result.Nodes, result.Edges
	prog.done(fmt.Sprintf("Applied %d fixes", result.FixedCount))

	after := validate.Validate(g.Nodes, g.Edges)
	printScore(after)

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pkgio.WriteJSON(g, out); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
