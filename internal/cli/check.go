package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/deciviz/deciviz/pkg/pipeline"
	"github.com/deciviz/deciviz/pkg/validate"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	noCache bool // disable result caching
	refresh bool // bypass cached results
	strict  bool // exit non-zero when errors are present
}

// checkCommand creates the check command for validating a graph file.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check <graph.json>",
		Short: "Validate a decision graph and report its health",
		Long: `Validate a decision graph and report its health.

Runs all issue detectors (dangling edges, orphan nodes, duplicate edges,
self loops, cycles, missing labels, probability errors) and prints the
health score with every finding grouped by severity.

Examples:
  deciviz check decision.json
  deciviz check decision.json --strict    # non-zero exit on errors`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when error-severity issues are found")

	return cmd
}

// runCheck validates the graph at path and prints the health report.
func (c *CLI) runCheck(ctx context.Context, path string, opts checkOpts) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(path, logger)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	health, cached, err := runner.ValidateWithCacheInfo(ctx, g, pipeline.Options{Refresh: opts.refresh})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Validated %d nodes and %d edges", len(g.Nodes), len(g.Edges)))

	printScore(health)
	printStats(len(g.Nodes), len(g.Edges), cached)
	printIssuesBySeverity(health.Issues)

	if fixable := countFixable(health.Issues); fixable > 0 {
		printNewline()
		printNextStep(fmt.Sprintf("%d issues have suggested fixes", fixable), "deciviz fix "+path)
	}

	errs, _, _ := health.Counts()
	if opts.strict && errs > 0 {
		return fmt.Errorf("%d error-severity issues found", errs)
	}
	return nil
}

// printIssuesBySeverity prints issues grouped error-first.
func printIssuesBySeverity(issues []validate.Issue) {
	if len(issues) == 0 {
		printSuccess("No issues found")
		return
	}
	ordered := make([]validate.Issue, len(issues))
	copy(ordered, issues)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Severity.Rank() > ordered[b].Severity.Rank()
	})
	printNewline()
	for _, i := range ordered {
		printIssue(i)
	}
}

// countFixable returns the number of issues carrying a suggested fix.
func countFixable(issues []validate.Issue) int {
	n := 0
	for _, i := range issues {
		if i.Fixable() {
			n++
		}
	}
	return n
}
