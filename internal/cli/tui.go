package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/deciviz/deciviz/pkg/graph"
	pkgio "github.com/deciviz/deciviz/pkg/io"
	"github.com/deciviz/deciviz/pkg/repair"
	"github.com/deciviz/deciviz/pkg/validate"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// issuesCommand creates the issues command for browsing findings interactively.
func (c *CLI) issuesCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "issues <graph.json>",
		Short: "Browse validation issues interactively",
		Long: `Browse validation issues interactively.

Opens a terminal UI listing every finding with its severity, type, and
affected nodes or edges. Select an issue to see its suggested fix, and
apply fixes one at a time; the list re-validates after each fix.

Keys: up/down or j/k to navigate, enter to toggle details,
f to apply the selected fix, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIssues(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the repaired graph to (omit to discard fixes)")

	return cmd
}

// runIssues validates the graph and opens the issue browser.
// Applied fixes are written to output when the browser closes.
func (c *CLI) runIssues(ctx context.Context, path, output string) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(path, logger)
	if err != nil {
		return err
	}

	health := validate.Validate(g.Nodes, g.Edges)
	if len(health.Issues) == 0 {
		printSuccess("No issues found")
		return nil
	}

	model := NewIssueListModel(g, health)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	m, ok := final.(IssueListModel)
	if !ok || m.Applied == 0 {
		return nil
	}
	if output == "" {
		printInfo("Applied %d fixes (no --output given, changes discarded)", m.Applied)
		return nil
	}
	if err := pkgio.ExportJSON(m.Graph, output); err != nil {
		return err
	}
	printSuccess("Applied %d fixes", m.Applied)
	printFile(output)
	return nil
}

// =============================================================================
// IssueListModel - Interactive issue browsing
// =============================================================================

// IssueListModel is the bubbletea model for browsing validation issues.
// Applying a fix mutates Graph and re-validates, so the list always
// shows the current findings.
type IssueListModel struct {
	Graph    graph.Graph
	Health   validate.Health
	Applied  int // fixes applied so far
	Cursor   int
	Expanded bool // show the selected issue's details
	Height   int
	Offset   int
}

// NewIssueListModel creates a new issue list model.
func NewIssueListModel(g graph.Graph, h validate.Health) IssueListModel {
	return IssueListModel{
		Graph:  g,
		Health: h,
		Height: 15,
	}
}

func (m IssueListModel) Init() tea.Cmd {
	return nil
}

func (m IssueListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Health.Issues)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Expanded = !m.Expanded
		case "f":
			m = m.applyFix()
			if len(m.Health.Issues) == 0 {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// applyFix applies the selected issue's suggested fix and re-validates.
// Issues without a fix are left untouched.
func (m IssueListModel) applyFix() IssueListModel {
	if m.Cursor >= len(m.Health.Issues) {
		return m
	}
	issue := m.Health.Issues[m.Cursor]
	if !issue.Fixable() {
		return m
	}

	m.Graph.Nodes, m.Graph.Edges = repair.Apply(m.Graph.Nodes, m.Graph.Edges, *issue.SuggestedFix)
	m.Applied++
	m.Health = validate.Validate(m.Graph.Nodes, m.Graph.Edges)

	if m.Cursor >= len(m.Health.Issues) && m.Cursor > 0 {
		m.Cursor = len(m.Health.Issues) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
	return m
}

func (m IssueListModel) View() string {
	var b strings.Builder

	errs, warns, infos := m.Health.Counts()
	b.WriteString(StyleTitle.Render("Issues"))
	b.WriteString(" ")
	b.WriteString(scoreStyle(m.Health.Score).Render(fmt.Sprintf("%d/100", m.Health.Score)))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d errors · %d warnings · %d info", errs, warns, infos)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  f fix  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Health.Issues) {
		end = len(m.Health.Issues)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		issue := m.Health.Issues[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		fix := "—"
		if issue.Fixable() {
			fix = iconSuccess
		}

		rows = append(rows, []string{
			cursor,
			string(issue.Severity),
			string(issue.Type),
			issue.Message,
			affectedIDs(issue),
			fix,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Severity", "Type", "Message", "Affected", "Fix").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Health.Issues) {
				return lipgloss.NewStyle()
			}
			issue := m.Health.Issues[actualIdx]

			base := lipgloss.NewStyle()
			if col == 1 {
				base = base.Foreground(severityColor(issue.Severity))
			}
			if actualIdx == m.Cursor {
				return base.Bold(true)
			}
			if col != 1 {
				base = base.Foreground(colorGray)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded && m.Cursor < len(m.Health.Issues) {
		b.WriteString("\n")
		b.WriteString(issueDetail(m.Health.Issues[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Health.Issues))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// severityColor maps a severity to its display color.
func severityColor(s validate.Severity) lipgloss.Color {
	switch s {
	case validate.SeverityError:
		return colorRed
	case validate.SeverityWarning:
		return colorYellow
	default:
		return colorGray
	}
}

// affectedIDs renders the node or edge IDs an issue touches.
func affectedIDs(i validate.Issue) string {
	if len(i.NodeIDs) > 0 {
		return strings.Join(i.NodeIDs, ", ")
	}
	if len(i.EdgeIDs) > 0 {
		return strings.Join(i.EdgeIDs, ", ")
	}
	return "—"
}

// issueDetail renders the expanded view of a single issue.
func issueDetail(i validate.Issue) string {
	var b strings.Builder
	b.WriteString("  " + listSelectedStyle.Render(i.Message) + "\n")
	b.WriteString("  " + listDimStyle.Render("id: "+i.ID) + "\n")
	if i.SuggestedFix != nil {
		fix := i.SuggestedFix
		b.WriteString("  " + StyleSuccess.Render("suggested fix:") + " " + string(fix.Type))
		if fix.TargetID != "" {
			b.WriteString(" " + StyleValue.Render(fix.TargetID))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("  " + listDimStyle.Render("no suggested fix") + "\n")
	}
	return b.String()
}
