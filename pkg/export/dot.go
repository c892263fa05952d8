package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/deciviz/deciviz/pkg/graph"
)

// kindStyles maps each node kind to its Graphviz attributes. Unknown
// kinds fall back to the factor style.
var kindStyles = map[graph.Kind][]string{
	graph.KindGoal:     {"shape=box", "style=\"rounded,filled,bold\"", "fillcolor=lightgoldenrod1"},
	graph.KindDecision: {"shape=diamond", "style=filled", "fillcolor=lightblue"},
	graph.KindOption:   {"shape=box", "style=\"rounded,filled\"", "fillcolor=white"},
	graph.KindFactor:   {"shape=ellipse", "style=filled", "fillcolor=whitesmoke"},
	graph.KindRisk:     {"shape=hexagon", "style=filled", "fillcolor=mistyrose"},
	graph.KindOutcome:  {"shape=box", "style=filled", "fillcolor=palegreen", "peripheries=2"},
}

// ToDOT converts a decision graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g graph.Graph, opts Options) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if opts.ShowConfidence {
			if c := e.Confidence(); c > 0 {
				fmt.Fprintf(&buf, "  %q -> %q [label=\"%.0f%%\"];\n", e.Source, e.Target, c*100)
				continue
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n graph.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}
	style, ok := kindStyles[n.Kind]
	if !ok {
		style = kindStyles[graph.KindFactor]
	}
	return append(attrs, style...)
}
