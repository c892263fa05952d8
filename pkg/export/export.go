// Package export renders decision graphs to interchange formats.
//
// DOT output encodes the node kinds as Graphviz shapes so a graph can
// be inspected with standard tooling; SVG output runs the DOT through
// an embedded Graphviz engine.
package export

import (
	"context"
	"time"

	"github.com/deciviz/deciviz/pkg/errors"
	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/observability"
)

// Format names an export format.
type Format string

// Supported export formats.
const (
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// Formats lists all valid format names.
var Formats = []Format{FormatDOT, FormatSVG, FormatJSON}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format Format) error {
	for _, f := range Formats {
		if format == f {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"invalid format: %q (must be one of: dot, svg, json)", format)
}

// Options configures graph export.
type Options struct {
	// Rankdir sets the Graphviz layout direction (TB when empty).
	Rankdir string

	// ShowConfidence labels edges with their confidence percentage.
	ShowConfidence bool
}

// Export renders the graph in the given format.
func Export(ctx context.Context, g graph.Graph, format Format, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	observability.Pipeline().OnExportStart(ctx, string(format))
	start := time.Now()

	var data []byte
	var err error
	switch format {
	case FormatDOT:
		data = []byte(ToDOT(g, opts))
	case FormatSVG:
		data, err = RenderSVG(ToDOT(g, opts))
	case FormatJSON:
		data, err = graph.MarshalGraph(g)
	}

	observability.Pipeline().OnExportComplete(ctx, string(format), len(data), time.Since(start), err)
	return data, err
}
