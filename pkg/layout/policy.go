package layout

// Direction selects the primary flow axis of the semantic layout.
type Direction string

// Flow directions.
const (
	DirectionLR Direction = "LR" // layers advance left to right
	DirectionTB Direction = "TB" // layers advance top to bottom
)

// RiskPlacement controls where risk nodes land relative to the node
// they are connected to.
type RiskPlacement string

// Risk placement strategies.
const (
	// RiskAdjacent offsets the risk orthogonally from its peer by half
	// the spacing value, so it sits just beside the flow.
	RiskAdjacent RiskPlacement = "adjacent"
	// RiskSameColumn aligns the risk exactly with its peer on the
	// primary axis, keeping its own position on the other axis.
	RiskSameColumn RiskPlacement = "sameColumn"
)

// Spacing holds the gaps between layers (Column) and between nodes
// within a layer (Row), in pixels.
type Spacing struct {
	Column float64 `json:"column"`
	Row    float64 `json:"row"`
}

// Scale returns the spacing multiplied by f.
func (s Spacing) Scale(f float64) Spacing {
	return Spacing{Column: s.Column * f, Row: s.Row * f}
}

// Policy configures the semantic engine.
type Policy struct {
	Direction   Direction     `json:"direction"`
	Grid        float64       `json:"grid"` // snap increment in pixels
	Spacing     Spacing       `json:"spacing"`
	Risk        RiskPlacement `json:"risk"`
	OutcomeLast bool          `json:"outcome_last"` // force outcomes to the final layer
	GoalFirst   bool          `json:"goal_first"`   // treat goals as layering roots
}

// DefaultPolicy returns the documented defaults: left-to-right flow,
// 24px grid, 120/96 spacing, adjacent risks, goals first, outcomes last.
func DefaultPolicy() Policy {
	return Policy{
		Direction:   DirectionLR,
		Grid:        24,
		Spacing:     Spacing{Column: 120, Row: 96},
		Risk:        RiskAdjacent,
		OutcomeLast: true,
		GoalFirst:   true,
	}
}

// Overrides is a partial policy. Nil fields keep the base value, so a
// caller can override a single knob without restating the rest.
type Overrides struct {
	Direction   *Direction     `json:"direction,omitempty"`
	Grid        *float64       `json:"grid,omitempty"`
	Column      *float64       `json:"column,omitempty"`
	Row         *float64       `json:"row,omitempty"`
	Risk        *RiskPlacement `json:"risk,omitempty"`
	OutcomeLast *bool          `json:"outcome_last,omitempty"`
	GoalFirst   *bool          `json:"goal_first,omitempty"`
}

// Merge applies the overrides onto p and returns the resulting policy.
func (p Policy) Merge(o Overrides) Policy {
	if o.Direction != nil {
		p.Direction = *o.Direction
	}
	if o.Grid != nil {
		p.Grid = *o.Grid
	}
	if o.Column != nil {
		p.Spacing.Column = *o.Column
	}
	if o.Row != nil {
		p.Spacing.Row = *o.Row
	}
	if o.Risk != nil {
		p.Risk = *o.Risk
	}
	if o.OutcomeLast != nil {
		p.OutcomeLast = *o.OutcomeLast
	}
	if o.GoalFirst != nil {
		p.GoalFirst = *o.GoalFirst
	}
	return p
}

// MergePolicy deep-merges partial overrides onto the documented defaults.
func MergePolicy(o Overrides) Policy {
	return DefaultPolicy().Merge(o)
}
