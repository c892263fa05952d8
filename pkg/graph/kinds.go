package graph

import "strings"

// Kind is the semantic category of a decision-graph node. Kinds drive
// layout rules (goals first, outcomes last, risks placed adjacent to
// their peers) and validation semantics (probability sums on decision
// branches).
type Kind string

// Canonical node kinds.
const (
	KindGoal     Kind = "goal"
	KindDecision Kind = "decision"
	KindOption   Kind = "option"
	KindFactor   Kind = "factor"
	KindRisk     Kind = "risk"
	KindOutcome  Kind = "outcome"
)

// Kinds lists all canonical kinds in display order.
var Kinds = []Kind{KindGoal, KindDecision, KindOption, KindFactor, KindRisk, KindOutcome}

// Valid reports whether k is one of the canonical kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindGoal, KindDecision, KindOption, KindFactor, KindRisk, KindOutcome:
		return true
	}
	return false
}

// kindAliases maps known non-canonical kind spellings to canonical kinds.
// External tools emit variants like "decision_node" or "outcome-terminal";
// keeping the table here avoids scattering string matching across packages.
var kindAliases = map[string]Kind{
	"goal_node":        KindGoal,
	"objective":        KindGoal,
	"decision_node":    KindDecision,
	"choice":           KindDecision,
	"option_node":      KindOption,
	"alternative":      KindOption,
	"factor_node":      KindFactor,
	"variable":         KindFactor,
	"risk_node":        KindRisk,
	"risk_factor":      KindRisk,
	"threat":           KindRisk,
	"outcome_node":     KindOutcome,
	"outcome-terminal": KindOutcome,
	"result":           KindOutcome,
	"terminal":         KindOutcome,
}

// NormalizeKind maps an open string space onto the canonical kind set.
// The second return value reports whether the input was recognized;
// unrecognized values fall back to KindFactor so callers can still
// render the node while surfacing a warning.
//
// Matching is case-insensitive and tolerant of surrounding whitespace.
// After exact and alias lookups fail, the first separator-delimited
// token is tried ("decision node" → decision).
func NormalizeKind(raw string) (Kind, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return KindFactor, false
	}
	if k := Kind(s); k.Valid() {
		return k, true
	}
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	if i := strings.IndexAny(s, "_- "); i > 0 {
		if k := Kind(s[:i]); k.Valid() {
			return k, true
		}
	}
	return KindFactor, false
}
