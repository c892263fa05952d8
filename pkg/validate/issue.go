package validate

import (
	"strings"

	"github.com/deciviz/deciviz/pkg/graph"
)

// Severity ranks how strongly an issue affects graph health.
type Severity string

// Severities, strongest first.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns a numeric ordering for severities (error highest).
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// IssueType identifies which detector produced an issue.
type IssueType string

// Issue types (closed set).
const (
	IssueCycle            IssueType = "cycle"
	IssueDanglingEdge     IssueType = "dangling_edge"
	IssueOrphanNode       IssueType = "orphan_node"
	IssueDuplicateEdge    IssueType = "duplicate_edge"
	IssueSelfLoop         IssueType = "self_loop"
	IssueMissingLabel     IssueType = "missing_label"
	IssueProbabilityError IssueType = "probability_error"
)

// Issue is a single validation finding.
//
// ID is derived deterministically from the issue's content (type plus
// the affected entity IDs), so the same problem keeps the same identity
// across re-validation runs.
type Issue struct {
	ID           string        `json:"id" bson:"id"`
	Type         IssueType     `json:"type" bson:"type"`
	Severity     Severity      `json:"severity" bson:"severity"`
	Message      string        `json:"message" bson:"message"`
	NodeIDs      []string      `json:"node_ids,omitempty" bson:"node_ids,omitempty"`
	EdgeIDs      []string      `json:"edge_ids,omitempty" bson:"edge_ids,omitempty"`
	SuggestedFix *graph.Action `json:"suggested_fix,omitempty" bson:"suggested_fix,omitempty"`
}

// Fixable reports whether the issue carries a suggested fix.
func (i Issue) Fixable() bool { return i.SuggestedFix != nil }

// issueID builds a stable issue identity from the type and content parts.
func issueID(t IssueType, parts ...string) string {
	return string(t) + ":" + strings.Join(parts, ":")
}

// Status is the overall verdict of a validation run.
type Status string

// Statuses. Healthy requires zero error- and warning-severity issues;
// info-only graphs are still healthy.
const (
	StatusHealthy  Status = "healthy"
	StatusWarnings Status = "warnings"
	StatusErrors   Status = "errors"
)

// Health aggregates all issues found in one validation run.
type Health struct {
	Status Status  `json:"status" bson:"status"`
	Score  int     `json:"score" bson:"score"`
	Issues []Issue `json:"issues" bson:"issues"`
}

// Counts returns the number of issues at each severity.
func (h Health) Counts() (errors, warnings, infos int) {
	for _, i := range h.Issues {
		switch i.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return
}
