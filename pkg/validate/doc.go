// Package validate scans decision graphs for structural and content
// problems and summarizes them as a health report.
//
// Validation is a pure function of its inputs: seven independent
// detectors (cycles, dangling edges, orphans, duplicate edges,
// self-loops, missing labels, probability sums) each produce typed
// issues, and the aggregate report carries a 0-100 score plus an
// overall status. Identical inputs always produce identical output,
// including issue order and issue IDs, so callers can diff reports
// across re-validation.
//
// Malformed-but-representable input never causes an error: edges
// pointing at missing nodes, empty labels, and unset confidences all
// become reported issues rather than failures.
package validate
