// Package layout computes canvas positions for decision graphs.
//
// The semantic engine is the main act: it layers nodes breadth-first
// from the graph's goals (goals first, outcomes last), orders each
// layer with a single-pass median-parent heuristic to reduce edge
// crossings, snaps every coordinate to a grid, and tucks risk nodes
// next to the node they threaten. Three simpler preset engines (grid,
// hierarchy, flow) place nodes without any semantic awareness and share
// the same result contract.
//
// All engines are pure and deterministic: identical input and policy
// produce identical position maps. Locked nodes and explicitly
// preserved nodes never appear in the output - the caller keeps their
// existing coordinates.
//
// The median ordering runs once rather than iterating to convergence.
// That is an intentional scope limit: full Sugiyama-style sweeps would
// reduce crossings further but change positions the surrounding tooling
// has come to expect.
package layout
