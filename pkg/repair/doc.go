// Package repair applies deterministic fix actions to decision graphs.
//
// All entry points are pure: they return freshly built node and edge
// slices and never mutate the caller's input, so the pre- and post-
// repair graphs can coexist without aliasing hazards. Actions that
// reference missing targets are silently skipped - repeated or
// out-of-order application is always safe.
//
// Batch repair applies suggested fixes in a fixed priority order so
// structural removals happen before content updates and repeated runs
// converge instead of oscillating.
package repair
