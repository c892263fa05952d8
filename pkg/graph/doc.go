// Package graph defines the canonical decision-graph types shared by the
// validator, repair executor, layout engines, stores, and API.
//
// A decision graph is a directed graph of typed nodes (goals, decisions,
// options, factors, risks, outcomes) connected by edges that may carry a
// confidence weight. The types in this package are plain data: all
// behavior (validation, repair, layout) lives in sibling packages that
// read these types and return derived data without mutating them.
//
// The JSON and BSON tags make Graph the single serialization format for
// files, API payloads, cache entries, and Mongo documents.
package graph
