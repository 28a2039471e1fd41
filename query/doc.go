// Package query evaluates paths which may address many locations.
//
// Wildcards expand to every child in document order, skipping pending Map
// entries. A nested step evaluates its inner path from the context the query
// started at, and each String or integral result becomes a literal step of
// the outer path. A union evaluates its alternatives in order and
// concatenates their results. Evaluation is depth-first and lazy, so a
// search stops at its first match.
package query
