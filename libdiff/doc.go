// Package libdiff computes structural differences between two documents.
//
// Elements are matched by key in Maps and by position in Lists. When both
// documents are versions of one lineage, as produced by edits, [MatchIDs]
// matches elements by id instead, so moved and renamed elements show up as
// such rather than as a removal and an addition. Changed strings carry
// text hunks. Two collections which differ only in ways the element
// matching does not see, such as Map order, give one Changed change for
// the whole collection.
package libdiff
