// Package edit implements copy-on-write edits of [model.Node] documents.
//
// Every operation takes a [cursor.Context] naming the target and returns the
// new document root. Only the nodes on the path from the root to the target
// are copied; everything else is shared with the old root, which stays valid.
//
// A nil root with a nil error means the edit did nothing: the value was
// already in place, or the target does not exist. Callers such as an undo
// history use this to decide whether a new version was made. Errors are
// reserved for operations no valid program makes and wrap [ErrOperation].
package edit
