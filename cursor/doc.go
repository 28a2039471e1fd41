// Package cursor implements the data cursor: an immutable position in a
// document paired with the matching position in its schema.
//
// A [Context] records the concrete steps from the root, the context keys
// tagged along the way and the value found at the position. Every push and
// pop returns a new Context whose value is recomputed by walking from the
// root, so a Context is a snapshot of one document version. [Context.WithRoot]
// moves the same position to a newer version of the document, following
// element ids where they are known.
//
// The compact [Serialized] form holds the steps, the context key ledger and
// the parent key flag.
package cursor
