// Package schema describes the expected shape of documents.
//
// A [Schema] is a closed sum of kinds: Number, Boolean, String, Map, FixedMap,
// List, Conditional, Recursive and ParentKey, plus the Empty placeholder used
// where nothing is known. Schemas are built once by the host, validated with
// [Build] and then navigated with a [Context], a cursor which follows the data
// one step at a time.
//
// Recursive schemas refer to an ancestor a fixed number of levels up. A
// Context never expands them: digging into a Recursive node pushes the
// ancestor that is already on its stack, so tree shaped schemas are finite.
package schema
