// Package model provides the persistent document tree edited by docedit.
//
// # Overview
//
// A document is a tree of immutable *Node values. Scalars are null, bool,
// int, float and string. Collections are ordered Lists and ordered Maps.
// Every update returns a new node that shares all untouched subtrees with the
// old one, so older roots stay valid and cheap to keep around (undo history
// is a list of roots).
//
// A nil *Node means "undefined": navigation that leaves the tree yields nil
// rather than an error.
//
// # Identity
//
// Each collection element carries a stable id, unique within the lineage of
// its collection. A collection stores the highest id it ever allocated
// (MaxID) and new elements always take MaxID+1, so ids are never reused,
// even after deletes. A Pointer pairs a cached index with an id; Resolve
// checks the cache and falls back to scanning for the id.
//
// # Maps
//
// Map elements are (key, id, value) triples in document order. A key may be
// nil (pending, not yet chosen by the user) and keys may repeat. Lookup by
// key and the JSON projection use the first occurrence; positional access
// sees every element.
//
// # Equality
//
// Equal and Compare are deep and ignore ids. Ints and Floats compare by
// numeric value. Hash is consistent with Equal.
//
// # Creating Nodes
//
//	obj := model.FromKeyVals([]model.KeyVal{
//	    {Key: model.Key("a"), Val: model.FromInt(1)},
//	    {Key: model.Key("b"), Val: model.FromSlice([]*model.Node{model.FromString("x")})},
//	})
//	doc, err := model.FromJSON([]byte(`{"a": 1}`))
//
// # Related Packages
//
//   - github.com/signadot/docedit/edit - copy-on-write mutations
//   - github.com/signadot/docedit/cursor - navigation contexts
//   - github.com/signadot/docedit/query - multi-result queries
package model
