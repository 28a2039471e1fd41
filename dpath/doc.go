// Package dpath provides the path language used to address locations in a
// document.
//
// A Path is an ordered list of Components plus an optional start: absolute
// (from the document root), a reverse count (pop N levels of the current
// context first) or a named anchor (pop back to the nearest ancestor tagged
// with a context key).
//
// # Syntax
//
//	a/b/3/$key        steps: key a, key b, index-or-key 3, own key
//	/a/b              absolute
//	2:c               reverse count: pop 2 levels, then key c
//	@item:name        anchor: nearest ancestor tagged "item", then key name
//	items/*/id        wildcard over List or Map children
//	[0]               explicit List index
//	'a b'/"x/y"       quoted keys
//	a/{/sel/kind}/x   nested: evaluate /sel/kind, use each scalar result as a step
//	a|b               union of single steps
//	(a/b|c)/d         union of grouped multi-step alternatives
//
// A bare number such as 3 is an IndexOrKey component: it indexes a List
// and is the key "3" of a Map, whichever is found at evaluation time.
//
// Wildcard, Nested and Union only appear in query paths. Pointer is created
// by editing code and has no text syntax.
//
// # Related Packages
//
//   - github.com/signadot/docedit/query - evaluates multi-result paths
//   - github.com/signadot/docedit/edit - applies concrete paths
package dpath
