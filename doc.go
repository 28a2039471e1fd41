// Package docedit is the entry point to the document editing core for
// storage layers which read and write whole documents.
//
// [Adapter] is the contract such a layer uses to move between its raw values
// and [model.Node] documents, read and write single paths, and compare
// versions. [ModelAdapter] implements it. The merge patch and JSON patch
// bridges convert between document versions and RFC 7396 / RFC 6902
// patches.
package docedit
