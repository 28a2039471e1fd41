// Package parse reads JSON and YAML documents into [model.Node] trees.
//
// Map entries keep their document order. In YAML, a null key such as
// `~: x` becomes a pending entry without a key, and scalar keys of other
// kinds are rendered to their string form.
package parse
