// Package encode writes [model.Node] documents as JSON or YAML.
//
// Map entries are written in document order. Like the JSON projection of a
// node, only the first entry of each key is written and pending (keyless)
// entries are left out.
package encode
