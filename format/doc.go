// Package format names the text formats documents are read from and written to.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	node, err := parse.Parse(data, parse.ParseFormat(f))
//
// # Related Packages
//
//   - github.com/signadot/docedit/parse - Parse text to a model.Node
//   - github.com/signadot/docedit/encode - Encode a model.Node to text
package format
