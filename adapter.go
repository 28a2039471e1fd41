package docedit

import (
	"iter"

	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/edit"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/schema"
)

// Adapter lets a storage layer work with documents without knowing the
// concrete representation.
type Adapter interface {
	// FromRaw converts a decoded value (nil, bool, numbers, string,
	// []any, map[string]any) to a document.
	FromRaw(raw any) (*model.Node, error)
	// ToRaw is the inverse of FromRaw.
	ToRaw(doc *model.Node) any

	// GetForPath returns the value at p, or nil.
	GetForPath(doc *model.Node, p dpath.Path) *model.Node
	// SetForPath returns doc with v at p. It returns nil when nothing
	// changes or p cannot be reached.
	SetForPath(doc *model.Node, p dpath.Path, v *model.Node) (*model.Node, error)

	// MapEntries iterates over the keyed entries of a Map.
	MapEntries(doc *model.Node) iter.Seq2[string, *model.Node]
	// Equal is total and ignores element ids.
	Equal(a, b *model.Node) bool
	WrapString(s string) *model.Node
}

// ModelAdapter is the Adapter for model documents. Schema, when set,
// supplies defaults for Map entries SetForPath creates on the way.
type ModelAdapter struct {
	Schema *schema.Schema
}

var _ Adapter = (*ModelAdapter)(nil)

func NewModelAdapter(sch *schema.Schema) *ModelAdapter {
	return &ModelAdapter{Schema: sch}
}

func (a *ModelAdapter) FromRaw(raw any) (*model.Node, error) {
	return model.FromAny(raw)
}

func (a *ModelAdapter) ToRaw(doc *model.Node) any {
	return model.ToAny(doc)
}

func (a *ModelAdapter) GetForPath(doc *model.Node, p dpath.Path) *model.Node {
	return edit.Get(doc, p)
}

func (a *ModelAdapter) SetForPath(doc *model.Node, p dpath.Path, v *model.Node) (*model.Node, error) {
	return edit.SetAt(doc, p, a.Schema, v)
}

func (a *ModelAdapter) MapEntries(doc *model.Node) iter.Seq2[string, *model.Node] {
	return doc.Entries()
}

func (a *ModelAdapter) Equal(x, y *model.Node) bool {
	return model.Equal(x, y)
}

func (a *ModelAdapter) WrapString(s string) *model.Node {
	return model.FromString(s)
}
