package cursor

import (
	"fmt"
	"slices"

	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/schema"
)

// Serialized is the compact form of a Context, suitable for undo history
// and for passing a position between processes.
type Serialized struct {
	Path   []Step        `json:"path"`
	Ledger []LedgerEntry `json:"contextKeyLedger,omitempty"`
	IsKey  bool          `json:"isKey,omitempty"`
}

func (c *Context) Serialize() Serialized {
	return Serialized{
		Path:   slices.Clone(c.steps),
		Ledger: slices.Clone(c.ledger),
		IsKey:  c.isKey,
	}
}

// Deserialize rebuilds a Context on doc from s, walking doc once.
func Deserialize(doc *model.Node, sch *schema.Schema, s Serialized) (*Context, error) {
	if s.Path == nil {
		s.Path = []Step{}
	}
	for i, st := range s.Path {
		if st.Index < 0 && !(st.Map && st.Key != nil) {
			return nil, fmt.Errorf("%w: step %d has no index", ErrSerialized, i)
		}
	}
	last := -1
	for _, e := range s.Ledger {
		if e.Depth < last || e.Depth > len(s.Path) {
			return nil, fmt.Errorf("%w: ledger entry %q at depth %d", ErrSerialized, e.Key, e.Depth)
		}
		last = e.Depth
	}
	sc := schema.NewContext(sch)
	for _, st := range s.Path {
		sc = sc.Dig(st.Component())
	}
	res := &Context{
		root:   doc,
		schema: sc,
		ledger: slices.Clone(s.Ledger),
	}
	res.current, res.steps = walk(doc, s.Path)
	if s.IsKey {
		return res.PushIsParentKey(), nil
	}
	return res, nil
}
