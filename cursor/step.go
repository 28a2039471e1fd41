package cursor

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
)

// Step is one concrete step of a Context. Index is a position cache; ID,
// when non-zero, identifies the element and wins over Index. Map steps also
// carry the element key, nil for a pending entry.
type Step struct {
	Map   bool
	Index int
	Key   *string
	ID    uint64
}

func (s Step) String() string {
	if !s.Map {
		return dpath.ListIndex(s.Index).String()
	}
	if s.Key == nil {
		return dpath.Pointer(model.Pointer{Index: s.Index, ID: s.ID}).String()
	}
	return dpath.MapKey(*s.Key).String()
}

// Component returns the path component addressing the same element. It is
// also the key the schema cursor digs with for s.
func (s Step) Component() dpath.Component {
	switch {
	case !s.Map:
		return dpath.ListIndex(s.Index)
	case s.Key != nil:
		return dpath.MapKey(*s.Key)
	}
	return dpath.Pointer(model.Pointer{Index: s.Index, ID: s.ID})
}

// MarshalJSON writes a List step as its index and a Map step as
// [index, key]. Ids are not written: they are only meaningful within one
// loaded document.
func (s Step) MarshalJSON() ([]byte, error) {
	if !s.Map {
		return j.Marshal(s.Index)
	}
	return j.Marshal([]any{s.Index, s.Key})
}

func (s *Step) UnmarshalJSON(d []byte) error {
	var v any
	if err := j.Unmarshal(d, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*s = Step{Index: int(x)}
		return nil
	case []any:
		if len(x) != 2 {
			break
		}
		i, ok := x[0].(float64)
		if !ok {
			break
		}
		res := Step{Map: true, Index: int(i)}
		switch k := x[1].(type) {
		case string:
			res.Key = model.Key(k)
		case nil:
		default:
			return fmt.Errorf("%w: map step key %v", ErrSerialized, k)
		}
		*s = res
		return nil
	}
	return fmt.Errorf("%w: step %s", ErrSerialized, d)
}

// LedgerEntry records that the position Depth steps from the root has a
// schema tagged with context key Key.
type LedgerEntry struct {
	Key   string `json:"key"`
	Depth int    `json:"depth"`
}

// walk follows steps from root. It returns the value reached, or nil, and
// the steps refreshed against the data: indices follow ids, and ids and keys
// are filled in.
func walk(root *model.Node, steps []Step) (*model.Node, []Step) {
	res := make([]Step, len(steps))
	copy(res, steps)
	cur := root
	for k := range res {
		if cur == nil {
			return nil, res
		}
		st := &res[k]
		i := st.Locate(cur)
		if i < 0 {
			cur = nil
			continue
		}
		it, _ := cur.At(i)
		st.Index = i
		st.ID = it.ID
		if st.Map {
			st.Key = it.Key
		}
		cur = it.Value
	}
	return cur, res
}

// Locate returns the position in n of the element s addresses, or -1. An id
// is resolved like a pointer; otherwise the cached index is used when it
// still holds the step's key, and Map steps fall back to the first entry
// with that key.
func (s Step) Locate(n *model.Node) int {
	if s.Map != n.IsMap() || (!s.Map && !n.IsList()) {
		return -1
	}
	if s.ID != 0 {
		i, ok := n.Resolve(model.Pointer{Index: s.Index, ID: s.ID})
		if !ok {
			return -1
		}
		return i
	}
	if it, ok := n.At(s.Index); ok && (!s.Map || model.KeyEqual(it.Key, s.Key)) {
		return s.Index
	}
	if s.Map && s.Key != nil {
		return n.IndexOfKey(*s.Key)
	}
	return -1
}
