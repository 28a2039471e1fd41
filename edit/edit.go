package edit

import (
	"github.com/signadot/docedit/cursor"
	"github.com/signadot/docedit/debug"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/schema"
)

// Set puts v at the cursor position. Missing Map entries on the way are
// created: the last one holds v, the ones before it start from the default
// value of their schema. Without a schema default the edit does nothing.
//
// In the parent key state, Set renames the enclosing Map element; v must
// then be a String or Null.
func Set(c *cursor.Context, v *model.Node) (*model.Node, error) {
	if v == nil {
		v = model.Null()
	}
	if debug.Edit() {
		debug.Logf("set %s to %s\n", c.Path(), v)
	}
	if c.IsKey() {
		return setParentKey(c, v)
	}
	res, err := set(c.Root(), c.Steps(), schema.NewContext(c.SchemaRoot()), v)
	return changed(c.Root(), res, err)
}

// SetAt is Set at path p from the root of doc. Multi-path components are an
// error.
func SetAt(doc *model.Node, p dpath.Path, sch *schema.Schema, v *model.Node) (*model.Node, error) {
	if p.IsMulti() {
		return nil, &OperationError{Op: "set", Path: p, Err: ErrMultiPath}
	}
	c := cursor.New(doc, sch).Follow(p)
	if c == nil {
		return nil, nil
	}
	return Set(c, v)
}

// set returns n when nothing changes and nil when the target cannot be
// reached.
func set(n *model.Node, steps []cursor.Step, sc *schema.Context, v *model.Node) (*model.Node, error) {
	if len(steps) == 0 {
		if model.Equal(n, v) {
			return n, nil
		}
		return v, nil
	}
	st := steps[0]
	csc := sc.Dig(st.Component())
	if i := st.Locate(n); i >= 0 {
		old := n.Index(i)
		child, err := set(old, steps[1:], csc, v)
		switch child {
		case nil:
			return nil, err
		case old:
			return n, nil
		}
		return n.WithValueAt(i, child), nil
	}
	if !n.IsMap() || !st.Map || st.Key == nil {
		return nil, nil
	}
	child := v
	if len(steps) > 1 {
		def := csc.Default()
		if def == nil {
			return nil, nil
		}
		var err error
		if child, err = set(def, steps[1:], csc, v); child == nil {
			return nil, err
		}
	}
	res, _ := n.Append(st.Key, child)
	return res, nil
}

func setParentKey(c *cursor.Context, v *model.Node) (*model.Node, error) {
	var key *string
	switch {
	case v.IsNull():
	case v.Type() == model.StringType:
		s, _ := v.Str()
		key = model.Key(s)
	default:
		return nil, &OperationError{Op: "set", Path: c.Path(), Err: ErrKeyType}
	}
	elem := c.Pop(1)
	steps := elem.Steps()
	if len(steps) == 0 || elem.Current() == nil {
		return nil, nil
	}
	last := steps[len(steps)-1]
	res, err := splice(c.Root(), steps[:len(steps)-1], func(m *model.Node) (*model.Node, error) {
		i := last.Locate(m)
		if i < 0 {
			return nil, nil
		}
		return withKey(m, i, key), nil
	})
	return changed(c.Root(), res, err)
}

// Insert adds v to the collection at the cursor, just after the element
// after points to, or first when after is nil. In a Map the new entry is
// pending: it has no key yet. Insert returns nil, nil when the cursor is
// not on a collection.
func Insert(c *cursor.Context, after *model.Pointer, v *model.Node) (*model.Node, error) {
	return insert(c, "insert", after, nil, v)
}

// InsertKey is Insert with the key of the new Map entry.
func InsertKey(c *cursor.Context, after *model.Pointer, key *string, v *model.Node) (*model.Node, error) {
	return insert(c, "insert", after, key, v)
}

func insert(c *cursor.Context, op string, after *model.Pointer, key *string, v *model.Node) (*model.Node, error) {
	if debug.Edit() {
		debug.Logf("%s %s after %v: %s\n", op, c.Path(), after, v)
	}
	if c.IsKey() || !c.Current().IsCollection() {
		return nil, nil
	}
	return modify(c, op, func(n *model.Node) (*model.Node, error) {
		pos := 0
		if after != nil {
			i, ok := n.Resolve(*after)
			if !ok {
				return nil, nil
			}
			pos = i + 1
		}
		res, _ := n.InsertAt(pos, key, v)
		return res, nil
	})
}

// Push appends v to the collection at the cursor, with a pending key in a
// Map. Pushing onto a value which is not a collection is an error.
func Push(c *cursor.Context, v *model.Node) (*model.Node, error) {
	return PushKey(c, nil, v)
}

// PushKey appends v under key, which may be nil or duplicate an existing
// key. Lists ignore the key.
func PushKey(c *cursor.Context, key *string, v *model.Node) (*model.Node, error) {
	if debug.Edit() {
		debug.Logf("push %s: %v %s\n", c.Path(), debug.Key(key), v)
	}
	return modify(c, "push", func(n *model.Node) (*model.Node, error) {
		res, _ := n.Append(key, v)
		return res, nil
	})
}

// Delete removes the element at of the collection at the cursor. With a nil
// pointer it removes the element the cursor is on, the enclosing element in
// the parent key state.
func Delete(c *cursor.Context, at *model.Pointer) (*model.Node, error) {
	if debug.Edit() {
		debug.Logf("delete %s at %v\n", c.Path(), at)
	}
	if at != nil {
		if !c.Current().IsCollection() {
			return nil, nil
		}
		return modify(c, "delete", func(n *model.Node) (*model.Node, error) {
			i, ok := n.Resolve(*at)
			if !ok {
				return nil, nil
			}
			return n.RemoveAt(i), nil
		})
	}
	if c.IsKey() {
		c = c.Pop(1)
	}
	steps := c.Steps()
	if len(steps) == 0 || c.Current() == nil {
		return nil, nil
	}
	last := steps[len(steps)-1]
	res, err := splice(c.Root(), steps[:len(steps)-1], func(n *model.Node) (*model.Node, error) {
		i := last.Locate(n)
		if i < 0 {
			return nil, nil
		}
		return n.RemoveAt(i), nil
	})
	return changed(c.Root(), res, err)
}

// SetKey renames the element src points to in the Map at the cursor. The
// element keeps its id and value.
func SetKey(c *cursor.Context, src model.Pointer, key *string) (*model.Node, error) {
	if debug.Edit() {
		debug.Logf("setkey %s at %s: %v\n", c.Path(), src, debug.Key(key))
	}
	if !c.Current().IsMap() {
		return nil, nil
	}
	return modify(c, "setkey", func(n *model.Node) (*model.Node, error) {
		i, ok := n.Resolve(src)
		if !ok {
			return nil, nil
		}
		return withKey(n, i, key), nil
	})
}

func withKey(n *model.Node, i int, key *string) *model.Node {
	it, _ := n.At(i)
	if model.KeyEqual(it.Key, key) {
		return n
	}
	return n.WithKeyAt(i, key)
}

// modify applies f to the collection at the cursor and rebuilds the spine.
func modify(c *cursor.Context, op string, f func(*model.Node) (*model.Node, error)) (*model.Node, error) {
	if c.IsKey() {
		return nil, &OperationError{Op: op, Path: c.Path(), Err: ErrNotCollection}
	}
	res, err := splice(c.Root(), c.Steps(), func(n *model.Node) (*model.Node, error) {
		if !n.IsCollection() {
			return nil, &OperationError{Op: op, Path: c.Path(), Err: ErrNotCollection}
		}
		return f(n)
	})
	return changed(c.Root(), res, err)
}

// splice applies f to the value at steps under n and returns n with the
// result in place, copying only the nodes on the way. Like set, it returns
// n when f leaves the value alone and nil when steps cannot be followed.
func splice(n *model.Node, steps []cursor.Step, f func(*model.Node) (*model.Node, error)) (*model.Node, error) {
	if len(steps) == 0 {
		return f(n)
	}
	i := steps[0].Locate(n)
	if i < 0 {
		return nil, nil
	}
	old := n.Index(i)
	child, err := splice(old, steps[1:], f)
	if err != nil || child == nil {
		return nil, err
	}
	if child == old {
		return n, nil
	}
	return n.WithValueAt(i, child), nil
}

func changed(root, res *model.Node, err error) (*model.Node, error) {
	if err != nil || res == root {
		return nil, err
	}
	return res, nil
}
