package cursor

import (
	"slices"
	"strconv"

	"github.com/signadot/docedit/debug"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/schema"
)

// Context is an immutable cursor pairing a data position with a schema
// position. The zero value is not usable; start with New.
type Context struct {
	root    *model.Node
	schema  *schema.Context
	steps   []Step
	ledger  []LedgerEntry
	current *model.Node
	isKey   bool
}

// New returns a Context at the root of doc. sch may be nil when the
// document has no schema.
func New(doc *model.Node, sch *schema.Schema) *Context {
	res := &Context{
		root:    doc,
		schema:  schema.NewContext(sch),
		current: doc,
	}
	res.tag()
	return res
}

func (c *Context) Root() *model.Node {
	return c.root
}

// Current returns the value at the cursor, or nil when the position does
// not exist in the document. In the parent key state the value is the key
// of the enclosing Map element as a String, or Null for a pending key.
func (c *Context) Current() *model.Node {
	return c.current
}

func (c *Context) Schema() *schema.Context {
	return c.schema
}

func (c *Context) SchemaRoot() *schema.Schema {
	return c.schema.Root()
}

// Steps returns a copy of the steps from the root.
func (c *Context) Steps() []Step {
	return slices.Clone(c.steps)
}

// Ledger returns a copy of the context key ledger.
func (c *Context) Ledger() []LedgerEntry {
	return slices.Clone(c.ledger)
}

func (c *Context) IsKey() bool {
	return c.isKey
}

// Depth returns the number of pushes from the root, counting the parent
// key state.
func (c *Context) Depth() int {
	if c.isKey {
		return len(c.steps) + 1
	}
	return len(c.steps)
}

// Key returns the key of the Map element the cursor is on, and whether the
// cursor is on a Map element at all.
func (c *Context) Key() (*string, bool) {
	if len(c.steps) == 0 {
		return nil, false
	}
	last := c.steps[len(c.steps)-1]
	if !last.Map {
		return nil, false
	}
	return last.Key, true
}

// Parent returns the value containing the cursor position, or nil.
func (c *Context) Parent() *model.Node {
	if len(c.steps) == 0 {
		return nil
	}
	res, _ := walk(c.root, c.steps[:len(c.steps)-1])
	return res
}

// Path returns the absolute path of the cursor position.
func (c *Context) Path() dpath.Path {
	cs := make([]dpath.Component, 0, c.Depth())
	for _, st := range c.steps {
		cs = append(cs, st.Component())
	}
	if c.isKey {
		cs = append(cs, dpath.ParentKey{})
	}
	return dpath.Abs(cs...)
}

func (c *Context) String() string {
	return c.Path().String()
}

// PushListIndex moves to element i of a List.
func (c *Context) PushListIndex(i int) *Context {
	return c.push(Step{Index: i})
}

// PushMapKey moves to the first element with key k of a Map. It scans the
// Map; prefer PushMapIndex when the position is known.
func (c *Context) PushMapKey(k string) *Context {
	return c.push(Step{Map: true, Index: c.current.IndexOfKey(k), Key: model.Key(k)})
}

// PushMapIndex moves to element i of a Map, whose key is k.
func (c *Context) PushMapIndex(i int, k *string) *Context {
	return c.push(Step{Map: true, Index: i, Key: k})
}

// PushPointer moves to the element of the current collection p refers to.
func (c *Context) PushPointer(p model.Pointer) *Context {
	return c.push(Step{Map: c.current.IsMap(), Index: p.Index, ID: p.ID})
}

// PushIsParentKey enters the parent key state, in which the cursor is on
// the key of the Map element it was on. Nothing may be pushed after it.
func (c *Context) PushIsParentKey() *Context {
	c.checkNotKey("push parent key")
	res := *c
	res.isKey = true
	res.schema = c.schema.Dig(dpath.ParentKey{})
	res.current = nil
	if k, ok := c.Key(); ok && c.current != nil {
		if k == nil {
			res.current = model.Null()
		} else {
			res.current = model.FromString(*k)
		}
	}
	return &res
}

// PushComponent pushes a single step path component. IndexOrKey is a List
// index on a List and a Map key otherwise. PushComponent panics with a
// *schema.StateError for wildcard, nested and union components.
func (c *Context) PushComponent(comp dpath.Component) *Context {
	switch x := comp.(type) {
	case dpath.ListIndex:
		return c.PushListIndex(int(x))
	case dpath.MapKey:
		return c.PushMapKey(string(x))
	case dpath.IndexOrKey:
		if c.current.IsList() {
			return c.PushListIndex(int(x))
		}
		return c.PushMapKey(strconv.Itoa(int(x)))
	case dpath.ParentKey:
		return c.PushIsParentKey()
	case dpath.Pointer:
		return c.PushPointer(model.Pointer(x))
	}
	panic(&schema.StateError{Op: "push " + comp.String(), Err: schema.ErrComponent})
}

// Follow applies p from the cursor: its start (root, reverse count or
// anchor) and then its components. It returns nil when the start does not
// exist, and panics like PushComponent on multi-path components.
func (c *Context) Follow(p dpath.Path) *Context {
	res := c.Start(p)
	if res == nil {
		return nil
	}
	for _, comp := range p.Components {
		res = res.PushComponent(comp)
	}
	return res
}

// Start returns the context p's components are evaluated from: the root for
// absolute paths, c popped ReverseCount levels, or c popped to the nearest
// position tagged with p.Anchor. The data position is derived again from the
// popped context. Start returns nil when there are not enough levels or no
// tagged position.
func (c *Context) Start(p dpath.Path) *Context {
	switch {
	case p.Absolute:
		return c.Pop(c.Depth())
	case p.ReverseCount > 0:
		return c.Pop(p.ReverseCount)
	case p.Anchor != "":
		return c.PopToAnchor(p.Anchor)
	}
	return c
}

func (c *Context) push(st Step) *Context {
	c.checkNotKey("push " + st.String())
	res := *c
	res.steps = append(slices.Clip(c.steps), st)
	res.current, res.steps = walk(c.root, res.steps)
	// dig with the walked step: a pointer into a Map resolves to its key.
	res.schema = c.schema.Dig(res.steps[len(res.steps)-1].Component())
	res.tag()
	if debug.Cursor() {
		debug.Logf("cursor push %s: %s schema %s\n", st, res.current, res.schema.Current().Type)
	}
	return &res
}

func (c *Context) checkNotKey(op string) {
	if c.isKey {
		panic(&schema.StateError{Op: op, Err: schema.ErrParentKeyState})
	}
}

func (c *Context) tag() {
	if k := c.schema.Current().ContextKey; k != "" {
		c.ledger = append(slices.Clip(c.ledger), LedgerEntry{Key: k, Depth: len(c.steps)})
	}
}

// Pop returns the cursor n levels up, or nil when c is less than n levels
// deep. Leaving the parent key state counts as one level.
func (c *Context) Pop(n int) *Context {
	if n < 0 || n > c.Depth() {
		return nil
	}
	if n == 0 {
		return c
	}
	res := *c
	res.schema = c.schema.Back(n)
	if res.isKey {
		res.isKey = false
		n--
	}
	res.steps = c.steps[:len(c.steps)-n]
	res.ledger = c.ledger
	for len(res.ledger) > 0 && res.ledger[len(res.ledger)-1].Depth > len(res.steps) {
		res.ledger = res.ledger[:len(res.ledger)-1]
	}
	res.current, res.steps = walk(c.root, res.steps)
	return &res
}

// PopToAnchor pops to the nearest position, the cursor itself included,
// whose schema has context key k. It returns nil when there is none.
func (c *Context) PopToAnchor(k string) *Context {
	for i := len(c.ledger) - 1; i >= 0; i-- {
		if c.ledger[i].Key == k {
			return c.Pop(c.Depth() - c.ledger[i].Depth)
		}
	}
	return nil
}

// WithRoot returns the same position in doc, normally a later version of
// the document produced by an edit. Steps with known ids follow their
// elements.
func (c *Context) WithRoot(doc *model.Node) *Context {
	res := *c
	res.root = doc
	res.current, res.steps = walk(doc, c.steps)
	if c.isKey {
		res.isKey = false
		res.schema = c.schema.Back(1)
		return res.PushIsParentKey()
	}
	return &res
}
