package schema

import (
	"slices"

	"github.com/signadot/docedit/debug"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
)

// Context is an immutable cursor into a schema tree. Each Dig follows one
// data step. Once a position without a schema is reached the cursor only
// counts further steps in emptyDepth, and after a parent key step nothing
// may follow.
type Context struct {
	root       *Schema
	stack      []*Schema
	emptyDepth int
	parentKey  bool
}

// NewContext returns a cursor at root. A nil root gives a cursor on which
// every position is Empty.
func NewContext(root *Schema) *Context {
	if root == nil {
		root = empty
	}
	return &Context{root: root, stack: []*Schema{root}}
}

func (c *Context) Root() *Schema {
	return c.root
}

// Current returns the schema at the cursor position. It is never nil and
// never Recursive.
func (c *Context) Current() *Schema {
	switch {
	case c.parentKey:
		return parentKey
	case c.emptyDepth > 0:
		return empty
	}
	return c.stack[len(c.stack)-1]
}

// Depth returns the number of steps from the root.
func (c *Context) Depth() int {
	d := len(c.stack) - 1 + c.emptyDepth
	if c.parentKey {
		d++
	}
	return d
}

func (c *Context) IsParentKey() bool {
	return c.parentKey
}

// Dig returns the cursor one step further, at the schema of the child
// addressed by k. Dig panics with a *StateError when c is at a parent key,
// or when k is a component which does not address a single child.
func (c *Context) Dig(k dpath.Component) *Context {
	if c.parentKey {
		panic(&StateError{Op: "dig", Err: ErrParentKeyState})
	}
	res := *c
	switch k.(type) {
	case dpath.ParentKey:
		res.parentKey = true
		return &res
	case dpath.ListIndex, dpath.MapKey, dpath.IndexOrKey, dpath.Pointer:
	default:
		panic(&StateError{Op: "dig", Err: ErrComponent})
	}
	if c.emptyDepth > 0 {
		res.emptyDepth++
		return &res
	}
	next := c.child(k)
	if next == nil || next.Type == EmptyType {
		res.emptyDepth = 1
		return &res
	}
	next = c.ResolveRecursive(next)
	if next == nil {
		res.emptyDepth = 1
		return &res
	}
	res.stack = append(slices.Clip(c.stack), next)
	if debug.Schema() {
		debug.Logf("dig %s: %s -> %s\n", k, c.Current().Type, next.Type)
	}
	return &res
}

func (c *Context) child(k dpath.Component) *Schema {
	cur := c.Current()
	switch cur.Type {
	case MapType, ListType:
		return cur.Item
	case FixedMapType:
		if key, ok := k.(dpath.MapKey); ok {
			return cur.Field(string(key))
		}
		return nil
	case ConditionalType:
		if key, ok := k.(dpath.MapKey); ok {
			return cur.Branch(string(key))
		}
		return cur.DefaultBranch
	}
	return nil
}

// ResolveRecursive returns s, or when s is Recursive, the ancestor it refers
// to as if s were pushed on c. The result is the ancestor itself, not a copy.
// It returns nil when the ancestor is not on the stack, which Build rules
// out.
func (c *Context) ResolveRecursive(s *Schema) *Schema {
	if s == nil || s.Type != RecursiveType {
		return s
	}
	if c.emptyDepth > 0 || c.parentKey {
		return nil
	}
	i := len(c.stack) - s.Depth
	if s.Depth < 1 || i < 0 {
		return nil
	}
	return c.stack[i]
}

// Back returns the cursor n steps closer to the root, or nil if c is less
// than n steps deep.
func (c *Context) Back(n int) *Context {
	if n < 0 || n > c.Depth() {
		return nil
	}
	res := *c
	if n > 0 && res.parentKey {
		res.parentKey = false
		n--
	}
	if m := min(n, res.emptyDepth); m > 0 {
		res.emptyDepth -= m
		n -= m
	}
	res.stack = c.stack[:len(c.stack)-n]
	return &res
}

// Default returns the value new data at the cursor position starts with, or
// nil when there is no schema for the position.
func (c *Context) Default() *model.Node {
	return c.Current().DefaultValue()
}
