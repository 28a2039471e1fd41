package query

import (
	"iter"
	"slices"

	"github.com/signadot/docedit/cursor"
	"github.com/signadot/docedit/debug"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
)

// Result is one location found by a query.
type Result struct {
	Value   *model.Node
	Context *cursor.Context
}

// All iterates over the results of p evaluated from c, in document order.
func All(p dpath.Path, c *cursor.Context) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		if c == nil {
			return
		}
		start := c.Start(p)
		if start == nil {
			return
		}
		if debug.Query() {
			debug.Logf("query %s from %s\n", p, c)
		}
		eval(start, p.Components, c, yield)
	}
}

// Collect returns all results of p evaluated from c.
func Collect(p dpath.Path, c *cursor.Context) []Result {
	return slices.Collect(All(p, c))
}

// GetSingle returns the first result of p evaluated from c.
func GetSingle(p dpath.Path, c *cursor.Context) (Result, bool) {
	for r := range All(p, c) {
		return r, true
	}
	return Result{}, false
}

// StartForPath returns the context p's components are evaluated from, with
// the data position derived again on root, which is usually a newer version
// of the document c was made on. A nil c stands for the root of root.
func StartForPath(root *model.Node, c *cursor.Context, p dpath.Path) *cursor.Context {
	if c == nil {
		c = cursor.New(root, nil)
	} else if c.Root() != root {
		c = c.WithRoot(root)
	}
	return c.Start(p)
}

// eval yields the results of cs applied to cur. base is the context nested
// paths are evaluated from. It returns false when yield asked to stop.
func eval(cur *cursor.Context, cs []dpath.Component, base *cursor.Context, yield func(Result) bool) bool {
	n := cur.Current()
	if n == nil {
		return true
	}
	if len(cs) == 0 {
		return yield(Result{Value: n, Context: cur})
	}
	if cur.IsKey() {
		return true
	}
	rest := cs[1:]
	switch x := cs[0].(type) {
	case dpath.Wildcard:
		for i, it := range n.All() {
			var next *cursor.Context
			switch {
			case n.IsList():
				next = cur.PushListIndex(i)
			case it.Key == nil:
				continue
			default:
				next = cur.PushMapIndex(i, it.Key)
			}
			if !eval(next, rest, base, yield) {
				return false
			}
		}
		return true
	case dpath.Nested:
		for r := range All(x.Path, base) {
			step, ok := literalStep(r.Value)
			if !ok {
				continue
			}
			if !eval(cur, append([]dpath.Component{step}, rest...), base, yield) {
				return false
			}
		}
		return true
	case dpath.Union:
		for _, alt := range x.Alternatives {
			start := cur.Start(alt)
			if start == nil {
				continue
			}
			if !eval(start, append(slices.Clip(alt.Components), rest...), base, yield) {
				return false
			}
		}
		return true
	}
	return eval(cur.PushComponent(cs[0]), rest, base, yield)
}

// literalStep turns a nested result into a step: Strings are Map keys and
// integral numbers are indices or keys. Other values give no step.
func literalStep(v *model.Node) (dpath.Component, bool) {
	if s, ok := v.Str(); ok {
		return dpath.MapKey(s), true
	}
	if i, ok := v.Integral(); ok {
		return dpath.IndexOrKey(int(i)), true
	}
	return nil, false
}
