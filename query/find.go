package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/docedit/cursor"
	"github.com/signadot/docedit/debug"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/schema"
)

// Matcher decides whether a query result is the one searched for. base is
// the context the search started from.
type Matcher interface {
	Match(r Result, base *cursor.Context) bool
}

// MatchFunc adapts a function to a Matcher.
type MatchFunc func(r Result, base *cursor.Context) bool

func (f MatchFunc) Match(r Result, base *cursor.Context) bool {
	return f(r, base)
}

// Literal matches results equal to a value.
type Literal struct {
	Value *model.Node
}

func (m Literal) Match(r Result, _ *cursor.Context) bool {
	return model.Equal(r.Value, m.Value)
}

// SamePath matches results equal to the first value of Path evaluated from
// the search's base context.
type SamePath struct {
	Path dpath.Path
}

func (m SamePath) Match(r Result, base *cursor.Context) bool {
	other, ok := GetSingle(m.Path, base)
	return ok && model.Equal(r.Value, other.Value)
}

// Find returns the first result of p, evaluated in data from c, that m
// accepts. c may be nil to search from the root of data. The search is
// depth-first in document order and stops at the first match.
func Find(data *model.Node, p dpath.Path, m Matcher, c *cursor.Context) (Result, bool) {
	base := StartForPath(data, c, dpath.Path{})
	for r := range All(p, base) {
		if m.Match(r, base) {
			if debug.Query() {
				debug.Logf("find %s: match at %s\n", p, r.Context)
			}
			return r, true
		}
	}
	return Result{}, false
}

// Options returns the option rows of a select schema, evaluated from c, and
// their values.
func Options(sel *schema.Select, c *cursor.Context) (rows, values []Result) {
	for row := range All(sel.ItemsPath, c) {
		v, ok := GetSingle(sel.ValuePath, row.Context)
		if !ok {
			continue
		}
		rows = append(rows, row)
		values = append(values, v)
	}
	return rows, values
}

// FindOption returns the option row of a select schema whose value is v: the
// row that produced a selected value.
func FindOption(sel *schema.Select, v *model.Node, c *cursor.Context) (Result, bool) {
	valueOf := MatchFunc(func(r Result, _ *cursor.Context) bool {
		got, ok := GetSingle(sel.ValuePath, r.Context)
		return ok && model.Equal(got.Value, v)
	})
	return Find(c.Root(), sel.ItemsPath, valueOf, c)
}

// Expr compiles a boolean expr-lang expression into a Matcher. The
// expression sees the result as value (plain Go values, as from JSON), its
// Map key as key (nil in a List), its path as path, and a function
// getpath(p) evaluating p from the result.
func Expr(code string) (Matcher, error) {
	prg, err := expr.Compile(code, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", code, err)
	}
	return exprMatcher{prg: prg}, nil
}

type exprMatcher struct {
	prg *vm.Program
}

func (m exprMatcher) Match(r Result, _ *cursor.Context) bool {
	res, err := expr.Run(m.prg, exprEnv(r))
	if err != nil {
		if debug.Query() {
			debug.Logf("expr at %s: %v\n", r.Context, err)
		}
		return false
	}
	ok, _ := res.(bool)
	return ok
}

func exprEnv(r Result) map[string]any {
	env := map[string]any{
		"value": model.ToAny(r.Value),
		"key":   nil,
		"path":  "",
		"getpath": func(p string) any {
			return nil
		},
	}
	if r.Context == nil {
		return env
	}
	env["path"] = r.Context.Path().String()
	if k, ok := r.Context.Key(); ok && k != nil {
		env["key"] = *k
	}
	env["getpath"] = func(p string) any {
		path, err := dpath.Parse(p)
		if err != nil {
			return nil
		}
		res, ok := GetSingle(path, r.Context)
		if !ok {
			return nil
		}
		return model.ToAny(res.Value)
	}
	return env
}
