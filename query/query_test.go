package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/docedit/cursor"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/schema"
)

func mustJSON(t *testing.T, s string) *model.Node {
	t.Helper()
	n, err := model.FromJSON([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func paths(rs []Result) []string {
	res := []string{}
	for _, r := range rs {
		res = append(res, r.Context.Path().String())
	}
	return res
}

func values(rs []Result) []string {
	res := []string{}
	for _, r := range rs {
		res = append(res, r.Value.String())
	}
	return res
}

func TestWildcardOrder(t *testing.T) {
	doc := mustJSON(t, `["x", "y", "z"]`)
	rs := Collect(dpath.MustParse("*"), cursor.New(doc, nil))
	if diff := cmp.Diff([]string{"/[0]", "/[1]", "/[2]"}, paths(rs)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{`"x"`, `"y"`, `"z"`}, values(rs)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

const doc = `{
  "sel": {"kind": "b", "idx": 1, "bad": true},
  "kinds": {"a": 1, "b": 2},
  "items": [
    {"id": "p", "tags": ["t1", "t2"]},
    {"id": "q", "tags": []},
    {"id": "r", "tags": ["t3"]}
  ],
  "m": {"x": 1, "y": 2}
}`

func TestCollect(t *testing.T) {
	root := mustJSON(t, doc)
	m := root.Get("m")
	withPending, _ := m.Append(nil, model.FromInt(3))
	root = root.WithValueAt(root.IndexOfKey("m"), withPending)

	tests := []struct {
		path string
		want []string
	}{
		{"items/*/id", []string{`"p"`, `"q"`, `"r"`}},
		{"items/*/tags/*", []string{`"t1"`, `"t2"`, `"t3"`}},
		{"m/*", []string{"1", "2"}},
		{"kinds/{/sel/kind}", []string{"2"}},
		{"items/{sel/idx}/id", []string{`"q"`}},
		{"kinds/{sel/bad}", []string{}},
		{"kinds/{/items/*/id}", []string{}},
		{"kinds/{/m/*}", []string{}},
		{"m/x|y", []string{"1", "2"}},
		{"(m/y|kinds/a|nothing)", []string{"2", "1"}},
		{"(items/0|items/2)/id", []string{`"p"`, `"r"`}},
		{"items/*/(id|tags/0)", []string{`"p"`, `"t1"`, `"q"`, `"r"`, `"t3"`}},
		{"m/*/$key", []string{`"x"`, `"y"`}},
		{"missing/*", []string{}},
		{"sel/kind/*", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rs := Collect(dpath.MustParse(tt.path), cursor.New(root, nil))
			if diff := cmp.Diff(tt.want, values(rs)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestResultContexts(t *testing.T) {
	root := mustJSON(t, doc)
	rs := Collect(dpath.MustParse("items/*/id"), cursor.New(root, nil))
	for i, r := range rs {
		back := r.Context.Pop(1)
		if !model.Equal(back.Current(), root.Get("items").Index(i)) {
			t.Errorf("result %d pops to %s", i, back.Current())
		}
	}
}

func TestGetSingle(t *testing.T) {
	root := mustJSON(t, doc)
	c := cursor.New(root, nil)
	r, ok := GetSingle(dpath.MustParse("items/*/id"), c)
	if !ok || !model.Equal(r.Value, model.FromString("p")) {
		t.Errorf("first: %s %v", r.Value, ok)
	}
	r, ok = GetSingle(dpath.MustParse("kinds/b/$key"), c)
	if !ok || !model.Equal(r.Value, model.FromString("b")) {
		t.Errorf("parent key: %s %v", r.Value, ok)
	}
	if _, ok := GetSingle(dpath.MustParse("nope"), c); ok {
		t.Error("missing")
	}
}

func TestRelativeStarts(t *testing.T) {
	sch := schema.FixedMap(
		schema.Field{Key: "items", Schema: schema.List(schema.FixedMap(
			schema.Field{Key: "id", Schema: schema.String()},
			schema.Field{Key: "tags", Schema: schema.List(schema.String())},
		).WithContextKey("item"))},
	)
	root := mustJSON(t, doc)
	tag := cursor.New(root, sch).Follow(dpath.MustParse("items/0/tags/1"))

	r, ok := GetSingle(dpath.MustParse("@item:id"), tag)
	if !ok || !model.Equal(r.Value, model.FromString("p")) {
		t.Errorf("anchor: %v", r.Value)
	}
	r, ok = GetSingle(dpath.MustParse("2:id"), tag)
	if !ok || !model.Equal(r.Value, model.FromString("p")) {
		t.Errorf("reverse count: %v", r.Value)
	}
	r, ok = GetSingle(dpath.MustParse("/sel/kind"), tag)
	if !ok || !model.Equal(r.Value, model.FromString("b")) {
		t.Errorf("absolute: %v", r.Value)
	}
	if _, ok := GetSingle(dpath.MustParse("@other:id"), tag); ok {
		t.Error("unknown anchor")
	}

	// the start is derived again on a newer root
	renamed := root.Get("items").Index(0).WithValueAt(0, model.FromString("p2"))
	items := root.Get("items").WithValueAt(0, renamed)
	root2 := root.WithValueAt(root.IndexOfKey("items"), items)
	start := StartForPath(root2, tag, dpath.MustParse("@item:id"))
	if start == nil || start.Root() != root2 {
		t.Fatal("no start on the new root")
	}
	r, _ = GetSingle(dpath.MustParse("id"), start)
	if !model.Equal(r.Value, model.FromString("p2")) {
		t.Errorf("start on new root: %v", r.Value)
	}
}

func TestFind(t *testing.T) {
	root := mustJSON(t, doc)
	c := cursor.New(root, nil)
	r, ok := Find(root, dpath.MustParse("items/*/id"), Literal{Value: model.FromString("q")}, c)
	if !ok || r.Context.Path().String() != "/items/[1]/id" {
		t.Fatalf("literal: %v", ok)
	}

	calls := 0
	count := MatchFunc(func(r Result, _ *cursor.Context) bool {
		calls++
		return true
	})
	if _, ok := Find(root, dpath.MustParse("items/*/id"), count, nil); !ok || calls != 1 {
		t.Errorf("find did not stop at the first match: %d calls", calls)
	}

	// which kind has the value of sel/idx
	r, ok = Find(root, dpath.MustParse("kinds/*"), SamePath{Path: dpath.MustParse("/sel/idx")}, c)
	if !ok || r.Context.Path().String() != "/kinds/a" {
		t.Errorf("same path: %v %v", ok, r.Context)
	}
	for range 3 {
		again, _ := Find(root, dpath.MustParse("kinds/*"), SamePath{Path: dpath.MustParse("/sel/idx")}, c)
		if again.Context.Path().String() != "/kinds/a" {
			t.Error("find is not stable")
		}
	}
	if _, ok := Find(root, dpath.MustParse("items/*/id"), Literal{Value: model.FromString("zz")}, c); ok {
		t.Error("no match expected")
	}
}

func TestExpr(t *testing.T) {
	root := mustJSON(t, doc)
	tests := []struct {
		code string
		path string
		want string
	}{
		{`value > 1`, "kinds/*", "/kinds/b"},
		{`key == "y"`, "m/*", "/m/y"},
		{`len(value.tags) == 0`, "items/*", "/items/[1]"},
		{`getpath("id") == "r"`, "items/*", "/items/[2]"},
		{`path == "/m/x"`, "m/*", "/m/x"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			m, err := Expr(tt.code)
			if err != nil {
				t.Fatal(err)
			}
			r, ok := Find(root, dpath.MustParse(tt.path), m, nil)
			if !ok || r.Context.Path().String() != tt.want {
				t.Errorf("got %v %v", ok, r.Context)
			}
		})
	}
	if _, err := Expr(`value +`); err == nil {
		t.Error("expected compile error")
	}
}

func TestFindOption(t *testing.T) {
	sel := schema.SelectString("/items/*", "id")
	sch := schema.FixedMap(
		schema.Field{Key: "items", Schema: schema.List(schema.Map(schema.String()))},
		schema.Field{Key: "choice", Schema: sel},
	)
	if err := schema.Build(sch); err != nil {
		t.Fatal(err)
	}
	root := mustJSON(t, `{"items": [{"id": "p", "label": "P"}, {"id": "q", "label": "Q"}, {"label": "none"}], "choice": "q"}`)
	choice := cursor.New(root, sch).PushMapKey("choice")
	r, ok := FindOption(sel.Select, choice.Current(), choice)
	if !ok || !model.Equal(r.Value.Get("label"), model.FromString("Q")) {
		t.Errorf("option row: %v %v", ok, r.Value)
	}
	rows, vals := Options(sel.Select, choice)
	if len(rows) != 2 || len(vals) != 2 || !model.Equal(vals[1].Value, model.FromString("q")) {
		t.Errorf("options: %d rows", len(rows))
	}
}
