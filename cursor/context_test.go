package cursor

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
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

func treeSchema() *schema.Schema {
	return schema.List(schema.FixedMap(
		schema.Field{Key: "name", Schema: schema.String()},
		schema.Field{Key: "children", Schema: schema.Recursive(2)},
	).WithContextKey("node"))
}

const treeDoc = `[{"name": "a", "children": [{"name": "b", "children": []}]}]`

func TestPush(t *testing.T) {
	doc := mustJSON(t, treeDoc)
	c := New(doc, treeSchema()).
		PushListIndex(0).
		PushMapKey("children").
		PushComponent(dpath.IndexOrKey(0)).
		PushMapKey("name")
	if got, _ := c.Current().Str(); got != "b" {
		t.Errorf("current %s", c.Current())
	}
	if c.Schema().Current().Type != schema.StringType {
		t.Errorf("schema %s", c.Schema().Current().Type)
	}
	if c.Path().String() != "/[0]/children/[0]/name" {
		t.Errorf("path %s", c.Path())
	}
	want := []LedgerEntry{{Key: "node", Depth: 1}, {Key: "node", Depth: 3}}
	if diff := cmp.Diff(want, c.Ledger()); diff != "" {
		t.Errorf("ledger (-want +got):\n%s", diff)
	}
}

func TestPushSoftFail(t *testing.T) {
	doc := mustJSON(t, `{"a": [1, 2], "3": "three"}`)
	c := New(doc, nil)
	tests := []struct {
		name string
		c    *Context
		want *model.Node
	}{
		{"missing key", c.PushMapKey("x"), nil},
		{"list index on map", c.PushListIndex(0), nil},
		{"map key on list", c.PushMapKey("a").PushMapKey("0"), nil},
		{"index out of range", c.PushMapKey("a").PushListIndex(2), nil},
		{"past a leaf", c.PushMapKey("3").PushMapKey("x"), nil},
		{"index or key on map", c.PushComponent(dpath.IndexOrKey(3)), model.FromString("three")},
		{"index or key on list", c.PushMapKey("a").PushComponent(dpath.IndexOrKey(1)), model.FromInt(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !model.Equal(tt.c.Current(), tt.want) {
				t.Errorf("got %s want %s", tt.c.Current(), tt.want)
			}
		})
	}
}

func TestParentKey(t *testing.T) {
	doc := mustJSON(t, `{"a": {"k": 1}}`)
	c := New(doc, schema.Map(schema.Map(schema.Number()))).PushMapKey("a").PushMapIndex(0, model.Key("k"))
	k := c.PushIsParentKey()
	if got, _ := k.Current().Str(); got != "k" || !k.IsKey() {
		t.Errorf("key state current %s", k.Current())
	}
	if k.Path().String() != "/a/k/$key" || k.Depth() != 3 {
		t.Errorf("path %s depth %d", k.Path(), k.Depth())
	}
	if back := k.Pop(1); back.IsKey() || !model.Equal(back.Current(), model.FromInt(1)) {
		t.Errorf("pop from key state: %s", back.Current())
	}
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, schema.ErrParentKeyState) {
			t.Errorf("recovered %v", err)
		}
	}()
	k.PushMapKey("x")
}

func TestPushPointerIntoMap(t *testing.T) {
	doc := mustJSON(t, `{"a": {"x": 1}}`)
	sch := schema.FixedMap(schema.Field{
		Key:    "a",
		Schema: schema.FixedMap(schema.Field{Key: "x", Schema: schema.Number()}).WithContextKey("row"),
	})
	p, _ := doc.PointerAt(0)
	root := New(doc, sch)
	for name, c := range map[string]*Context{
		"PushPointer": root.PushPointer(p),
		"Follow":      root.Follow(dpath.New(dpath.Pointer(p))),
	} {
		t.Run(name, func(t *testing.T) {
			if got := c.Schema().Current().Type; got != schema.FixedMapType {
				t.Errorf("schema type %s", got)
			}
			if got := c.Path().String(); got != "/a" {
				t.Errorf("path %s", got)
			}
			if diff := cmp.Diff([]LedgerEntry{{Key: "row", Depth: 1}}, c.Ledger()); diff != "" {
				t.Errorf("ledger (-want +got):\n%s", diff)
			}
			if c.PopToAnchor("row") == nil {
				t.Error("no anchor")
			}
			x := c.PushMapKey("x")
			if x.Schema().Current().Type != schema.NumberType || !model.Equal(x.Current(), model.FromInt(1)) {
				t.Errorf("x: %s %s", x.Current(), x.Schema().Current().Type)
			}
		})
	}
}

func TestPushMultiPanics(t *testing.T) {
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, schema.ErrComponent) {
			t.Errorf("recovered %v", err)
		}
	}()
	New(model.EmptyMap(), nil).PushComponent(dpath.Wildcard{})
}

func TestPopAndAnchor(t *testing.T) {
	doc := mustJSON(t, treeDoc)
	c := New(doc, treeSchema()).
		PushListIndex(0).PushMapKey("children").PushListIndex(0).PushMapKey("name")
	if got := c.Pop(2); got.Path().String() != "/[0]/children" || !got.Current().IsList() {
		t.Errorf("pop 2: %s %s", got.Path(), got.Current())
	}
	if len(c.Pop(2).Ledger()) != 1 {
		t.Errorf("pop keeps deeper ledger entries: %v", c.Pop(2).Ledger())
	}
	if c.Pop(5) != nil {
		t.Error("pop past the root")
	}
	node := c.PopToAnchor("node")
	if node.Path().String() != "/[0]/children/[0]" {
		t.Errorf("anchor: %s", node.Path())
	}
	if same := node.PopToAnchor("node"); same.Depth() != node.Depth() {
		t.Errorf("anchor at the cursor itself moved to %s", same.Path())
	}
	if c.PopToAnchor("nope") != nil {
		t.Error("unknown anchor")
	}
	name := c.Follow(dpath.MustParse("@node:name"))
	if got, _ := name.Current().Str(); got != "b" {
		t.Errorf("follow anchor: %s", name.Current())
	}
	up := c.Follow(dpath.MustParse("3:name"))
	if got, _ := up.Current().Str(); got != "a" {
		t.Errorf("follow reverse count: %s", up.Current())
	}
	if c.Follow(dpath.MustParse("9:name")) != nil {
		t.Error("reverse count past the root")
	}
}

func TestWithRootFollowsIDs(t *testing.T) {
	doc := mustJSON(t, `{"a": [10, 20]}`)
	c := New(doc, nil).PushMapKey("a").PushListIndex(1)
	list := doc.Get("a")
	grown, _ := list.InsertAt(0, nil, model.FromInt(5))
	doc2 := doc.WithValueAt(0, grown)

	moved := c.WithRoot(doc2)
	if !model.Equal(moved.Current(), model.FromInt(20)) || moved.Steps()[1].Index != 2 {
		t.Errorf("after insert: %s at %d", moved.Current(), moved.Steps()[1].Index)
	}
	if !model.Equal(c.Current(), model.FromInt(20)) {
		t.Error("WithRoot modified the receiver")
	}
}

func TestSerialize(t *testing.T) {
	doc := mustJSON(t, treeDoc)
	sch := treeSchema()
	c := New(doc, sch).PushListIndex(0).PushMapKey("children").PushListIndex(0).PushMapKey("name").PushIsParentKey()

	d, err := json.Marshal(c.Serialize())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"path":[0,[1,"children"],0,[0,"name"]],"contextKeyLedger":[{"key":"node","depth":1},{"key":"node","depth":3}],"isKey":true}`
	if string(d) != want {
		t.Errorf("got %s\nwant %s", d, want)
	}
	var s Serialized
	if err := json.Unmarshal(d, &s); err != nil {
		t.Fatal(err)
	}
	back, err := Deserialize(doc, sch, s)
	if err != nil {
		t.Fatal(err)
	}
	if !model.Equal(back.Current(), c.Current()) || !back.IsKey() {
		t.Errorf("current %s", back.Current())
	}
	if !back.Path().Equal(c.Path()) {
		t.Errorf("path %s", back.Path())
	}
	if diff := cmp.Diff(c.Ledger(), back.Ledger()); diff != "" {
		t.Errorf("ledger (-want +got):\n%s", diff)
	}
	if back.Schema().Depth() != c.Schema().Depth() || back.Schema().Current() != c.Schema().Current() {
		t.Error("schema position differs")
	}
}

func TestDeserializeErrors(t *testing.T) {
	doc := mustJSON(t, treeDoc)
	bad := []Serialized{
		{Path: []Step{{Index: -1}}},
		{Path: []Step{{Index: 0}}, Ledger: []LedgerEntry{{Key: "x", Depth: 2}}},
	}
	for _, s := range bad {
		if _, err := Deserialize(doc, nil, s); !errors.Is(err, ErrSerialized) {
			t.Errorf("%v: got %v", s, err)
		}
	}
	var st Step
	if err := json.Unmarshal([]byte(`[1, 2]`), &st); !errors.Is(err, ErrSerialized) {
		t.Errorf("bad step: %v", err)
	}
}
