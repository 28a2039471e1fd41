package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromSliceIDs(t *testing.T) {
	l := FromSlice([]*Node{FromInt(1), FromInt(2), nil})
	if l.Len() != 3 {
		t.Fatalf("len %d", l.Len())
	}
	if l.MaxID() != 3 {
		t.Errorf("maxID %d", l.MaxID())
	}
	for i, it := range l.All() {
		if it.ID != uint64(i+1) {
			t.Errorf("item %d has id %d", i, it.ID)
		}
	}
	if !l.Index(2).IsNull() {
		t.Errorf("nil element should become null, got %s", l.Index(2))
	}
}

func TestMapKeysFirstOccurrence(t *testing.T) {
	m := FromKeyVals([]KeyVal{
		{Key: Key("a"), Val: FromInt(1)},
		{Key: nil, Val: FromInt(9)},
		{Key: Key("b"), Val: FromInt(2)},
		{Key: Key("a"), Val: FromInt(3)},
	})
	if diff := cmp.Diff([]string{"a", "b"}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("a").Int(); v != 1 {
		t.Errorf("Get(a) = %d", v)
	}
	if m.IndexOfKey("b") != 2 {
		t.Errorf("IndexOfKey(b) = %d", m.IndexOfKey("b"))
	}
	if m.Get("zz") != nil {
		t.Error("missing key should be undefined")
	}
	if m.Len() != 4 {
		t.Errorf("all entries remain positionally visible, len %d", m.Len())
	}
	got := map[string]int64{}
	for k, v := range m.Entries() {
		got[k], _ = v.Int()
	}
	if diff := cmp.Diff(map[string]int64{"a": 1, "b": 2}, got); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
}

func TestInsertKeepsIdentity(t *testing.T) {
	l := FromSlice([]*Node{FromInt(10), FromInt(20)})
	p20, _ := l.PointerAt(1)
	l2, p15 := l.InsertAt(1, nil, FromInt(15))
	if p15.ID != 3 || p15.Index != 1 {
		t.Errorf("new pointer %v", p15)
	}
	i, ok := l2.Resolve(p20)
	if !ok || i != 2 {
		t.Fatalf("pointer to 20 resolved to %d %v", i, ok)
	}
	if v, _ := l2.Index(i).Int(); v != 20 {
		t.Errorf("got %d", v)
	}
	if l.Len() != 2 {
		t.Error("original list changed")
	}
}

func TestRemoveNeverReusesIDs(t *testing.T) {
	l := FromSlice([]*Node{FromInt(1), FromInt(2)})
	l = l.RemoveAt(1)
	if l.MaxID() != 2 {
		t.Errorf("maxID after remove %d", l.MaxID())
	}
	l, p := l.Append(nil, FromInt(3))
	if p.ID != 3 {
		t.Errorf("appended id %d, want 3", p.ID)
	}
	if _, ok := l.Resolve(Pointer{Index: 1, ID: 2}); ok {
		t.Error("removed id should not resolve")
	}
}

func TestWithValueAtShares(t *testing.T) {
	a := FromSlice([]*Node{FromInt(1)})
	m := FromKeyVals([]KeyVal{{Key: Key("a"), Val: a}, {Key: Key("b"), Val: FromInt(2)}})
	m2 := m.WithValueAt(1, FromInt(3))
	if m2 == m {
		t.Fatal("expected a new node")
	}
	if m2.Get("a") != a {
		t.Error("untouched child should be shared")
	}
	if v, _ := m.Get("b").Int(); v != 2 {
		t.Error("original changed")
	}
	it0, _ := m.At(1)
	it1, _ := m2.At(1)
	if it0.ID != it1.ID {
		t.Error("identity should be kept")
	}
}

func TestWithKeyAt(t *testing.T) {
	m := FromKeyVals([]KeyVal{{Key: nil, Val: FromInt(1)}})
	m2 := m.WithKeyAt(0, Key("x"))
	if v, _ := m2.Get("x").Int(); v != 1 {
		t.Errorf("got %s", m2)
	}
	if m.Get("x") != nil {
		t.Error("original changed")
	}
}

func TestIntegral(t *testing.T) {
	tests := []struct {
		n    *Node
		want int64
		ok   bool
	}{
		{FromInt(3), 3, true},
		{FromFloat(3), 3, true},
		{FromFloat(3.5), 0, false},
		{FromString("3"), 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.n.Integral()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s: got %d %v", tt.n, got, ok)
		}
	}
}
