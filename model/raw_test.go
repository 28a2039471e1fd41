package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromAny(t *testing.T) {
	n, err := FromAny(map[string]any{
		"b": []any{1, "x", nil},
		"a": json.Number("1"),
		"c": uint64(7),
		"d": []string{"p", "q"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	want := `{"a":1,"b":[1,"x",null],"c":7,"d":["p","q"]}`
	if got := n.String(); got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(make(chan int))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestToAny(t *testing.T) {
	n, err := FromJSON([]byte(`{"a":1,"b":[1.5,"x",null,true]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": int64(1),
		"b": []any{1.5, "x", nil, true},
	}
	if diff := cmp.Diff(want, ToAny(n)); diff != "" {
		t.Errorf("ToAny (-want +got):\n%s", diff)
	}
	if ToAny(nil) != nil {
		t.Error("undefined projects to nil")
	}
}
