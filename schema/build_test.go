package schema

import (
	"errors"
	"testing"

	"github.com/signadot/docedit/dpath"
)

func TestBuildErrors(t *testing.T) {
	loop := Map(nil)
	loop.Item = loop
	tests := []struct {
		name   string
		schema *Schema
		want   error
	}{
		{"nil", nil, ErrInvalid},
		{"recursive root", Recursive(1), ErrRecursiveRef},
		{"too deep", List(Recursive(2)), ErrRecursiveRef},
		{"zero depth", List(Recursive(0)), ErrRecursiveRef},
		{"pointer loop", loop, ErrRecursiveRef},
		{"no item", List(nil), ErrInvalid},
		{"duplicate field", FixedMap(Field{Key: "a", Schema: String()}, Field{Key: "a", Schema: Number()}), ErrInvalid},
		{"nil field", FixedMap(Field{Key: "a"}), ErrInvalid},
		{"bad context key", String().WithContextKey("a b"), ErrInvalid},
		{"bad select", SelectString("a/", "x"), dpath.ErrSyntax},
		{"absolute select value", SelectString("/opts", "/x"), ErrInvalid},
		{"duplicate branch", Conditional(nil, Branch{Key: "a", Item: String()}, Branch{Key: "a", Item: String()}), ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Build(tt.schema)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v want %v", err, tt.want)
			}
		})
	}
}

func TestBuildCompilesSelect(t *testing.T) {
	s := FixedMap(
		Field{Key: "options", Schema: List(FixedMap(Field{Key: "id", Schema: String()}))},
		Field{Key: "choice", Schema: SelectString("/options/*", "id")},
	)
	if err := Build(s); err != nil {
		t.Fatal(err)
	}
	sel := s.Field("choice").Select
	if !sel.ItemsPath.Equal(dpath.MustParse("/options/*")) || !sel.ValuePath.Equal(dpath.MustParse("id")) {
		t.Errorf("compiled %s %s", sel.ItemsPath, sel.ValuePath)
	}
}

func TestBuildSharedSubtree(t *testing.T) {
	shared := Map(String())
	s := FixedMap(Field{Key: "a", Schema: shared}, Field{Key: "b", Schema: shared})
	if err := Build(s); err != nil {
		t.Errorf("shared sibling schemas: %v", err)
	}
}
