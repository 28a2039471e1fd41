package schema

import (
	"errors"
	"testing"

	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
)

const treeYAML = `
type: list
item:
  type: fixedMap
  contextKey: node
  fields:
    name: {type: string, default: unnamed}
    kind:
      type: string
      select: {items: "/kinds/*", value: id}
    children: {type: recursive, depth: 2}
    extra:
      type: conditional
      branches:
        n: number
      defaultBranch: boolean
`

func TestDecodeYAML(t *testing.T) {
	s, err := DecodeYAML([]byte(treeYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Type != ListType || s.Item.Type != FixedMapType || s.Item.ContextKey != "node" {
		t.Fatalf("decoded %s/%s", s.Type, s.Item.Type)
	}
	keys := []string{}
	for _, f := range s.Item.Fields {
		keys = append(keys, f.Key)
	}
	if len(keys) != 4 || keys[0] != "name" || keys[3] != "extra" {
		t.Errorf("fields out of order: %v", keys)
	}
	if !model.Equal(s.Item.Field("name").Default, model.FromString("unnamed")) {
		t.Errorf("default %s", s.Item.Field("name").Default)
	}
	if !s.Item.Field("kind").Select.ValuePath.Equal(dpath.MustParse("id")) {
		t.Error("select not compiled")
	}
	c := NewContext(s).Dig(dpath.ListIndex(0)).Dig(dpath.MapKey("children"))
	if c.Current() != s {
		t.Error("recursive field does not resolve to the root")
	}
	if got := s.Item.Field("extra").Branch("other").Type; got != BooleanType {
		t.Errorf("default branch %s", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		`nosuchtype`,
		`{type: list}`,
		`{type: string, color: red}`,
		`{type: recursive, depth: x}`,
		`[1, 2]`,
		`{type: fixedMap, fields: [a]}`,
	}
	for _, in := range tests {
		if _, err := DecodeYAML([]byte(in)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v", in, err)
		}
	}
}
