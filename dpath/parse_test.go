package dpath

import (
	"errors"
	"testing"

	"github.com/signadot/docedit/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Path
	}{
		{
			name:  "empty path",
			input: "",
			want:  Path{},
		},
		{
			name:  "root",
			input: "/",
			want:  Path{Absolute: true},
		},
		{
			name:  "steps",
			input: "a/b/3/$key",
			want:  New(MapKey("a"), MapKey("b"), IndexOrKey(3), ParentKey{}),
		},
		{
			name:  "absolute",
			input: "/a/[0]",
			want:  Abs(MapKey("a"), ListIndex(0)),
		},
		{
			name:  "reverse count",
			input: "2:c",
			want:  Path{ReverseCount: 2, Components: []Component{MapKey("c")}},
		},
		{
			name:  "anchor",
			input: "@item:name",
			want:  Path{Anchor: "item", Components: []Component{MapKey("name")}},
		},
		{
			name:  "anchor only",
			input: "@item-row:",
			want:  Path{Anchor: "item-row"},
		},
		{
			name:  "wildcard",
			input: "items/*/id",
			want:  New(MapKey("items"), Wildcard{}, MapKey("id")),
		},
		{
			name:  "nested",
			input: "a/{/sel/kind}/x",
			want: New(
				MapKey("a"),
				Nested{Path: Abs(MapKey("sel"), MapKey("kind"))},
				MapKey("x"),
			),
		},
		{
			name:  "step union",
			input: "a|b/c",
			want: New(
				Union{Alternatives: []Path{New(MapKey("a")), New(MapKey("b"))}},
				MapKey("c"),
			),
		},
		{
			name:  "group union",
			input: "(a/b|c)/d",
			want: New(
				Union{Alternatives: []Path{New(MapKey("a"), MapKey("b")), New(MapKey("c"))}},
				MapKey("d"),
			),
		},
		{
			name:  "union flattens groups",
			input: "(a/b|c)|d",
			want: New(
				Union{Alternatives: []Path{New(MapKey("a"), MapKey("b")), New(MapKey("c")), New(MapKey("d"))}},
			),
		},
		{
			name:  "quoted keys",
			input: `'a b'/"x/y"/'it\'s'/'12'`,
			want:  New(MapKey("a b"), MapKey("x/y"), MapKey("it's"), MapKey("12")),
		},
		{
			name:  "colon inside key",
			input: "a:b",
			want:  New(MapKey("a:b")),
		},
		{
			name:  "digits then letters",
			input: "12ab",
			want:  New(MapKey("12ab")),
		},
		{
			name:  "unicode key",
			input: "größe/名前",
			want:  New(MapKey("größe"), MapKey("名前")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"a/",
		"/a//b",
		"$key/a",
		"$other",
		"[x]",
		"[1",
		"{}",
		"{a",
		"(a|b",
		"'abc",
		"a)",
		"@:x",
		"@name",
		"a*",
		"|a",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", in, err)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"/",
		"a/b/3/$key",
		"/a/[0]/*",
		"2:c/d",
		"@item:name",
		"a/{/sel/kind}/x",
		"a|b/c",
		"(a/b|c)/d",
		`'a b'/"x/y"/'12'/'$x'/'a:b'`,
		"{@row:{1:k}}",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			p := MustParse(in)
			back, err := Parse(p.String())
			if err != nil {
				t.Fatalf("reparse %q: %v", p.String(), err)
			}
			if !back.Equal(p) {
				t.Errorf("round trip %q -> %q changed the path", in, p.String())
			}
		})
	}
}

func TestStringForms(t *testing.T) {
	tests := []struct {
		p    Path
		want string
	}{
		{New(MapKey("a"), ListIndex(2), IndexOrKey(3)), "a/[2]/3"},
		{Abs(MapKey("x y")), "/'x y'"},
		{Path{ReverseCount: 1, Components: []Component{ParentKey{}}}, "1:$key"},
		{New(MapKey("")), "''"},
		{New(Pointer(model.Pointer{Index: 1, ID: 4})), "<1#4>"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("got %q want %q", got, tt.want)
		}
	}
}

func TestEqualComponents(t *testing.T) {
	if !EqualComponents(Pointer{Index: 0, ID: 7}, Pointer{Index: 5, ID: 7}) {
		t.Error("pointers compare by id only")
	}
	if EqualComponents(Pointer{Index: 0, ID: 7}, Pointer{Index: 0, ID: 8}) {
		t.Error("different ids")
	}
	if EqualComponents(ListIndex(1), IndexOrKey(1)) {
		t.Error("different kinds")
	}
	if !EqualComponents(MapKey("a"), MapKey("a")) {
		t.Error("same key")
	}
	if !EqualComponents(Nested{Path: MustParse("a/b")}, Nested{Path: MustParse("a/b")}) {
		t.Error("nested structural")
	}
}

func TestSplitAppend(t *testing.T) {
	p := MustParse("/a/b/c")
	parent, last, ok := p.Split()
	if !ok || last != MapKey("c") || parent.String() != "/a/b" {
		t.Fatalf("Split: %s %v %v", parent, last, ok)
	}
	q := parent.Append(MapKey("z"))
	if q.String() != "/a/b/z" {
		t.Errorf("Append: %s", q)
	}
	if p.String() != "/a/b/c" {
		t.Errorf("Append modified original: %s", p)
	}
	if !MustParse("a/*").IsMulti() || MustParse("a/0").IsMulti() {
		t.Error("IsMulti")
	}
}
