package dpath

import (
	"strconv"
	"strings"

	"github.com/signadot/docedit/model"
)

// Component is one step of a Path. The set of implementations is closed:
// ListIndex, MapKey, IndexOrKey, ParentKey, Wildcard, Nested, Union and
// Pointer.
type Component interface {
	String() string
	isComponent()
}

// ListIndex selects a List element by position. It never matches a Map.
type ListIndex int

// MapKey selects the first Map element with the given key.
type MapKey string

// IndexOrKey is a bare numeral: a List index or a Map key, depending on
// the container found at evaluation time.
type IndexOrKey int

// ParentKey moves to the key of the enclosing Map element. Nothing may
// follow it.
type ParentKey struct{}

// Wildcard expands to every child of a List, or every keyed child of a Map.
type Wildcard struct{}

// Nested evaluates Path first and uses each scalar result as a literal step.
type Nested struct {
	Path Path
}

// Union evaluates each alternative and concatenates the results.
type Union struct {
	Alternatives []Path
}

// Pointer selects a collection element by identity. Pointers are only valid
// for the document lineage they were taken from and have no text syntax.
type Pointer model.Pointer

func (ListIndex) isComponent()  {}
func (MapKey) isComponent()     {}
func (IndexOrKey) isComponent() {}
func (ParentKey) isComponent()  {}
func (Wildcard) isComponent()   {}
func (Nested) isComponent()     {}
func (Union) isComponent()      {}
func (Pointer) isComponent()    {}

func (c ListIndex) String() string {
	return "[" + strconv.Itoa(int(c)) + "]"
}

func (c MapKey) String() string {
	return QuoteKey(string(c))
}

func (c IndexOrKey) String() string {
	return strconv.Itoa(int(c))
}

func (ParentKey) String() string {
	return "$key"
}

func (Wildcard) String() string {
	return "*"
}

func (c Nested) String() string {
	return "{" + c.Path.String() + "}"
}

func (c Union) String() string {
	parts := make([]string, len(c.Alternatives))
	for i, alt := range c.Alternatives {
		parts[i] = alt.String()
	}
	return "(" + strings.Join(parts, "|") + ")"
}

func (c Pointer) String() string {
	return "<" + model.Pointer(c).String() + ">"
}

// EqualComponents compares two components. Pointers compare by id only;
// every other kind compares structurally.
func EqualComponents(a, b Component) bool {
	switch x := a.(type) {
	case Pointer:
		y, ok := b.(Pointer)
		return ok && x.ID == y.ID
	case Nested:
		y, ok := b.(Nested)
		return ok && x.Path.Equal(y.Path)
	case Union:
		y, ok := b.(Union)
		if !ok || len(x.Alternatives) != len(y.Alternatives) {
			return false
		}
		for i := range x.Alternatives {
			if !x.Alternatives[i].Equal(y.Alternatives[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return a == b
}

// IsMulti reports whether c can produce more or fewer than one location.
func IsMulti(c Component) bool {
	switch c.(type) {
	case Wildcard, Nested, Union:
		return true
	}
	return false
}

// QuoteKey renders a Map key so that it parses back to a MapKey.
func QuoteKey(k string) string {
	if !needsQuote(k) {
		return k
	}
	buf := strings.Builder{}
	buf.WriteByte('\'')
	for _, r := range k {
		if r == '\'' || r == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
	buf.WriteByte('\'')
	return buf.String()
}

func needsQuote(k string) bool {
	if k == "" || allDigits(k) {
		return true
	}
	if k[0] == '$' || k[0] == '@' {
		return true
	}
	for _, r := range k {
		if isDelim(r) || r == ':' {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDelim(r rune) bool {
	switch r {
	case '/', '|', '{', '}', '(', ')', '[', ']', '*', '\'', '"', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
