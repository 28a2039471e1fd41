package dpath

import (
	"slices"
	"strconv"
	"strings"
)

// Path addresses zero or more locations in a document, relative to a
// context. At most one of Absolute, ReverseCount and Anchor is set.
type Path struct {
	Components []Component

	// Absolute paths start at the document root.
	Absolute bool
	// ReverseCount pops that many context levels before the steps apply.
	ReverseCount int
	// Anchor pops back to the nearest context tagged with this context key.
	Anchor string
}

// New creates a relative path from components.
func New(cs ...Component) Path {
	return Path{Components: cs}
}

// Abs creates an absolute path from components.
func Abs(cs ...Component) Path {
	return Path{Components: cs, Absolute: true}
}

func (p Path) Len() int {
	return len(p.Components)
}

// HasStart reports whether p moves the context before its first step.
func (p Path) HasStart() bool {
	return p.Absolute || p.ReverseCount > 0 || p.Anchor != ""
}

// Steps returns p without its start.
func (p Path) Steps() Path {
	return Path{Components: p.Components}
}

// Append returns a new path with cs added; p is not modified.
func (p Path) Append(cs ...Component) Path {
	res := p
	res.Components = append(slices.Clip(p.Components), cs...)
	return res
}

// Split returns the path without its last component, and the last
// component. ok is false for a path without components.
func (p Path) Split() (parent Path, last Component, ok bool) {
	n := len(p.Components)
	if n == 0 {
		return p, nil, false
	}
	parent = p
	parent.Components = p.Components[:n-1:n-1]
	return parent, p.Components[n-1], true
}

// IsMulti reports whether any component (at any depth) is a wildcard,
// nested or union step.
func (p Path) IsMulti() bool {
	return slices.ContainsFunc(p.Components, IsMulti)
}

func (p Path) Equal(o Path) bool {
	if p.Absolute != o.Absolute || p.ReverseCount != o.ReverseCount || p.Anchor != o.Anchor {
		return false
	}
	return slices.EqualFunc(p.Components, o.Components, EqualComponents)
}

// String renders p in the syntax accepted by Parse.
func (p Path) String() string {
	buf := strings.Builder{}
	switch {
	case p.Absolute:
		buf.WriteByte('/')
	case p.ReverseCount > 0:
		buf.WriteString(strconv.Itoa(p.ReverseCount))
		buf.WriteByte(':')
	case p.Anchor != "":
		buf.WriteByte('@')
		buf.WriteString(p.Anchor)
		buf.WriteByte(':')
	}
	for i, c := range p.Components {
		if i > 0 {
			buf.WriteByte('/')
		}
		buf.WriteString(c.String())
	}
	return buf.String()
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	res, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = res
	return nil
}
