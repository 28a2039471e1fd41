package schema

import (
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
)

// Schema is one node of a schema tree. Which fields are meaningful depends
// on Type:
//
//   - Map and List use Item for every child.
//   - FixedMap uses Fields; unknown keys have no schema.
//   - Conditional uses Branches by key and DefaultBranch otherwise.
//   - Recursive uses Depth: 1 is the parent of the Recursive node.
//   - String may carry Select.
type Schema struct {
	Type Type   `json:"type"`
	Name string `json:"name,omitempty"`

	// ContextKey tags data positions of this schema so that paths can
	// start at them with '@name:'.
	ContextKey string `json:"contextKey,omitempty"`

	// Default replaces the zero value of the type when data is created.
	Default *model.Node `json:"default,omitempty"`

	Item          *Schema  `json:"item,omitempty"`
	Fields        []Field  `json:"fields,omitempty"`
	Branches      []Branch `json:"branches,omitempty"`
	DefaultBranch *Schema  `json:"defaultBranch,omitempty"`
	Depth         int      `json:"depth,omitempty"`
	Select        *Select  `json:"select,omitempty"`
}

type Field struct {
	Key    string  `json:"key"`
	Schema *Schema `json:"schema"`
}

type Branch struct {
	Key  string  `json:"key"`
	Item *Schema `json:"item"`
}

// Select restricts a String to the values found at Items, a path yielding
// option rows, each projected through Value.
type Select struct {
	Items string `json:"items"`
	Value string `json:"value"`

	ItemsPath dpath.Path `json:"-"`
	ValuePath dpath.Path `json:"-"`
}

var (
	empty     = &Schema{Type: EmptyType}
	parentKey = &Schema{Type: ParentKeyType}
)

// Empty returns the placeholder schema for positions nothing is known about.
func Empty() *Schema { return empty }

// ParentKey returns the schema of the parent key state.
func ParentKey() *Schema { return parentKey }

func Number() *Schema  { return &Schema{Type: NumberType} }
func Boolean() *Schema { return &Schema{Type: BooleanType} }
func String() *Schema  { return &Schema{Type: StringType} }

func List(item *Schema) *Schema {
	return &Schema{Type: ListType, Item: item}
}

func Map(item *Schema) *Schema {
	return &Schema{Type: MapType, Item: item}
}

func FixedMap(fields ...Field) *Schema {
	return &Schema{Type: FixedMapType, Fields: fields}
}

func Conditional(def *Schema, branches ...Branch) *Schema {
	return &Schema{Type: ConditionalType, DefaultBranch: def, Branches: branches}
}

func Recursive(depth int) *Schema {
	return &Schema{Type: RecursiveType, Depth: depth}
}

// SelectString is a String restricted to the options at items, projected by
// value. Both paths are compiled by Build.
func SelectString(items, value string) *Schema {
	return &Schema{Type: StringType, Select: &Select{Items: items, Value: value}}
}

// WithContextKey sets s.ContextKey and returns s.
func (s *Schema) WithContextKey(k string) *Schema {
	s.ContextKey = k
	return s
}

// WithDefault sets s.Default and returns s.
func (s *Schema) WithDefault(v *model.Node) *Schema {
	s.Default = v
	return s
}

// WithName sets s.Name and returns s.
func (s *Schema) WithName(n string) *Schema {
	s.Name = n
	return s
}

// Field returns the schema of the named field of a FixedMap.
func (s *Schema) Field(key string) *Schema {
	if s == nil {
		return nil
	}
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return s.Fields[i].Schema
		}
	}
	return nil
}

// Branch returns the item schema of a Conditional for key, falling back to
// the default branch.
func (s *Schema) Branch(key string) *Schema {
	if s == nil {
		return nil
	}
	for i := range s.Branches {
		if s.Branches[i].Key == key {
			return s.Branches[i].Item
		}
	}
	return s.DefaultBranch
}

// DefaultValue returns the value new data of this schema starts with, or nil
// when the schema does not determine one.
func (s *Schema) DefaultValue() *model.Node {
	if s == nil {
		return nil
	}
	if s.Default != nil {
		return s.Default
	}
	switch s.Type {
	case NumberType:
		return model.FromInt(0)
	case BooleanType:
		return model.FromBool(false)
	case StringType:
		return model.FromString("")
	case ListType:
		return model.EmptyList()
	case MapType, FixedMapType, ConditionalType:
		return model.EmptyMap()
	}
	return nil
}
