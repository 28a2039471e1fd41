package schema

import "fmt"

type Type int

const (
	EmptyType Type = iota
	NumberType
	BooleanType
	StringType
	MapType
	FixedMapType
	ListType
	ConditionalType
	RecursiveType
	ParentKeyType
)

var typeNames = map[Type]string{
	EmptyType:       "empty",
	NumberType:      "number",
	BooleanType:     "boolean",
	StringType:      "string",
	MapType:         "map",
	FixedMapType:    "fixedMap",
	ListType:        "list",
	ConditionalType: "conditional",
	RecursiveType:   "recursive",
	ParentKeyType:   "parentKey",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "<unknown schema type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for k, v := range typeNames {
		if v == string(d) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("%w: unrecognized type %q", ErrInvalid, d)
}

// IsContainer reports whether data of this type has children.
func (t Type) IsContainer() bool {
	switch t {
	case MapType, FixedMapType, ListType, ConditionalType:
		return true
	}
	return false
}
