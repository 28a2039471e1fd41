package schema

import (
	"fmt"

	"github.com/signadot/docedit/format"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/parse"
)

// Decode builds a schema from its document description and validates it
// with Build.
//
// A description is either a type name such as "string", or a Map with a
// "type" entry and the entries that type uses:
//
//	type: fixedMap
//	contextKey: item
//	fields:
//	  name: string
//	  children: {type: list, item: {type: recursive, depth: 2}}
//
// Recognised entries are type, name, contextKey, default, item, fields,
// branches, defaultBranch, depth and select (with items and value).
func Decode(desc *model.Node) (*Schema, error) {
	s, err := decode(desc, "")
	if err != nil {
		return nil, err
	}
	if err := Build(s); err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeYAML is Decode on a YAML (or JSON) description.
func DecodeYAML(d []byte) (*Schema, error) {
	desc, err := parse.Parse(d, parse.ParseFormat(format.YAMLFormat))
	if err != nil {
		return nil, err
	}
	return Decode(desc)
}

func decode(desc *model.Node, at string) (*Schema, error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: missing schema at %q", ErrInvalid, at)
	}
	if name, ok := desc.Str(); ok {
		var t Type
		if err := t.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("at %q: %w", at, err)
		}
		return &Schema{Type: t}, nil
	}
	if !desc.IsMap() {
		return nil, fmt.Errorf("%w: schema at %q must be a string or a map, got %s", ErrInvalid, at, desc.Type())
	}
	res := &Schema{}
	tn, err := str(desc, "type", at)
	if err != nil {
		return nil, err
	}
	if err := res.Type.UnmarshalText([]byte(tn)); err != nil {
		return nil, fmt.Errorf("at %q: %w", at, err)
	}
	for k, v := range desc.Entries() {
		sub := at + "." + k
		switch k {
		case "type":
		case "name":
			res.Name, err = str(desc, k, at)
		case "contextKey":
			res.ContextKey, err = str(desc, k, at)
		case "default":
			res.Default = v
		case "item":
			res.Item, err = decode(v, sub)
		case "defaultBranch":
			res.DefaultBranch, err = decode(v, sub)
		case "depth":
			d, ok := v.Integral()
			if !ok {
				err = fmt.Errorf("%w: %s must be an integer", ErrInvalid, sub)
			}
			res.Depth = int(d)
		case "fields":
			err = decodeEntries(v, sub, func(k string, s *Schema) {
				res.Fields = append(res.Fields, Field{Key: k, Schema: s})
			})
		case "branches":
			err = decodeEntries(v, sub, func(k string, s *Schema) {
				res.Branches = append(res.Branches, Branch{Key: k, Item: s})
			})
		case "select":
			res.Select = &Select{}
			if res.Select.Items, err = str(v, "items", sub); err != nil {
				break
			}
			if v.Get("value") != nil {
				res.Select.Value, err = str(v, "value", sub)
			}
		default:
			err = fmt.Errorf("%w: unknown entry %q at %q", ErrInvalid, k, at)
		}
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func decodeEntries(m *model.Node, at string, f func(string, *Schema)) error {
	if !m.IsMap() {
		return fmt.Errorf("%w: %s must be a map", ErrInvalid, at)
	}
	for k, v := range m.Entries() {
		s, err := decode(v, at+"."+k)
		if err != nil {
			return err
		}
		f(k, s)
	}
	return nil
}

func str(m *model.Node, k, at string) (string, error) {
	s, ok := m.Get(k).Str()
	if !ok {
		return "", fmt.Errorf("%w: %s.%s must be a string", ErrInvalid, at, k)
	}
	return s, nil
}
