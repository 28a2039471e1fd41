package schema

import (
	"fmt"
	"slices"

	"github.com/signadot/docedit/debug"
	"github.com/signadot/docedit/dpath"
)

// Build validates the schema tree under root and compiles the paths it
// contains. Recursive depths are checked against the chain of ancestors and
// select paths are parsed, so that neither can fail once data is edited.
func Build(root *Schema) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInvalid)
	}
	b := &builder{}
	return b.build(root, dpath.Abs())
}

type builder struct {
	ancestors []*Schema
}

func (b *builder) build(s *Schema, at dpath.Path) error {
	if s == nil {
		return fmt.Errorf("%w: nil schema at %s", ErrInvalid, at)
	}
	if slices.Contains(b.ancestors, s) {
		return fmt.Errorf("%w: schema at %s contains itself, use a recursive schema", ErrRecursiveRef, at)
	}
	if s.ContextKey != "" && !dpath.ValidAnchor(s.ContextKey) {
		return fmt.Errorf("%w: context key %q at %s", ErrInvalid, s.ContextKey, at)
	}
	if debug.Schema() {
		debug.Logf("build %s %s\n", at, s.Type)
	}
	switch s.Type {
	case EmptyType, NumberType, BooleanType, ParentKeyType:
		return nil
	case StringType:
		return s.buildSelect(at)
	case RecursiveType:
		if s.Depth < 1 || s.Depth > len(b.ancestors) {
			return fmt.Errorf("%w: depth %d at %s with %d ancestors", ErrRecursiveRef, s.Depth, at, len(b.ancestors))
		}
		return nil
	}

	b.ancestors = append(b.ancestors, s)
	defer func() { b.ancestors = b.ancestors[:len(b.ancestors)-1] }()

	switch s.Type {
	case MapType, ListType:
		if s.Item == nil {
			return fmt.Errorf("%w: %s without item schema at %s", ErrInvalid, s.Type, at)
		}
		return b.build(s.Item, at.Append(dpath.Wildcard{}))
	case FixedMapType:
		seen := map[string]bool{}
		for _, f := range s.Fields {
			if seen[f.Key] {
				return fmt.Errorf("%w: duplicate field %q at %s", ErrInvalid, f.Key, at)
			}
			seen[f.Key] = true
			if err := b.build(f.Schema, at.Append(dpath.MapKey(f.Key))); err != nil {
				return err
			}
		}
		return nil
	case ConditionalType:
		seen := map[string]bool{}
		for _, br := range s.Branches {
			if seen[br.Key] {
				return fmt.Errorf("%w: duplicate branch %q at %s", ErrInvalid, br.Key, at)
			}
			seen[br.Key] = true
			if err := b.build(br.Item, at.Append(dpath.MapKey(br.Key))); err != nil {
				return err
			}
		}
		if s.DefaultBranch != nil {
			return b.build(s.DefaultBranch, at.Append(dpath.Wildcard{}))
		}
		return nil
	}
	return fmt.Errorf("%w: unknown type %d at %s", ErrInvalid, s.Type, at)
}

func (s *Schema) buildSelect(at dpath.Path) error {
	sel := s.Select
	if sel == nil {
		return nil
	}
	if sel.Items == "" {
		return fmt.Errorf("%w: select without items at %s", ErrInvalid, at)
	}
	items, err := dpath.Parse(sel.Items)
	if err != nil {
		return fmt.Errorf("select items at %s: %w", at, err)
	}
	value, err := dpath.Parse(sel.Value)
	if err != nil {
		return fmt.Errorf("select value at %s: %w", at, err)
	}
	if value.HasStart() {
		return fmt.Errorf("%w: select value %q at %s must be relative to the option", ErrInvalid, sel.Value, at)
	}
	sel.ItemsPath = items
	sel.ValuePath = value
	return nil
}
