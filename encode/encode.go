package encode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/signadot/docedit/format"
	"github.com/signadot/docedit/model"
)

type EncState struct {
	indent int
	format format.Format

	Color func(model.Type, ColorAttr, string) string
}

// Encode writes node to w followed by a newline. The default is JSON
// indented by 2 spaces.
func Encode(node *model.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("%w: undefined value", ErrEncoding)
	}
	buf := bytes.NewBuffer(nil)
	var err error
	switch es.format {
	case format.JSONFormat:
		err = es.json(buf, node, 0)
	case format.YAMLFormat:
		if es.indent == 0 || !node.IsCollection() || node.Len() == 0 {
			err = es.flow(buf, node)
		} else {
			err = es.block(buf, node, 0)
		}
	default:
		err = fmt.Errorf("%w: %w %d", ErrEncoding, format.ErrBadFormat, es.format)
	}
	if err != nil {
		return err
	}
	if b := buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (es *EncState) color(t model.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) nl(buf *bytes.Buffer, depth int) {
	if es.indent == 0 {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", es.indent*depth))
}

func (es *EncState) json(buf *bytes.Buffer, n *model.Node, depth int) error {
	switch n.Type() {
	case model.ListType:
		if n.Len() == 0 {
			buf.WriteString(es.color(model.ListType, SepColor, "[]"))
			return nil
		}
		buf.WriteString(es.color(model.ListType, SepColor, "["))
		for i, it := range n.All() {
			if i > 0 {
				buf.WriteString(es.color(model.ListType, SepColor, ","))
			}
			es.nl(buf, depth+1)
			if err := es.json(buf, it.Value, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		es.nl(buf, depth)
		buf.WriteString(es.color(model.ListType, SepColor, "]"))
		return nil
	case model.MapType:
		i := 0
		for k, v := range n.Entries() {
			if i == 0 {
				buf.WriteString(es.color(model.MapType, SepColor, "{"))
			} else {
				buf.WriteString(es.color(model.MapType, SepColor, ","))
			}
			i++
			es.nl(buf, depth+1)
			key, err := quoteJSON(k)
			if err != nil {
				return err
			}
			buf.WriteString(es.color(model.MapType, FieldColor, key))
			sep := ":"
			if es.indent > 0 {
				sep = ": "
			}
			buf.WriteString(es.color(model.MapType, SepColor, sep))
			if err := es.json(buf, v, depth+1); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		if i == 0 {
			buf.WriteString(es.color(model.MapType, SepColor, "{}"))
			return nil
		}
		es.nl(buf, depth)
		buf.WriteString(es.color(model.MapType, SepColor, "}"))
		return nil
	}
	s, err := scalarJSON(n)
	if err != nil {
		return err
	}
	buf.WriteString(es.color(n.Type(), ValueColor, s))
	return nil
}

func scalarJSON(n *model.Node) (string, error) {
	switch n.Type() {
	case model.NullType:
		return "null", nil
	case model.BoolType:
		b, _ := n.Bool()
		return strconv.FormatBool(b), nil
	case model.IntType:
		i, _ := n.Int()
		return strconv.FormatInt(i, 10), nil
	case model.FloatType:
		f, _ := n.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: float %v", ErrEncoding, f)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case model.StringType:
		s, _ := n.Str()
		return quoteJSON(s)
	}
	return "", fmt.Errorf("%w: type %s", ErrEncoding, n.Type())
}

func quoteJSON(s string) (string, error) {
	d, err := j.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return string(d), nil
}

// flow writes YAML flow style: scalars, and {k: v} and [v] collections.
func (es *EncState) flow(buf *bytes.Buffer, n *model.Node) error {
	switch n.Type() {
	case model.ListType:
		buf.WriteString(es.color(model.ListType, SepColor, "["))
		for i, it := range n.All() {
			if i > 0 {
				buf.WriteString(es.color(model.ListType, SepColor, ", "))
			}
			if err := es.flow(buf, it.Value); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteString(es.color(model.ListType, SepColor, "]"))
		return nil
	case model.MapType:
		buf.WriteString(es.color(model.MapType, SepColor, "{"))
		i := 0
		for k, v := range n.Entries() {
			if i > 0 {
				buf.WriteString(es.color(model.MapType, SepColor, ", "))
			}
			i++
			if err := es.yamlKey(buf, k); err != nil {
				return err
			}
			if err := es.flow(buf, v); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		buf.WriteString(es.color(model.MapType, SepColor, "}"))
		return nil
	}
	s, err := scalarYAML(n)
	if err != nil {
		return err
	}
	buf.WriteString(es.color(n.Type(), ValueColor, s))
	return nil
}

// block writes a non-empty collection in YAML block style, one entry per
// line, each line starting at depth.
func (es *EncState) block(buf *bytes.Buffer, n *model.Node, depth int) error {
	pad := strings.Repeat(" ", es.yamlIndent()*depth)
	switch n.Type() {
	case model.ListType:
		for i, it := range n.All() {
			buf.WriteString(pad)
			buf.WriteString(es.color(model.ListType, SepColor, "-"))
			if !isBlock(it.Value) {
				buf.WriteByte(' ')
				if err := es.flow(buf, it.Value); err != nil {
					return fmt.Errorf("[%d]: %w", i, err)
				}
				buf.WriteByte('\n')
				continue
			}
			// the first line of the child goes after the dash
			sub := bytes.NewBuffer(nil)
			if err := es.block(sub, it.Value, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			d := sub.Bytes()
			buf.WriteString(strings.Repeat(" ", es.yamlIndent()-1))
			buf.Write(d[len(pad)+es.yamlIndent():])
		}
		return nil
	case model.MapType:
		for k, v := range n.Entries() {
			buf.WriteString(pad)
			if err := es.yamlKey(buf, k); err != nil {
				return err
			}
			if !isBlock(v) {
				if err := es.flow(buf, v); err != nil {
					return fmt.Errorf("%s: %w", k, err)
				}
				buf.WriteByte('\n')
				continue
			}
			trimTrailingSpace(buf)
			buf.WriteByte('\n')
			if err := es.block(buf, v, depth+1); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		return nil
	}
	return es.flow(buf, n)
}

func (es *EncState) yamlIndent() int {
	return max(es.indent, 2)
}

func (es *EncState) yamlKey(buf *bytes.Buffer, k string) error {
	s, err := quoteYAML(k)
	if err != nil {
		return err
	}
	buf.WriteString(es.color(model.MapType, FieldColor, s))
	buf.WriteString(es.color(model.MapType, SepColor, ":"))
	buf.WriteByte(' ')
	return nil
}

func trimTrailingSpace(buf *bytes.Buffer) {
	if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] == ' ' {
		buf.Truncate(len(b) - 1)
	}
}

func isBlock(n *model.Node) bool {
	switch n.Type() {
	case model.ListType:
		return n.Len() > 0
	case model.MapType:
		for range n.Entries() {
			return true
		}
	}
	return false
}

func scalarYAML(n *model.Node) (string, error) {
	if s, ok := n.Str(); ok {
		return quoteYAML(s)
	}
	return scalarJSON(n)
}

// quoteYAML leaves s plain when YAML reads it back as the same string, and
// double quotes it otherwise.
func quoteYAML(s string) (string, error) {
	d, err := yaml.Marshal(s)
	if err == nil && strings.TrimSuffix(string(d), "\n") == s && plainSafe(s) {
		return s, nil
	}
	return quoteJSON(s)
}

func plainSafe(s string) bool {
	if s == "" || strings.TrimSpace(s) != s || strings.ContainsRune("-?!&*|>%@`", rune(s[0])) {
		return false
	}
	return !strings.ContainsAny(s, "{}[],:#\"'\n")
}
