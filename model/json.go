package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	j "github.com/goccy/go-json"
)

// MarshalJSON writes the JSON projection of n: Map keys keep document order,
// the first occurrence of a key wins and pending keys are dropped.
func (n *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.typ {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(n.b))
	case IntType:
		buf.WriteString(strconv.FormatInt(n.i, 10))
	case FloatType:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return fmt.Errorf("unsupported float value %v", n.f)
		}
		buf.WriteString(strconv.FormatFloat(n.f, 'g', -1, 64))
	case StringType:
		return writeJSONString(buf, n.s)
	case ListType:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, it.Value); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MapType:
		buf.WriteByte('{')
		i := 0
		for k, v := range n.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	d, err := j.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(d)
	return nil
}

// UnmarshalJSON replaces n with the decoded document. Object key order is
// preserved and fresh ids are allocated.
func (n *Node) UnmarshalJSON(d []byte) error {
	res, err := FromJSON(d)
	if err != nil {
		return err
	}
	*n = *res
	return nil
}

// FromJSON decodes a single JSON document, keeping object key order.
func FromJSON(d []byte) (*Node, error) {
	return DecodeJSON(bytes.NewReader(d))
}

// DecodeJSON decodes a single JSON document from r.
func DecodeJSON(r io.Reader) (*Node, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	res, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

func decodeValue(dec *j.Decoder) (*Node, error) {
	tok, err := nextToken(dec)
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *j.Decoder, tok any) (*Node, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '[':
			vs := []*Node{}
			for {
				et, err := nextToken(dec)
				if err != nil {
					return nil, err
				}
				if d, ok := et.(j.Delim); ok && d == ']' {
					return FromSlice(vs), nil
				}
				e, err := decodeToken(dec, et)
				if err != nil {
					return nil, fmt.Errorf("[%d]: %w", len(vs), err)
				}
				vs = append(vs, e)
			}
		case '{':
			kvs := []KeyVal{}
			for {
				kt, err := nextToken(dec)
				if err != nil {
					return nil, err
				}
				if d, ok := kt.(j.Delim); ok && d == '}' {
					return FromKeyVals(kvs), nil
				}
				k, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key %v is not a string", ErrParse, kt)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", k, err)
				}
				kvs = append(kvs, KeyVal{Key: Key(k), Val: val})
			}
		}
		return nil, fmt.Errorf("%w: unexpected %q", ErrParse, rune(v))
	case string:
		return FromString(v), nil
	case bool:
		return FromBool(v), nil
	case j.Number:
		return FromNumber(string(v))
	case float64:
		return FromFloat(v), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
}

func nextToken(dec *j.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of input", ErrParse)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return tok, nil
}

// ToJSON is MarshalJSON on a possibly undefined node.
func ToJSON(n *Node) ([]byte, error) {
	return n.MarshalJSON()
}
