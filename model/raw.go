package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// FromAny converts a decoded raw value (as produced by encoding/json,
// go-json or go-yaml) into a Node. Go maps are converted with sorted keys;
// use FromKeyVals to keep a specific order.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return FromNumber(string(x))
	case []any:
		vs := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case []*Node:
		return FromSlice(x), nil
	case []KeyVal:
		return FromKeyVals(x), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		kvs := make([]KeyVal, len(keys))
		for i, k := range keys {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			kvs[i] = KeyVal{Key: Key(k), Val: n}
		}
		return FromKeyVals(kvs), nil
	case map[string]*Node:
		return FromMap(x), nil
	}
	return fromReflect(v)
}

func fromReflect(v any) (*Node, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		vs := make([]*Node, rv.Len())
		for i := range vs {
			n, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return FromAny(m)
	case reflect.Pointer:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

func fromUint(u uint64) *Node {
	if u > math.MaxInt64 {
		return FromFloat(float64(u))
	}
	return FromInt(int64(u))
}

// FromNumber parses a JSON number literal, preferring Int when the literal
// has no fraction or exponent and fits.
func FromNumber(lit string) (*Node, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return FromInt(i), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrParse, lit)
	}
	return FromFloat(f), nil
}

// ToAny projects a Node onto plain Go values: Maps become map[string]any
// where the first occurrence of a key wins and pending keys are dropped.
// Undefined projects to nil.
func ToAny(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.typ {
	case NullType:
		return nil
	case BoolType:
		return n.b
	case IntType:
		return n.i
	case FloatType:
		return n.f
	case StringType:
		return n.s
	case ListType:
		res := make([]any, len(n.items))
		for i, it := range n.items {
			res[i] = ToAny(it.Value)
		}
		return res
	case MapType:
		res := make(map[string]any, len(n.items))
		for k, v := range n.Entries() {
			res[k] = ToAny(v)
		}
		return res
	}
	return nil
}
