package parse

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/docedit/format"
	"github.com/signadot/docedit/model"
)

// Parse reads one document. The default format is JSON.
func Parse(d []byte, opts ...ParseOption) (*model.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	switch pOpts.format {
	case format.JSONFormat:
		res, err := model.FromJSON(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return res, nil
	case format.YAMLFormat:
		return parseYAML(d)
	}
	return nil, fmt.Errorf("%w: %w %d", ErrParse, format.ErrBadFormat, pOpts.format)
}

// ParseReader is Parse on the contents of r.
func ParseReader(r io.Reader, opts ...ParseOption) (*model.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

func parseYAML(d []byte) (*model.Node, error) {
	if len(bytes.TrimSpace(d)) == 0 {
		return model.Null(), nil
	}
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromYAML(v)
}

func fromYAML(v any) (*model.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]model.KeyVal, 0, len(x))
		for _, item := range x {
			k, err := yamlKey(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", item.Key, err)
			}
			kvs = append(kvs, model.KeyVal{Key: k, Val: val})
		}
		return model.FromKeyVals(kvs), nil
	case []any:
		vs := make([]*model.Node, len(x))
		for i, e := range x {
			n, err := fromYAML(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = n
		}
		return model.FromSlice(vs), nil
	}
	res, err := model.FromAny(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

func yamlKey(k any) (*string, error) {
	switch x := k.(type) {
	case nil:
		return nil, nil
	case string:
		return model.Key(x), nil
	case bool, int, int64, uint64, float64:
		return model.Key(fmt.Sprint(x)), nil
	}
	return nil, fmt.Errorf("%w %T", ErrKey, k)
}
