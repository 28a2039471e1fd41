package docedit

import (
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/docedit/debug"
	"github.com/signadot/docedit/model"
	"github.com/signadot/docedit/parse"
)

var ErrPatch = errors.New("patch error")

// MergePatch returns the RFC 7396 merge patch turning from into to.
func MergePatch(from, to *model.Node) (*model.Node, error) {
	a, err := marshal(from)
	if err != nil {
		return nil, err
	}
	b, err := marshal(to)
	if err != nil {
		return nil, err
	}
	d, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	return orderLike(res, from, to), nil
}

// ApplyMergePatch applies an RFC 7396 merge patch to doc. Map keys of the
// result follow doc, then patch.
func ApplyMergePatch(doc, patch *model.Node) (*model.Node, error) {
	d, err := marshal(doc)
	if err != nil {
		return nil, err
	}
	p, err := marshal(patch)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := parse.Parse(out)
	if err != nil {
		return nil, err
	}
	return orderLike(res, doc, patch), nil
}

// ApplyJSONPatch applies an RFC 6902 JSON patch, given as JSON text, to doc.
func ApplyJSONPatch(doc *model.Node, patch []byte) (*model.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Edit() {
		debug.Logf("json patch with %d ops\n", len(ops))
	}
	d, err := marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := parse.Parse(out)
	if err != nil {
		return nil, err
	}
	return orderLike(res, doc, nil), nil
}

func marshal(n *model.Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: undefined document", ErrPatch)
	}
	return n.MarshalJSON()
}

// orderLike reorders the Map keys of n to follow the key order of the
// references, earlier references first. Keys no reference knows keep their
// relative order at the end.
func orderLike(n *model.Node, refs ...*model.Node) *model.Node {
	switch {
	case n.IsList():
		vs := make([]*model.Node, 0, n.Len())
		for i, it := range n.All() {
			sub := make([]*model.Node, len(refs))
			for j, r := range refs {
				if r.IsList() {
					sub[j] = r.Index(i)
				}
			}
			vs = append(vs, orderLike(it.Value, sub...))
		}
		return model.FromSlice(vs)
	case !n.IsMap():
		return n
	}
	done := make(map[string]bool, n.Len())
	kvs := make([]model.KeyVal, 0, n.Len())
	add := func(k string) {
		v := n.Get(k)
		if done[k] || v == nil {
			return
		}
		done[k] = true
		sub := make([]*model.Node, len(refs))
		for j, r := range refs {
			sub[j] = r.Get(k)
		}
		kvs = append(kvs, model.KeyVal{Key: model.Key(k), Val: orderLike(v, sub...)})
	}
	for _, r := range refs {
		for k := range r.Entries() {
			add(k)
		}
	}
	for k := range n.Entries() {
		add(k)
	}
	return model.FromKeyVals(kvs)
}
