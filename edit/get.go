package edit

import (
	"strconv"

	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
)

// Get returns the value at p in root, or nil. The path is evaluated from
// root whether or not it is absolute; paths starting with a reverse count or
// an anchor need a context and give nil, as do multi-path components.
// ListIndex only descends into Lists, MapKey only into Maps, and IndexOrKey
// into whichever it finds. A final ParentKey gives the key of the Map
// element reached, as a String.
func Get(root *model.Node, p dpath.Path) *model.Node {
	if p.ReverseCount > 0 || p.Anchor != "" {
		return nil
	}
	cur := root
	var key *string
	inMap := false
	for i, comp := range p.Components {
		if cur == nil {
			return nil
		}
		idx := -1
		switch x := comp.(type) {
		case dpath.ListIndex:
			if cur.IsList() {
				idx = int(x)
			}
		case dpath.MapKey:
			idx = cur.IndexOfKey(string(x))
		case dpath.IndexOrKey:
			if cur.IsList() {
				idx = int(x)
			} else {
				idx = cur.IndexOfKey(strconv.Itoa(int(x)))
			}
		case dpath.Pointer:
			if j, ok := cur.Resolve(model.Pointer(x)); ok {
				idx = j
			}
		case dpath.ParentKey:
			if i != len(p.Components)-1 || !inMap {
				return nil
			}
			if key == nil {
				return model.Null()
			}
			return model.FromString(*key)
		default:
			return nil
		}
		it, ok := cur.At(idx)
		if !ok {
			return nil
		}
		inMap = cur.IsMap()
		key = it.Key
		cur = it.Value
	}
	return cur
}
