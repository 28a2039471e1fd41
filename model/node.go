package model

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Node is an immutable document value. A nil *Node means "undefined": the
// value is absent, which is distinct from a present null.
type Node struct {
	typ   Type
	b     bool
	i     int64
	f     float64
	s     string
	items []Item
	maxID uint64
}

// Item is one element of a List or Map. Key is only meaningful for Map
// items, where a nil Key marks a pending entry whose key is not yet known.
type Item struct {
	Key   *string
	ID    uint64
	Value *Node
}

type KeyVal struct {
	Key *string
	Val *Node
}

// Pointer addresses a List or Map element. Index is a position cache, ID is
// the element's identity.
type Pointer struct {
	Index int
	ID    uint64
}

func (p Pointer) String() string {
	return fmt.Sprintf("%d#%d", p.Index, p.ID)
}

// Key returns a pointer to a copy of s, for building Map keys.
func Key(s string) *string {
	return &s
}

func Null() *Node {
	return &Node{typ: NullType}
}

func FromBool(v bool) *Node {
	return &Node{typ: BoolType, b: v}
}

func FromInt(v int64) *Node {
	return &Node{typ: IntType, i: v}
}

func FromFloat(v float64) *Node {
	return &Node{typ: FloatType, f: v}
}

func FromString(v string) *Node {
	return &Node{typ: StringType, s: v}
}

// FromSlice creates a List whose elements get ids 1..len(vs).
func FromSlice(vs []*Node) *Node {
	res := &Node{typ: ListType, items: make([]Item, len(vs))}
	for i, v := range vs {
		res.maxID++
		res.items[i] = Item{ID: res.maxID, Value: orNull(v)}
	}
	return res
}

// FromKeyVals creates a Map preserving the order of kvs, duplicates and
// nil keys included.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{typ: MapType, items: make([]Item, len(kvs))}
	for i, kv := range kvs {
		res.maxID++
		res.items[i] = Item{Key: kv.Key, ID: res.maxID, Value: orNull(kv.Val)}
	}
	return res
}

// FromMap creates a Map with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	kvs := make([]KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = KeyVal{Key: Key(k), Val: m[k]}
	}
	return FromKeyVals(kvs)
}

func EmptyList() *Node {
	return &Node{typ: ListType}
}

func EmptyMap() *Node {
	return &Node{typ: MapType}
}

func orNull(n *Node) *Node {
	if n == nil {
		return Null()
	}
	return n
}

func (n *Node) Type() Type {
	return n.typ
}

func (n *Node) IsNull() bool {
	return n != nil && n.typ == NullType
}

func (n *Node) IsList() bool {
	return n != nil && n.typ == ListType
}

func (n *Node) IsMap() bool {
	return n != nil && n.typ == MapType
}

func (n *Node) IsCollection() bool {
	return n != nil && n.typ.IsCollection()
}

func (n *Node) Bool() (bool, bool) {
	if n == nil || n.typ != BoolType {
		return false, false
	}
	return n.b, true
}

func (n *Node) Int() (int64, bool) {
	if n == nil || n.typ != IntType {
		return 0, false
	}
	return n.i, true
}

func (n *Node) Float() (float64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.typ {
	case FloatType:
		return n.f, true
	case IntType:
		return float64(n.i), true
	}
	return 0, false
}

func (n *Node) Str() (string, bool) {
	if n == nil || n.typ != StringType {
		return "", false
	}
	return n.s, true
}

// Integral reports the value of an Int, or of a Float with no fractional
// part that fits in an int64.
func (n *Node) Integral() (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.typ {
	case IntType:
		return n.i, true
	case FloatType:
		return floatIntegral(n.f)
	}
	return 0, false
}

func floatIntegral(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	i := int64(f)
	if float64(i) != f {
		return 0, false
	}
	return i, true
}

// Len returns the number of elements of a List or Map, and 0 otherwise.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.items)
}

// MaxID returns the highest id ever allocated in this collection lineage.
func (n *Node) MaxID() uint64 {
	if n == nil {
		return 0
	}
	return n.maxID
}

// At returns the i'th element. ok is false when i is out of range or n is
// not a collection.
func (n *Node) At(i int) (Item, bool) {
	if n == nil || i < 0 || i >= len(n.items) {
		return Item{}, false
	}
	return n.items[i], true
}

// Index returns the value of the i'th element or nil.
func (n *Node) Index(i int) *Node {
	it, ok := n.At(i)
	if !ok {
		return nil
	}
	return it.Value
}

// All iterates over the elements of a collection in document order.
func (n *Node) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		if n == nil {
			return
		}
		for i, it := range n.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// IndexOfKey returns the position of the first Map element with key k, or
// -1.
func (n *Node) IndexOfKey(k string) int {
	if !n.IsMap() {
		return -1
	}
	for i := range n.items {
		if key := n.items[i].Key; key != nil && *key == k {
			return i
		}
	}
	return -1
}

// Get returns the value under the first occurrence of key k in a Map.
func (n *Node) Get(k string) *Node {
	i := n.IndexOfKey(k)
	if i < 0 {
		return nil
	}
	return n.items[i].Value
}

// Keys returns the distinct non-nil keys of a Map in first-occurrence order.
func (n *Node) Keys() []string {
	if !n.IsMap() {
		return nil
	}
	seen := make(map[string]bool, len(n.items))
	res := make([]string, 0, len(n.items))
	for _, it := range n.items {
		if it.Key == nil || seen[*it.Key] {
			continue
		}
		seen[*it.Key] = true
		res = append(res, *it.Key)
	}
	return res
}

// Entries iterates over the Map entries visible by key: nil keys and
// shadowed duplicates are skipped.
func (n *Node) Entries() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if !n.IsMap() {
			return
		}
		seen := make(map[string]bool, len(n.items))
		for _, it := range n.items {
			if it.Key == nil || seen[*it.Key] {
				continue
			}
			seen[*it.Key] = true
			if !yield(*it.Key, it.Value) {
				return
			}
		}
	}
}

// PointerAt returns a pointer to the i'th element.
func (n *Node) PointerAt(i int) (Pointer, bool) {
	it, ok := n.At(i)
	if !ok {
		return Pointer{}, false
	}
	return Pointer{Index: i, ID: it.ID}, true
}

// Resolve returns the current position of the element p refers to. The
// cached index is tried first, then the elements are scanned for p.ID.
func (n *Node) Resolve(p Pointer) (int, bool) {
	if !n.IsCollection() {
		return 0, false
	}
	if p.Index >= 0 && p.Index < len(n.items) && n.items[p.Index].ID == p.ID {
		return p.Index, true
	}
	for i := range n.items {
		if n.items[i].ID == p.ID {
			return i, true
		}
	}
	return 0, false
}

// WithValueAt returns a copy of the collection with the value of element i
// replaced. Identity and key of the element are kept, and all other element
// values are shared.
func (n *Node) WithValueAt(i int, v *Node) *Node {
	res := n.shallow()
	res.items[i].Value = orNull(v)
	return res
}

// WithKeyAt returns a copy of the Map with the key of element i replaced.
func (n *Node) WithKeyAt(i int, k *string) *Node {
	res := n.shallow()
	res.items[i].Key = k
	return res
}

// InsertAt returns a copy of the collection with a new element at position
// i, together with a pointer to it. The new element gets a fresh id.
func (n *Node) InsertAt(i int, k *string, v *Node) (*Node, Pointer) {
	res := &Node{typ: n.typ, maxID: n.maxID + 1}
	if n.typ == ListType {
		k = nil
	}
	res.items = make([]Item, 0, len(n.items)+1)
	res.items = append(res.items, n.items[:i]...)
	res.items = append(res.items, Item{Key: k, ID: res.maxID, Value: orNull(v)})
	res.items = append(res.items, n.items[i:]...)
	return res, Pointer{Index: i, ID: res.maxID}
}

// Append is InsertAt at the end.
func (n *Node) Append(k *string, v *Node) (*Node, Pointer) {
	return n.InsertAt(len(n.items), k, v)
}

// RemoveAt returns a copy of the collection without element i. The id
// counter is kept so removed ids are never handed out again.
func (n *Node) RemoveAt(i int) *Node {
	res := &Node{typ: n.typ, maxID: n.maxID}
	res.items = make([]Item, 0, len(n.items)-1)
	res.items = append(res.items, n.items[:i]...)
	res.items = append(res.items, n.items[i+1:]...)
	return res
}

func (n *Node) shallow() *Node {
	res := *n
	res.items = slices.Clone(n.items)
	return &res
}

func (n *Node) String() string {
	if n == nil {
		return "<undefined>"
	}
	d, err := n.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", n.typ)
	}
	return string(d)
}
