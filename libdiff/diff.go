package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/docedit/dpath"
	"github.com/signadot/docedit/model"
)

type Kind int

const (
	Added Kind = iota
	Removed
	Changed
	Rekeyed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	case Rekeyed:
		return "rekeyed"
	}
	return "<unknown change>"
}

// Change is one difference. Path locates it in the new document, except
// for Removed changes, which are located in the old one.
type Change struct {
	Kind     Kind
	Path     dpath.Path
	From, To *model.Node

	// FromKey and ToKey are set for Rekeyed changes.
	FromKey, ToKey *string

	// Hunks is set when a String changed into another String.
	Hunks []Hunk
}

type HunkOp int

const (
	Equal HunkOp = iota
	Insert
	Delete
)

type Hunk struct {
	Op   HunkOp
	Text string
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s: %s", c.Path, c.To)
	case Removed:
		return fmt.Sprintf("- %s: %s", c.Path, c.From)
	case Rekeyed:
		return fmt.Sprintf("> %s: key %s -> %s", c.Path, keyString(c.FromKey), keyString(c.ToKey))
	}
	return fmt.Sprintf("~ %s: %s -> %s", c.Path, c.From, c.To)
}

func keyString(k *string) string {
	if k == nil {
		return "~"
	}
	return dpath.QuoteKey(*k)
}

type diffOpts struct {
	ids bool
}

type DiffOption func(*diffOpts)

// MatchIDs matches collection elements by id. Use it only for two versions
// of one document.
func MatchIDs(v bool) DiffOption {
	return func(o *diffOpts) { o.ids = v }
}

// Diff lists the changes turning from into to, in document order.
func Diff(from, to *model.Node, opts ...DiffOption) []Change {
	d := &differ{}
	for _, o := range opts {
		o(&d.opts)
	}
	d.diff(dpath.Abs(), from, to)
	return d.res
}

type differ struct {
	opts diffOpts
	res  []Change
}

func (d *differ) add(c Change) {
	d.res = append(d.res, c)
}

func (d *differ) diff(at dpath.Path, from, to *model.Node) {
	if from == to || model.Equal(from, to) {
		return
	}
	switch {
	case from == nil:
		d.add(Change{Kind: Added, Path: at, To: to})
		return
	case to == nil:
		d.add(Change{Kind: Removed, Path: at, From: from})
		return
	case from.IsList() && to.IsList(), from.IsMap() && to.IsMap():
		n := len(d.res)
		switch {
		case d.opts.ids:
			d.byID(at, from, to)
		case from.IsList():
			d.listByIndex(at, from, to)
		default:
			d.mapByKey(at, from, to)
		}
		// element order, shadowed duplicates and pending keys are not seen
		// by the element walks.
		if len(d.res) == n {
			d.add(Change{Kind: Changed, Path: at, From: from, To: to})
		}
		return
	}
	c := Change{Kind: Changed, Path: at, From: from, To: to}
	fs, fok := from.Str()
	ts, tok := to.Str()
	if fok && tok {
		c.Hunks = DiffString(fs, ts)
	}
	d.add(c)
}

func (d *differ) listByIndex(at dpath.Path, from, to *model.Node) {
	n := min(from.Len(), to.Len())
	for i := range n {
		d.diff(at.Append(dpath.ListIndex(i)), from.Index(i), to.Index(i))
	}
	for i := n; i < from.Len(); i++ {
		d.add(Change{Kind: Removed, Path: at.Append(dpath.ListIndex(i)), From: from.Index(i)})
	}
	for i := n; i < to.Len(); i++ {
		d.add(Change{Kind: Added, Path: at.Append(dpath.ListIndex(i)), To: to.Index(i)})
	}
}

func (d *differ) mapByKey(at dpath.Path, from, to *model.Node) {
	for k, fv := range from.Entries() {
		tv := to.Get(k)
		if tv == nil {
			d.add(Change{Kind: Removed, Path: at.Append(dpath.MapKey(k)), From: fv})
			continue
		}
		d.diff(at.Append(dpath.MapKey(k)), fv, tv)
	}
	for k, tv := range to.Entries() {
		if from.Get(k) == nil {
			d.add(Change{Kind: Added, Path: at.Append(dpath.MapKey(k)), To: tv})
		}
	}
}

func (d *differ) byID(at dpath.Path, from, to *model.Node) {
	toPos := make(map[uint64]int, to.Len())
	for i, it := range to.All() {
		toPos[it.ID] = i
	}
	matched := make(map[uint64]bool, from.Len())
	for i, fit := range from.All() {
		j, ok := toPos[fit.ID]
		if !ok {
			d.add(Change{Kind: Removed, Path: at.Append(component(from, i, fit)), From: fit.Value})
			continue
		}
		matched[fit.ID] = true
		tit, _ := to.At(j)
		p := at.Append(component(to, j, tit))
		if from.IsMap() && !model.KeyEqual(fit.Key, tit.Key) {
			d.add(Change{Kind: Rekeyed, Path: p, FromKey: fit.Key, ToKey: tit.Key})
		}
		d.diff(p, fit.Value, tit.Value)
	}
	for j, tit := range to.All() {
		if !matched[tit.ID] {
			d.add(Change{Kind: Added, Path: at.Append(component(to, j, tit)), To: tit.Value})
		}
	}
}

func component(n *model.Node, i int, it model.Item) dpath.Component {
	switch {
	case n.IsList():
		return dpath.ListIndex(i)
	case it.Key != nil:
		return dpath.MapKey(*it.Key)
	}
	return dpath.Pointer(model.Pointer{Index: i, ID: it.ID})
}

// DiffString returns the text hunks turning from into to, cleaned up to
// follow word boundaries where possible.
func DiffString(from, to string) []Hunk {
	dmp := diffpatch.New()
	multiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffMain(from, to, multiLine)
	diffs = dmp.DiffCleanupSemantic(diffs)
	res := make([]Hunk, 0, len(diffs))
	for _, df := range diffs {
		h := Hunk{Text: df.Text}
		switch df.Type {
		case diffpatch.DiffInsert:
			h.Op = Insert
		case diffpatch.DiffDelete:
			h.Op = Delete
		}
		res = append(res, h)
	}
	return res
}
