package model

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node consistent with Equal: ids are not
// hashed and integral floats hash like the matching Int. Seeds are per
// process.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("model: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(rank(n.typ)))

	var b [8]byte
	switch n.typ {
	case NullType:
	case BoolType:
		if n.b {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntType, FloatType:
		if i, ok := n.Integral(); ok {
			h.WriteByte(0)
			binary.LittleEndian.PutUint64(b[:], uint64(i))
		} else {
			h.WriteByte(1)
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(n.f))
		}
		h.Write(b[:])
	case StringType:
		h.WriteString(n.s)
	case ListType:
		for _, it := range n.items {
			binary.LittleEndian.PutUint64(b[:], it.Value.Hash())
			h.Write(b[:])
		}
	case MapType:
		for _, it := range n.items {
			if it.Key == nil {
				h.WriteByte(0)
			} else {
				h.WriteByte(1)
				h.WriteString(*it.Key)
			}
			binary.LittleEndian.PutUint64(b[:], it.Value.Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
