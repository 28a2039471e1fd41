package model

import (
	"cmp"
	"math"
	"strings"
)

// Equal reports whether a and b are the same value. Element ids are ignored,
// Map entries are compared positionally with their keys, and an Int equals a
// Float of the same numeric value. Two undefined values are equal.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Undefined sorts before everything.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.typ)
	rankB := rank(b.typ)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.typ {
	case NullType:
		return 0
	case BoolType:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case IntType, FloatType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.s, b.s)
	case ListType:
		return compareLists(a, b)
	case MapType:
		return compareMaps(a, b)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < List < Map
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case IntType, FloatType:
		return 2
	case StringType:
		return 3
	case ListType:
		return 4
	case MapType:
		return 5
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.typ == IntType && b.typ == IntType {
		return cmp.Compare(a.i, b.i)
	}
	if a.typ == FloatType && b.typ == FloatType {
		return cmp.Compare(a.f, b.f)
	}
	if a.typ == IntType {
		return compareIntFloat(a.i, b.f)
	}
	return -compareIntFloat(b.i, a.f)
}

// compareIntFloat compares exactly, without rounding i to a float64.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= math.MaxInt64:
		return -1
	case f < math.MinInt64:
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	return cmp.Compare(t, f)
}

func compareLists(a, b *Node) int {
	minLen := min(len(a.items), len(b.items))
	for i := 0; i < minLen; i++ {
		if c := Compare(a.items[i].Value, b.items[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.items), len(b.items))
}

func compareMaps(a, b *Node) int {
	minLen := min(len(a.items), len(b.items))
	for i := 0; i < minLen; i++ {
		if c := compareKeys(a.items[i].Key, b.items[i].Key); c != 0 {
			return c
		}
		if c := Compare(a.items[i].Value, b.items[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.items), len(b.items))
}

// compareKeys orders pending (nil) keys first.
func compareKeys(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}

// KeyEqual reports whether two Map keys are equal, treating two pending keys
// as equal.
func KeyEqual(a, b *string) bool {
	return compareKeys(a, b) == 0
}
