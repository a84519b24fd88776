package ir

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Equal reports whether a and b hold the same JSON value. Text and keys are
// compared byte for byte, or with Unicode case folding when caseSensitive is
// false. Object member order does not matter, but the k'th member named
// key in a is matched with the k'th member named key in b, so duplicate keys
// cannot pair up with a single counterpart.
//
// Ownership is not part of equality: a reference compares like the node it
// refers to. Invalid nodes are unequal to everything except themselves.
func Equal(a, b *Node, caseSensitive bool) bool {
	return equal(a, b, !caseSensitive)
}

func equal(a, b *Node, fold bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.typ != b.typ {
		return false
	}
	switch a.typ {
	case InvalidType:
		return false
	case NullType, FalseType, TrueType:
		return true
	case NumberType:
		return a.num == b.num
	case StringType, RawType:
		return sameText(textString(a.txt), textString(b.txt), fold)
	case ArrayType:
		as, bs := a.members(), b.members()
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equal(as[i], bs[i], fold) {
				return false
			}
		}
		return true
	case ObjectType:
		return equalObjects(a.members(), b.members(), fold)
	}
	return false
}

func sameText(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func equalObjects(as, bs []*Node, fold bool) bool {
	if len(as) != len(bs) {
		return false
	}
	for i, am := range as {
		key := textString(am.key)
		k := 0
		for _, prev := range as[:i] {
			if sameText(textString(prev.key), key, fold) {
				k++
			}
		}
		bm := nthMember(bs, key, k, fold)
		if bm == nil || !equal(am, bm, fold) {
			return false
		}
	}
	return true
}

// nthMember returns the k'th (from 0) member of ms named key.
func nthMember(ms []*Node, key string, k int, fold bool) *Node {
	for _, m := range ms {
		if !sameText(textString(m.key), key, fold) {
			continue
		}
		if k == 0 {
			return m
		}
		k--
	}
	return nil
}

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Types are ordered Null < False < True < Number < String < Raw < Array <
// Object; values of the same type compare by payload, arrays element by
// element and objects member by member, key before value.
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
	if c := cmp.Compare(rank(a.typ), rank(b.typ)); c != 0 {
		return c
	}
	switch a.typ {
	case NumberType:
		return cmp.Compare(a.num, b.num)
	case StringType, RawType:
		return strings.Compare(textString(a.txt), textString(b.txt))
	case ArrayType:
		return compareMembers(a.members(), b.members(), false)
	case ObjectType:
		return compareMembers(a.members(), b.members(), true)
	}
	return 0
}

// rank returns the sorting rank of a type.
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case FalseType:
		return 2
	case TrueType:
		return 3
	case NumberType:
		return 4
	case StringType:
		return 5
	case RawType:
		return 6
	case ArrayType:
		return 7
	case ObjectType:
		return 8
	}
	return 0
}

func compareMembers(as, bs []*Node, keyed bool) int {
	for i := range min(len(as), len(bs)) {
		if keyed {
			if c := strings.Compare(textString(as[i].key), textString(bs[i].key)); c != 0 {
				return c
			}
		}
		if c := Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}

// SortObject orders the members of every object in the tree rooted at n by
// key. Members sharing a key are ordered with Compare. Reference nodes are
// left alone since their members belong to another tree.
func SortObject(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n.typ == InvalidType {
		return fmt.Errorf("%w: sort", ErrInvalid)
	}
	return n.Visit(func(c *Node, isPost bool) (bool, error) {
		if isPost || c.ref != nil {
			return false, nil
		}
		if c.typ == ObjectType {
			slices.SortStableFunc(c.values, func(x, y *Node) int {
				if k := strings.Compare(textString(x.key), textString(y.key)); k != 0 {
					return k
				}
				return Compare(x, y)
			})
		}
		return true, nil
	})
}
