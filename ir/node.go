package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is a single JSON value. The zero Node is invalid; nodes are made with
// the constructors, by parsing, by Duplicate or by detaching them from a tree.
//
// A node has at most one owner: either it sits in exactly one parent's
// children, or it is a root owned by the caller.
type Node struct {
	typ    Type
	num    float64
	txt    text
	key    text
	values []*Node
	ref    *Node
	parent *Node
	alloc  Allocator
	// refs counts the reference nodes in the subtree rooted here, n included.
	refs int
}

func (n *Node) Type() Type {
	if n == nil {
		return InvalidType
	}
	return n.typ
}

func (n *Node) IsInvalid() bool { return n.Type() == InvalidType }
func (n *Node) IsNull() bool    { return n.Type() == NullType }
func (n *Node) IsFalse() bool   { return n.Type() == FalseType }
func (n *Node) IsTrue() bool    { return n.Type() == TrueType }
func (n *Node) IsBool() bool    { return n.Type().IsBool() }
func (n *Node) IsNumber() bool  { return n.Type() == NumberType }
func (n *Node) IsString() bool  { return n.Type() == StringType }
func (n *Node) IsRaw() bool     { return n.Type() == RawType }
func (n *Node) IsArray() bool   { return n.Type() == ArrayType }
func (n *Node) IsObject() bool  { return n.Type() == ObjectType }

// Number returns the payload of a number node and 0 for anything else.
func (n *Node) Number() float64 {
	if n.Type() != NumberType {
		return 0
	}
	return n.num
}

// Int returns the number payload truncated to an int, saturating at the
// bounds of int. NaN yields 0.
func (n *Node) Int() int {
	f := n.Number()
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// Text returns the payload of a string or raw node and "" for anything else.
func (n *Node) Text() string {
	if !n.Type().hasText() {
		return ""
	}
	return textString(n.txt)
}

// TextBorrowed reports whether the text payload is borrowed from the caller
// rather than owned by the node.
func (n *Node) TextBorrowed() bool {
	return n.Type().hasText() && n.txt != nil && n.txt.Borrowed()
}

// Key returns the name of n inside its parent object, or "".
func (n *Node) Key() string {
	if n == nil {
		return ""
	}
	return textString(n.key)
}

func (n *Node) KeyBorrowed() bool {
	return n != nil && n.key != nil && n.key.Borrowed()
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// IsReference reports whether n reads its children from another node that
// it does not own.
func (n *Node) IsReference() bool {
	return n != nil && n.ref != nil
}

// members returns the children of n, following a reference.
func (n *Node) members() []*Node {
	if n == nil {
		return nil
	}
	if n.ref != nil {
		return n.ref.values
	}
	return n.values
}

func (n *Node) Len() int {
	return len(n.members())
}

// At returns the i'th child or nil.
func (n *Node) At(i int) *Node {
	vs := n.members()
	if i < 0 || i >= len(vs) {
		return nil
	}
	return vs[i]
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	vs := n.members()
	res := make([]*Node, len(vs))
	copy(res, vs)
	return res
}

func (n *Node) index(key string, fold bool) int {
	if n.Type() != ObjectType {
		return -1
	}
	for i, c := range n.members() {
		k := textString(c.key)
		if k == key || (fold && strings.EqualFold(k, key)) {
			return i
		}
	}
	return -1
}

// Get returns the first member of an object whose key equals key, or nil.
func (n *Node) Get(key string) *Node {
	return n.At(n.index(key, false))
}

// GetFold is Get with case-insensitive key matching.
func (n *Node) GetFold(key string) *Node {
	return n.At(n.index(key, true))
}

func (n *Node) Has(key string) bool {
	return n.index(key, false) != -1
}

func (n *Node) Root() *Node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

// Path returns a JSONPath style location of n within its root, such as
// $.foo.bar[0].
func (n *Node) Path() string {
	if n == nil || n.parent == nil {
		return "$"
	}
	p := n.parent
	switch p.typ {
	case ObjectType:
		f := n.Key()
		prefix := p.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
	case ArrayType:
		return p.Path() + "[" + strconv.Itoa(p.indexOf(n)) + "]"
	default:
		panic(fmt.Sprintf("ir: parent of type %s", p.typ))
	}
}

func (n *Node) indexOf(c *Node) int {
	for i, v := range n.values {
		if v == c {
			return i
		}
	}
	return -1
}

// Visit walks the tree rooted at n depth first, calling f before (isPost
// false) and after (isPost true) the children of each node. Children are
// visited only when the pre call returns true. References are followed.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.members() {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// Delete frees n and everything it owns. Borrowed text and the children of
// reference nodes are left alone. A node that is still attached to a parent
// cannot be deleted; detach it first.
func Delete(n *Node) error {
	if n == nil {
		return nil
	}
	if n.typ == InvalidType {
		return fmt.Errorf("%w: delete of deleted or unconstructed node", ErrInvalid)
	}
	if n.parent != nil {
		return fmt.Errorf("%w: delete of attached node %s", ErrOwnership, n.Path())
	}
	n.free()
	return nil
}

func (n *Node) free() {
	for _, c := range n.values {
		c.parent = nil
		c.free()
	}
	a := n.alloc
	freeText(n.txt, a)
	freeText(n.key, a)
	*n = Node{}
	if a != nil {
		a.FreeNode(n)
	}
}
