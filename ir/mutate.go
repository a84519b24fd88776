package ir

import (
	"fmt"
	"slices"
)

// checkContainer verifies that n is an owning container of type t.
func (n *Node) checkContainer(op string, t Type) error {
	if n == nil {
		return fmt.Errorf("%w: %s on nil node", ErrNilNode, op)
	}
	if n.typ == InvalidType {
		return fmt.Errorf("%w: %s", ErrInvalid, op)
	}
	if n.typ != t {
		return typeErr(op, t, n.typ)
	}
	if n.ref != nil {
		return fmt.Errorf("%w: %s", ErrReference, op)
	}
	return nil
}

// checkAdopt verifies that item may become a child of n: it must be a live,
// unattached node from which n cannot be reached, whether through children
// or references.
func (n *Node) checkAdopt(item *Node) error {
	if item == nil {
		return ErrNilNode
	}
	if item.typ == InvalidType {
		return fmt.Errorf("%w: cannot attach", ErrInvalid)
	}
	if item.parent != nil {
		return fmt.Errorf("%w: node is already attached at %s", ErrOwnership, item.Path())
	}
	if reaches(item, n) {
		return fmt.Errorf("%w: node would contain itself", ErrOwnership)
	}
	return nil
}

// checkRefTarget rejects references that would make n reachable from itself.
func (n *Node) checkRefTarget(target *Node) error {
	if target == nil {
		return ErrNilNode
	}
	if target.typ == InvalidType {
		return fmt.Errorf("%w: cannot reference", ErrInvalid)
	}
	if target.IsArray() || target.IsObject() {
		if reaches(resolve(target), n) {
			return fmt.Errorf("%w: reference would contain itself", ErrOwnership)
		}
	}
	return nil
}

// reaches reports whether n can be reached from x by following children and
// references. Subtrees without references are only searched through n's
// ancestors.
func reaches(x, n *Node) bool {
	var seen map[*Node]bool
	var walk func(x *Node) bool
	walk = func(x *Node) bool {
		if x.refs == 0 {
			for p := n; p != nil; p = p.parent {
				if p == x {
					return true
				}
			}
			return false
		}
		if x == n {
			return true
		}
		if seen[x] {
			return false
		}
		if seen == nil {
			seen = make(map[*Node]bool)
		}
		seen[x] = true
		if x.ref != nil {
			return walk(x.ref)
		}
		for _, c := range x.values {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(x)
}

// addRefs adjusts the reference counts of n and its ancestors by d.
func (n *Node) addRefs(d int) {
	if d == 0 {
		return
	}
	for p := n; p != nil; p = p.parent {
		p.refs += d
	}
}

func (n *Node) adopt(i int, item *Node) {
	item.parent = n
	n.values = slices.Insert(n.values, i, item)
	n.addRefs(item.refs)
}

// Append adds item at the end of array n. On failure item is left untouched
// and still belongs to the caller.
func (n *Node) Append(item *Node) error {
	return n.Insert(n.Len(), item)
}

// Insert puts item at position i of array n, shifting later children up.
// An index at or past the end appends.
func (n *Node) Insert(i int, item *Node) error {
	if err := n.checkContainer("insert", ArrayType); err != nil {
		return err
	}
	if i < 0 {
		return fmt.Errorf("%w: insert at %d", ErrIndex, i)
	}
	if err := n.checkAdopt(item); err != nil {
		return err
	}
	n.adopt(min(i, len(n.values)), item)
	return nil
}

// Add appends item to object n under a copy of key. Keys need not be unique;
// lookups find the first match.
func (n *Node) Add(key string, item *Node) error {
	return n.add(key, item, false)
}

// AddConstKey is Add without copying key; the key is borrowed and never
// freed by the tree.
func (n *Node) AddConstKey(key string, item *Node) error {
	return n.add(key, item, true)
}

func (n *Node) add(key string, item *Node, borrow bool) error {
	if err := n.checkContainer("add", ObjectType); err != nil {
		return err
	}
	if err := n.checkAdopt(item); err != nil {
		return err
	}
	var k text = borrowedText(key)
	if !borrow {
		owned, err := ownText(item.alloc, key)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		k = owned
	}
	freeText(item.key, item.alloc)
	item.key = k
	n.adopt(len(n.values), item)
	return nil
}

// AppendReference appends to array n a new node standing in for target.
// target is not attached and stays owned by the caller, who must keep it
// alive for as long as the reference exists.
func (n *Node) AppendReference(target *Node) error {
	if err := n.checkContainer("append reference", ArrayType); err != nil {
		return err
	}
	ref, err := n.newReference(target)
	if err != nil {
		return err
	}
	n.adopt(len(n.values), ref)
	return nil
}

// AddReference is AppendReference for objects.
func (n *Node) AddReference(key string, target *Node) error {
	if err := n.checkContainer("add reference", ObjectType); err != nil {
		return err
	}
	ref, err := n.newReference(target)
	if err != nil {
		return err
	}
	if err := n.Add(key, ref); err != nil {
		ref.free()
		return err
	}
	return nil
}

func (n *Node) newReference(target *Node) (*Node, error) {
	if err := n.checkRefTarget(target); err != nil {
		return nil, err
	}
	ref := Using(n.alloc).reference(target)
	if ref == nil {
		return nil, fmt.Errorf("%w: reference node", ErrAlloc)
	}
	return ref, nil
}

// AddNull and its siblings create a node, add it to object n under key and
// return it.
func (n *Node) AddNull(key string) (*Node, error) { return n.addNew(key, Using(n.alloc).Null()) }

func (n *Node) AddTrue(key string) (*Node, error) { return n.addNew(key, Using(n.alloc).True()) }

func (n *Node) AddFalse(key string) (*Node, error) { return n.addNew(key, Using(n.alloc).False()) }

func (n *Node) AddBool(key string, b bool) (*Node, error) {
	return n.addNew(key, Using(n.alloc).Bool(b))
}

func (n *Node) AddNumber(key string, v float64) (*Node, error) {
	return n.addNew(key, Using(n.alloc).Number(v))
}

func (n *Node) AddString(key, s string) (*Node, error) {
	return n.addNew(key, Using(n.alloc).String(s))
}

func (n *Node) AddRaw(key, s string) (*Node, error) {
	return n.addNew(key, Using(n.alloc).Raw(s))
}

func (n *Node) AddArray(key string) (*Node, error) { return n.addNew(key, Using(n.alloc).Array()) }

func (n *Node) AddObject(key string) (*Node, error) {
	return n.addNew(key, Using(n.alloc).Object())
}

func (n *Node) addNew(key string, item *Node) (*Node, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: value for %q", ErrAlloc, key)
	}
	if err := n.Add(key, item); err != nil {
		item.free()
		return nil, err
	}
	return item, nil
}

func (n *Node) checkIndex(op string, i int) error {
	if i < 0 || i >= len(n.values) {
		return fmt.Errorf("%w: %s %d of %d", ErrIndex, op, i, len(n.values))
	}
	return nil
}

func (n *Node) fieldIndex(op, key string, fold bool) (int, error) {
	if err := n.checkContainer(op, ObjectType); err != nil {
		return -1, err
	}
	i := n.index(key, fold)
	if i == -1 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return i, nil
}

// detach unlinks the i'th child. The child's key is released: keys only
// exist on object members.
func (n *Node) detach(i int) *Node {
	c := n.values[i]
	n.values = slices.Delete(n.values, i, i+1)
	n.addRefs(-c.refs)
	c.parent = nil
	freeText(c.key, c.alloc)
	c.key = nil
	return c
}

// DetachAt removes the i'th child of array or object n and returns it as a
// root owned by the caller.
func (n *Node) DetachAt(i int) (*Node, error) {
	if err := n.checkDetachable("detach"); err != nil {
		return nil, err
	}
	if err := n.checkIndex("detach", i); err != nil {
		return nil, err
	}
	return n.detach(i), nil
}

func (n *Node) checkDetachable(op string) error {
	if n.IsObject() {
		return n.checkContainer(op, ObjectType)
	}
	return n.checkContainer(op, ArrayType)
}

// DetachField removes the first member of object n named key.
func (n *Node) DetachField(key string) (*Node, error) {
	return n.detachField(key, false)
}

func (n *Node) DetachFieldFold(key string) (*Node, error) {
	return n.detachField(key, true)
}

func (n *Node) detachField(key string, fold bool) (*Node, error) {
	i, err := n.fieldIndex("detach", key, fold)
	if err != nil {
		return nil, err
	}
	return n.detach(i), nil
}

// Detach removes child from n. It fails with ErrNotChild when child does not
// belong to n.
func (n *Node) Detach(child *Node) (*Node, error) {
	if err := n.checkDetachable("detach"); err != nil {
		return nil, err
	}
	i, err := n.childIndex(child)
	if err != nil {
		return nil, err
	}
	return n.detach(i), nil
}

func (n *Node) childIndex(child *Node) (int, error) {
	if child == nil {
		return -1, ErrNilNode
	}
	if child.parent != n {
		return -1, ErrNotChild
	}
	i := n.indexOf(child)
	if i == -1 {
		panic(fmt.Sprintf("ir: %s claims parent %s but is not among its children", child.Path(), n.Path()))
	}
	return i, nil
}

func (n *Node) DeleteAt(i int) error {
	c, err := n.DetachAt(i)
	if err != nil {
		return err
	}
	return Delete(c)
}

func (n *Node) DeleteField(key string) error {
	c, err := n.DetachField(key)
	if err != nil {
		return err
	}
	return Delete(c)
}

func (n *Node) DeleteFieldFold(key string) error {
	c, err := n.DetachFieldFold(key)
	if err != nil {
		return err
	}
	return Delete(c)
}

// replace deletes the i'th child and puts item in its slot. In an object the
// slot keeps its key; item gets its own copy of it.
func (n *Node) replace(i int, item *Node) error {
	old := n.values[i]
	if item == old {
		return nil
	}
	if err := n.checkAdopt(item); err != nil {
		return err
	}
	var key text
	switch {
	case old.key == nil:
	case old.key.Borrowed():
		key = old.key
	default:
		owned, err := ownText(item.alloc, old.key.String())
		if err != nil {
			return fmt.Errorf("replace key %q: %w", old.key, err)
		}
		key = owned
	}
	freeText(item.key, item.alloc)
	item.key = key
	item.parent = n
	n.values[i] = item
	n.addRefs(item.refs - old.refs)
	old.parent = nil
	old.free()
	return nil
}

// ReplaceAt replaces the i'th child of n with item.
func (n *Node) ReplaceAt(i int, item *Node) error {
	if err := n.checkDetachable("replace"); err != nil {
		return err
	}
	if err := n.checkIndex("replace", i); err != nil {
		return err
	}
	return n.replace(i, item)
}

// ReplaceField replaces the first member of object n named key.
func (n *Node) ReplaceField(key string, item *Node) error {
	i, err := n.fieldIndex("replace", key, false)
	if err != nil {
		return err
	}
	return n.replace(i, item)
}

func (n *Node) ReplaceFieldFold(key string, item *Node) error {
	i, err := n.fieldIndex("replace", key, true)
	if err != nil {
		return err
	}
	return n.replace(i, item)
}

// Replace puts item in the place of old, which must be a child of n.
func (n *Node) Replace(old, item *Node) error {
	if err := n.checkDetachable("replace"); err != nil {
		return err
	}
	i, err := n.childIndex(old)
	if err != nil {
		return err
	}
	return n.replace(i, item)
}

// SetNumber changes the payload of number node n and returns the new value.
func (n *Node) SetNumber(v float64) (float64, error) {
	if n.Type() != NumberType {
		return 0, typeErr("set number", NumberType, n.Type())
	}
	n.num = v
	return v, nil
}

// SetString replaces the text of a string or raw node with an owned copy of
// s and returns it. An owned previous text is freed; a borrowed one is just
// dropped.
func (n *Node) SetString(s string) (string, error) {
	if !n.Type().hasText() {
		return "", typeErr("set string", StringType, n.Type())
	}
	txt, err := ownText(n.alloc, s)
	if err != nil {
		return "", err
	}
	freeText(n.txt, n.alloc)
	n.txt = txt
	return s, nil
}

// SetBool turns a boolean node into True or False and returns its new type.
func (n *Node) SetBool(b bool) (Type, error) {
	if !n.IsBool() {
		return n.Type(), typeErr("set bool", TrueType, n.Type())
	}
	n.typ = FalseType
	if b {
		n.typ = TrueType
	}
	return n.typ, nil
}
