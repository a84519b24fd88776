package ir

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mschoch/smat"
)

// The state machine below drives random sequences of constructions and
// mutations over a handful of roots, checking after every step that each
// node has exactly one owner and that the allocator agrees with what is
// reachable.

type smatContext struct {
	tr      *Tracker
	f       Factory
	anchor  *Node
	roots   []*Node
	counter int
	err     error
}

func (c *smatContext) fail(format string, args ...any) (smat.State, error) {
	if c.err == nil {
		c.err = fmt.Errorf(format, args...)
	}
	return nil, c.err
}

func (c *smatContext) push(n *Node) {
	if n != nil {
		c.roots = append(c.roots, n)
	}
}

// pop removes and returns the last root, or nil.
func (c *smatContext) pop() *Node {
	if len(c.roots) == 0 {
		return nil
	}
	n := c.roots[len(c.roots)-1]
	c.roots = c.roots[:len(c.roots)-1]
	return n
}

// container returns the last root that is an owning container.
func (c *smatContext) container() *Node {
	for i := len(c.roots) - 1; i >= 0; i-- {
		n := c.roots[i]
		if (n.IsArray() || n.IsObject()) && !n.IsReference() {
			return n
		}
	}
	return nil
}

func (c *smatContext) key() string {
	c.counter++
	return fmt.Sprintf("k%d", c.counter%5)
}

var smatActionMap = smat.ActionMap{
	smat.ActionID('S'): smatSetup,
	smat.ActionID('T'): smatTeardown,
	smat.ActionID('a'): smatNew(func(c *smatContext) *Node { return c.f.Array() }),
	smat.ActionID('o'): smatNew(func(c *smatContext) *Node { return c.f.Object() }),
	smat.ActionID('n'): smatNew(func(c *smatContext) *Node { return c.f.Number(float64(c.counter)) }),
	smat.ActionID('s'): smatNew(func(c *smatContext) *Node { return c.f.String(c.key()) }),
	smat.ActionID('r'): smatNew(func(c *smatContext) *Node { return c.f.StringReference("borrowed") }),
	smat.ActionID('b'): smatNew(func(c *smatContext) *Node { return c.f.StringArray([]string{"x", "y"}) }),
	smat.ActionID('R'): smatNew(func(c *smatContext) *Node { return c.f.ObjectReference(c.anchor) }),
	smat.ActionID('+'): smatAttach,
	smat.ActionID('i'): smatInsert,
	smat.ActionID('&'): smatReference,
	smat.ActionID('d'): smatDetach,
	smat.ActionID('p'): smatReplace,
	smat.ActionID('x'): smatDelete,
	smat.ActionID('D'): smatDuplicate,
	smat.ActionID('='): smatSet,
	smat.ActionID('>'): smatRotate,
	smat.ActionID('!'): smatMisuse,
}

func smatRunning(next byte) smat.ActionID {
	return smat.PercentExecute(next,
		smat.PercentAction{Percent: 7, Action: smat.ActionID('a')},
		smat.PercentAction{Percent: 7, Action: smat.ActionID('o')},
		smat.PercentAction{Percent: 7, Action: smat.ActionID('n')},
		smat.PercentAction{Percent: 6, Action: smat.ActionID('s')},
		smat.PercentAction{Percent: 4, Action: smat.ActionID('r')},
		smat.PercentAction{Percent: 4, Action: smat.ActionID('b')},
		smat.PercentAction{Percent: 4, Action: smat.ActionID('R')},
		smat.PercentAction{Percent: 13, Action: smat.ActionID('+')},
		smat.PercentAction{Percent: 6, Action: smat.ActionID('i')},
		smat.PercentAction{Percent: 5, Action: smat.ActionID('&')},
		smat.PercentAction{Percent: 8, Action: smat.ActionID('d')},
		smat.PercentAction{Percent: 6, Action: smat.ActionID('p')},
		smat.PercentAction{Percent: 6, Action: smat.ActionID('x')},
		smat.PercentAction{Percent: 5, Action: smat.ActionID('D')},
		smat.PercentAction{Percent: 4, Action: smat.ActionID('=')},
		smat.PercentAction{Percent: 4, Action: smat.ActionID('>')},
		smat.PercentAction{Percent: 4, Action: smat.ActionID('!')},
	)
}

func smatSetup(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	c.tr = NewTracker(nil)
	c.f = Using(c.tr)
	c.anchor = c.f.Object()
	if _, err := c.anchor.AddString("name", "anchor"); err != nil {
		return c.fail("setup: %v", err)
	}
	if _, err := c.anchor.AddArray("list"); err != nil {
		return c.fail("setup: %v", err)
	}
	return smatRunning, nil
}

func smatTeardown(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	if _, err := c.check(); err != nil {
		return nil, err
	}
	for n := c.pop(); n != nil; n = c.pop() {
		if err := Delete(n); err != nil {
			return c.fail("teardown: %v", err)
		}
	}
	if err := Delete(c.anchor); err != nil {
		return c.fail("teardown: %v", err)
	}
	if nodes, texts := c.tr.Live(); nodes != 0 || texts != 0 {
		return c.fail("teardown leaked %d nodes, %d texts", nodes, texts)
	}
	return nil, nil
}

func smatNew(mk func(c *smatContext) *Node) smat.Action {
	return func(ctx smat.Context) (smat.State, error) {
		c := ctx.(*smatContext)
		c.push(mk(c))
		return c.check()
	}
}

// smatAttach moves the last root into the nearest container root.
func smatAttach(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	item := c.pop()
	p := c.container()
	if item == nil || p == nil {
		c.push(item)
		return c.check()
	}
	var err error
	if p.IsArray() {
		err = p.Append(item)
	} else {
		err = p.Add(c.key(), item)
	}
	if err != nil {
		return c.fail("attach %s to %s: %v", item.Type(), p.Type(), err)
	}
	return c.check()
}

func smatInsert(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	p := c.container()
	if !p.IsArray() {
		return c.check()
	}
	n := c.f.Number(-1)
	if err := p.Insert(c.counter%(p.Len()+2), n); err != nil {
		return c.fail("insert: %v", err)
	}
	return c.check()
}

func smatReference(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	p := c.container()
	if p == nil {
		return c.check()
	}
	var err error
	if p.IsArray() {
		err = p.AppendReference(c.anchor.Get("list"))
	} else {
		err = p.AddReference(c.key(), c.anchor.Get("name"))
	}
	if err != nil {
		return c.fail("reference: %v", err)
	}
	return c.check()
}

func smatDetach(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	p := c.container()
	if p.Len() == 0 {
		return c.check()
	}
	var (
		child *Node
		err   error
	)
	switch c.counter % 3 {
	case 0:
		child, err = p.DetachAt(p.Len() - 1)
	case 1:
		child, err = p.Detach(p.At(0))
	default:
		if p.IsObject() {
			child, err = p.DetachField(p.At(0).Key())
		} else {
			child, err = p.DetachAt(0)
		}
	}
	c.counter++
	if err != nil {
		return c.fail("detach: %v", err)
	}
	if child.Parent() != nil || child.Key() != "" {
		return c.fail("detached node still linked at %s", child.Path())
	}
	c.push(child)
	return c.check()
}

func smatReplace(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	p := c.container()
	if p.Len() == 0 {
		return c.check()
	}
	item := c.f.Null()
	key := p.At(0).Key()
	if err := p.ReplaceAt(0, item); err != nil {
		return c.fail("replace: %v", err)
	}
	if p.At(0) != item || item.Key() != key {
		return c.fail("replace put %v with key %q in the slot", p.At(0), item.Key())
	}
	return c.check()
}

func smatDelete(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	if n := c.pop(); n != nil {
		if err := Delete(n); err != nil {
			return c.fail("delete: %v", err)
		}
	}
	return c.check()
}

func smatDuplicate(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	if len(c.roots) == 0 {
		return c.check()
	}
	orig := c.roots[len(c.roots)-1]
	dup, err := c.f.Duplicate(orig, true)
	if err != nil {
		return c.fail("duplicate: %v", err)
	}
	if !Equal(orig, dup, true) || orig.Hash() != dup.Hash() {
		return c.fail("duplicate of %s differs", orig.Type())
	}
	h := orig.Hash()
	if dup.IsArray() {
		if err := dup.Append(c.f.True()); err != nil {
			return c.fail("append to duplicate: %v", err)
		}
	}
	if orig.Hash() != h {
		return c.fail("mutating a duplicate changed the original")
	}
	c.push(dup)
	return c.check()
}

func smatSet(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	if len(c.roots) == 0 {
		return c.check()
	}
	n := c.roots[len(c.roots)-1]
	switch {
	case n.IsNumber():
		if _, err := n.SetNumber(n.Number() + 1); err != nil {
			return c.fail("set number: %v", err)
		}
	case n.IsString():
		if _, err := n.SetString(c.key()); err != nil {
			return c.fail("set string: %v", err)
		}
	}
	return c.check()
}

func smatRotate(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	if len(c.roots) > 1 {
		c.roots = append(c.roots[1:], c.roots[0])
	}
	return c.check()
}

// smatMisuse tries operations that must fail and leave every tree alone.
func smatMisuse(ctx smat.Context) (smat.State, error) {
	c := ctx.(*smatContext)
	p := c.container()
	if p == nil || p.Len() == 0 {
		return c.check()
	}
	child := p.At(0)
	if err := p.Append(child); err != nil && !errors.Is(err, ErrOwnership) && !errors.Is(err, ErrType) {
		return c.fail("re-attach: %v", err)
	} else if err == nil {
		return c.fail("re-attach of a child succeeded")
	}
	if err := Delete(child); !errors.Is(err, ErrOwnership) {
		return c.fail("delete of attached child: %v", err)
	}
	if child.IsArray() && !child.IsReference() {
		if err := child.Append(p.Root()); !errors.Is(err, ErrOwnership) {
			return c.fail("cycle: %v", err)
		}
	}
	if _, err := p.Detach(c.anchor); !errors.Is(err, ErrNotChild) {
		return c.fail("detach of foreign node: %v", err)
	}
	return c.check()
}

func refCount(n *Node) int {
	k := 0
	if n.ref != nil {
		k = 1
	}
	for _, ch := range n.values {
		k += refCount(ch)
	}
	return k
}

// check verifies ownership invariants over all roots and the anchor and
// that the tracker's live counts match what is reachable.
func (c *smatContext) check() (smat.State, error) {
	seen := map[*Node]bool{}
	texts := 0
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if seen[n] {
			return fmt.Errorf("%s reachable twice", n.Path())
		}
		seen[n] = true
		if n.IsInvalid() {
			return fmt.Errorf("invalid node at %s", n.Path())
		}
		if n.txt != nil && !n.txt.Borrowed() {
			texts++
		}
		if n.key != nil && !n.key.Borrowed() {
			texts++
		}
		if n.ref != nil && len(n.values) != 0 {
			return fmt.Errorf("reference at %s owns children", n.Path())
		}
		if k := refCount(n); k != n.refs {
			return fmt.Errorf("%s counts %d references, holds %d", n.Path(), n.refs, k)
		}
		for _, ch := range n.values {
			if ch.parent != n {
				return fmt.Errorf("child of %s has parent %p", n.Path(), ch.parent)
			}
			if (ch.key != nil) != (n.typ == ObjectType) {
				return fmt.Errorf("key presence wrong at %s", ch.Path())
			}
			if err := walk(ch); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range append([]*Node{c.anchor}, c.roots...) {
		if r.parent != nil || r.key != nil {
			return c.fail("root %s is linked", r.Path())
		}
		if err := walk(r); err != nil {
			return c.fail("%v", err)
		}
	}
	nodes, live := c.tr.Live()
	if nodes != len(seen) || live != texts {
		return c.fail("tracker has %d nodes, %d texts live; %d, %d reachable", nodes, live, len(seen), texts)
	}
	return smatRunning, nil
}

var smatActionSeqs = []smat.ActionSeq{
	{
		smat.ActionID('a'),
		smat.ActionID('n'),
		smat.ActionID('+'),
		smat.ActionID('s'),
		smat.ActionID('+'),
		smat.ActionID('i'),
		smat.ActionID('d'),
		smat.ActionID('+'),
		smat.ActionID('D'),
		smat.ActionID('x'),
	},
	{
		smat.ActionID('o'),
		smat.ActionID('r'),
		smat.ActionID('+'),
		smat.ActionID('b'),
		smat.ActionID('+'),
		smat.ActionID('&'),
		smat.ActionID('p'),
		smat.ActionID('!'),
		smat.ActionID('d'),
		smat.ActionID('='),
		smat.ActionID('>'),
		smat.ActionID('x'),
	},
	{
		smat.ActionID('a'),
		smat.ActionID('&'),
		smat.ActionID('R'),
		smat.ActionID('+'),
		smat.ActionID('o'),
		smat.ActionID('+'),
		smat.ActionID('D'),
		smat.ActionID('!'),
		smat.ActionID('d'),
		smat.ActionID('d'),
		smat.ActionID('p'),
	},
}

func runSmat(t *testing.T, program []byte) {
	t.Helper()
	c := &smatContext{}
	smat.Fuzz(c, smat.ActionID('S'), smat.ActionID('T'), smatActionMap, program)
	if c.err != nil {
		t.Fatal(c.err)
	}
}

func TestSmatSequences(t *testing.T) {
	for i, seq := range smatActionSeqs {
		program, err := seq.ByteEncoding(&smatContext{},
			smat.ActionID('S'), smat.ActionID('T'), smatActionMap)
		if err != nil {
			t.Fatalf("sequence %d: error from ByteEncoding, err: %v", i, err)
		}
		runSmat(t, program)
	}
}

func FuzzSmat(f *testing.F) {
	for _, seq := range smatActionSeqs {
		program, err := seq.ByteEncoding(&smatContext{},
			smat.ActionID('S'), smat.ActionID('T'), smatActionMap)
		if err != nil {
			f.Fatalf("error from ByteEncoding, err: %v", err)
		}
		f.Add(program)
	}
	f.Add([]byte("the quick brown fox jumps over the lazy dog"))
	f.Fuzz(runSmat)
}
