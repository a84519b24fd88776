package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDuplicateShallow(t *testing.T) {
	a := NewIntArray([]int{1, 2, 3})
	shallow, err := Duplicate(a, false)
	if err != nil {
		t.Fatal(err)
	}
	if !shallow.IsArray() || shallow.Len() != 0 {
		t.Errorf("shallow copy is %s with %d children", shallow.Type(), shallow.Len())
	}
	deep, err := Duplicate(a, true)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, deep, true) {
		t.Error("deep copy differs")
	}
	for i := range a.Len() {
		if a.At(i) == deep.At(i) {
			t.Errorf("child %d shared", i)
		}
	}
}

func TestDuplicateIndependence(t *testing.T) {
	target := NewStringArray([]string{"r"})
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			var orig *Node
			switch typ {
			case NullType:
				orig = NewNull()
			case FalseType:
				orig = NewFalse()
			case TrueType:
				orig = NewTrue()
			case NumberType:
				orig = num(1)
			case StringType:
				orig = NewStringReference("s")
			case RawType:
				orig = NewRaw("[1]")
			case ArrayType:
				orig = arr(num(1), NewArrayReference(target))
			case ObjectType:
				orig = obj(kv{"a", arr(str("x"))}, kv{"b", num(2)})
			}
			dup, err := Duplicate(orig, true)
			if err != nil {
				t.Fatal(err)
			}
			before := orig.Hash()
			mutate(t, dup)
			if orig.Hash() != before {
				t.Error("mutating the copy changed the original")
			}
			dup2, err := Duplicate(orig, true)
			if err != nil {
				t.Fatal(err)
			}
			before = dup2.Hash()
			mutate(t, orig)
			if dup2.Hash() != before {
				t.Error("mutating the original changed the copy")
			}
		})
	}
}

func mutate(t *testing.T, n *Node) {
	t.Helper()
	var err error
	switch n.Type() {
	case NumberType:
		_, err = n.SetNumber(n.Number() + 1)
	case StringType, RawType:
		_, err = n.SetString(n.Text() + "!")
	case FalseType, TrueType:
		_, err = n.SetBool(!n.IsTrue())
	case ArrayType:
		if n.Len() > 0 {
			mutate(t, n.At(0))
		}
		err = n.Append(NewNull())
	case ObjectType:
		mutate(t, n.At(0))
		_, err = n.AddNull("new")
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestDuplicateOwnership(t *testing.T) {
	tr := track(t)
	target := NewObject()
	if _, err := target.AddString("s", "v"); err != nil {
		t.Fatal(err)
	}
	o := NewObject()
	if err := o.AddConstKey("const", NewStringReference("borrowed")); err != nil {
		t.Fatal(err)
	}
	if err := o.AddReference("ref", target); err != nil {
		t.Fatal(err)
	}
	child := o.Get("ref")
	dup, err := Duplicate(child, true)
	if err != nil {
		t.Fatal(err)
	}
	if dup.IsReference() || dup.Len() != 1 || dup.Key() != "" {
		t.Errorf("copy of reference: reference %v, len %d, key %q", dup.IsReference(), dup.Len(), dup.Key())
	}
	whole, err := Duplicate(o, true)
	if err != nil {
		t.Fatal(err)
	}
	c := whole.Get("const")
	if c.TextBorrowed() || c.KeyBorrowed() || c.Text() != "borrowed" {
		t.Error("copy borrows")
	}
	for _, n := range []*Node{dup, whole, o, target} {
		if err := Delete(n); err != nil {
			t.Fatal(err)
		}
	}
	checkLive(t, tr, 0, 0)
}

func TestDuplicateErrors(t *testing.T) {
	if _, err := Duplicate(nil, true); !errors.Is(err, ErrNilNode) {
		t.Errorf("nil: %v", err)
	}
	if _, err := Duplicate(&Node{}, true); !errors.Is(err, ErrInvalid) {
		t.Errorf("invalid: %v", err)
	}
	tr := NewTracker(nil)
	doc, err := buildDoc(Using(tr))
	if err != nil {
		t.Fatal(err)
	}
	nodes, texts := tr.Live()
	for limit := tr.Stats().Allocs + 1; ; limit++ {
		tr.SetLimit(limit)
		dup, err := Using(tr).Duplicate(doc, true)
		if err == nil {
			if err := Delete(dup); err != nil {
				t.Fatal(err)
			}
			break
		}
		if !errors.Is(err, ErrAlloc) {
			t.Fatalf("limit %d: %v", limit, err)
		}
		checkLive(t, tr, nodes, texts)
	}
	checkLive(t, tr, nodes, texts)
}

func TestFromAny(t *testing.T) {
	in := map[string]any{
		"b": []any{1, "two", nil, true},
		"a": map[string]any{"x": 1.5},
		"c": []string{"s"},
	}
	n, err := FromAny(in)
	if err != nil {
		t.Fatal(err)
	}
	if n.At(0).Key() != "a" {
		t.Errorf("first key %q", n.At(0).Key())
	}
	want := map[string]any{
		"b": []any{1.0, "two", nil, true},
		"a": map[string]any{"x": 1.5},
		"c": []any{"s"},
	}
	if diff := cmp.Diff(want, ToAny(n)); diff != "" {
		t.Errorf("ToAny (-want +got):\n%s", diff)
	}
	if _, err := FromAny(struct{}{}); !errors.Is(err, ErrType) {
		t.Errorf("struct: %v", err)
	}
}
