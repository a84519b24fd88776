package ir

// Factory builds nodes from a fixed Allocator.
//
// Every constructor returns nil when the allocator fails; a node is either
// returned fully built or not at all.
type Factory struct {
	a Allocator
}

// Using returns a Factory allocating from a. A nil a means the heap.
func Using(a Allocator) Factory {
	if a == nil {
		a = heap{}
	}
	return Factory{a: a}
}

func (f Factory) Allocator() Allocator { return f.a }

func (f Factory) node(t Type) *Node {
	n, err := f.a.AllocNode()
	if err != nil || n == nil {
		return nil
	}
	*n = Node{typ: t, alloc: f.a}
	return n
}

func (f Factory) Null() *Node  { return f.node(NullType) }
func (f Factory) True() *Node  { return f.node(TrueType) }
func (f Factory) False() *Node { return f.node(FalseType) }

func (f Factory) Bool(b bool) *Node {
	if b {
		return f.True()
	}
	return f.False()
}

func (f Factory) Number(v float64) *Node {
	n := f.node(NumberType)
	if n != nil {
		n.num = v
	}
	return n
}

func (f Factory) text(t Type, s string) *Node {
	n := f.node(t)
	if n == nil {
		return nil
	}
	txt, err := ownText(f.a, s)
	if err != nil {
		n.free()
		return nil
	}
	n.txt = txt
	return n
}

// String returns a string node holding its own copy of s.
func (f Factory) String(s string) *Node { return f.text(StringType, s) }

// Raw returns a node whose text is printed verbatim. It is up to the caller
// that s is valid JSON.
func (f Factory) Raw(s string) *Node { return f.text(RawType, s) }

// StringReference returns a string node borrowing s; deleting the node never
// frees s.
func (f Factory) StringReference(s string) *Node {
	n := f.node(StringType)
	if n != nil {
		n.txt = borrowedText(s)
	}
	return n
}

func (f Factory) Array() *Node  { return f.node(ArrayType) }
func (f Factory) Object() *Node { return f.node(ObjectType) }

// ArrayReference returns an array node whose children are those of target.
// The reference owns none of them. It returns nil unless target is an array.
func (f Factory) ArrayReference(target *Node) *Node {
	return f.containerRef(ArrayType, target)
}

// ObjectReference is ArrayReference for objects.
func (f Factory) ObjectReference(target *Node) *Node {
	return f.containerRef(ObjectType, target)
}

func (f Factory) containerRef(t Type, target *Node) *Node {
	if target.Type() != t {
		return nil
	}
	n := f.node(t)
	if n != nil {
		n.ref = resolve(target)
		n.refs = 1
	}
	return n
}

// reference returns a node standing in for target without owning anything
// target owns: text is borrowed, numbers copied and containers referenced.
func (f Factory) reference(target *Node) *Node {
	switch target.Type() {
	case ArrayType, ObjectType:
		return f.containerRef(target.typ, target)
	case StringType, RawType:
		n := f.node(target.typ)
		if n != nil {
			n.txt = borrowedText(textString(target.txt))
		}
		return n
	case NumberType:
		return f.Number(target.num)
	case InvalidType:
		return nil
	default:
		return f.node(target.typ)
	}
}

func resolve(n *Node) *Node {
	for n.ref != nil {
		n = n.ref
	}
	return n
}

func (f Factory) StringArray(vs []string) *Node {
	arr := f.Array()
	if arr == nil {
		return nil
	}
	for _, v := range vs {
		if err := arr.Append(f.String(v)); err != nil {
			arr.free()
			return nil
		}
	}
	return arr
}

func (f Factory) NumberArray(vs []float64) *Node {
	arr := f.Array()
	if arr == nil {
		return nil
	}
	for _, v := range vs {
		if err := arr.Append(f.Number(v)); err != nil {
			arr.free()
			return nil
		}
	}
	return arr
}

func (f Factory) IntArray(vs []int) *Node {
	fs := make([]float64, len(vs))
	for i, v := range vs {
		fs[i] = float64(v)
	}
	return f.NumberArray(fs)
}

func std() Factory { return Factory{a: CurrentAllocator()} }

// The New functions allocate from the process-wide allocator, see
// SetAllocator, and return nil when it fails.

func NewNull() *Node { return std().Null() }

func NewTrue() *Node { return std().True() }

func NewFalse() *Node { return std().False() }

func NewBool(b bool) *Node { return std().Bool(b) }

func NewNumber(v float64) *Node { return std().Number(v) }

func NewString(s string) *Node { return std().String(s) }

func NewStringReference(s string) *Node { return std().StringReference(s) }

func NewRaw(s string) *Node { return std().Raw(s) }

func NewArray() *Node { return std().Array() }

func NewObject() *Node { return std().Object() }

func NewArrayReference(target *Node) *Node { return std().ArrayReference(target) }

func NewObjectReference(target *Node) *Node { return std().ObjectReference(target) }

func NewStringArray(vs []string) *Node { return std().StringArray(vs) }

func NewNumberArray(vs []float64) *Node { return std().NumberArray(vs) }

func NewIntArray(vs []int) *Node { return std().IntArray(vs) }
