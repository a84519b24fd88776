package ir

import "fmt"

// Duplicate copies n using the process-wide allocator. A shallow copy
// (recursive false) of an array or object has no children. Copies never
// borrow: borrowed text is copied and references become real containers.
// The copy is an unattached root, so it carries no key.
func Duplicate(n *Node, recursive bool) (*Node, error) {
	return std().Duplicate(n, recursive)
}

// Duplicate is the package level Duplicate allocating from f.
func (f Factory) Duplicate(n *Node, recursive bool) (*Node, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	return f.dup(n, recursive)
}

func (f Factory) dup(n *Node, recursive bool) (*Node, error) {
	var res *Node
	switch n.typ {
	case InvalidType:
		return nil, fmt.Errorf("%w: duplicate", ErrInvalid)
	case StringType, RawType:
		res = f.text(n.typ, textString(n.txt))
	case NumberType:
		res = f.Number(n.num)
	default:
		res = f.node(n.typ)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: duplicate %s", ErrAlloc, n.typ)
	}
	if !recursive {
		return res, nil
	}
	for _, c := range n.members() {
		cc, err := f.dup(c, true)
		if err != nil {
			res.free()
			return nil, err
		}
		if c.key != nil {
			k, err := ownText(f.a, c.key.String())
			if err != nil {
				cc.free()
				res.free()
				return nil, err
			}
			cc.key = k
		}
		res.adopt(len(res.values), cc)
	}
	return res, nil
}
