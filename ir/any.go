package ir

import (
	"fmt"
	"maps"
	"slices"
)

// ToAny converts the tree rooted at n into plain Go values: nil, bool,
// float64, string, []any and map[string]any. Raw text is returned as a
// string. When an object has duplicate keys the first member wins, as with
// Get.
func ToAny(n *Node) any {
	switch n.Type() {
	case FalseType:
		return false
	case TrueType:
		return true
	case NumberType:
		return n.num
	case StringType, RawType:
		return textString(n.txt)
	case ArrayType:
		ms := n.members()
		res := make([]any, len(ms))
		for i, c := range ms {
			res[i] = ToAny(c)
		}
		return res
	case ObjectType:
		ms := n.members()
		res := make(map[string]any, len(ms))
		for _, c := range ms {
			k := textString(c.key)
			if _, ok := res[k]; !ok {
				res[k] = ToAny(c)
			}
		}
		return res
	}
	return nil
}

// FromAny builds a tree from v using the process-wide allocator. Map keys are
// added in sorted order.
func FromAny(v any) (*Node, error) {
	return std().FromAny(v)
}

func (f Factory) FromAny(v any) (*Node, error) {
	return f.fromAny(v, 0)
}

func (f Factory) fromAny(v any, depth int) (*Node, error) {
	if depth > NestingLimit {
		return nil, fmt.Errorf("%w: value nested beyond %d levels", ErrDepth, NestingLimit)
	}
	var res *Node
	switch x := v.(type) {
	case nil:
		res = f.Null()
	case bool:
		res = f.Bool(x)
	case float64:
		res = f.Number(x)
	case float32:
		res = f.Number(float64(x))
	case int:
		res = f.Number(float64(x))
	case int64:
		res = f.Number(float64(x))
	case int32:
		res = f.Number(float64(x))
	case uint64:
		res = f.Number(float64(x))
	case uint32:
		res = f.Number(float64(x))
	case string:
		res = f.String(x)
	case *Node:
		return f.Duplicate(x, true)
	case []string:
		res = f.StringArray(x)
	case []float64:
		res = f.NumberArray(x)
	case []int:
		res = f.IntArray(x)
	case []any:
		return f.arrayFromAny(x, depth)
	case map[string]any:
		return f.objectFromAny(x, depth)
	default:
		return nil, fmt.Errorf("%w: cannot convert %T", ErrType, v)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %T", ErrAlloc, v)
	}
	return res, nil
}

func (f Factory) arrayFromAny(vs []any, depth int) (*Node, error) {
	arr := f.Array()
	if arr == nil {
		return nil, fmt.Errorf("%w: array", ErrAlloc)
	}
	for _, v := range vs {
		c, err := f.fromAny(v, depth+1)
		if err != nil {
			arr.free()
			return nil, err
		}
		arr.adopt(len(arr.values), c)
	}
	return arr, nil
}

func (f Factory) objectFromAny(m map[string]any, depth int) (*Node, error) {
	obj := f.Object()
	if obj == nil {
		return nil, fmt.Errorf("%w: object", ErrAlloc)
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		c, err := f.fromAny(m[k], depth+1)
		if err == nil {
			err = obj.Add(k, c)
			if err != nil {
				c.free()
			}
		}
		if err != nil {
			obj.free()
			return nil, err
		}
	}
	return obj, nil
}
