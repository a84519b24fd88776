// Package ir provides the in-memory tree for JSON documents.
//
// # Overview
//
// A document is a tree of *Node values. A node is a tagged union: its Type
// determines whether the number payload, the text payload or the children
// are meaningful.
//
//   - NullType, FalseType, TrueType: no payload
//   - NumberType: a float64
//   - StringType: text, escaped when printed
//   - RawType: text printed verbatim
//   - ArrayType: ordered children
//   - ObjectType: ordered children, each carrying a key
//
// The zero Type, InvalidType, marks a node that was never built or that has
// been deleted.
//
// # Ownership
//
// Memory is managed explicitly. Every node and every text buffer it owns is
// obtained from an Allocator and is handed back to that same allocator by
// Delete, exactly once.
//
// A node has at most one owner. It is either a root, owned by whoever created
// or detached it, or it sits in exactly one parent's children. Attaching a
// node that already has a parent fails with ErrOwnership, as does attaching a
// node under itself:
//
//	arr := ir.NewArray()
//	n := ir.NewNumber(1)
//	_ = arr.Append(n)
//	err := other.Append(n) // ErrOwnership: detach or Duplicate first
//
// Text is either owned or borrowed. NewStringReference and AddConstKey borrow
// the caller's string; deleting the node never frees it.
//
// Reference containers (NewArrayReference, AppendReference, ...) read their
// children from another node which they do not own. The referenced tree must
// outlive the reference. Mutating through a reference fails with ErrReference.
//
// # Allocators
//
// The constructors use the process-wide allocator, see SetAllocator; a
// Factory allocates from an explicit one. Tracker counts live allocations and
// panics on double frees, which makes it useful in tests:
//
//	tr := ir.NewTracker(nil)
//	prev := ir.SetAllocator(tr)
//	defer ir.SetAllocator(prev)
//	...
//	nodes, texts := tr.Live()
//
// Constructors return nil when the allocator fails. Attach operations reject
// nil items with ErrNilNode, so failures surface at the next mutation.
//
// # Comparison and Hashing
//
//	same := ir.Equal(a, b, true)
//	order := ir.Compare(a, b)
//	h := a.Hash()
//
// Equal ignores object member order and ownership. Compare imposes a total
// order used by SortObject.
//
// # Thread Safety
//
// Trees are not synchronized. Read only access to a tree nobody mutates is
// safe from several goroutines.
//
// # Related Packages
//
//   - github.com/signadot/jtree/parse - Parses text into trees
//   - github.com/signadot/jtree/encode - Prints trees as text
package ir
