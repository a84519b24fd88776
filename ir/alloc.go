package ir

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Allocator supplies the memory for nodes and for the text buffers they own.
//
// Every node remembers the allocator that produced it and is returned to that
// same allocator by Delete, so swapping the process-wide allocator never
// sends memory to the wrong place.
type Allocator interface {
	AllocNode() (*Node, error)
	FreeNode(*Node)
	AllocText(n int) ([]byte, error)
	FreeText([]byte)
}

type heap struct{}

func (heap) AllocNode() (*Node, error) { return &Node{}, nil }
func (heap) FreeNode(*Node)            {}

// AllocText always returns a buffer with non-zero capacity so that buffers
// have an identity even when empty.
func (heap) AllocText(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAlloc, n)
	}
	return make([]byte, n, max(n, 1)), nil
}
func (heap) FreeText([]byte) {}

// Heap returns the allocator backed by the Go heap. It is the default.
func Heap() Allocator { return heap{} }

type allocHolder struct{ a Allocator }

var current atomic.Pointer[allocHolder]

func init() {
	current.Store(&allocHolder{a: heap{}})
}

// SetAllocator installs a as the process-wide allocator used by the
// constructors and returns the previous one. A nil a restores the heap
// allocator.
//
// It is meant to be called once during start up, or in tests, while no other
// goroutine is constructing nodes.
func SetAllocator(a Allocator) Allocator {
	if a == nil {
		a = heap{}
	}
	return current.Swap(&allocHolder{a: a}).a
}

func CurrentAllocator() Allocator {
	return current.Load().a
}

// Tracker wraps an Allocator, counting live nodes and text buffers.
//
// A Tracker panics when memory is freed twice or was never handed out by it:
// a tree in that state is torn and cannot be repaired. With a limit set,
// allocations beyond the limit fail with ErrAlloc.
type Tracker struct {
	mu    sync.Mutex
	base  Allocator
	limit int
	nodes map[*Node]struct{}
	texts map[*byte]int
	stats TrackerStats
}

type TrackerStats struct {
	LiveNodes int
	LiveTexts int
	LiveBytes int
	Allocs    int
	Frees     int
	Failed    int
}

func NewTracker(base Allocator) *Tracker {
	if base == nil {
		base = heap{}
	}
	return &Tracker{
		base:  base,
		nodes: map[*Node]struct{}{},
		texts: map[*byte]int{},
	}
}

// SetLimit makes every allocation after the first n successful ones fail.
// A limit of 0 removes the limit.
func (t *Tracker) SetLimit(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limit = n
}

func (t *Tracker) exhausted() bool {
	return t.limit > 0 && t.stats.Allocs >= t.limit
}

func (t *Tracker) AllocNode() (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exhausted() {
		t.stats.Failed++
		return nil, fmt.Errorf("%w: limit %d reached", ErrAlloc, t.limit)
	}
	n, err := t.base.AllocNode()
	if err != nil {
		t.stats.Failed++
		return nil, err
	}
	t.nodes[n] = struct{}{}
	t.stats.Allocs++
	t.stats.LiveNodes++
	return n, nil
}

func (t *Tracker) FreeNode(n *Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.nodes[n]; !ok {
		panic(fmt.Sprintf("ir: free of untracked or already freed node %p", n))
	}
	delete(t.nodes, n)
	t.stats.Frees++
	t.stats.LiveNodes--
	t.base.FreeNode(n)
}

func (t *Tracker) AllocText(n int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exhausted() {
		t.stats.Failed++
		return nil, fmt.Errorf("%w: limit %d reached", ErrAlloc, t.limit)
	}
	b, err := t.base.AllocText(n)
	if err != nil {
		t.stats.Failed++
		return nil, err
	}
	if cap(b) == 0 {
		b = make([]byte, 0, 1)
	}
	t.texts[bufID(b)] = len(b)
	t.stats.Allocs++
	t.stats.LiveTexts++
	t.stats.LiveBytes += len(b)
	return b, nil
}

func (t *Tracker) FreeText(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := bufID(b)
	sz, ok := t.texts[id]
	if id == nil || !ok {
		panic(fmt.Sprintf("ir: free of untracked or already freed text %q", b))
	}
	delete(t.texts, id)
	t.stats.Frees++
	t.stats.LiveTexts--
	t.stats.LiveBytes -= sz
	t.base.FreeText(b)
}

func (t *Tracker) Stats() TrackerStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Live returns the number of nodes and text buffers not yet freed.
func (t *Tracker) Live() (nodes, texts int) {
	s := t.Stats()
	return s.LiveNodes, s.LiveTexts
}

func bufID(b []byte) *byte {
	if cap(b) == 0 {
		return nil
	}
	return &b[:cap(b)][0]
}
