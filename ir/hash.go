package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the value of n. Nodes that are Equal with
// case sensitivity hash alike; object member order does not contribute.
// Hashes are stable within a process only.
//
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	return n.hash()
}

func (n *Node) hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(n.typ))
	var b [8]byte
	switch n.typ {
	case NumberType:
		f := n.num
		if f == 0 {
			// -0 == 0
			f = 0
		}
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	case StringType, RawType:
		h.WriteString(textString(n.txt))
	case ArrayType:
		for _, v := range n.members() {
			binary.LittleEndian.PutUint64(b[:], v.hash())
			h.Write(b[:])
		}
	case ObjectType:
		// members are combined with a sum so that order drops out.
		var sum uint64
		for _, v := range n.members() {
			var m maphash.Hash
			m.SetSeed(seed)
			m.WriteString(textString(v.key))
			binary.LittleEndian.PutUint64(b[:], v.hash())
			m.Write(b[:])
			sum += m.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
	return h.Sum64()
}
