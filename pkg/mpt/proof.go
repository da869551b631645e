package mpt

import "fmt"

// Proof is a bounded, ordered chain of RLP-encoded trie nodes from the
// root down to the leaf. Interior nodes and the leaf live in
// fixed-capacity buffers right-padded with zeros; depth is the sole
// source of truth for how many interior entries are real, and the
// padding tail is never dereferenced.
type Proof struct {
	bounds Bounds
	nodes  [][]byte
	leaf   []byte
	depth  int
}

// NewProof copies the raw node chain into fixed-capacity buffers. The
// last element of raw is the leaf; everything before it is an interior
// node. Every bound violation is reported here, before any
// verification runs.
func NewProof(raw [][]byte, b Bounds) (*Proof, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyProof
	}
	depth := len(raw) - 1
	if depth > b.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d, max %d", ErrBoundExceeded, depth, b.MaxDepth)
	}

	p := &Proof{bounds: b, depth: depth}
	p.nodes = make([][]byte, b.MaxDepth)
	for i := range p.nodes {
		p.nodes[i] = make([]byte, b.MaxNodeLen)
	}
	for i, n := range raw[:depth] {
		if len(n) > b.MaxNodeLen {
			return nil, fmt.Errorf("%w: node %d is %d bytes, max %d", ErrBoundExceeded, i, len(n), b.MaxNodeLen)
		}
		copy(p.nodes[i], n)
	}

	leaf := raw[depth]
	if len(leaf) > b.MaxLeafLen {
		return nil, fmt.Errorf("%w: leaf is %d bytes, max %d", ErrBoundExceeded, len(leaf), b.MaxLeafLen)
	}
	p.leaf = make([]byte, b.MaxLeafLen)
	copy(p.leaf, leaf)

	return p, nil
}

// Depth returns the number of interior nodes preceding the leaf.
func (p *Proof) Depth() int { return p.depth }

// Bounds returns the capacities the proof was assembled under.
func (p *Proof) Bounds() Bounds { return p.bounds }
