package mpt

import (
	"fmt"

	"github.com/yourorg/mptproof/pkg/rlp"
)

// Hex-prefix ("compact") coding of nibble paths, per the yellow paper.
// The high nibble of the first byte is the marker: bit 0 carries the
// parity of the path length, bit 1 the leaf flag. Odd paths put their
// first nibble in the low half of the marker byte; even paths pad it
// with zero.
const (
	prefixExtensionEven = 0
	prefixExtensionOdd  = 1
	prefixLeafEven      = 2
	prefixLeafOdd       = 3
)

// BytesToNibbles splits each byte of b into two 4-bit values, high
// nibble first.
func BytesToNibbles(b []byte) []byte {
	out := make([]byte, 2*len(b))
	for i, v := range b {
		out[2*i] = v >> 4
		out[2*i+1] = v & 0x0f
	}
	return out
}

// CompactToNibbles decodes the hex-prefix path in w. It returns the
// marker nibble (0..3) and the path nibbles with marker and padding
// stripped. The caller judges whether the marker kind fits the node's
// position.
func CompactToNibbles(w rlp.Window) (prefix byte, nibs []byte, err error) {
	if w.Len() == 0 {
		return 0, nil, fmt.Errorf("%w: empty compact path", ErrInvalidPadding)
	}
	all := BytesToNibbles(w.Bytes())

	prefix = all[0]
	if prefix > prefixLeafOdd {
		return 0, nil, fmt.Errorf("%w: marker nibble %#x", ErrWrongNodeKind, prefix)
	}
	if prefix&1 == 0 {
		// Even parity: the second nibble is padding and must be zero.
		if all[1] != 0 {
			return 0, nil, fmt.Errorf("%w: %#x after even marker", ErrInvalidPadding, all[1])
		}
		return prefix, all[2:], nil
	}
	return prefix, all[1:], nil
}

// NibblesToCompact hex-prefix encodes a nibble path. Used by fixtures
// and witness assembly; the verifier only ever decodes.
func NibblesToCompact(nibs []byte, leaf bool) []byte {
	prefix := byte(prefixExtensionEven)
	if leaf {
		prefix = prefixLeafEven
	}
	odd := len(nibs)%2 == 1
	if odd {
		prefix |= 1
	}

	out := make([]byte, 1+len(nibs)/2)
	out[0] = prefix << 4
	rest := nibs
	if odd {
		out[0] |= nibs[0]
		rest = nibs[1:]
	}
	for i := 0; i+1 < len(rest); i += 2 {
		out[1+i/2] = rest[i]<<4 | rest[i+1]
	}
	return out
}

func isLeafPrefix(prefix byte) bool {
	return prefix&2 != 0
}
