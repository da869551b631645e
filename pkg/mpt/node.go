package mpt

import (
	"bytes"
	"fmt"

	"github.com/yourorg/mptproof/pkg/rlp"
)

const (
	branchFieldCount = 17
	shortFieldCount  = 2

	hashLen = 32
)

type nodeKind uint8

const (
	branchNode nodeKind = iota
	shortNode  // extension or leaf, disambiguated by the hex-prefix marker
)

// decodeNode decodes a padded node buffer into its field list. Branch
// and extension fields are all hashes or short values, so the
// single-byte-header list form applies; leaves carry the value and are
// decoded separately.
func decodeNode(node []byte) (rlp.Window, []rlp.Fragment, nodeKind, error) {
	w, err := nodeWindow(node)
	if err != nil {
		return rlp.Window{}, nil, 0, err
	}
	fields, err := rlp.DecodeListSmall(w, branchFieldCount)
	if err != nil {
		return rlp.Window{}, nil, 0, err
	}
	kind, err := classifyNode(fields)
	if err != nil {
		return rlp.Window{}, nil, 0, err
	}
	return w, fields, kind, nil
}

// classifyNode judges a node solely by its decoded field count.
func classifyNode(fields []rlp.Fragment) (nodeKind, error) {
	switch len(fields) {
	case branchFieldCount:
		return branchNode, nil
	case shortFieldCount:
		return shortNode, nil
	default:
		return 0, fmt.Errorf("%w: %d fields", ErrInvalidNodeShape, len(fields))
	}
}

// hashFromBranch selects the child slot indexed by the next key nibble
// and returns its 32-byte hash, advancing the key cursor by one nibble.
func hashFromBranch(w rlp.Window, fields []rlp.Fragment, keyNibbles []byte, keyPtr *int) (rlp.Window, error) {
	if *keyPtr >= len(keyNibbles) {
		return rlp.Window{}, fmt.Errorf("%w: key exhausted at branch", ErrPathMismatch)
	}
	idx := keyNibbles[*keyPtr]

	f := fields[idx]
	if f.Kind != rlp.KindString || f.Len != hashLen {
		return rlp.Window{}, fmt.Errorf("%w: child %d is %d bytes", ErrExpectedHashGotValue, idx, f.Len)
	}
	child, err := w.Frag(f)
	if err != nil {
		return rlp.Window{}, err
	}
	*keyPtr++
	return child, nil
}

// hashFromExtension checks the extension's partial key against the
// lookup key and returns the child hash, advancing the key cursor by
// the partial key's length.
func hashFromExtension(w rlp.Window, fields []rlp.Fragment, keyNibbles []byte, keyPtr *int) (rlp.Window, error) {
	pathWin, err := w.Frag(fields[0])
	if err != nil {
		return rlp.Window{}, err
	}
	prefix, partial, err := CompactToNibbles(pathWin)
	if err != nil {
		return rlp.Window{}, err
	}
	if isLeafPrefix(prefix) {
		return rlp.Window{}, fmt.Errorf("%w: leaf marker %#x on interior node", ErrWrongNodeKind, prefix)
	}

	remaining := keyNibbles[*keyPtr:]
	if len(partial) == 0 || len(partial) > len(remaining) || !bytes.Equal(partial, remaining[:len(partial)]) {
		return rlp.Window{}, fmt.Errorf("%w: extension path %x at nibble %d", ErrPathMismatch, partial, *keyPtr)
	}

	f := fields[1]
	if f.Kind != rlp.KindString || f.Len != hashLen {
		return rlp.Window{}, fmt.Errorf("%w: extension child is %d bytes", ErrExpectedHashGotValue, f.Len)
	}
	child, err := w.Frag(f)
	if err != nil {
		return rlp.Window{}, err
	}
	*keyPtr += len(partial)
	return child, nil
}
