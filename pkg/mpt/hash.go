package mpt

import (
	"fmt"

	"github.com/yourorg/mptproof/internal/keccak"
	"github.com/yourorg/mptproof/pkg/rlp"
)

// nodeWindow narrows a padded node buffer to the span its RLP header
// declares. The padding tail past that span is never part of any
// decode or hash.
func nodeWindow(node []byte) (rlp.Window, error) {
	w := rlp.NewWindow(node)
	n, err := rlp.EncodedLen(w)
	if err != nil {
		return rlp.Window{}, err
	}
	return w.Sub(0, n)
}

// verifyNodeHash re-derives trust for one step of the walk: the
// Keccak-256 of exactly the node's declared span must equal the hash
// demanded by the previous node. Buffer contents are never trusted
// without this check.
func verifyNodeHash(node []byte, want [32]byte) error {
	w, err := nodeWindow(node)
	if err != nil {
		return err
	}
	got := keccak.Sum256(w.Bytes())
	if got != want {
		return fmt.Errorf("%w: have %x, want %x", ErrHashMismatch, got, want)
	}
	return nil
}
