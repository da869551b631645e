// Package mpt verifies Merkle-Patricia-Trie inclusion proofs against a
// 32-byte trie root. A proof is accepted only if every node hashes to
// the pointer demanded by its parent, the compact-encoded path segments
// reproduce the lookup key exactly, and the leaf stores the expected
// value byte for byte. Verification is a pure function of its inputs;
// there is no partial acceptance.
package mpt

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/yourorg/mptproof/internal/keccak"
	"github.com/yourorg/mptproof/pkg/rlp"
)

// VerifyProof walks proof from root to leaf and checks that value is
// stored at key. The key is raw trie-keyspace bytes: a Keccak-256
// pre-image hash for state and storage tries, an RLP-encoded index for
// transaction and receipt tries.
func VerifyProof(root common.Hash, key, value []byte, proof *Proof) error {
	if len(value) > proof.bounds.MaxValueLen {
		return fmt.Errorf("%w: value is %d bytes, max %d", ErrBoundExceeded, len(value), proof.bounds.MaxValueLen)
	}

	keyNibbles := BytesToNibbles(key)
	keyPtr := 0
	curr := [32]byte(root)

	// The node array has fixed capacity; the explicit depth comparison,
	// not array bounds, keeps padding entries out of the walk.
	for i := 0; i < proof.depth; i++ {
		node := proof.nodes[i]
		if err := verifyNodeHash(node, curr); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		w, fields, kind, err := decodeNode(node)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}

		var child rlp.Window
		switch kind {
		case branchNode:
			child, err = hashFromBranch(w, fields, keyNibbles, &keyPtr)
		case shortNode:
			child, err = hashFromExtension(w, fields, keyNibbles, &keyPtr)
		}
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		curr, err = child.Copy32()
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
	}

	return verifyLeaf(proof.leaf, curr, keyNibbles, keyPtr, value)
}

// verifyLeaf checks the terminal node: hash chain, leaf marker, exact
// key exhaustion, and byte equality of the stored value.
func verifyLeaf(leaf []byte, want [32]byte, keyNibbles []byte, keyPtr int, value []byte) error {
	if err := verifyNodeHash(leaf, want); err != nil {
		return fmt.Errorf("leaf: %w", err)
	}
	w, err := nodeWindow(leaf)
	if err != nil {
		return fmt.Errorf("leaf: %w", err)
	}
	// The general list decoder: a leaf's value field may need a
	// multi-byte header (account leaves do).
	fields, err := rlp.DecodeList(w, shortFieldCount)
	if err != nil {
		return fmt.Errorf("leaf: %w", err)
	}
	if len(fields) != shortFieldCount {
		return fmt.Errorf("leaf: %w: %d fields", ErrInvalidNodeShape, len(fields))
	}

	pathWin, err := w.Frag(fields[0])
	if err != nil {
		return fmt.Errorf("leaf: %w", err)
	}
	prefix, partial, err := CompactToNibbles(pathWin)
	if err != nil {
		return fmt.Errorf("leaf: %w", err)
	}
	if !isLeafPrefix(prefix) {
		// An extension masquerading as the terminal node.
		return fmt.Errorf("leaf: %w: extension marker %#x at terminal position", ErrWrongNodeKind, prefix)
	}

	remaining := keyNibbles[keyPtr:]
	if !bytes.Equal(partial, remaining) {
		if len(partial) < len(remaining) && bytes.Equal(partial, remaining[:len(partial)]) {
			return fmt.Errorf("leaf: %w: %d nibbles left", ErrKeyNotFullyConsumed, len(remaining)-len(partial))
		}
		return fmt.Errorf("leaf: %w: leaf path %x, key remainder %x", ErrPathMismatch, partial, remaining)
	}

	if fields[1].Kind != rlp.KindString {
		return fmt.Errorf("leaf: %w: value is a list", ErrValueMismatch)
	}
	valWin, err := w.Frag(fields[1])
	if err != nil {
		return fmt.Errorf("leaf: %w", err)
	}
	if !bytes.Equal(valWin.Bytes(), value) {
		return fmt.Errorf("leaf: %w: stored %d bytes, expected %d", ErrValueMismatch, valWin.Len(), len(value))
	}
	return nil
}

// VerifyAccountProof verifies the inclusion of an account's RLP
// encoding under the state root. The trie key is the Keccak-256 of the
// address.
func VerifyAccountProof(stateRoot common.Hash, addr common.Address, accountRLP []byte, proof *Proof) error {
	key := keccak.Sum256(addr.Bytes())
	return VerifyProof(stateRoot, key[:], accountRLP, proof)
}

// VerifyStorageProof verifies the inclusion of a storage value under an
// account's storage root. The trie key is the Keccak-256 of the slot
// key.
func VerifyStorageProof(storageRoot common.Hash, slotKey common.Hash, valueRLP []byte, proof *Proof) error {
	key := keccak.Sum256(slotKey.Bytes())
	return VerifyProof(storageRoot, key[:], valueRLP, proof)
}

// StorageItem pairs one storage slot with its expected value and proof.
type StorageItem struct {
	Key   common.Hash
	Value []byte
	Proof *Proof
}

// VerifyStorageProofs verifies N independent storage proofs against one
// storage root, stopping at the first rejection.
func VerifyStorageProofs(storageRoot common.Hash, items []StorageItem) error {
	for i, it := range items {
		if err := VerifyStorageProof(storageRoot, it.Key, it.Value, it.Proof); err != nil {
			return fmt.Errorf("storage proof %d (slot %x): %w", i, it.Key, err)
		}
	}
	return nil
}
