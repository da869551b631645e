package mpt

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethrlp "github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/mptproof/internal/keccak"
)

// Hand-built node fixtures. geth's rlp package does the encoding so the
// decoder under test is never checked against itself.

func rlpNode(t *testing.T, items [][]byte) []byte {
	t.Helper()
	enc, err := gethrlp.EncodeToBytes(items)
	require.NoError(t, err)
	return enc
}

func leafFixture(t *testing.T, path []byte, value []byte) []byte {
	return rlpNode(t, [][]byte{NibblesToCompact(path, true), value})
}

func extensionFixture(t *testing.T, path []byte, child [32]byte) []byte {
	return rlpNode(t, [][]byte{NibblesToCompact(path, false), child[:]})
}

// branchFixture fills the 17 slots from children (nibble -> raw slot
// content); missing slots stay empty.
func branchFixture(t *testing.T, children map[byte][]byte) []byte {
	items := make([][]byte, branchFieldCount)
	for i := range items {
		items[i] = []byte{}
	}
	for idx, content := range children {
		items[idx] = content
	}
	return rlpNode(t, items)
}

func hashOf(node []byte) [32]byte {
	return keccak.Sum256(node)
}

// keccakKey maps a slot key into the storage trie's keyspace.
func keccakKey(h common.Hash) []byte {
	k := keccak.Sum256(h.Bytes())
	return k[:]
}
