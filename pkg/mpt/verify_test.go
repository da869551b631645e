package mpt

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestVerifyCraftedChain(t *testing.T) {
	root, nodes := craftedChain(t)
	proof, err := NewProof(nodes, StorageBounds)
	require.NoError(t, err)

	require.NoError(t, VerifyProof(root, fixtureKey, fixtureValue, proof))
}

func TestVerifySingleLeaf(t *testing.T) {
	leaf := leafFixture(t, BytesToNibbles(fixtureKey), fixtureValue)
	proof, err := NewProof([][]byte{leaf}, StorageBounds)
	require.NoError(t, err)
	require.Zero(t, proof.Depth())

	require.NoError(t, VerifyProof(common.Hash(hashOf(leaf)), fixtureKey, fixtureValue, proof))
}

func TestVerifyThroughExtension(t *testing.T) {
	// ext(a) -> branch(b) -> leaf(c|d) for key 0xab 0xcd.
	leaf := leafFixture(t, []byte{0xc, 0xd}, fixtureValue)
	leafHash := hashOf(leaf)
	branch := branchFixture(t, map[byte][]byte{0xb: leafHash[:]})
	branchHash := hashOf(branch)
	ext := extensionFixture(t, []byte{0xa}, branchHash)

	proof, err := NewProof([][]byte{ext, branch, leaf}, StorageBounds)
	require.NoError(t, err)
	require.NoError(t, VerifyProof(common.Hash(hashOf(ext)), fixtureKey, fixtureValue, proof))
}

func TestVerifyRejectsWrongRoot(t *testing.T) {
	_, nodes := craftedChain(t)
	proof, err := NewProof(nodes, StorageBounds)
	require.NoError(t, err)

	err = VerifyProof(common.Hash{0x01}, fixtureKey, fixtureValue, proof)
	require.ErrorIs(t, err, ErrHashMismatch)
}

func TestVerifyRejectsWrongValue(t *testing.T) {
	root, nodes := craftedChain(t)
	proof, err := NewProof(nodes, StorageBounds)
	require.NoError(t, err)

	err = VerifyProof(root, fixtureKey, []byte("hellp"), proof)
	require.ErrorIs(t, err, ErrValueMismatch)

	// Length alone differing is just as fatal.
	err = VerifyProof(root, fixtureKey, []byte("hell"), proof)
	require.ErrorIs(t, err, ErrValueMismatch)
}

func TestVerifyRejectsKeyNotFullyConsumed(t *testing.T) {
	// The leaf path covers b|c only; nibble d stays unconsumed. A
	// prefix match is not a match.
	leaf := leafFixture(t, []byte{0xb, 0xc}, fixtureValue)
	leafHash := hashOf(leaf)
	branch := branchFixture(t, map[byte][]byte{0xa: leafHash[:]})

	proof, err := NewProof([][]byte{branch, leaf}, StorageBounds)
	require.NoError(t, err)
	err = VerifyProof(common.Hash(hashOf(branch)), fixtureKey, fixtureValue, proof)
	require.ErrorIs(t, err, ErrKeyNotFullyConsumed)
}

func TestVerifyRejectsLeafPathMismatch(t *testing.T) {
	leaf := leafFixture(t, []byte{0xb, 0xc, 0xe}, fixtureValue)
	leafHash := hashOf(leaf)
	branch := branchFixture(t, map[byte][]byte{0xa: leafHash[:]})

	proof, err := NewProof([][]byte{branch, leaf}, StorageBounds)
	require.NoError(t, err)
	err = VerifyProof(common.Hash(hashOf(branch)), fixtureKey, fixtureValue, proof)
	require.ErrorIs(t, err, ErrPathMismatch)
}

func TestVerifyRejectsExtensionAsLeaf(t *testing.T) {
	// Terminal node carrying an extension marker: an extension
	// masquerading as the leaf.
	fake := rlpNode(t, [][]byte{NibblesToCompact([]byte{0xb, 0xc, 0xd}, false), fixtureValue})
	fakeHash := hashOf(fake)
	branch := branchFixture(t, map[byte][]byte{0xa: fakeHash[:]})

	proof, err := NewProof([][]byte{branch, fake}, StorageBounds)
	require.NoError(t, err)
	err = VerifyProof(common.Hash(hashOf(branch)), fixtureKey, fixtureValue, proof)
	require.ErrorIs(t, err, ErrWrongNodeKind)
}

// Soundness: flipping any single byte of any node in the chain must
// flip the verdict to reject.
func TestVerifyRejectsAnySingleByteTamper(t *testing.T) {
	root, nodes := craftedChain(t)

	for ni := range nodes {
		for bi := range nodes[ni] {
			tampered := make([][]byte, len(nodes))
			for i, n := range nodes {
				cp := make([]byte, len(n))
				copy(cp, n)
				tampered[i] = cp
			}
			tampered[ni][bi] ^= 0x01

			proof, err := NewProof(tampered, StorageBounds)
			require.NoError(t, err)
			require.Error(t, VerifyProof(root, fixtureKey, fixtureValue, proof),
				"node %d byte %d", ni, bi)
		}
	}
}

// Determinism: identical inputs produce identical verdicts and reasons.
func TestVerifyDeterministic(t *testing.T) {
	root, nodes := craftedChain(t)
	proof, err := NewProof(nodes, StorageBounds)
	require.NoError(t, err)

	require.NoError(t, VerifyProof(root, fixtureKey, fixtureValue, proof))
	require.NoError(t, VerifyProof(root, fixtureKey, fixtureValue, proof))

	first := VerifyProof(root, fixtureKey, []byte("nope"), proof)
	second := VerifyProof(root, fixtureKey, []byte("nope"), proof)
	require.Error(t, first)
	require.Equal(t, first.Error(), second.Error())
}

func TestVerifyValueBound(t *testing.T) {
	root, nodes := craftedChain(t)
	proof, err := NewProof(nodes, StorageBounds)
	require.NoError(t, err)

	tooBig := make([]byte, StorageBounds.MaxValueLen+1)
	err = VerifyProof(root, fixtureKey, tooBig, proof)
	require.ErrorIs(t, err, ErrBoundExceeded)
}

func TestVerifyStorageProofs(t *testing.T) {
	// Storage semantics: the trie key is keccak(slotKey). Re-craft the
	// chain for a chosen slot.
	slotKey := common.HexToHash("0x01")
	trieKey := keccakKey(slotKey)
	nibs := BytesToNibbles(trieKey)

	leaf := leafFixture(t, nibs[1:], fixtureValue)
	leafHash := hashOf(leaf)
	branch := branchFixture(t, map[byte][]byte{nibs[0]: leafHash[:]})
	root := common.Hash(hashOf(branch))

	proof, err := NewProof([][]byte{branch, leaf}, StorageBounds)
	require.NoError(t, err)

	require.NoError(t, VerifyStorageProof(root, slotKey, fixtureValue, proof))
	require.NoError(t, VerifyStorageProofs(root, []StorageItem{
		{Key: slotKey, Value: fixtureValue, Proof: proof},
	}))

	err = VerifyStorageProofs(root, []StorageItem{
		{Key: slotKey, Value: []byte("wrong"), Proof: proof},
	})
	require.ErrorIs(t, err, ErrValueMismatch)
}
