// Package keccak provides the legacy Keccak-256 digest used for trie
// node hashing, with a pool of sponge states so the proof-walk hot path
// does not allocate one per node.
package keccak

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

var pool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

// Sum256 returns the legacy Keccak-256 digest of data.
func Sum256(data []byte) [32]byte {
	h := pool.Get().(hash.Hash)
	h.Reset()
	h.Write(data)

	var out [32]byte
	h.Sum(out[:0])
	pool.Put(h)
	return out
}
