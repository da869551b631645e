// Package slot derives storage slot keys for Solidity mapping layouts.
package slot

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// ForMapping returns keccak256( pad32(key) ‖ pad32(slotIndex) ), the
// storage key of mapping entry `key` in the mapping declared at
// slotIndex.
func ForMapping(key *uint256.Int, slotIndex uint64) common.Hash {
	var buf [64]byte

	// first 32 bytes = mapping key
	kb := key.Bytes32()
	copy(buf[:32], kb[:])

	// last 8 bytes of the second word = slot index (big-endian)
	for i := 0; i < 8; i++ {
		buf[56+i] = byte(slotIndex >> (8 * (7 - i)))
	}

	return crypto.Keccak256Hash(buf[:])
}
