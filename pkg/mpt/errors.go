package mpt

import "errors"

var (
	// ErrHashMismatch is returned when a node's Keccak-256 does not
	// equal the hash its parent (or the root) demands.
	ErrHashMismatch = errors.New("mpt: node hash mismatch")

	// ErrInvalidNodeShape is returned when a node decodes to a field
	// count that is neither a branch (17) nor a short node (2).
	ErrInvalidNodeShape = errors.New("mpt: invalid node shape")

	// ErrExpectedHashGotValue is returned when a child slot holds
	// anything other than a 32-byte hash. Inline children are out of
	// scope.
	ErrExpectedHashGotValue = errors.New("mpt: expected 32-byte child hash")

	// ErrWrongNodeKind is returned when a hex-prefix marker does not fit
	// the node's position in the walk, or is not a marker at all.
	ErrWrongNodeKind = errors.New("mpt: wrong node kind")

	// ErrInvalidPadding is returned when an even-parity compact path
	// carries a non-zero padding nibble, or the path is empty.
	ErrInvalidPadding = errors.New("mpt: invalid compact path padding")

	// ErrPathMismatch is returned when the proof's path segments diverge
	// from the lookup key.
	ErrPathMismatch = errors.New("mpt: path does not match key")

	// ErrKeyNotFullyConsumed is returned when the walk ends at the leaf
	// with key nibbles left over.
	ErrKeyNotFullyConsumed = errors.New("mpt: key not fully consumed")

	// ErrValueMismatch is returned when the leaf stores different bytes
	// than the expected value.
	ErrValueMismatch = errors.New("mpt: leaf value mismatch")

	// ErrBoundExceeded is returned at assembly time when a proof exceeds
	// its capacity bounds.
	ErrBoundExceeded = errors.New("mpt: proof bound exceeded")

	// ErrEmptyProof is returned when a proof carries no nodes at all.
	ErrEmptyProof = errors.New("mpt: empty proof")
)
