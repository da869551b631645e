package rlp

import "errors"

var (
	// ErrOutOfBounds is returned when a window operation would step
	// outside the underlying buffer.
	ErrOutOfBounds = errors.New("rlp: window out of bounds")

	// ErrTruncatedInput is returned when a header declares more payload
	// than the input window holds.
	ErrTruncatedInput = errors.New("rlp: truncated input")

	// ErrLengthOfLength is returned when a long-form header needs more
	// length bytes than the codec supports.
	ErrLengthOfLength = errors.New("rlp: length-of-length exceeded")

	// ErrNotAString is returned by DecodeString on a list item.
	ErrNotAString = errors.New("rlp: expected string item")

	// ErrNotAList is returned by the list decoders on a string item.
	ErrNotAList = errors.New("rlp: expected list item")

	// ErrFieldCount is returned when a list holds more items than the
	// caller-declared maximum.
	ErrFieldCount = errors.New("rlp: field count exceeded")

	// ErrLengthMismatch is returned when the items of a list do not
	// consume exactly the list's declared payload length.
	ErrLengthMismatch = errors.New("rlp: list length mismatch")

	// ErrLongField is returned by DecodeListSmall when a field needs a
	// multi-byte header, i.e. its payload exceeds 55 bytes.
	ErrLongField = errors.New("rlp: field exceeds single-byte header range")
)
