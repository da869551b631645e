// Package rlp implements a zero-copy decoder for the Recursive-Length-
// Prefix encoding used by every Ethereum trie node, account, transaction
// and receipt. Decoding classifies spans of the input instead of
// materializing values: the result of every operation is a Fragment, an
// (offset, length, kind) triple relative to the window it was decoded
// from.
package rlp

import "fmt"

// Kind distinguishes the two RLP item families.
type Kind uint8

const (
	KindString Kind = iota
	KindList
)

func (k Kind) String() string {
	if k == KindString {
		return "string"
	}
	return "list"
}

// Fragment locates one decoded RLP item inside a window.
//
// For a String fragment the offset points at the payload, past the
// length header. For a List fragment produced by DecodeList as a nested
// field, the offset points at the sub-list's own header and the length
// covers header plus payload, so the fragment can be handed back to
// DecodeList as-is. DecodeHeader itself always reports the payload span.
type Fragment struct {
	Off  int
	Len  int
	Kind Kind
}

// maxLenOfLen bounds the long-form length encoding: two length bytes
// support payloads up to 65535 bytes, more than any trie node, account
// or transaction this package is asked to decode.
const maxLenOfLen = 2

// DecodeHeader classifies the first byte of w and returns the payload
// span: Off is the header size, Len the payload length. It fails if the
// declared payload overruns the window.
func DecodeHeader(w Window) (Fragment, error) {
	b0, err := w.At(0)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: empty input", ErrTruncatedInput)
	}

	var f Fragment
	switch {
	case b0 < 0x80: // single byte, payload is the byte itself
		f = Fragment{Off: 0, Len: 1, Kind: KindString}
	case b0 < 0xb8: // short string
		f = Fragment{Off: 1, Len: int(b0 - 0x80), Kind: KindString}
	case b0 < 0xc0: // long string
		n, off, err := decodeLongLength(w, int(b0-0xb7))
		if err != nil {
			return Fragment{}, err
		}
		f = Fragment{Off: off, Len: n, Kind: KindString}
	case b0 < 0xf8: // short list
		f = Fragment{Off: 1, Len: int(b0 - 0xc0), Kind: KindList}
	default: // long list
		n, off, err := decodeLongLength(w, int(b0-0xf7))
		if err != nil {
			return Fragment{}, err
		}
		f = Fragment{Off: off, Len: n, Kind: KindList}
	}

	if f.Off+f.Len > w.Len() {
		return Fragment{}, fmt.Errorf("%w: header declares %d bytes at offset %d, window holds %d",
			ErrTruncatedInput, f.Len, f.Off, w.Len())
	}
	return f, nil
}

// decodeLongLength reads a big-endian payload length of lol bytes
// following the marker byte. Returns the length and the total header
// size.
func decodeLongLength(w Window, lol int) (int, int, error) {
	if lol > maxLenOfLen {
		return 0, 0, fmt.Errorf("%w: %d length bytes, max %d", ErrLengthOfLength, lol, maxLenOfLen)
	}
	n := 0
	for i := 0; i < lol; i++ {
		b, err := w.At(1 + i)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: header cut short", ErrTruncatedInput)
		}
		n = n<<8 | int(b)
	}
	return n, 1 + lol, nil
}

// DecodeString decodes one item and requires it to be a string.
func DecodeString(w Window) (Fragment, error) {
	f, err := DecodeHeader(w)
	if err != nil {
		return Fragment{}, err
	}
	if f.Kind != KindString {
		return Fragment{}, fmt.Errorf("%w: got %s of %d bytes", ErrNotAString, f.Kind, f.Len)
	}
	return f, nil
}

// DecodeList decodes a list item and splits its payload into at most
// maxFields fragments, in encoding order. Field order is semantically
// load-bearing for every caller, so fragments are appended exactly as
// encountered. The items must consume the list's declared payload
// exactly; both truncation and over-length encodings are rejected.
func DecodeList(w Window, maxFields int) ([]Fragment, error) {
	hdr, err := DecodeHeader(w)
	if err != nil {
		return nil, err
	}
	if hdr.Kind != KindList {
		return nil, fmt.Errorf("%w: got string of %d bytes", ErrNotAList, hdr.Len)
	}
	return decodeFields(w, hdr, maxFields, false)
}

// DecodeListSmall is the list decoder specialized for contexts where
// every field is guaranteed to fit a single-byte header (payload <= 55
// bytes): trie nodes and accounts. A field needing a multi-byte header
// is rejected outright.
func DecodeListSmall(w Window, maxFields int) ([]Fragment, error) {
	hdr, err := DecodeHeader(w)
	if err != nil {
		return nil, err
	}
	if hdr.Kind != KindList {
		return nil, fmt.Errorf("%w: got string of %d bytes", ErrNotAList, hdr.Len)
	}
	return decodeFields(w, hdr, maxFields, true)
}

func decodeFields(w Window, hdr Fragment, maxFields int, smallOnly bool) ([]Fragment, error) {
	frags := make([]Fragment, 0, maxFields)
	cursor := hdr.Off
	end := hdr.Off + hdr.Len

	for cursor < end {
		if len(frags) == maxFields {
			return nil, fmt.Errorf("%w: more than %d items", ErrFieldCount, maxFields)
		}
		rest, err := w.Sub(cursor, end-cursor)
		if err != nil {
			return nil, err
		}
		fh, err := DecodeHeader(rest)
		if err != nil {
			return nil, err
		}
		if smallOnly && fh.Off > 1 {
			return nil, fmt.Errorf("%w: item %d", ErrLongField, len(frags))
		}
		switch fh.Kind {
		case KindString:
			frags = append(frags, Fragment{Off: cursor + fh.Off, Len: fh.Len, Kind: KindString})
		case KindList:
			// Nested lists keep their own header in the fragment so the
			// span can be re-decoded without reconstructing it.
			frags = append(frags, Fragment{Off: cursor, Len: fh.Off + fh.Len, Kind: KindList})
		}
		cursor += fh.Off + fh.Len
	}

	if cursor != end {
		return nil, fmt.Errorf("%w: items end at %d, list declares %d", ErrLengthMismatch, cursor, end)
	}
	return frags, nil
}

// EncodedLen returns the total span (header plus payload) of the first
// item in w, without validating its interior.
func EncodedLen(w Window) (int, error) {
	f, err := DecodeHeader(w)
	if err != nil {
		return 0, err
	}
	return f.Off + f.Len, nil
}
