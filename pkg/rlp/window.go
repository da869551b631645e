package rlp

import (
	"bytes"
	"fmt"
)

// Window is a non-owning (offset, length) view over a byte buffer. It is
// the substrate every decode operation works on: decoding never copies
// payload bytes, it only narrows windows. The invariant
// offset+length <= len(buffer) holds for every Window built through the
// constructors; operations re-check bounds instead of trusting callers.
type Window struct {
	buf []byte
	off int
	ln  int
}

// NewWindow views the whole of buf.
func NewWindow(buf []byte) Window {
	return Window{buf: buf, ln: len(buf)}
}

// NewWindowAt views buf[off : off+ln].
func NewWindowAt(buf []byte, off, ln int) (Window, error) {
	if off < 0 || ln < 0 || off+ln > len(buf) {
		return Window{}, fmt.Errorf("%w: [%d:+%d] over %d bytes", ErrOutOfBounds, off, ln, len(buf))
	}
	return Window{buf: buf, off: off, ln: ln}, nil
}

// Len returns the logical length of the view.
func (w Window) Len() int { return w.ln }

// At returns the byte at index i of the view.
func (w Window) At(i int) (byte, error) {
	if i < 0 || i >= w.ln {
		return 0, fmt.Errorf("%w: index %d of %d", ErrOutOfBounds, i, w.ln)
	}
	return w.buf[w.off+i], nil
}

// Sub narrows the view to [off, off+ln) relative to w.
func (w Window) Sub(off, ln int) (Window, error) {
	if off < 0 || ln < 0 || off+ln > w.ln {
		return Window{}, fmt.Errorf("%w: sub [%d:+%d] of %d", ErrOutOfBounds, off, ln, w.ln)
	}
	return Window{buf: w.buf, off: w.off + off, ln: ln}, nil
}

// Tail narrows the view to everything from off onward.
func (w Window) Tail(off int) (Window, error) {
	if off < 0 || off > w.ln {
		return Window{}, fmt.Errorf("%w: tail at %d of %d", ErrOutOfBounds, off, w.ln)
	}
	return Window{buf: w.buf, off: w.off + off, ln: w.ln - off}, nil
}

// Bytes returns the viewed bytes without copying. Callers must not
// mutate the result.
func (w Window) Bytes() []byte {
	return w.buf[w.off : w.off+w.ln]
}

// Copy32 materializes the view as an owned 32-byte value. The view must
// be exactly 32 bytes long.
func (w Window) Copy32() ([32]byte, error) {
	var out [32]byte
	if w.ln != 32 {
		return out, fmt.Errorf("%w: need 32 bytes, have %d", ErrOutOfBounds, w.ln)
	}
	copy(out[:], w.buf[w.off:w.off+32])
	return out, nil
}

// Equal reports byte equality of two views.
func (w Window) Equal(o Window) bool {
	return bytes.Equal(w.Bytes(), o.Bytes())
}

// Frag narrows the view to a previously decoded fragment's span.
func (w Window) Frag(f Fragment) (Window, error) {
	return w.Sub(f.Off, f.Len)
}
