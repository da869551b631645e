package rlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowBounds(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}

	w, err := NewWindowAt(buf, 1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, w.Len())
	require.Equal(t, []byte{2, 3, 4}, w.Bytes())

	b, err := w.At(0)
	require.NoError(t, err)
	require.Equal(t, byte(2), b)

	_, err = w.At(3)
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, err = w.At(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewWindowAt(buf, 4, 2)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWindowSub(t *testing.T) {
	w := NewWindow([]byte{1, 2, 3, 4, 5})

	sub, err := w.Sub(2, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4}, sub.Bytes())

	// Sub-windowing composes relative to the view, not the buffer.
	subsub, err := sub.Sub(1, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{4}, subsub.Bytes())

	_, err = sub.Sub(1, 2)
	require.ErrorIs(t, err, ErrOutOfBounds)

	tail, err := w.Tail(3)
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5}, tail.Bytes())
}

func TestWindowCopy32(t *testing.T) {
	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = byte(i)
	}

	w, err := NewWindowAt(buf, 4, 32)
	require.NoError(t, err)
	out, err := w.Copy32()
	require.NoError(t, err)
	require.Equal(t, buf[4:36], out[:])

	short, err := NewWindowAt(buf, 0, 20)
	require.NoError(t, err)
	_, err = short.Copy32()
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWindowEqual(t *testing.T) {
	a := NewWindow([]byte{1, 2, 3})
	b, err := NewWindowAt([]byte{0, 1, 2, 3, 0}, 1, 3)
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	c := NewWindow([]byte{1, 2, 4})
	require.False(t, a.Equal(c))
}
