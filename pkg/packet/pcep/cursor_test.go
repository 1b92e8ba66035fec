// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_Read(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f})

	u8, err := c.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), u8)

	u16, err := c.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), u16)

	u32, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04050607), u32)

	u64, err := c.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x08090a0b0c0d0e0f), u64)

	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 15, c.Offset())
}

func TestCursor_ShortRead(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03})

	_, err := c.ReadUint32()
	assert.ErrorIs(t, err, ErrTruncatedElement)
	assert.Equal(t, 3, c.Remaining(), "a failed read consumes nothing")

	_, err = c.Peek(4)
	assert.ErrorIs(t, err, ErrTruncatedElement)
	assert.ErrorIs(t, c.Skip(4), ErrTruncatedElement)
	_, err = c.Sub(-1)
	assert.ErrorIs(t, err, ErrTruncatedElement)
}

func TestCursor_Sub(t *testing.T) {
	c := NewCursor([]byte{0xaa, 0xbb, 0x01, 0x02, 0x03, 0xcc})
	require.NoError(t, c.Skip(2))

	sub, err := c.Sub(3)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Remaining())
	assert.Equal(t, 2, sub.Offset(), "offsets are absolute")

	_, err = sub.ReadUint32()
	assert.ErrorIs(t, err, ErrTruncatedElement, "a sub-cursor never reads past its bound")

	require.NoError(t, sub.Skip(1))
	assert.Equal(t, 3, sub.Offset())
	assert.Equal(t, 1, c.Remaining())
}

func TestCursor_Write(t *testing.T) {
	var c Cursor
	c.WriteUint8(0x01)
	c.WriteUint16(0x0203)
	c.WriteUint32(0x04050607)
	c.WriteBytes([]byte{0x08})
	c.WriteZeros(2)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x00, 0x00}, c.Bytes())
	assert.Equal(t, 10, c.Len())

	require.NoError(t, c.PatchUint16(1, 0xffee))
	assert.Equal(t, []byte{0x01, 0xff, 0xee}, c.Bytes()[:3])
	assert.Error(t, c.PatchUint16(9, 0))
	assert.Error(t, c.PatchUint16(-1, 0))

	c.Truncate(3)
	assert.Equal(t, []byte{0x01, 0xff, 0xee}, c.Bytes())
	c.Truncate(10)
	assert.Equal(t, 3, c.Len(), "truncating beyond the end is a no-op")

	c.WriteUint64(1)
	assert.Equal(t, 11, c.Len())
}
