// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"encoding/binary"
	"fmt"
)

// Cursor is a big-endian byte cursor. A cursor built with NewCursor reads;
// the zero value is an empty cursor that grows as it is written.
type Cursor struct {
	buf  []byte
	off  int // read position within buf
	base int // absolute offset of buf[0] in the outermost input
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Offset returns the absolute read position, counted from the start of the
// cursor the current one was carved out of.
func (c *Cursor) Offset() int {
	return c.base + c.off
}

func (c *Cursor) need(n int) error {
	if n < 0 || c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedElement, n, c.Offset(), c.Remaining())
	}
	return nil
}

// Peek returns the next n bytes without consuming them.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	return c.buf[c.off : c.off+n], nil
}

// ReadBytes consumes n bytes. The result aliases the underlying buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.off += n
	return b, nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Skip advances the read position by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.ReadBytes(n)
	return err
}

// Sub consumes n bytes and returns a cursor bounded to exactly those bytes.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	base := c.Offset()
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return &Cursor{buf: b, base: base}, nil
}

// Len returns the number of bytes written so far.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Bytes returns the written bytes.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

func (c *Cursor) WriteUint8(v uint8) {
	c.buf = append(c.buf, v)
}

func (c *Cursor) WriteUint16(v uint16) {
	c.buf = binary.BigEndian.AppendUint16(c.buf, v)
}

func (c *Cursor) WriteUint32(v uint32) {
	c.buf = binary.BigEndian.AppendUint32(c.buf, v)
}

func (c *Cursor) WriteUint64(v uint64) {
	c.buf = binary.BigEndian.AppendUint64(c.buf, v)
}

func (c *Cursor) WriteBytes(b []byte) {
	c.buf = append(c.buf, b...)
}

// WriteZeros appends n zero bytes.
func (c *Cursor) WriteZeros(n int) {
	for range n {
		c.buf = append(c.buf, 0)
	}
}

// PatchUint16 overwrites two already written bytes at offset.
func (c *Cursor) PatchUint16(offset int, v uint16) error {
	if offset < 0 || offset+2 > len(c.buf) {
		return fmt.Errorf("patch offset %d out of range (written %d bytes)", offset, len(c.buf))
	}
	binary.BigEndian.PutUint16(c.buf[offset:], v)
	return nil
}

// Truncate discards everything written after the first n bytes.
func (c *Cursor) Truncate(n int) {
	if n >= 0 && n < len(c.buf) {
		c.buf = c.buf[:n]
	}
}
