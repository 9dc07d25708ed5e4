package xfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor is a positionable little-endian reader over an in-memory buffer.
//
// Seek never validates; reads outside the buffer fail with ErrTruncatedInput
// at the point of the read.
type Cursor struct {
	data    []byte
	pos     int64
	charset Charset
}

// NewCursor returns a cursor at position 0 using DefaultCharset for C strings.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data, charset: DefaultCharset}
}

// SetCharset changes how ReadCString decodes bytes.
func (c *Cursor) SetCharset(cs Charset) { c.charset = cs }

// Pos returns the current byte offset.
func (c *Cursor) Pos() int64 { return c.pos }

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int64 { return int64(len(c.data)) }

// Remaining returns the number of readable bytes at the current position.
func (c *Cursor) Remaining() int64 {
	if c.pos < 0 || c.pos >= int64(len(c.data)) {
		return 0
	}
	return int64(len(c.data)) - c.pos
}

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(pos int64) { c.pos = pos }

func (c *Cursor) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: invalid read length %d at offset %d", ErrTruncatedInput, n, c.pos)
	}
	if c.pos < 0 || c.pos+int64(n) > int64(len(c.data)) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, buffer is %d bytes",
			ErrTruncatedInput, n, c.pos, len(c.data))
	}
	b := c.data[c.pos : c.pos+int64(n)]
	c.pos += int64(n)
	return b, nil
}

// ReadBytes returns the next n bytes. The slice aliases the cursor's buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.readN(n)
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool reads one byte; any non-zero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	v, err := c.ReadU8()
	return v != 0, err
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian int32.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadF32 reads a little-endian IEEE 754 float32.
func (c *Cursor) ReadF32() (float32, error) {
	u, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// PeekU16 reads a uint16 and rewinds, leaving the position unchanged.
func (c *Cursor) PeekU16() (uint16, error) {
	v, err := c.ReadU16()
	if err != nil {
		return 0, err
	}
	c.pos -= 2
	return v, nil
}

// ReadCString reads bytes up to a 0x00 terminator. The terminator is consumed
// but not returned.
func (c *Cursor) ReadCString() (string, error) {
	if c.pos < 0 || c.pos > int64(len(c.data)) {
		return "", fmt.Errorf("%w: string at offset %d, buffer is %d bytes",
			ErrTruncatedInput, c.pos, len(c.data))
	}
	rest := c.data[c.pos:]
	n := bytes.IndexByte(rest, 0)
	if n < 0 {
		return "", fmt.Errorf("%w at offset %d", ErrUnterminatedString, c.pos)
	}
	s, err := c.charset.decode(rest[:n])
	if err != nil {
		return "", err
	}
	c.pos += int64(n) + 1
	return s, nil
}
