package puz

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrBadMagic          = errors.New("magic string ACROSS&DOWN not found")
	ErrUnexpectedEnd     = errors.New("unexpected end of data")
	ErrInvalidDimensions = errors.New("invalid puzzle dimensions")
)

// cursor is a bounds-checked sequential reader over the input buffer. Every
// read validates the remaining length first; no read can run past the end of
// the buffer, which is the primary defense against malformed length fields
// in later decode stages.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) need(n int) error {
	if rem := c.remaining(); rem < n {
		return fmt.Errorf("%w: need %d byte(s) at offset %d, have %d", ErrUnexpectedEnd, n, c.off, rem)
	}
	return nil
}

func (c *cursor) seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return fmt.Errorf("%w: seek to %d in %d-byte buffer", ErrUnexpectedEnd, off, len(c.buf))
	}
	c.off = off
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

// fixed returns the next n bytes as a subslice of the input buffer. The
// caller must not mutate it.
func (c *cursor) fixed(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.buf[c.off : c.off+n]
	c.off += n
	return v, nil
}

// cstring reads through a terminating NUL and returns the bytes that precede
// it. A missing terminator is an ErrUnexpectedEnd.
func (c *cursor) cstring() ([]byte, error) {
	start := c.off
	for i := c.off; i < len(c.buf); i++ {
		if c.buf[i] == 0 {
			c.off = i + 1
			return c.buf[start:i], nil
		}
	}
	return nil, fmt.Errorf("%w: unterminated string at offset %d", ErrUnexpectedEnd, start)
}
