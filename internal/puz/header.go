package puz

import (
	"bytes"
	"fmt"
	"strings"
)

// Fixed header layout, offsets per the community .puz documentation.
const (
	headerSize  = 0x34
	magicOffset = 0x02
	cibOffset   = 0x2C
	cibSize     = 8
	boardOffset = 0x34
)

var fileMagic = []byte("ACROSS&DOWN\x00")

// parseHeader decodes the fixed 52-byte header. A wrong magic string or a
// buffer too short for the header is fatal; every other field is extracted
// verbatim. Reserved regions are consumed and discarded without
// interpretation, since real files carry leftover memory content there.
func parseHeader(c *cursor) (Header, error) {
	var hdr Header
	if err := c.need(headerSize); err != nil {
		return hdr, fmt.Errorf("header: %w", err)
	}

	var err error
	if hdr.FileChecksum, err = c.u16(); err != nil {
		return hdr, err
	}
	magic, err := c.fixed(len(fileMagic))
	if err != nil {
		return hdr, err
	}
	if !bytes.Equal(magic, fileMagic) {
		return hdr, fmt.Errorf("%w (got %q)", ErrBadMagic, magic)
	}
	if hdr.CIBChecksum, err = c.u16(); err != nil {
		return hdr, err
	}
	low, err := c.fixed(4)
	if err != nil {
		return hdr, err
	}
	copy(hdr.MaskedLow[:], low)
	high, err := c.fixed(4)
	if err != nil {
		return hdr, err
	}
	copy(hdr.MaskedHigh[:], high)

	version, err := c.fixed(4)
	if err != nil {
		return hdr, err
	}
	hdr.Version = strings.TrimRight(string(version), "\x00")

	// Reserved bytes at 0x1C.
	if _, err = c.fixed(2); err != nil {
		return hdr, err
	}
	if hdr.ScrambledChecksum, err = c.u16(); err != nil {
		return hdr, err
	}
	// Reserved bytes at 0x20.
	if _, err = c.fixed(12); err != nil {
		return hdr, err
	}

	if hdr.Width, err = c.u8(); err != nil {
		return hdr, err
	}
	if hdr.Height, err = c.u8(); err != nil {
		return hdr, err
	}
	if hdr.ClueCount, err = c.u16(); err != nil {
		return hdr, err
	}
	if hdr.Bitmask, err = c.u16(); err != nil {
		return hdr, err
	}
	if hdr.ScrambledTag, err = c.u16(); err != nil {
		return hdr, err
	}

	if hdr.Width == 0 || hdr.Height == 0 {
		return hdr, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, hdr.Width, hdr.Height)
	}
	return hdr, nil
}

// cibBytes returns the 8-byte core information block (width, height, clue
// count, bitmask, scrambled tag) used as a checksum region.
func cibBytes(buf []byte) []byte {
	return buf[cibOffset : cibOffset+cibSize]
}
