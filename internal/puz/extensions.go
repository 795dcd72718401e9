package puz

import (
	"strconv"
	"strings"
)

const sectionFrameSize = 8 // 4-byte name + u16 length + u16 checksum

// Known section names. Dispatch is a closed set: adding support for a new
// section kind means a new case, not a registry entry.
const (
	sectionGRBS = "GRBS"
	sectionRTBL = "RTBL"
	sectionGEXT = "GEXT"
	sectionLTIM = "LTIM"
	sectionRUSR = "RUSR"
)

// GEXT per-cell flag bits. The solver-history bits (0x10, 0x20) are read and
// discarded.
const (
	gextCircled = 0x80
	gextGiven   = 0x40
)

// gextFlags is the retained per-cell bitmask sequence from a GEXT section.
type gextFlags []byte

// parseExtensions consumes framed sections from the end of the string table
// to the end of the buffer. A section whose declared length (plus mandatory
// trailing NUL) overruns the buffer makes every later frame boundary
// untrustworthy, so dispatch stops there with a TruncatedSection warning.
func parseExtensions(c *cursor, width, height int, warn *[]Warning) (Extensions, gextFlags) {
	var ext Extensions
	var flags gextFlags
	size := width * height

	for c.remaining() > 0 {
		if c.remaining() < sectionFrameSize {
			*warn = append(*warn, warnf(WarnTruncatedSection,
				"%d trailing byte(s) are too short for a section frame, skipped", c.remaining()))
			break
		}
		nameBytes, _ := c.fixed(4)
		name := string(nameBytes)
		length, _ := c.u16()
		stored, _ := c.u16()
		if c.remaining() < int(length)+1 {
			*warn = append(*warn, warnf(WarnTruncatedSection,
				"section %q declares %d data byte(s) but only %d remain, remaining sections abandoned",
				name, length, c.remaining()))
			c.seek(len(c.buf))
			break
		}
		data, _ := c.fixed(int(length))
		c.fixed(1) // trailing NUL, not counted in the length

		if sum := Checksum(data, 0); sum != stored {
			*warn = append(*warn, warnf(WarnSectionChecksum,
				"section %q checksum 0x%04X does not match stored 0x%04X", name, sum, stored))
		}

		switch name {
		case sectionGRBS:
			if len(data) != size {
				*warn = append(*warn, warnf(WarnSectionIgnored,
					"GRBS length %d does not match grid size %d, section ignored", len(data), size))
				continue
			}
			ext.RebusGrid = append([]uint8(nil), data...)
		case sectionRTBL:
			ext.RebusTable = parseRebusTable(data, warn)
		case sectionGEXT:
			if len(data) != size {
				*warn = append(*warn, warnf(WarnSectionIgnored,
					"GEXT length %d does not match grid size %d, section ignored", len(data), size))
				continue
			}
			flags = append(gextFlags(nil), data...)
		default:
			// LTIM, RUSR and anything unrecognized stay opaque.
			ext.Opaque = append(ext.Opaque, Section{
				Name:     name,
				Checksum: stored,
				Data:     append([]byte(nil), data...),
			})
		}
	}
	return ext, flags
}

// parseRebusTable decodes the RTBL text format: entries of the form
// " KK:text;" with a space-padded decimal key. Malformed entries are skipped
// individually; the rest of the table survives.
func parseRebusTable(data []byte, warn *[]Warning) map[uint8]string {
	var scratch []Warning
	text := decodeText(data, "rebus table", &scratch)
	*warn = append(*warn, scratch...)

	table := make(map[uint8]string)
	for _, entry := range strings.Split(text, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			*warn = append(*warn, warnf(WarnMalformedRebus,
				"rebus table entry %q has no key separator, skipped", entry))
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSpace(key), 10, 8)
		if err != nil {
			*warn = append(*warn, warnf(WarnMalformedRebus,
				"rebus table key %q is not a small decimal, entry skipped", strings.TrimSpace(key)))
			continue
		}
		table[uint8(n)] = strings.TrimSpace(value)
	}
	if len(table) == 0 {
		return nil
	}
	return table
}
