package puz

import (
	"bytes"
	"fmt"
)

// Parse decodes one complete .puz buffer into an immutable Result. It is a
// pure function of the input: no state survives the call and the buffer is
// never written, so independent buffers may be decoded in parallel by the
// caller without synchronization.
//
// The error return covers the fatal conditions only (bad magic, truncated
// header/board/mandatory strings, zero dimensions). Everything else the
// format is known to get wrong is reported through Result.Warnings in
// encounter order.
func Parse(data []byte) (*Result, error) {
	c := newCursor(data)
	var warnings []Warning

	hdr, err := parseHeader(c)
	if err != nil {
		return nil, err
	}
	width, height := int(hdr.Width), int(hdr.Height)

	grid, raw, err := parseBoard(c, width, height, &warnings)
	if err != nil {
		return nil, err
	}

	meta, runs, err := parseStrings(c, int(hdr.ClueCount), &warnings)
	if err != nil {
		return nil, err
	}

	ext, flags := parseExtensions(c, width, height, &warnings)

	if hdr.Scrambled() {
		warnings = append(warnings, warnf(WarnScrambled,
			"puzzle is scrambled (tag 0x%04X), solution letters are encrypted", hdr.ScrambledTag))
	}

	verifyChecksums(data, hdr, raw, runs, &warnings)

	clues := bindClues(&grid, meta.clues, &warnings)

	applyGEXT(&grid, flags)
	resolveRebus(&grid, ext, &warnings)

	puzzle := &Puzzle{
		Header:     hdr,
		Title:      meta.title,
		Author:     meta.author,
		Copyright:  meta.copyright,
		Notes:      meta.notes,
		Grid:       grid,
		Clues:      clues,
		Extensions: ext,
	}
	return &Result{Puzzle: puzzle, Warnings: warnings}, nil
}

// verifyChecksums recomputes every checksum region and compares it with the
// header copies. Mismatches are recorded, never fatal: checksum failures are
// endemic in files that round-tripped through third-party generators.
func verifyChecksums(data []byte, hdr Header, raw boardBytes, runs stringRuns, warn *[]Warning) {
	cib := Checksum(cibBytes(data), 0)
	if cib != hdr.CIBChecksum {
		*warn = append(*warn, warnf(WarnChecksumMismatch,
			"CIB checksum computed 0x%04X, stored 0x%04X", cib, hdr.CIBChecksum))
	}

	file := fileChecksum(cib, raw.solution, raw.state, runs)
	if file != hdr.FileChecksum {
		*warn = append(*warn, warnf(WarnChecksumMismatch,
			"overall file checksum computed 0x%04X, stored 0x%04X", file, hdr.FileChecksum))
	}

	solution := Checksum(raw.solution, 0)
	grid := Checksum(raw.state, 0)
	partial := textChecksum(0, runs)
	low, high := maskedChecksums(cib, solution, grid, partial)
	if !bytes.Equal(low[:], hdr.MaskedLow[:]) || !bytes.Equal(high[:], hdr.MaskedHigh[:]) {
		*warn = append(*warn, warnf(WarnChecksumMismatch,
			"masked checksum quartet computed %X %X, stored %X %X",
			low, high, hdr.MaskedLow, hdr.MaskedHigh))
	}

	// The stored scrambled checksum describes the plaintext solution. It can
	// only be checked against the grid when the grid is not scrambled.
	if !hdr.Scrambled() && hdr.ScrambledChecksum != 0 {
		sum := scrambledChecksum(raw.solution, int(hdr.Width), int(hdr.Height))
		if sum != hdr.ScrambledChecksum {
			*warn = append(*warn, warnf(WarnChecksumMismatch,
				"scrambled-solution checksum computed 0x%04X, stored 0x%04X", sum, hdr.ScrambledChecksum))
		}
	}
}

// applyGEXT folds the retained GEXT flag bits into the solution cells.
func applyGEXT(g *Grid, flags gextFlags) {
	if flags == nil {
		return
	}
	for i, b := range flags {
		if b&gextCircled != 0 {
			g.Solution[i].Circled = true
		}
		if b&gextGiven != 0 {
			g.Solution[i].Given = true
		}
	}
}

// resolveRebus replaces the first-letter placeholders of rebus squares with
// their full text. A GRBS grid whose keys cannot be resolved (no RTBL, or a
// key missing from the table) leaves those squares in single-letter form and
// produces exactly one BrokenRebus warning for the whole puzzle.
func resolveRebus(g *Grid, ext Extensions, warn *[]Warning) {
	if ext.RebusGrid == nil {
		return
	}
	broken := false
	for i, idx := range ext.RebusGrid {
		if idx == 0 {
			continue
		}
		text, ok := ext.RebusTable[idx-1]
		if !ok {
			broken = true
			continue
		}
		if g.Solution[i].Kind == CellLetter {
			g.Solution[i].Text = text
		}
	}
	if broken {
		reason := "rebus squares reference keys missing from the rebus table"
		if ext.RebusTable == nil {
			reason = "GRBS section present without a usable RTBL table"
		}
		*warn = append(*warn, warnf(WarnBrokenRebus,
			"%s, affected squares keep their single-letter form", reason))
	}
}

// MustParse is a convenience for fixtures and examples that panics on a
// fatal decode error.
func MustParse(data []byte) *Result {
	res, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("puz: %v", err))
	}
	return res
}
