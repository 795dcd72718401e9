package puz

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// metadata is the decoded string table.
type metadata struct {
	title     string
	author    string
	copyright string
	notes     string
	clues     []string
}

// parseStrings reads the 3+clueCount mandatory NUL-terminated runs (title,
// author, copyright, clues in stored order) followed by an optional notes
// run. Missing mandatory runs are fatal; a notes run that is absent or
// unterminated is recovered with a warning. The raw runs are returned
// alongside the decoded strings for checksum verification.
func parseStrings(c *cursor, clueCount int, warn *[]Warning) (metadata, stringRuns, error) {
	var meta metadata
	var runs stringRuns

	read := func(field string) ([]byte, error) {
		raw, err := c.cstring()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		return raw, nil
	}

	var err error
	if runs.title, err = read("title"); err != nil {
		return meta, runs, err
	}
	if runs.author, err = read("author"); err != nil {
		return meta, runs, err
	}
	if runs.copyright, err = read("copyright"); err != nil {
		return meta, runs, err
	}
	runs.clues = make([][]byte, 0, clueCount)
	for i := 0; i < clueCount; i++ {
		raw, err := read(fmt.Sprintf("clue %d of %d", i+1, clueCount))
		if err != nil {
			return meta, runs, err
		}
		runs.clues = append(runs.clues, raw)
	}

	// Notes: absent entirely (not even a NUL) is valid; an unterminated
	// trailing run is kept as notes with a warning.
	if c.remaining() > 0 {
		raw, err := c.cstring()
		if err != nil {
			if !errors.Is(err, ErrUnexpectedEnd) {
				return meta, runs, err
			}
			raw, _ = c.fixed(c.remaining())
			*warn = append(*warn, warnf(WarnShortNotes,
				"notes run is missing its terminator, kept %d trailing byte(s)", len(raw)))
		}
		runs.notes = raw
	}

	meta.title = decodeText(runs.title, "title", warn)
	meta.author = decodeText(runs.author, "author", warn)
	meta.copyright = decodeText(runs.copyright, "copyright", warn)
	meta.notes = decodeText(runs.notes, "notes", warn)
	meta.clues = make([]string, len(runs.clues))
	for i, raw := range runs.clues {
		meta.clues[i] = decodeText(raw, fmt.Sprintf("clue %d", i+1), warn)
	}
	return meta, runs, nil
}

// windows1252Undefined lists the byte values Windows-1252 leaves unassigned.
var windows1252Undefined = [...]byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

// decodeText resolves the encoding of one string run with a fixed-order
// cascade: strict UTF-8, then Windows-1252, then a lossy Windows-1252 decode
// that substitutes undecodable bytes and records a warning. The order is a
// behavioral contract matching real-world files, not a tunable.
func decodeText(raw []byte, context string, warn *[]Warning) string {
	if len(raw) == 0 {
		return ""
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err == nil && !containsUndefined1252(raw) {
		return string(decoded)
	}
	*warn = append(*warn, warnf(WarnEncodingFallback,
		"%s is neither UTF-8 nor Windows-1252, undecodable bytes replaced", context))
	if decoded != nil {
		return string(decoded)
	}
	return string(raw)
}

func containsUndefined1252(raw []byte) bool {
	for _, b := range raw {
		for _, u := range windows1252Undefined {
			if b == u {
				return true
			}
		}
	}
	return false
}
