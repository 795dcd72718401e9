package puz

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestParseCleanFixture(t *testing.T) {
	res, err := Parse(defaultFixture().build())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("clean fixture warned: %v", res.Warnings)
	}
	p := res.Puzzle
	if p.Title != "Test Puzzle" || p.Author != "A. Setter" || p.Copyright != "(c) 2024" {
		t.Fatalf("metadata = %q/%q/%q", p.Title, p.Author, p.Copyright)
	}
	if p.Grid.Width != 3 || p.Grid.Height != 3 {
		t.Fatalf("grid = %dx%d", p.Grid.Width, p.Grid.Height)
	}
	if cell := p.Grid.SolutionAt(0, 0); cell.Text != "C" {
		t.Fatalf("(0,0) = %q", cell.Text)
	}
	if len(p.Clues.Across) != 1 || len(p.Clues.Down) != 1 {
		t.Fatalf("clues = %d across / %d down", len(p.Clues.Across), len(p.Clues.Down))
	}
	if p.Clues.Across[0].Text != "Feline" || p.Clues.Down[0].Text != "Consumed" {
		t.Fatalf("clue texts = %q / %q", p.Clues.Across[0].Text, p.Clues.Down[0].Text)
	}
}

func TestParseChecksumMismatchWarnings(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func([]byte)
	}{
		{name: "overall file checksum", corrupt: func(b []byte) {
			binary.LittleEndian.PutUint16(b[0x00:], binary.LittleEndian.Uint16(b[0x00:])+1)
		}},
		{name: "cib checksum", corrupt: func(b []byte) {
			binary.LittleEndian.PutUint16(b[0x0E:], binary.LittleEndian.Uint16(b[0x0E:])+1)
		}},
		{name: "masked quartet", corrupt: func(b []byte) { b[0x10] ^= 0x01 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := defaultFixture().build()
			tc.corrupt(data)
			res, err := Parse(data)
			if err != nil {
				t.Fatalf("checksum mismatch must not be fatal: %v", err)
			}
			if !hasWarning(res.Warnings, WarnChecksumMismatch) {
				t.Fatalf("expected ChecksumMismatch, got %v", res.Warnings)
			}
		})
	}
}

func TestParseScrambledChecksumVerification(t *testing.T) {
	// An unscrambled puzzle carrying a nonzero stored scrambled checksum is
	// checked against the plaintext solution.
	f := defaultFixture()
	data := f.build()
	binary.LittleEndian.PutUint16(data[0x1E:], scrambledChecksum([]byte(f.solution), 3, 3))
	res := MustParse(data)
	if hasWarning(res.Warnings, WarnChecksumMismatch) {
		t.Fatalf("consistent scrambled checksum warned: %v", res.Warnings)
	}

	binary.LittleEndian.PutUint16(data[0x1E:], 0xBEEF)
	res = MustParse(data)
	if !hasWarning(res.Warnings, WarnChecksumMismatch) {
		t.Fatalf("expected ChecksumMismatch for bogus scrambled checksum, got %v", res.Warnings)
	}
}

func TestParseRebusResolution(t *testing.T) {
	f := defaultFixture()
	f.sections = []fixtureSection{
		{name: sectionGRBS, data: []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}},
		{name: sectionRTBL, data: []byte(" 0:HEART;")},
	}
	res := MustParse(f.build())
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if cell := res.Puzzle.Grid.SolutionAt(0, 0); cell.Text != "HEART" {
		t.Fatalf("rebus cell text = %q, want HEART", cell.Text)
	}
	if cell := res.Puzzle.Grid.SolutionAt(0, 1); cell.Text != "A" {
		t.Fatalf("non-rebus cell text = %q, want untouched A", cell.Text)
	}
}

func TestParseBrokenRebus(t *testing.T) {
	t.Run("no rtbl", func(t *testing.T) {
		f := defaultFixture()
		f.sections = []fixtureSection{
			{name: sectionGRBS, data: []byte{1, 2, 0, 0, 0, 0, 0, 0, 0}},
		}
		res := MustParse(f.build())
		if got := countWarnings(res.Warnings, WarnBrokenRebus); got != 1 {
			t.Fatalf("BrokenRebus warnings = %d (%v), want exactly 1", got, res.Warnings)
		}
		if cell := res.Puzzle.Grid.SolutionAt(0, 0); cell.Text != "C" {
			t.Fatalf("cell kept %q, want single-letter C", cell.Text)
		}
	})
	t.Run("key out of range", func(t *testing.T) {
		f := defaultFixture()
		f.sections = []fixtureSection{
			{name: sectionGRBS, data: []byte{1, 9, 0, 0, 0, 0, 0, 0, 0}},
			{name: sectionRTBL, data: []byte(" 0:HEART;")},
		}
		res := MustParse(f.build())
		if got := countWarnings(res.Warnings, WarnBrokenRebus); got != 1 {
			t.Fatalf("BrokenRebus warnings = %d (%v), want exactly 1", got, res.Warnings)
		}
		// The resolvable square still resolves.
		if cell := res.Puzzle.Grid.SolutionAt(0, 0); cell.Text != "HEART" {
			t.Fatalf("resolvable cell = %q, want HEART", cell.Text)
		}
		if cell := res.Puzzle.Grid.SolutionAt(0, 1); cell.Text != "A" {
			t.Fatalf("unresolvable cell = %q, want single-letter A", cell.Text)
		}
	})
}

func TestParseGEXTFolding(t *testing.T) {
	gext := make([]byte, 9)
	gext[0] = gextCircled
	gext[4] = gextGiven | 0x10 // solver-history bit is discarded
	f := defaultFixture()
	f.sections = []fixtureSection{{name: sectionGEXT, data: gext}}

	res := MustParse(f.build())
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if cell := res.Puzzle.Grid.SolutionAt(0, 0); !cell.Circled || cell.Given {
		t.Fatalf("(0,0) = %+v, want circled only", cell)
	}
	if cell := res.Puzzle.Grid.SolutionAt(1, 1); cell.Circled || !cell.Given {
		t.Fatalf("(1,1) = %+v, want given only", cell)
	}
	if cell := res.Puzzle.Grid.SolutionAt(2, 1); cell.Circled || cell.Given {
		t.Fatalf("(2,1) = %+v, want no flags", cell)
	}
}

func TestParseOpaqueSections(t *testing.T) {
	f := defaultFixture()
	f.sections = []fixtureSection{
		{name: sectionLTIM, data: []byte("127,0")},
		{name: sectionRUSR, data: []byte("\x00\x00")},
	}
	res := MustParse(f.build())
	if len(res.Puzzle.Extensions.Opaque) != 2 {
		t.Fatalf("opaque = %+v, want LTIM and RUSR retained", res.Puzzle.Extensions.Opaque)
	}
}

func TestParseTruncationNeverPartial(t *testing.T) {
	// Chopping a well-formed buffer anywhere inside the mandatory regions
	// must fail fatally, never hand back a partial Puzzle. Beyond the
	// mandatory strings (notes, extensions) truncation degrades to
	// warnings instead.
	f := defaultFixture()
	f.noNotesRun = true
	data := f.build()
	for n := 0; n < len(data); n++ {
		res, err := Parse(data[:n])
		if err == nil {
			t.Fatalf("Parse of %d/%d bytes succeeded, want fatal error", n, len(data))
		}
		if res != nil {
			t.Fatalf("Parse of %d bytes returned a partial result alongside %v", n, err)
		}
	}
	if _, err := Parse(data); err != nil {
		t.Fatalf("full buffer: %v", err)
	}
}

func TestParseWarningOrder(t *testing.T) {
	// Warnings surface in decode order: board anomalies precede string
	// table anomalies, which precede checksum verification.
	f := defaultFixture()
	f.solution = "CAt.T..E." // lowercase cell
	f.title = "bad\x90title" // lossy encoding
	data := f.build()
	binary.LittleEndian.PutUint16(data[0x00:], binary.LittleEndian.Uint16(data[0x00:])+1)

	res := MustParse(data)
	codes := warningCodes(res.Warnings)
	var order []WarningCode
	for _, c := range codes {
		switch c {
		case WarnUnexpectedCell, WarnEncodingFallback, WarnChecksumMismatch:
			order = append(order, c)
		}
	}
	want := []WarningCode{WarnUnexpectedCell, WarnEncodingFallback, WarnChecksumMismatch}
	if len(order) < 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Fatalf("warning order = %v, want %v first", codes, want)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not a puzzle")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
	if _, err := Parse(nil); !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("expected ErrUnexpectedEnd for empty input, got %v", err)
	}
}
