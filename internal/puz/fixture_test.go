package puz

import (
	"bytes"
	"encoding/binary"
)

// fixture assembles a complete, internally consistent .puz buffer for tests.
// Checksums are computed from the fixture content unless overridden after
// build, so a default fixture decodes with zero warnings.
type fixture struct {
	width, height int
	solution      string // width*height board bytes, row-major
	state         string // defaults to solution shape with '-' letters
	title         string
	author        string
	copyright     string
	clues         []string
	notes         string
	noNotesRun    bool // omit the notes run entirely, not even a NUL
	scrambledTag  uint16
	sections      []fixtureSection
}

type fixtureSection struct {
	name     string
	data     []byte
	badSum   bool // store an off-by-one checksum
	truncate int  // drop this many bytes from the end of the frame
}

func defaultFixture() fixture {
	return fixture{
		width:     3,
		height:    3,
		solution:  "CAT.T..E.",
		state:     "---.-..-.",
		title:     "Test Puzzle",
		author:    "A. Setter",
		copyright: "(c) 2024",
		clues:     []string{"Feline", "Consumed"},
	}
}

func (f fixture) stateBytes() []byte {
	if f.state != "" {
		return []byte(f.state)
	}
	state := []byte(f.solution)
	for i, b := range state {
		if b != blackSquare {
			state[i] = emptySquare
		}
	}
	return state
}

func (f fixture) build() []byte {
	solution := []byte(f.solution)
	state := f.stateBytes()

	runs := stringRuns{
		title:     []byte(f.title),
		author:    []byte(f.author),
		copyright: []byte(f.copyright),
		notes:     []byte(f.notes),
	}
	for _, clue := range f.clues {
		runs.clues = append(runs.clues, []byte(clue))
	}

	cib := make([]byte, cibSize)
	cib[0] = byte(f.width)
	cib[1] = byte(f.height)
	binary.LittleEndian.PutUint16(cib[2:], uint16(len(f.clues)))
	binary.LittleEndian.PutUint16(cib[4:], 0x0001)
	binary.LittleEndian.PutUint16(cib[6:], f.scrambledTag)

	cibSum := Checksum(cib, 0)
	fileSum := fileChecksum(cibSum, solution, state, runs)
	low, high := maskedChecksums(cibSum,
		Checksum(solution, 0), Checksum(state, 0), textChecksum(0, runs))

	var scrSum uint16
	if f.scrambledTag != 0 {
		scrSum = scrambledChecksum(solution, f.width, f.height)
	}

	var buf bytes.Buffer
	u16 := func(v uint16) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], v)
		buf.Write(b[:])
	}
	cstr := func(s []byte) {
		buf.Write(s)
		buf.WriteByte(0)
	}

	u16(fileSum)
	buf.Write(fileMagic)
	u16(cibSum)
	buf.Write(low[:])
	buf.Write(high[:])
	buf.WriteString("1.4\x00")     // version
	buf.Write([]byte{0x00, 0x00}) // reserved 0x1C
	u16(scrSum)
	buf.Write(make([]byte, 12)) // reserved 0x20
	buf.Write(cib)

	buf.Write(solution)
	buf.Write(state)

	cstr(runs.title)
	cstr(runs.author)
	cstr(runs.copyright)
	for _, clue := range runs.clues {
		cstr(clue)
	}
	if !f.noNotesRun {
		cstr(runs.notes)
	}

	for _, sec := range f.sections {
		frame := new(bytes.Buffer)
		frame.WriteString(sec.name)
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(len(sec.data)))
		frame.Write(b[:])
		sum := Checksum(sec.data, 0)
		if sec.badSum {
			sum++
		}
		binary.LittleEndian.PutUint16(b[:], sum)
		frame.Write(b[:])
		frame.Write(sec.data)
		frame.WriteByte(0)
		out := frame.Bytes()
		buf.Write(out[:len(out)-sec.truncate])
	}

	return buf.Bytes()
}

// warningCodes projects a warning list onto its codes for terse assertions.
func warningCodes(warnings []Warning) []WarningCode {
	codes := make([]WarningCode, len(warnings))
	for i, w := range warnings {
		codes[i] = w.Code
	}
	return codes
}

func hasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func countWarnings(warnings []Warning, code WarningCode) int {
	n := 0
	for _, w := range warnings {
		if w.Code == code {
			n++
		}
	}
	return n
}
