package puz

// CellKind distinguishes the three square states a .puz grid encodes.
type CellKind uint8

const (
	CellLetter CellKind = iota
	CellBlack
	CellEmpty
)

// Cell is one square of a grid. For solution cells Text holds the single
// letter, or the full rebus text once GRBS/RTBL resolution has run. Circled
// and Given are populated from a GEXT section and are meaningful on the
// solution grid only.
type Cell struct {
	Kind    CellKind
	Text    string
	Circled bool
	Given   bool
}

// Grid holds the two parallel row-major cell sequences of a puzzle. Both
// slices have length Width*Height; index row*Width+col addresses a square.
type Grid struct {
	Width    int
	Height   int
	Solution []Cell
	State    []Cell
}

// SolutionAt returns the solution cell at (row, col).
func (g *Grid) SolutionAt(row, col int) Cell {
	return g.Solution[row*g.Width+col]
}

// StateAt returns the player-state cell at (row, col).
func (g *Grid) StateAt(row, col int) Cell {
	return g.State[row*g.Width+col]
}

// Header mirrors the fixed 52-byte .puz file header. The checksum fields are
// retained verbatim so that validation can compare them against recomputed
// values after the rest of the file is decoded.
type Header struct {
	FileChecksum      uint16
	CIBChecksum       uint16
	MaskedLow         [4]byte
	MaskedHigh        [4]byte
	Version           string
	ScrambledChecksum uint16
	Width             uint8
	Height            uint8
	ClueCount         uint16
	Bitmask           uint16
	ScrambledTag      uint16
}

// Scrambled reports whether the header's scrambled tag marks the solution as
// encrypted.
func (h Header) Scrambled() bool {
	return h.ScrambledTag != 0
}

// Clue is one numbered clue bound to its text.
type Clue struct {
	Number int
	Text   string
}

// ClueSet carries the across and down orderings. Numbers are strictly
// increasing within each slice; a cell that starts both an across and a down
// word contributes the same number to both.
type ClueSet struct {
	Across []Clue
	Down   []Clue
}

// Section is the raw frame of an extension section that the decoder does not
// interpret (LTIM, RUSR, or an unrecognized name). It is kept for diagnostic
// purposes only.
type Section struct {
	Name     string
	Checksum uint16
	Data     []byte
}

// Extensions groups the decoded extension-section payloads. RebusGrid is the
// per-cell index sequence from GRBS (0 = no rebus, n = RebusTable key n-1);
// RebusTable is the index-to-text mapping from RTBL. Both are nil when the
// corresponding section is absent or was rejected.
type Extensions struct {
	RebusGrid  []uint8
	RebusTable map[uint8]string
	Opaque     []Section
}

// Puzzle is the assembled, immutable decode result. The Assembler is its
// sole producer; callers must treat it as read-only.
type Puzzle struct {
	Header     Header
	Title      string
	Author     string
	Copyright  string
	Notes      string
	Grid       Grid
	Clues      ClueSet
	Extensions Extensions
}

// Result pairs a decoded Puzzle with every non-fatal anomaly encountered, in
// encounter order.
type Result struct {
	Puzzle   *Puzzle
	Warnings []Warning
}
