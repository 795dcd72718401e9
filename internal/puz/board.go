package puz

import "fmt"

const (
	blackSquare = '.'
	emptySquare = '-'
)

// boardBytes holds the two raw flat grids exactly as stored, retained for
// the checksum regions.
type boardBytes struct {
	solution []byte
	state    []byte
}

// parseBoard reads the two width*height byte grids that follow the header.
// Running out of bytes is fatal; unexpected cell bytes are preserved as
// single-character letters with a warning, so that files written by sloppy
// generators still decode.
func parseBoard(c *cursor, width, height int, warn *[]Warning) (Grid, boardBytes, error) {
	size := width * height
	solution, err := c.fixed(size)
	if err != nil {
		return Grid{}, boardBytes{}, fmt.Errorf("solution grid: %w", err)
	}
	state, err := c.fixed(size)
	if err != nil {
		return Grid{}, boardBytes{}, fmt.Errorf("state grid: %w", err)
	}

	grid := Grid{
		Width:    width,
		Height:   height,
		Solution: make([]Cell, size),
		State:    make([]Cell, size),
	}
	for i, b := range solution {
		grid.Solution[i] = decodeCell(b, false, i, "solution", warn)
	}
	for i, b := range state {
		grid.State[i] = decodeCell(b, true, i, "state", warn)
	}

	for i := range grid.Solution {
		if (grid.Solution[i].Kind == CellBlack) != (grid.State[i].Kind == CellBlack) {
			*warn = append(*warn, warnf(WarnGridMismatch,
				"black squares disagree between solution and state grid at cell %d (row %d, col %d)",
				i, i/width, i%width))
		}
	}

	return grid, boardBytes{solution: solution, state: state}, nil
}

func decodeCell(b byte, stateGrid bool, index int, which string, warn *[]Warning) Cell {
	switch {
	case b == blackSquare:
		return Cell{Kind: CellBlack}
	case b == emptySquare && stateGrid:
		return Cell{Kind: CellEmpty}
	case b >= 'A' && b <= 'Z':
		return Cell{Kind: CellLetter, Text: string(b)}
	default:
		*warn = append(*warn, warnf(WarnUnexpectedCell,
			"unexpected byte 0x%02X in %s grid at cell %d, kept as letter", b, which, index))
		return Cell{Kind: CellLetter, Text: string(b)}
	}
}
