package puz

// The file never records which cell carries which clue number: numbering is
// reconstructed from the grid shape alone, following the standard crossword
// convention, and the stored clue texts are consumed in that derived order
// (all across clues for a number before its down clue).

// startsAcross reports whether the non-black cell at (row, col) begins an
// across word: it sits at the left edge or right of a black square, and has
// a non-black neighbor to its right.
func startsAcross(g *Grid, row, col int) bool {
	if g.SolutionAt(row, col).Kind == CellBlack {
		return false
	}
	if col > 0 && g.SolutionAt(row, col-1).Kind != CellBlack {
		return false
	}
	return col+1 < g.Width && g.SolutionAt(row, col+1).Kind != CellBlack
}

// startsDown is the vertical counterpart of startsAcross.
func startsDown(g *Grid, row, col int) bool {
	if g.SolutionAt(row, col).Kind == CellBlack {
		return false
	}
	if row > 0 && g.SolutionAt(row-1, col).Kind != CellBlack {
		return false
	}
	return row+1 < g.Height && g.SolutionAt(row+1, col).Kind != CellBlack
}

// NumberedCell locates one numbered square of a grid.
type NumberedCell struct {
	Row    int
	Col    int
	Number int
}

// Numbering returns the numbered squares in row-major order, for renderers
// that need to place numbers in cells.
func (g *Grid) Numbering() []NumberedCell {
	var cells []NumberedCell
	number := 0
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if !startsAcross(g, row, col) && !startsDown(g, row, col) {
				continue
			}
			number++
			cells = append(cells, NumberedCell{Row: row, Col: col, Number: number})
		}
	}
	return cells
}

// bindClues walks the grid in row-major order, assigns one number to every
// cell that starts a word in either direction, and binds the stored clue
// texts to those numbers. Exhaustion on either side yields a partial
// ClueSet plus a ClueCountMismatch warning rather than a failure.
func bindClues(g *Grid, texts []string, warn *[]Warning) ClueSet {
	var set ClueSet
	next := 0
	number := 0
	starved := false

	take := func() (string, bool) {
		if next >= len(texts) {
			starved = true
			return "", false
		}
		text := texts[next]
		next++
		return text, true
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			across := startsAcross(g, row, col)
			down := startsDown(g, row, col)
			if !across && !down {
				continue
			}
			number++
			if across {
				if text, ok := take(); ok {
					set.Across = append(set.Across, Clue{Number: number, Text: text})
				}
			}
			if down {
				if text, ok := take(); ok {
					set.Down = append(set.Down, Clue{Number: number, Text: text})
				}
			}
		}
	}

	if starved {
		*warn = append(*warn, warnf(WarnClueCountMismatch,
			"grid numbering needs more clues than the %d stored, partial binding kept", len(texts)))
	} else if next < len(texts) {
		*warn = append(*warn, warnf(WarnClueCountMismatch,
			"%d stored clue(s) left over after numbering, ignored", len(texts)-next))
	}
	return set
}
