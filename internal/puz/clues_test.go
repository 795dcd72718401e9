package puz

import (
	"strings"
	"testing"
)

// gridFromRows builds a solution-only Grid for numbering tests. '.' is a
// black square, anything else a letter.
func gridFromRows(rows ...string) Grid {
	height := len(rows)
	width := len(rows[0])
	g := Grid{Width: width, Height: height}
	for _, row := range rows {
		for _, r := range row {
			cell := Cell{Kind: CellLetter, Text: string(r)}
			if r == '.' {
				cell = Cell{Kind: CellBlack}
			}
			g.Solution = append(g.Solution, cell)
		}
	}
	return g
}

func TestStartsAcrossDown(t *testing.T) {
	g := gridFromRows(
		"CAT",
		".T.",
		".E.",
	)
	tests := []struct {
		row, col     int
		across, down bool
	}{
		{0, 0, true, false},  // left edge, word to the right, black below
		{0, 1, false, true},  // mid-word across, top of ATE down
		{0, 2, false, false}, // continues CAT, nothing below
		{1, 1, false, false}, // continues ATE
		{1, 0, false, false}, // black square
	}
	for _, tc := range tests {
		if got := startsAcross(&g, tc.row, tc.col); got != tc.across {
			t.Fatalf("startsAcross(%d,%d) = %v, want %v", tc.row, tc.col, got, tc.across)
		}
		if got := startsDown(&g, tc.row, tc.col); got != tc.down {
			t.Fatalf("startsDown(%d,%d) = %v, want %v", tc.row, tc.col, got, tc.down)
		}
	}
}

func TestBindCluesNumbering(t *testing.T) {
	g := gridFromRows(
		"CAT",
		".T.",
		".E.",
	)
	var warnings []Warning
	set := bindClues(&g, []string{"Feline", "Consumed"}, &warnings)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(set.Across) != 1 || set.Across[0] != (Clue{Number: 1, Text: "Feline"}) {
		t.Fatalf("across = %+v, want [{1 Feline}]", set.Across)
	}
	if len(set.Down) != 1 || set.Down[0] != (Clue{Number: 2, Text: "Consumed"}) {
		t.Fatalf("down = %+v, want [{2 Consumed}]", set.Down)
	}
}

func TestBindCluesSharedNumber(t *testing.T) {
	// An open 2x2 grid: (0,0) starts both orderings and keeps one number;
	// across text is consumed before down at the shared cell.
	g := gridFromRows(
		"AB",
		"CD",
	)
	var warnings []Warning
	set := bindClues(&g, []string{"1 across", "1 down", "2 down", "3 across"}, &warnings)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	wantAcross := []Clue{{1, "1 across"}, {3, "3 across"}}
	wantDown := []Clue{{1, "1 down"}, {2, "2 down"}}
	if len(set.Across) != 2 || set.Across[0] != wantAcross[0] || set.Across[1] != wantAcross[1] {
		t.Fatalf("across = %+v, want %+v", set.Across, wantAcross)
	}
	if len(set.Down) != 2 || set.Down[0] != wantDown[0] || set.Down[1] != wantDown[1] {
		t.Fatalf("down = %+v, want %+v", set.Down, wantDown)
	}
}

func TestBindCluesMismatch(t *testing.T) {
	g := gridFromRows(
		"AB",
		"CD",
	)
	t.Run("too few clues", func(t *testing.T) {
		var warnings []Warning
		set := bindClues(&g, []string{"1 across", "1 down"}, &warnings)
		if !hasWarning(warnings, WarnClueCountMismatch) {
			t.Fatalf("expected ClueCountMismatch, got %v", warnings)
		}
		if len(set.Across) != 1 || len(set.Down) != 1 {
			t.Fatalf("partial binding = %d across / %d down, want 1/1", len(set.Across), len(set.Down))
		}
	})
	t.Run("too many clues", func(t *testing.T) {
		var warnings []Warning
		clues := []string{"1 across", "1 down", "2 down", "3 across", "spare", "spare"}
		bindClues(&g, clues, &warnings)
		if !hasWarning(warnings, WarnClueCountMismatch) {
			t.Fatalf("expected ClueCountMismatch, got %v", warnings)
		}
		if !strings.Contains(warnings[0].Message, "2 stored clue(s) left over") {
			t.Fatalf("warning message = %q", warnings[0].Message)
		}
	})
}
