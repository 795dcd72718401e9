package report

import "example.com/puzgate/internal/puz"

// Document is the JSON projection of a decoded puzzle. It flattens the
// internal cell representation into string grids plus sparse flag lists so
// downstream consumers do not need to understand the .puz cell model.
type Document struct {
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Copyright string     `json:"copyright,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Version   string     `json:"version,omitempty"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Scrambled bool       `json:"scrambled"`
	Solution  [][]string `json:"solution"`
	State     [][]string `json:"state"`
	Across    []DocClue  `json:"across"`
	Down      []DocClue  `json:"down"`
	Circled   []DocCell  `json:"circled,omitempty"`
	Given     []DocCell  `json:"given,omitempty"`
	Rebus     []DocRebus `json:"rebus,omitempty"`
}

type DocClue struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type DocCell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type DocRebus struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Text string `json:"text"`
}

// BlackCell is the marker used for black squares in the exported grids.
const BlackCell = "#"

// ExportDocument projects a decoded puzzle into its Document form.
func ExportDocument(p *puz.Puzzle) Document {
	doc := Document{
		Title:     p.Title,
		Author:    p.Author,
		Copyright: p.Copyright,
		Notes:     p.Notes,
		Version:   p.Header.Version,
		Width:     p.Grid.Width,
		Height:    p.Grid.Height,
		Scrambled: p.Scrambled(),
	}

	doc.Solution = exportGrid(p.Grid.Width, p.Grid.Height, p.Grid.Solution)
	doc.State = exportGrid(p.Grid.Width, p.Grid.Height, p.Grid.State)

	for _, c := range p.Clues.Across {
		doc.Across = append(doc.Across, DocClue{Number: c.Number, Text: c.Text})
	}
	for _, c := range p.Clues.Down {
		doc.Down = append(doc.Down, DocClue{Number: c.Number, Text: c.Text})
	}

	for i, cell := range p.Grid.Solution {
		row, col := i/p.Grid.Width, i%p.Grid.Width
		if cell.Circled {
			doc.Circled = append(doc.Circled, DocCell{Row: row, Col: col})
		}
		if cell.Given {
			doc.Given = append(doc.Given, DocCell{Row: row, Col: col})
		}
		if cell.Kind == puz.CellLetter && len(cell.Text) > 1 {
			doc.Rebus = append(doc.Rebus, DocRebus{Row: row, Col: col, Text: cell.Text})
		}
	}
	return doc
}

func exportGrid(width, height int, cells []puz.Cell) [][]string {
	rows := make([][]string, height)
	for r := 0; r < height; r++ {
		row := make([]string, width)
		for c := 0; c < width; c++ {
			cell := cells[r*width+c]
			switch cell.Kind {
			case puz.CellBlack:
				row[c] = BlackCell
			case puz.CellEmpty:
				row[c] = ""
			default:
				row[c] = cell.Text
			}
		}
		rows[r] = row
	}
	return rows
}
