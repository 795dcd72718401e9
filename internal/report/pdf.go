package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"example.com/puzgate/internal/puz"
)

const (
	gridMaxWidth  = 120.0 // mm
	gridMaxCell   = 9.0
	gridMinCell   = 3.0
	qrImageSize   = 28.0
	findingsLimit = 200
)

// SavePDF renders the decode report into a PDF document: title block,
// summary, the grid drawn to scale, clue columns, findings and a QR code of
// the source file's SHA-256 digest.
func SavePDF(rep Report, p *puz.Puzzle, sha256Hex, out string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Puzzle Decode Report", false)
	pdf.SetAuthor("puzctl", false)
	pdf.SetCreator("puzctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, p)
	addSummarySection(pdf, rep, sha256Hex)
	addGridSection(pdf, &p.Grid)
	addClueSection(pdf, p.Clues)
	addFindingsSection(pdf, rep.Findings)
	addDigestQR(pdf, sha256Hex)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, p *puz.Puzzle) {
	pdf.SetFont("Helvetica", "B", 18)
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Untitled Puzzle"
	}
	pdf.MultiCell(0, 10, title, "", "L", false)
	if by := strings.TrimSpace(p.Author); by != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "by "+by, "", "L", false)
	}
	pdf.Ln(4)
}

func addSummarySection(pdf *gofpdf.Fpdf, rep Report, sha string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	items := []struct {
		label string
		value string
	}{
		{label: "File", value: emptyFallback(rep.File, "-")},
		{label: "Dimensions", value: fmt.Sprintf("%d x %d", rep.Summary.Width, rep.Summary.Height)},
		{label: "Clues", value: strconv.Itoa(rep.Summary.Clues)},
		{label: "Format Version", value: emptyFallback(rep.Summary.Version, "-")},
		{label: "Scrambled", value: yesNo(rep.Summary.Scrambled)},
		{label: "Warnings", value: strconv.Itoa(rep.Summary.Warnings)},
		{label: "Result", value: cleanLabel(rep.Summary.Clean)},
		{label: "SHA-256", value: emptyFallback(sha, "-")},
	}
	for _, item := range items {
		pdf.CellFormat(36, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// addGridSection draws the solution grid to scale: black squares filled,
// circled squares marked, clue numbers in the top-left corner of their cell.
func addGridSection(pdf *gofpdf.Fpdf, g *puz.Grid) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Grid")
	pdf.Ln(10)

	cell := gridMaxWidth / float64(g.Width)
	if cell > gridMaxCell {
		cell = gridMaxCell
	}
	if cell < gridMinCell {
		cell = gridMinCell
	}

	numbers := make(map[[2]int]int)
	for _, n := range g.Numbering() {
		numbers[[2]int{n.Row, n.Col}] = n.Number
	}

	x0 := pdf.GetX()
	y0 := pdf.GetY()
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			x := x0 + float64(col)*cell
			y := y0 + float64(row)*cell
			sq := g.SolutionAt(row, col)
			if sq.Kind == puz.CellBlack {
				pdf.SetFillColor(0, 0, 0)
				pdf.Rect(x, y, cell, cell, "FD")
				continue
			}
			pdf.Rect(x, y, cell, cell, "D")
			if sq.Circled {
				pdf.Circle(x+cell/2, y+cell/2, cell/2-0.4, "D")
			}
			if n, ok := numbers[[2]int{row, col}]; ok && cell >= 4 {
				pdf.SetFont("Helvetica", "", cell)
				pdf.Text(x+0.5, y+cell*0.35, strconv.Itoa(n))
			}
		}
	}
	pdf.SetXY(x0, y0+float64(g.Height)*cell+6)
}

func addClueSection(pdf *gofpdf.Fpdf, clues puz.ClueSet) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Clues")
	pdf.Ln(9)

	columns := []struct {
		heading string
		clues   []puz.Clue
	}{
		{heading: "Across", clues: clues.Across},
		{heading: "Down", clues: clues.Down},
	}
	for _, col := range columns {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, col.heading)
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		if len(col.clues) == 0 {
			pdf.MultiCell(0, 5, "(none)", "", "L", false)
			continue
		}
		for _, c := range col.clues {
			pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", c.Number, c.Text), "", "L", false)
		}
		pdf.Ln(2)
	}
	pdf.Ln(2)
}

func addFindingsSection(pdf *gofpdf.Fpdf, findings []Finding) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Findings")
	pdf.Ln(9)

	if len(findings) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No findings recorded.", "", "L", false)
		pdf.Ln(2)
		return
	}

	shown := findings
	if len(shown) > findingsLimit {
		shown = shown[:findingsLimit]
	}
	for i, f := range shown {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s (%s)", i+1, f.Code, f.Severity), "", "L", false)
		if msg := strings.TrimSpace(f.Message); msg != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, msg, "", "L", false)
		}
		pdf.Ln(1)
	}
	if len(findings) > findingsLimit {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf("... and %d more", len(findings)-findingsLimit), "", "L", false)
	}
	pdf.Ln(2)
}

func addDigestQR(pdf *gofpdf.Fpdf, sha string) {
	png, err := DigestQR(sha, 256)
	if err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("digest-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("digest-qr", pdf.GetX(), pdf.GetY(), qrImageSize, qrImageSize, true, opts, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, "Source file SHA-256", "", "L", false)
}

func cleanLabel(clean bool) string {
	if clean {
		return "CLEAN"
	}
	return "WARNINGS"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
