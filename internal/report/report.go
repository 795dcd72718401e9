package report

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"example.com/puzgate/internal/puz"
)

type Severity string

const (
	WARN Severity = "WARN"
	INFO Severity = "INFO"
)

// Finding is one decode anomaly lifted into report form.
type Finding struct {
	Ts       time.Time `json:"ts"`
	File     string    `json:"file"`
	Code     string    `json:"code"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// Summary condenses a decoded puzzle for the report header.
type Summary struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copyright string `json:"copyright,omitempty"`
	Version   string `json:"version,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Clues     int    `json:"clues"`
	Scrambled bool   `json:"scrambled"`
	Warnings  int    `json:"warnings"`
	Clean     bool   `json:"clean"`
}

// Report is the full decode report for one file.
type Report struct {
	Tool        string    `json:"tool"`
	GeneratedAt time.Time `json:"generatedAt"`
	File        string    `json:"file"`
	Summary     Summary   `json:"summary"`
	Findings    []Finding `json:"findings"`
}

// Build assembles a Report from a decode result. A puzzle with zero
// warnings is marked clean.
func Build(file string, res *puz.Result) Report {
	now := time.Now().UTC()
	p := res.Puzzle
	rep := Report{
		Tool:        "puzgate",
		GeneratedAt: now,
		File:        file,
		Summary: Summary{
			Title:     p.Title,
			Author:    p.Author,
			Copyright: p.Copyright,
			Version:   p.Header.Version,
			Width:     p.Grid.Width,
			Height:    p.Grid.Height,
			Clues:     len(p.Clues.Across) + len(p.Clues.Down),
			Scrambled: p.Scrambled(),
			Warnings:  len(res.Warnings),
			Clean:     len(res.Warnings) == 0,
		},
		Findings: make([]Finding, 0, len(res.Warnings)),
	}
	for _, w := range res.Warnings {
		rep.Findings = append(rep.Findings, Finding{
			Ts:       now,
			File:     file,
			Code:     string(w.Code),
			Severity: WARN,
			Message:  w.Message,
		})
	}
	return rep
}

func SaveJSON(rep Report, out string) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func LoadJSON(path string) (Report, error) {
	var rep Report
	b, err := os.ReadFile(path)
	if err != nil {
		return rep, err
	}
	err = json.Unmarshal(b, &rep)
	return rep, err
}

// WriteFindingsNDJSON streams the findings as newline-delimited JSON, one
// record per line.
func WriteFindingsNDJSON(w io.Writer, findings []Finding) error {
	enc := json.NewEncoder(w)
	for _, f := range findings {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
