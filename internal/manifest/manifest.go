package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"example.com/puzgate/internal/common"
)

// Item records one file covered by a batch manifest.
type Item struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Sha256 string `json:"sha256"`
	Type   string `json:"type"`
}

// Manifest is the evidence record for a batch run: every input and output
// with its digest, so results can be tied back to exact file contents.
type Manifest struct {
	CreatedAt time.Time `json:"createdAt"`
	ShaAlgo   string    `json:"shaAlgo"`
	Items     []Item    `json:"items"`
}

// Build hashes every path and classifies it by extension.
func Build(paths []string) (Manifest, error) {
	m := Manifest{CreatedAt: time.Now().UTC(), ShaAlgo: "sha256"}
	for _, p := range paths {
		hex, sz, err := common.Sha256OfFile(p)
		if err != nil {
			return m, err
		}
		m.Items = append(m.Items, Item{Path: p, Size: sz, Sha256: hex, Type: fileType(p)})
	}
	return m, nil
}

func fileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".puz":
		return "puz"
	case ".json", ".jsonl", ".ndjson":
		return "json"
	case ".pdf":
		return "pdf"
	default:
		return "other"
	}
}

func Save(m Manifest, out string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func Load(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}
