package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"example.com/puzgate/internal/common"
	"example.com/puzgate/internal/puz"
	"example.com/puzgate/internal/report"
)

// handleDecode accepts a multipart .puz upload and returns the decoded
// document plus findings. With ?stream=true the findings are streamed as
// NDJSON records followed by a summary object.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, name, err := s.readUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.decodeSem <- struct{}{}
	res, err := puz.Parse(data)
	<-s.decodeSem
	if err != nil {
		http.Error(w, fmt.Sprintf("decode %s: %v", name, err), http.StatusUnprocessableEntity)
		return
	}

	rep := report.Build(name, res)
	doc := report.ExportDocument(res.Puzzle)

	if r.URL.Query().Get("stream") == "true" {
		writer := NewNDJSONWriter(w)
		w.Header().Set("Content-Type", "application/x-ndjson")
		for _, f := range rep.Findings {
			if err := writer.WriteFinding(f); err != nil {
				return
			}
		}
		_ = writer.WriteObject(struct {
			Type     string          `json:"type"`
			Summary  report.Summary  `json:"summary"`
			Document report.Document `json:"document"`
		}{Type: "summary", Summary: rep.Summary, Document: doc})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Summary  report.Summary   `json:"summary"`
		Document report.Document  `json:"document"`
		Findings []report.Finding `json:"findings"`
	}{Summary: rep.Summary, Document: doc, Findings: rep.Findings})
}

// handleReport accepts a multipart .puz upload and produces downloadable
// report artifacts: the JSON report, the findings NDJSON and the PDF.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, name, err := s.readUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.decodeSem <- struct{}{}
	res, err := puz.Parse(data)
	<-s.decodeSem
	if err != nil {
		http.Error(w, fmt.Sprintf("decode %s: %v", name, err), http.StatusUnprocessableEntity)
		return
	}

	if _, err := s.saveUpload(data, name); err != nil {
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return
	}

	rep := report.Build(name, res)
	sha := common.Sha256OfBytes(data)

	jsonPath, err := s.tempPath("report-*.json")
	if err != nil {
		http.Error(w, fmt.Sprintf("report temp: %v", err), http.StatusInternalServerError)
		return
	}
	if err := report.SaveJSON(rep, jsonPath); err != nil {
		http.Error(w, fmt.Sprintf("write report: %v", err), http.StatusInternalServerError)
		return
	}

	ndjsonPath, err := s.tempPath("findings-*.ndjson")
	if err != nil {
		http.Error(w, fmt.Sprintf("findings temp: %v", err), http.StatusInternalServerError)
		return
	}
	if err := writeFindingsFile(ndjsonPath, rep.Findings); err != nil {
		http.Error(w, fmt.Sprintf("write findings: %v", err), http.StatusInternalServerError)
		return
	}

	pdfPath, err := s.tempPath("report-*.pdf")
	if err != nil {
		http.Error(w, fmt.Sprintf("pdf temp: %v", err), http.StatusInternalServerError)
		return
	}
	if err := report.SavePDF(rep, res.Puzzle, sha, pdfPath); err != nil {
		http.Error(w, fmt.Sprintf("write pdf: %v", err), http.StatusInternalServerError)
		return
	}

	jsonArt, err := s.addArtifact(jsonPath, "report.json", "application/json", "report")
	if err != nil {
		http.Error(w, fmt.Sprintf("register report: %v", err), http.StatusInternalServerError)
		return
	}
	ndjsonArt, err := s.addArtifact(ndjsonPath, "findings.ndjson", "application/x-ndjson", "findings")
	if err != nil {
		http.Error(w, fmt.Sprintf("register findings: %v", err), http.StatusInternalServerError)
		return
	}
	pdfArt, err := s.addArtifact(pdfPath, "report.pdf", "application/pdf", "report")
	if err != nil {
		http.Error(w, fmt.Sprintf("register pdf: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Report    report.Report `json:"report"`
		Sha256    string        `json:"sha256"`
		Artifacts []ArtifactRef `json:"artifacts"`
	}{
		Report:    rep,
		Sha256:    sha,
		Artifacts: []ArtifactRef{toRef(jsonArt), toRef(ndjsonArt), toRef(pdfArt)},
	})
}

// handleQR renders a QR code PNG for the given hex digest.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	hash := r.URL.Query().Get("hash")
	if strings.TrimSpace(hash) == "" {
		http.Error(w, "hash required", http.StatusBadRequest)
		return
	}
	size := 256
	if v := r.URL.Query().Get("size"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 2048 {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		size = parsed
	}
	png, err := report.DigestQR(hash, size)
	if err != nil {
		http.Error(w, fmt.Sprintf("qr: %v", err), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

func (s *Server) handleArtifactDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/artifacts/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	art, ok := s.getArtifact(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(art.Path)
	if err != nil {
		http.Error(w, fmt.Sprintf("open artifact: %v", err), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, fmt.Sprintf("stat artifact: %v", err), http.StatusInternalServerError)
		return
	}
	if art.ContentType != "" {
		w.Header().Set("Content-Type", art.ContentType)
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Name))
	io.Copy(w, f)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeFindingsFile(path string, findings []report.Finding) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteFindingsNDJSON(f, findings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
