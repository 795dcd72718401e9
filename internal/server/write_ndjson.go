package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"example.com/puzgate/internal/report"
)

// NDJSONWriter streams newline-delimited JSON objects to the underlying
// writer, flushing after every record so clients see findings promptly.
type NDJSONWriter struct {
	mu      sync.Mutex
	writer  io.Writer
	flusher http.Flusher
}

// NewNDJSONWriter wraps the provided ResponseWriter. If it supports
// http.Flusher, Flush is invoked after every write.
func NewNDJSONWriter(w http.ResponseWriter) *NDJSONWriter {
	var flusher http.Flusher
	if f, ok := w.(http.Flusher); ok {
		flusher = f
	}
	return &NDJSONWriter{writer: w, flusher: flusher}
}

// WriteFinding writes one finding as a single NDJSON record.
func (w *NDJSONWriter) WriteFinding(f report.Finding) error {
	return w.WriteObject(f)
}

// WriteObject marshals the value, writes it followed by a newline and
// flushes the response.
func (w *NDJSONWriter) WriteObject(v any) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.writer.Write(data); err != nil {
		return err
	}
	if _, err := w.writer.Write([]byte("\n")); err != nil {
		return err
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}
