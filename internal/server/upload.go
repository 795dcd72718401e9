package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// readUpload extracts the first uploaded file from a multipart request and
// returns its contents plus original filename. The upload size cap applies
// both to the multipart parser and to the individual file read.
func (s *Server) readUpload(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, "", fmt.Errorf("parse multipart: %w", err)
	}
	if r.MultipartForm == nil {
		return nil, "", fmt.Errorf("no files provided")
	}
	for _, files := range r.MultipartForm.File {
		for _, fh := range files {
			src, err := fh.Open()
			if err != nil {
				return nil, "", err
			}
			data, err := io.ReadAll(io.LimitReader(src, s.maxUpload+1))
			src.Close()
			if err != nil {
				return nil, "", err
			}
			if int64(len(data)) > s.maxUpload {
				return nil, "", fmt.Errorf("upload %s exceeds %d byte limit", fh.Filename, s.maxUpload)
			}
			return data, fh.Filename, nil
		}
	}
	return nil, "", fmt.Errorf("no files provided")
}

// saveUpload persists uploaded bytes in the uploads directory so generated
// artifacts can reference the original input.
func (s *Server) saveUpload(data []byte, name string) (Artifact, error) {
	pattern := "upload-*"
	if ext := filepath.Ext(name); ext != "" {
		pattern = "upload-*" + ext
	}
	dest, err := os.CreateTemp(s.uploadsDir, pattern)
	if err != nil {
		return Artifact{}, err
	}
	if _, err := dest.Write(data); err != nil {
		dest.Close()
		os.Remove(dest.Name())
		return Artifact{}, err
	}
	dest.Close()
	return s.addArtifact(dest.Name(), name, guessContentType(name), "upload")
}
