package server

import "net/http"

// NewRouter wires HTTP routes to the server's handlers.
func NewRouter(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/decode", s.handleDecode)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/qr", s.handleQR)
	mux.HandleFunc("/artifacts/", s.handleArtifactDownload)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}
