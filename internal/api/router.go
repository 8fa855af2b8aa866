// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Interview loop
	mux.HandleFunc("POST /upload", h.uploadResume)
	mux.HandleFunc("POST /evaluate-answer", h.evaluateAnswer)
	mux.HandleFunc("POST /stop", h.stopInterview)

	// Archive of finished interviews
	mux.HandleFunc("GET /interviews", h.listInterviews)
	mux.HandleFunc("GET /interviews/{interviewID}", h.getInterview)
}
