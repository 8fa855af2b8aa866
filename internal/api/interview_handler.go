// internal/api/interview_handler.go
package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// maxUploadSize caps resume uploads at 16 MiB.
const maxUploadSize = 16 << 20

// POST /upload
type UploadResponse struct {
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

func (h *Handler) uploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "no selected file")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		respondError(w, http.StatusBadRequest, "only PDF files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result, err := h.interviews.StartInterview(r.Context(), data, header.Filename)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		Message:   "Resume uploaded and processed successfully.",
		Filename:  result.Filename,
		Question:  result.Question,
		SessionID: result.SessionID,
	})
}

// POST /evaluate-answer
type EvaluateAnswerRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

type EvaluateAnswerResponse struct {
	Feedback         string `json:"feedback"`
	FollowUpQuestion string `json:"follow_up_question"`
}

func (h *Handler) evaluateAnswer(w http.ResponseWriter, r *http.Request) {
	var req EvaluateAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Answer == "" {
		respondError(w, http.StatusBadRequest, "answer is required")
		return
	}

	result, err := h.interviews.EvaluateAnswer(r.Context(), req.SessionID, req.Question, req.Answer)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, EvaluateAnswerResponse{
		Feedback:         result.Feedback,
		FollowUpQuestion: result.FollowUpQuestion,
	})
}

// POST /stop
type StopInterviewRequest struct {
	SessionID string `json:"session_id"`
}

type StopInterviewResponse struct {
	Message string `json:"message"`
}

func (h *Handler) stopInterview(w http.ResponseWriter, r *http.Request) {
	var req StopInterviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	message, err := h.interviews.StopInterview(r.Context(), req.SessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, StopInterviewResponse{Message: message})
}
