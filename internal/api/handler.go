// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/intervu-ai/backend/internal/rag"
	"github.com/intervu-ai/backend/internal/service"
	"github.com/intervu-ai/backend/internal/session"
	"github.com/intervu-ai/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	interviews *service.InterviewService
	store      store.Store
	logger     *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(interviews *service.InterviewService, st store.Store, logger *slog.Logger) *Handler {
	return &Handler{
		interviews: interviews,
		store:      st,
		logger:     logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeServiceError maps service layer errors onto HTTP responses. Client
// mistakes are 400s with the error message; backend failures are logged and
// reported as opaque 500s.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrEmptyAnswer),
		errors.Is(err, service.ErrEmptyQuestion),
		errors.Is(err, session.ErrNoHistory):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var ingErr *rag.IngestionError
	if errors.As(err, &ingErr) {
		if ingErr.Invalid {
			respondError(w, http.StatusBadRequest, ingErr.Reason)
			return
		}
		h.logger.Error("ingestion failed", "error", err)
		respondError(w, http.StatusInternalServerError, ingErr.Reason)
		return
	}

	var genErr *rag.GenerationError
	if errors.As(err, &genErr) {
		h.logger.Error("generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "language model request failed")
		return
	}

	h.logger.Error("unexpected error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
