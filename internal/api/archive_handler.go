// internal/api/archive_handler.go
package api

import (
	"net/http"
	"time"
)

// GET /interviews
type InterviewSummaryResponse struct {
	ID             string  `json:"id"`
	ResumeFilename string  `json:"resume_filename"`
	AverageScore   float64 `json:"average_score"`
	StartedAt      string  `json:"started_at"`
	EndedAt        string  `json:"ended_at"`
	TurnCount      int     `json:"turn_count"`
}

func (h *Handler) listInterviews(w http.ResponseWriter, r *http.Request) {
	interviews, err := h.store.ListInterviews()
	if h.handleStoreError(w, err, "interviews") {
		return
	}

	response := make([]InterviewSummaryResponse, len(interviews))
	for i, iv := range interviews {
		response[i] = InterviewSummaryResponse{
			ID:             iv.ID,
			ResumeFilename: iv.ResumeFilename,
			AverageScore:   iv.AverageScore,
			StartedAt:      iv.StartedAt.Format(time.RFC3339),
			EndedAt:        iv.EndedAt.Format(time.RFC3339),
			TurnCount:      iv.TurnCount,
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// GET /interviews/{interviewID}
type InterviewTurnResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
	FollowUp string `json:"follow_up"`
}

type InterviewDetailResponse struct {
	InterviewSummaryResponse
	Turns []InterviewTurnResponse `json:"turns"`
}

func (h *Handler) getInterview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("interviewID")

	iv, err := h.store.GetInterview(id)
	if h.handleStoreError(w, err, "interview") {
		return
	}

	turns := make([]InterviewTurnResponse, len(iv.Turns))
	for i, turn := range iv.Turns {
		turns[i] = InterviewTurnResponse{
			Question: turn.Question,
			Answer:   turn.Answer,
			Feedback: turn.Feedback,
			FollowUp: turn.FollowUp,
		}
	}

	respondJSON(w, http.StatusOK, InterviewDetailResponse{
		InterviewSummaryResponse: InterviewSummaryResponse{
			ID:             iv.ID,
			ResumeFilename: iv.ResumeFilename,
			AverageScore:   iv.AverageScore,
			StartedAt:      iv.StartedAt.Format(time.RFC3339),
			EndedAt:        iv.EndedAt.Format(time.RFC3339),
			TurnCount:      iv.TurnCount,
		},
		Turns: turns,
	})
}
