package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/intervu-ai/backend/internal/rag"
	"github.com/intervu-ai/backend/internal/sanitize"
	"github.com/intervu-ai/backend/internal/session"
	"github.com/intervu-ai/backend/internal/store"
)

var (
	ErrSessionNotFound = errors.New("interview session not found")
	ErrEmptyAnswer     = errors.New("answer must not be empty")
	ErrEmptyQuestion   = errors.New("question must not be empty")
)

// Pipeline is the slice of the RAG layer the service needs.
type Pipeline interface {
	Ingest(ctx context.Context, data []byte, filename string) (*rag.IngestResult, error)
	Generate(ctx context.Context, kind rag.PromptKind, vars rag.Vars, retriever *rag.Retriever) (string, error)
}

// UploadResult is returned when a resume upload opens a new interview.
type UploadResult struct {
	SessionID string
	Filename  string
	Question  string
}

// Evaluation is the graded outcome of one answer.
type Evaluation struct {
	Feedback         string
	FollowUpQuestion string
}

// InterviewService drives the interview loop: open a session from a resume,
// grade answers, and close the session with an average. Both the HTTP
// handlers and the terminal client sit on top of this one type.
type InterviewService struct {
	pipeline Pipeline
	sessions *session.Manager
	store    store.Store
	logger   *slog.Logger
}

func NewInterviewService(pipeline Pipeline, sessions *session.Manager, st store.Store, logger *slog.Logger) *InterviewService {
	return &InterviewService{
		pipeline: pipeline,
		sessions: sessions,
		store:    st,
		logger:   logger,
	}
}

// StartInterview ingests the uploaded resume, generates the opening question
// from it, and registers a new session.
func (s *InterviewService) StartInterview(ctx context.Context, data []byte, filename string) (*UploadResult, error) {
	ingested, err := s.pipeline.Ingest(ctx, data, filename)
	if err != nil {
		return nil, err
	}

	raw, err := s.pipeline.Generate(ctx, rag.PromptSetup, rag.Vars{}, ingested.Retriever)
	if err != nil {
		return nil, err
	}

	question := sanitize.Question(raw)
	if question == "" {
		return nil, &rag.GenerationError{Reason: "model produced no usable question"}
	}

	iv := session.NewInterview(ingested.Filename, question, ingested.Retriever)
	s.sessions.Add(iv)

	s.logger.Info("interview started",
		"session_id", iv.ID,
		"filename", ingested.Filename,
		"chunks", ingested.Chunks,
	)

	return &UploadResult{
		SessionID: iv.ID,
		Filename:  ingested.Filename,
		Question:  question,
	}, nil
}

// EvaluateAnswer grades one answer and produces the follow-up question. The
// turn is recorded only once both generations have succeeded, so a failed
// call leaves the session exactly as it was. Feedback without a parseable
// score still counts as a turn but not toward the average.
func (s *InterviewService) EvaluateAnswer(ctx context.Context, sessionID, question, answer string) (*Evaluation, error) {
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	iv, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	vars := rag.Vars{Question: question, Answer: answer}

	rawFeedback, err := s.pipeline.Generate(ctx, rag.PromptFeedback, vars, nil)
	if err != nil {
		return nil, err
	}
	feedback := sanitize.Response(rawFeedback)

	rawFollowUp, err := s.pipeline.Generate(ctx, rag.PromptFollowUp, vars, nil)
	if err != nil {
		return nil, err
	}
	followUp := sanitize.Question(rawFollowUp)

	score, scored := sanitize.Score(feedback)
	if !scored {
		s.logger.Warn("feedback carried no parseable score",
			"session_id", sessionID,
		)
	}

	iv.RecordTurn(session.Turn{
		Question: question,
		Answer:   answer,
		Feedback: feedback,
		FollowUp: followUp,
	}, score, scored)

	s.logger.Info("answer evaluated",
		"session_id", sessionID,
		"scored", scored,
	)

	return &Evaluation{
		Feedback:         feedback,
		FollowUpQuestion: followUp,
	}, nil
}

// StopInterview closes the session and reports the average score over all
// scored answers. The finished transcript is archived on a best-effort
// basis; an archive failure is logged but never fails the stop.
func (s *InterviewService) StopInterview(ctx context.Context, sessionID string) (string, error) {
	iv, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}

	summary, err := iv.Close()
	if err != nil {
		return "", err
	}
	s.sessions.Remove(sessionID)

	s.archive(sessionID, summary)

	s.logger.Info("interview stopped",
		"session_id", sessionID,
		"turns", len(summary.Turns),
		"average", summary.Average,
	)

	return fmt.Sprintf("The interview has ended. The average score of the candidate is %.2f.", summary.Average), nil
}

func (s *InterviewService) archive(sessionID string, summary session.Summary) {
	if s.store == nil {
		return
	}

	archived := &store.ArchivedInterview{
		ID:             sessionID,
		ResumeFilename: summary.ResumeFilename,
		AverageScore:   summary.Average,
		StartedAt:      summary.StartedAt,
		EndedAt:        time.Now(),
	}
	for _, turn := range summary.Turns {
		archived.Turns = append(archived.Turns, store.ArchivedTurn{
			Question: turn.Question,
			Answer:   turn.Answer,
			Feedback: turn.Feedback,
			FollowUp: turn.FollowUp,
		})
	}
	archived.TurnCount = len(archived.Turns)

	if err := s.store.SaveInterview(archived); err != nil {
		s.logger.Error("failed to archive interview",
			"session_id", sessionID,
			"error", err,
		)
	}
}
