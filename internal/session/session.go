package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/intervu-ai/backend/internal/id"
)

// ErrNoHistory is returned when an interview is stopped before any answer
// was evaluated. The session state is left untouched in that case.
var ErrNoHistory = errors.New("no interview history available")

// Retriever is the opaque handle to the similarity index built from the
// uploaded resume. The session owns its lifetime; retrieval itself stays
// behind the RAG pipeline.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// Turn is one question/answer exchange. Immutable once recorded.
type Turn struct {
	Question string
	Answer   string
	Feedback string
	FollowUp string
}

// Summary is the closing state of an interview, captured at stop time.
type Summary struct {
	Turns          []Turn
	Average        float64
	ScoredAnswers  int
	ResumeFilename string
	StartedAt      time.Time
}

// Interview holds the live state of one mock interview: the retriever built
// from the uploaded resume, the question currently on the table, and every
// turn answered so far. All mutation goes through the methods below, guarded
// by a single mutex, so a session only ever sees sequential writes.
type Interview struct {
	ID             string
	ResumeFilename string
	Retriever      Retriever

	mu        sync.Mutex
	question  string // question currently awaiting an answer
	history   []Turn
	scores    ScoreTracker
	startedAt time.Time
}

// NewInterview creates a session in the "resume loaded" state, with the
// generated opening question on the table.
func NewInterview(resumeFilename, firstQuestion string, retriever Retriever) *Interview {
	return &Interview{
		ID:             id.GenerateID(),
		ResumeFilename: resumeFilename,
		Retriever:      retriever,
		question:       firstQuestion,
		startedAt:      time.Now(),
	}
}

// CurrentQuestion returns the question awaiting an answer, or "" after stop.
func (iv *Interview) CurrentQuestion() string {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.question
}

// Turns returns a copy of the recorded history.
func (iv *Interview) Turns() []Turn {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	out := make([]Turn, len(iv.history))
	copy(out, iv.history)
	return out
}

// RecordTurn appends a completed exchange and promotes its follow-up to the
// current question. Callers invoke this only after feedback and follow-up
// generation both succeeded, so a failed turn leaves no trace in the session.
func (iv *Interview) RecordTurn(turn Turn, score int, scored bool) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.history = append(iv.history, turn)
	if scored {
		iv.scores.Record(score)
	}
	iv.question = turn.FollowUp
}

// Close returns the interview summary and resets history and scores in one
// locked step. Stopping with an empty history fails with ErrNoHistory and
// mutates nothing.
func (iv *Interview) Close() (Summary, error) {
	iv.mu.Lock()
	defer iv.mu.Unlock()

	if len(iv.history) == 0 {
		return Summary{}, ErrNoHistory
	}

	summary := Summary{
		Turns:          iv.history,
		Average:        iv.scores.Average(),
		ScoredAnswers:  iv.scores.Count(),
		ResumeFilename: iv.ResumeFilename,
		StartedAt:      iv.startedAt,
	}

	iv.history = nil
	iv.scores.Reset()
	iv.question = ""

	return summary, nil
}
