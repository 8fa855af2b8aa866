package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// ArchivedTurn is one question/answer exchange in a finished interview.
type ArchivedTurn struct {
	Question string
	Answer   string
	Feedback string
	FollowUp string
}

// ArchivedInterview is the durable record written when an interview ends.
// Live interviews never touch the store.
type ArchivedInterview struct {
	ID             string
	ResumeFilename string
	AverageScore   float64
	StartedAt      time.Time
	EndedAt        time.Time
	TurnCount      int
	Turns          []ArchivedTurn
}

// Store persists finished interviews.
type Store interface {
	SaveInterview(iv *ArchivedInterview) error
	GetInterview(id string) (*ArchivedInterview, error)
	ListInterviews() ([]*ArchivedInterview, error)
	Close() error
}
