// internal/store/sqlite.go
package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS interviews (
    id TEXT PRIMARY KEY,
    resume_filename TEXT NOT NULL,
    average_score REAL NOT NULL,
    started_at TEXT NOT NULL,
    ended_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS interview_turns (
    interview_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    feedback TEXT NOT NULL,
    follow_up TEXT NOT NULL,
    PRIMARY KEY (interview_id, position),
    FOREIGN KEY (interview_id) REFERENCES interviews(id) ON DELETE CASCADE
);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveInterview(iv *ArchivedInterview) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO interviews (id, resume_filename, average_score, started_at, ended_at) VALUES (?, ?, ?, ?, ?)",
		iv.ID, iv.ResumeFilename, iv.AverageScore,
		iv.StartedAt.UTC().Format(time.RFC3339), iv.EndedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	for i, turn := range iv.Turns {
		_, err = tx.Exec(
			"INSERT INTO interview_turns (interview_id, position, question, answer, feedback, follow_up) VALUES (?, ?, ?, ?, ?, ?)",
			iv.ID, i, turn.Question, turn.Answer, turn.Feedback, turn.FollowUp,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetInterview(id string) (*ArchivedInterview, error) {
	var iv ArchivedInterview
	var startedAt, endedAt string

	err := s.db.QueryRow(
		"SELECT id, resume_filename, average_score, started_at, ended_at FROM interviews WHERE id = ?",
		id,
	).Scan(&iv.ID, &iv.ResumeFilename, &iv.AverageScore, &startedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if iv.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, err
	}
	if iv.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT question, answer, feedback, follow_up FROM interview_turns WHERE interview_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var turn ArchivedTurn
		if err := rows.Scan(&turn.Question, &turn.Answer, &turn.Feedback, &turn.FollowUp); err != nil {
			return nil, err
		}
		iv.Turns = append(iv.Turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	iv.TurnCount = len(iv.Turns)

	return &iv, nil
}

// ListInterviews returns finished interviews, most recent first, without
// their turn transcripts.
func (s *SQLiteStore) ListInterviews() ([]*ArchivedInterview, error) {
	rows, err := s.db.Query(`
		SELECT i.id, i.resume_filename, i.average_score, i.started_at, i.ended_at,
		       (SELECT COUNT(*) FROM interview_turns t WHERE t.interview_id = i.id)
		FROM interviews i
		ORDER BY i.ended_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*ArchivedInterview
	for rows.Next() {
		var iv ArchivedInterview
		var startedAt, endedAt string
		if err := rows.Scan(&iv.ID, &iv.ResumeFilename, &iv.AverageScore, &startedAt, &endedAt, &iv.TurnCount); err != nil {
			return nil, err
		}
		if iv.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, err
		}
		if iv.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
			return nil, err
		}
		interviews = append(interviews, &iv)
	}
	return interviews, rows.Err()
}
