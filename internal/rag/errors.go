package rag

import "fmt"

// IngestionError is returned when a resume cannot be turned into a
// retriever: unreadable PDF, empty extracted text, or a storage failure.
// The caller must re-upload; there is no retry. Invalid marks the upload
// itself as unacceptable (wrong type, empty file) as opposed to a failure
// while processing an acceptable one.
type IngestionError struct {
	Reason  string
	Invalid bool
	Wrapped error
}

func (e *IngestionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("ingestion failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("ingestion failed: %s", e.Reason)
}

func (e *IngestionError) Unwrap() error {
	return e.Wrapped
}

// GenerationError is returned when the model backend is unreachable or
// produces unusable output. Generation has no side effects on failure, so
// the caller may simply retry the request.
type GenerationError struct {
	Reason  string
	Wrapped error
}

func (e *GenerationError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Wrapped
}
