package internal

import (
	"errors"
	"fmt"
)

// NetworkError represents a backend call that failed to complete: transport
// failure or a non-2xx status. Never retried automatically.
type NetworkError struct {
	Op     string // "create chat", "send message", ...
	URL    string
	Status int // 0 when the request never reached the backend
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("network error: %s %s: status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("network error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError represents an import document that could not be parsed or
// is missing a messages sequence. Raised before any backend call is made.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("validation error: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError represents an operation that referenced a session id absent
// from the collection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// PartialImportError represents an import that failed after the backend
// session already existed. Completed counts the messages replayed before the
// failing step; the backend session is left behind with no client reference.
type PartialImportError struct {
	ChatID    string
	Completed int
	Total     int
	Err       error
}

func (e *PartialImportError) Error() string {
	return fmt.Sprintf("import aborted [%s] after %d/%d messages: %v", e.ChatID, e.Completed, e.Total, e.Err)
}

func (e *PartialImportError) Unwrap() error {
	return e.Err
}

// ErrEditInProgress is returned when a second edit is requested while one is
// already active. The active draft is kept, never silently discarded.
var ErrEditInProgress = errors.New("an edit is already in progress")

// ErrEmptyDraft is returned when saving an edit whose trimmed draft is empty.
var ErrEmptyDraft = errors.New("draft content is empty")
