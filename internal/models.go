package internal

import "time"

// Message roles understood by the backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat message. Messages are never mutated in
// place; edits produce a new message.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
	// Failed marks a user message whose backend round trip did not complete.
	// The message stays in the history (no rollback); consumers may render it
	// differently.
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Session represents one conversation: ordered messages, a model identifier,
// and metadata. The ID is assigned by the backend at creation time.
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Model     string    `json:"model" yaml:"model"`
	Timestamp string    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	CreatedAt string    `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// Clone returns a deep copy of the session. Store snapshots hand out cloned
// sessions so a published snapshot is never mutated underneath an observer.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}

// Model identifies an inference model offered by the backend.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Progress reports how far a sequential replay has advanced.
type Progress struct {
	Current int
	Total   int
}

// ProgressFunc observes replay progress. Called with (0, total) before the
// first step and once more after every confirmed step.
type ProgressFunc func(Progress)

// Now returns the current time formatted the way the backend formats session
// timestamps. Overridable in tests.
var Now = func() string {
	return time.Now().UTC().Format(time.RFC3339)
}
