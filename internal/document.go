package internal

import "gopkg.in/yaml.v3"

// Document is the portable form of a session: what export writes and what
// import reads back. Only the messages field is required on import; model and
// title fall back to caller-supplied defaults.
type Document struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Model     string    `json:"model,omitempty" yaml:"model,omitempty"`
	Timestamp string    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// ExportDocument produces a structural copy of the session with a refreshed
// timestamp. Pure function; no backend interaction.
func ExportDocument(sess *Session) *Document {
	messages := make([]Message, len(sess.Messages))
	copy(messages, sess.Messages)
	return &Document{
		ID:        sess.ID,
		Title:     sess.Title,
		Model:     sess.Model,
		Timestamp: Now(),
		Messages:  messages,
	}
}

// ParseDocument parses an import document. YAML is a superset of JSON, so a
// single decoder handles both shapes users actually feed in. A document that
// does not parse, or that lacks a messages sequence, fails with a
// ValidationError before any backend call is made.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Reason: "document is not parseable", Err: err}
	}
	if doc.Messages == nil {
		return nil, &ValidationError{Reason: "document has no messages sequence"}
	}
	return &doc, nil
}
