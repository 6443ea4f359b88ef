package internal

import (
	"context"
	"fmt"
	"strings"
)

// Editor is the edit-and-replay state machine. It is either idle or holds
// one active draft for a user message at a given index; a second Begin while
// editing is rejected rather than silently discarding the first draft.
//
// Saving truncates the session history to everything before the edited
// message and resubmits the draft through the synchronizer, so the edited
// turn behaves exactly like a fresh outgoing message. Only the client's view
// is truncated; whether the backend trims its own stored history is the
// backend's concern.
type Editor struct {
	store *Store
	sync  *Synchronizer

	active    bool
	sessionID string
	index     int
	draft     string
}

// NewEditor creates an idle editor.
func NewEditor(store *Store, sync *Synchronizer) *Editor {
	return &Editor{store: store, sync: sync}
}

// Editing reports whether an edit is in progress.
func (e *Editor) Editing() bool {
	return e.active
}

// Begin starts editing the user message at index in the given session. The
// draft is initialized to the message's current content.
func (e *Editor) Begin(sessionID string, index int) error {
	if e.active {
		return ErrEditInProgress
	}

	sess, err := e.store.Get(sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(sess.Messages) {
		return fmt.Errorf("message index %d out of range for session %s", index, sessionID)
	}
	msg := sess.Messages[index]
	if msg.Role != RoleUser {
		return fmt.Errorf("message %d in session %s is not a user message", index, sessionID)
	}

	e.active = true
	e.sessionID = sessionID
	e.index = index
	e.draft = msg.Content
	return nil
}

// Draft returns the current draft content.
func (e *Editor) Draft() string {
	return e.draft
}

// SetDraft replaces the draft content.
func (e *Editor) SetDraft(content string) {
	e.draft = content
}

// Cancel discards the draft; the session is unchanged.
func (e *Editor) Cancel() {
	e.reset()
}

// Save commits the edit: the edited message and everything after it are
// dropped from the session, then the trimmed draft is sent as a new outgoing
// message. The truncation is irrevocable even if the resend fails.
func (e *Editor) Save(ctx context.Context) (*Message, error) {
	if !e.active {
		return nil, fmt.Errorf("no edit in progress")
	}

	content := strings.TrimSpace(e.draft)
	if content == "" {
		return nil, ErrEmptyDraft
	}

	sessionID, index := e.sessionID, e.index
	e.reset()

	if err := e.store.truncateMessages(sessionID, index); err != nil {
		return nil, err
	}
	return e.sync.Send(ctx, sessionID, content)
}

func (e *Editor) reset() {
	e.active = false
	e.sessionID = ""
	e.index = 0
	e.draft = ""
}
