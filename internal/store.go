package internal

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Snapshot is an immutable view of the session collection. Every store
// mutation installs a fresh slice and fresh session values, so observers can
// rely on reference equality to detect change.
type Snapshot struct {
	Sessions []*Session
	Selected string // empty when nothing is selected
}

// Store is the single authority for the session collection and the current
// selection. All mutation goes through its methods; sessions handed out in
// snapshots are never modified in place.
type Store struct {
	backend Backend

	mu       sync.Mutex
	sessions []*Session
	selected string
	models   []Model
	watchers []func(Snapshot)
}

// NewStore creates an empty store backed by the given backend client.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load initializes the store: models and existing sessions are fetched
// together, and sessions missing a timestamp get one backfilled. Selection
// starts empty.
func (s *Store) Load(ctx context.Context) error {
	var (
		models []Model
		chats  []Session
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		models, err = s.backend.ListModels(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		chats, err = s.backend.ListChats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		LogError("failed to load initial data: %v", err)
		return err
	}

	sessions := make([]*Session, 0, len(chats))
	for i := range chats {
		sess := chats[i].Clone()
		if sess.Timestamp == "" {
			if sess.CreatedAt != "" {
				sess.Timestamp = sess.CreatedAt
			} else {
				sess.Timestamp = Now()
			}
		}
		sessions = append(sessions, sess)
	}

	s.mu.Lock()
	s.models = models
	s.sessions = sessions
	s.selected = ""
	snap, watchers := s.snapshotLocked()
	s.mu.Unlock()

	LogInfo("loaded %d models, %d sessions", len(models), len(sessions))
	notify(watchers, snap)
	return nil
}

// Models returns the model list fetched by Load.
func (s *Store) Models() []Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Model, len(s.models))
	copy(out, s.models)
	return out
}

// Snapshot returns the current immutable view of the collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// Watch registers an observer called with every new snapshot.
func (s *Store) Watch(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Get returns the session with the given id, or a NotFoundError.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// Selected returns the currently selected session, or nil when none is.
func (s *Store) Selected() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return nil
	}
	for _, sess := range s.sessions {
		if sess.ID == s.selected {
			return sess
		}
	}
	return nil
}

// NewChat creates a session for the given model, inserts it newest-first and
// selects it. The session is built locally under a provisional id; the
// backend-assigned id replaces it before the session is published, so no
// reader ever observes the mismatched intermediate.
func (s *Store) NewChat(ctx context.Context, model string) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(), // provisional, swapped below
		Title:     s.nextTitle(),
		Model:     model,
		Timestamp: Now(),
		Messages:  []Message{},
	}

	created, err := s.backend.CreateChat(ctx, model)
	if err != nil {
		LogError("failed to create chat: %v", err)
		return nil, err
	}

	sess.ID = created.ID
	if created.CreatedAt != "" {
		sess.CreatedAt = created.CreatedAt
	}

	s.insertFront(sess, true)
	LogInfo("created session %s (model %s)", sess.ID, model)
	return sess, nil
}

// Select makes the session with the given id current. Selecting an unknown
// id leaves the selection untouched and reports NotFoundError.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	found := false
	for _, sess := range s.sessions {
		if sess.ID == id {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	s.selected = id
	snap, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snap)
	return nil
}

// Delete removes the session server-side first, then locally. A failed
// backend delete leaves the session intact and visible. Deleting the
// selected session clears the selection atomically with the removal.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.backend.DeleteChat(ctx, id); err != nil {
		LogError("failed to delete chat %s: %v", id, err)
		return err
	}

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.ID != id {
			sessions = append(sessions, sess)
		}
	}
	s.sessions = sessions
	if s.selected == id {
		s.selected = ""
	}
	snap, watchers := s.snapshotLocked()
	s.mu.Unlock()

	LogInfo("deleted session %s", id)
	notify(watchers, snap)
	return nil
}

// Rename updates the session title, server-side first.
func (s *Store) Rename(ctx context.Context, id, title string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}

	updated := sess.Clone()
	updated.Title = title
	if _, err := s.backend.UpdateChat(ctx, id, updated); err != nil {
		LogError("failed to rename chat %s: %v", id, err)
		return err
	}

	return s.replace(updated)
}

// insertFront adds a session at the front of the collection and optionally
// selects it.
func (s *Store) insertFront(sess *Session, selectIt bool) {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions)+1)
	sessions = append(sessions, sess)
	sessions = append(sessions, s.sessions...)
	s.sessions = sessions
	if selectIt {
		s.selected = sess.ID
	}
	snap, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snap)
}

// replace swaps in a new value for the session with the same id.
func (s *Store) replace(sess *Session) error {
	s.mu.Lock()
	idx := -1
	for i, cur := range s.sessions {
		if cur.ID == sess.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return &NotFoundError{ID: sess.ID}
	}
	sessions := make([]*Session, len(s.sessions))
	copy(sessions, s.sessions)
	sessions[idx] = sess
	s.sessions = sessions
	snap, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snap)
	return nil
}

// appendMessage appends a message to the session, copy-on-write, and returns
// the index it landed at.
func (s *Store) appendMessage(id string, msg Message) (int, error) {
	sess, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	updated := sess.Clone()
	updated.Messages = append(updated.Messages, msg)
	if err := s.replace(updated); err != nil {
		return 0, err
	}
	return len(updated.Messages) - 1, nil
}

// markFailed flags the message at index as failed, copy-on-write.
func (s *Store) markFailed(id string, index int) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(sess.Messages) {
		return fmt.Errorf("message index %d out of range for session %s", index, id)
	}
	updated := sess.Clone()
	updated.Messages[index].Failed = true
	return s.replace(updated)
}

// truncateMessages drops every message from index n on, copy-on-write.
func (s *Store) truncateMessages(id string, n int) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	if n < 0 || n > len(sess.Messages) {
		return fmt.Errorf("truncation point %d out of range for session %s", n, id)
	}
	updated := sess.Clone()
	updated.Messages = updated.Messages[:n]
	return s.replace(updated)
}

func (s *Store) nextTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("New Chat %d", len(s.sessions)+1)
}

// snapshotLocked builds the snapshot and copies the watcher list; callers
// hold s.mu and notify after unlocking.
func (s *Store) snapshotLocked() (Snapshot, []func(Snapshot)) {
	sessions := make([]*Session, len(s.sessions))
	copy(sessions, s.sessions)
	watchers := make([]func(Snapshot), len(s.watchers))
	copy(watchers, s.watchers)
	return Snapshot{Sessions: sessions, Selected: s.selected}, watchers
}

func notify(watchers []func(Snapshot), snap Snapshot) {
	for _, fn := range watchers {
		fn(snap)
	}
}
