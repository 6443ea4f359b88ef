package internal

import "context"

// Importer replays a document's messages into a freshly created backend
// session, strictly one at a time and in document order. The local session
// holds exactly the document's messages; replies produced during the replay
// are discarded so that an exported session imports back to the same
// sequence.
type Importer struct {
	store   *Store
	backend Backend
}

// NewImporter creates an importer that folds the finished session into the
// store.
func NewImporter(store *Store, backend Backend) *Importer {
	return &Importer{store: store, backend: backend}
}

// Import validates the document, creates a backend session using the
// document's model (or fallbackModel when absent), and replays every message
// sequentially. onProgress, when non-nil, sees (0, total) and then each
// confirmed step. On success the populated session is inserted at the front
// of the collection and selected.
//
// A failed step aborts the replay with a PartialImportError: the backend
// session and the already-replayed messages are left behind server-side with
// no client reference, and nothing is retried.
func (im *Importer) Import(ctx context.Context, doc *Document, fallbackModel string, onProgress ProgressFunc) (*Session, error) {
	if doc == nil || doc.Messages == nil {
		return nil, &ValidationError{Reason: "document has no messages sequence"}
	}

	model := doc.Model
	if model == "" {
		model = fallbackModel
	}
	if model == "" {
		return nil, &ValidationError{Reason: "no model in document and no fallback model"}
	}

	created, err := im.backend.CreateChat(ctx, model)
	if err != nil {
		LogError("import: failed to create chat: %v", err)
		return nil, err
	}

	title := doc.Title
	if title == "" {
		title = im.store.nextTitle()
	}
	sess := &Session{
		ID:        created.ID,
		Title:     title,
		Model:     model,
		Timestamp: Now(),
		Messages:  make([]Message, 0, len(doc.Messages)),
	}

	total := len(doc.Messages)
	report(onProgress, 0, total)

	for i, msg := range doc.Messages {
		// Extension point for a future user-cancel: the replay stops between
		// steps when the context is done.
		if err := ctx.Err(); err != nil {
			return nil, &PartialImportError{ChatID: created.ID, Completed: i, Total: total, Err: err}
		}

		if _, err := im.backend.SendMessage(ctx, created.ID, msg); err != nil {
			LogError("import: replay failed at message %d/%d: %v", i+1, total, err)
			return nil, &PartialImportError{ChatID: created.ID, Completed: i, Total: total, Err: err}
		}
		sess.Messages = append(sess.Messages, msg)
		report(onProgress, i+1, total)
	}

	im.store.insertFront(sess, true)
	LogInfo("imported session %s (%d messages)", sess.ID, total)
	return sess, nil
}

func report(fn ProgressFunc, current, total int) {
	if fn != nil {
		fn(Progress{Current: current, Total: total})
	}
}
