package internal

import (
	"context"
	"fmt"
	"sync"
)

// sendRecord captures one SendMessage call for ordering assertions.
type sendRecord struct {
	ChatID  string
	Message Message
}

// fakeBackend is an in-memory Backend for exercising the store and the
// pipelines without HTTP.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int

	models []Model

	chats []Session

	sends []sendRecord

	// replyFn, when set, scripts SendMessage. The default echoes the content.
	replyFn func(chatID string, msg Message) (*Message, error)

	createErr error
	deleteErr error
	updateErr error
	listErr   error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		models: []Model{
			{ID: "gpt-3.5-turbo", Name: "GPT-3.5"},
			{ID: "gpt-4", Name: "GPT-4"},
		},
	}
}

func (f *fakeBackend) ListModels(ctx context.Context) ([]Model, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Model(nil), f.models...), nil
}

func (f *fakeBackend) ListChats(ctx context.Context) ([]Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Session(nil), f.chats...), nil
}

func (f *fakeBackend) CreateChat(ctx context.Context, model string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	sess := Session{
		ID:        fmt.Sprintf("chat-%d", f.nextID),
		Title:     "New Chat",
		Model:     model,
		CreatedAt: "2024-01-01T00:00:00Z",
		Messages:  []Message{},
	}
	f.chats = append(f.chats, sess)
	return sess.Clone(), nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, chatID string, msg Message) (*Message, error) {
	f.mu.Lock()
	f.sends = append(f.sends, sendRecord{ChatID: chatID, Message: msg})
	replyFn := f.replyFn
	f.mu.Unlock()

	if replyFn != nil {
		return replyFn(chatID, msg)
	}
	return &Message{Role: RoleAssistant, Content: "echo: " + msg.Content}, nil
}

func (f *fakeBackend) UpdateChat(ctx context.Context, chatID string, session *Session) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return session.Clone(), nil
}

func (f *fakeBackend) DeleteChat(ctx context.Context, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	chats := f.chats[:0]
	for _, c := range f.chats {
		if c.ID != chatID {
			chats = append(chats, c)
		}
	}
	f.chats = chats
	return nil
}

func (f *fakeBackend) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

func (f *fakeBackend) sentMessages() []sendRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sendRecord(nil), f.sends...)
}
