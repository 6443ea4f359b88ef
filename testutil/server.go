package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/kelsall/chatline/internal"
)

// BackendServer is an in-memory stand-in for the chat backend, serving the
// full REST surface over httptest. Replies echo the incoming message.
type BackendServer struct {
	*httptest.Server

	mu     sync.Mutex
	nextID int
	chats  map[string]*internal.Session
	order  []string
}

// NewBackendServer starts a fake backend; it is torn down with the test.
func NewBackendServer(t *testing.T) *BackendServer {
	t.Helper()

	b := &BackendServer{chats: make(map[string]*internal.Session)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /models", b.handleModels)
	mux.HandleFunc("GET /chats", b.handleListChats)
	mux.HandleFunc("POST /chats", b.handleCreateChat)
	mux.HandleFunc("POST /chats/{id}/messages", b.handleSendMessage)
	mux.HandleFunc("PUT /chats/{id}", b.handleUpdateChat)
	mux.HandleFunc("DELETE /chats/{id}", b.handleDeleteChat)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

// ChatCount returns how many sessions the backend currently stores.
func (b *BackendServer) ChatCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chats)
}

// Chat returns a stored session by id, or nil.
func (b *BackendServer) Chat(id string) *internal.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chats[id].Clone()
}

func (b *BackendServer) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"models": []internal.Model{
			{ID: "gpt-3.5-turbo", Name: "GPT-3.5"},
			{ID: "gpt-4", Name: "GPT-4"},
		},
	})
}

func (b *BackendServer) handleListChats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	chats := make([]*internal.Session, 0, len(b.order))
	for _, id := range b.order {
		chats = append(chats, b.chats[id])
	}
	b.mu.Unlock()
	writeJSON(w, map[string]interface{}{"chats": chats})
}

func (b *BackendServer) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var in map[string]string
	_ = json.NewDecoder(r.Body).Decode(&in)

	b.mu.Lock()
	b.nextID++
	sess := &internal.Session{
		ID:        fmt.Sprintf("chat-%d", b.nextID),
		Title:     "New Chat",
		Model:     in["model"],
		CreatedAt: "2024-01-01T00:00:00Z",
		Messages:  []internal.Message{},
	}
	b.chats[sess.ID] = sess
	b.order = append(b.order, sess.ID)
	b.mu.Unlock()

	writeJSON(w, sess)
}

func (b *BackendServer) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var msg internal.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, `{"detail":"bad message"}`, http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	sess, ok := b.chats[id]
	if !ok {
		b.mu.Unlock()
		http.Error(w, `{"detail":"Chat not found"}`, http.StatusNotFound)
		return
	}
	reply := internal.Message{Role: internal.RoleAssistant, Content: "echo: " + msg.Content}
	sess.Messages = append(sess.Messages, msg, reply)
	b.mu.Unlock()

	writeJSON(w, map[string]internal.Message{"response": reply})
}

func (b *BackendServer) handleUpdateChat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var sess internal.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		http.Error(w, `{"detail":"bad session"}`, http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	if _, ok := b.chats[id]; !ok {
		b.mu.Unlock()
		http.Error(w, `{"detail":"Chat not found"}`, http.StatusNotFound)
		return
	}
	b.chats[id] = &sess
	b.mu.Unlock()

	writeJSON(w, &sess)
}

func (b *BackendServer) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	if _, ok := b.chats[id]; !ok {
		b.mu.Unlock()
		http.Error(w, `{"detail":"Chat not found"}`, http.StatusNotFound)
		return
	}
	delete(b.chats, id)
	order := b.order[:0]
	for _, cur := range b.order {
		if cur != id {
			order = append(order, cur)
		}
	}
	b.order = order
	b.mu.Unlock()

	writeJSON(w, map[string]string{})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
