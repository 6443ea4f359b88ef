package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var modelCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /models", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&modelCalls, 1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []Model{{ID: "gpt-4", Name: "GPT-4"}},
		})
	})
	mux.HandleFunc("GET /chats", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"chats": []Session{{ID: "c1", Title: "First", Model: "gpt-4"}},
		})
	})
	mux.HandleFunc("POST /chats", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(Session{ID: "c2", Title: "New Chat", Model: in["model"], Messages: []Message{}})
	})
	mux.HandleFunc("POST /chats/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "missing" {
			http.Error(w, `{"detail":"Chat not found"}`, http.StatusNotFound)
			return
		}
		var msg Message
		_ = json.NewDecoder(r.Body).Decode(&msg)
		_ = json.NewEncoder(w).Encode(map[string]Message{
			"response": {Role: RoleAssistant, Content: "reply to: " + msg.Content},
		})
	})
	mux.HandleFunc("PUT /chats/{id}", func(w http.ResponseWriter, r *http.Request) {
		var sess Session
		_ = json.NewDecoder(r.Body).Decode(&sess)
		_ = json.NewEncoder(w).Encode(sess)
	})
	mux.HandleFunc("DELETE /chats/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &modelCalls
}

func TestClient_Endpoints(t *testing.T) {
	srv, _ := testServer(t)
	client := NewClient(srv.URL)
	ctx := context.Background()

	models, err := client.ListModels(ctx)
	if err != nil || len(models) != 1 || models[0].ID != "gpt-4" {
		t.Errorf("ListModels() = %v, %v", models, err)
	}

	chats, err := client.ListChats(ctx)
	if err != nil || len(chats) != 1 || chats[0].ID != "c1" {
		t.Errorf("ListChats() = %v, %v", chats, err)
	}

	created, err := client.CreateChat(ctx, "gpt-4")
	if err != nil || created.ID != "c2" || created.Model != "gpt-4" {
		t.Errorf("CreateChat() = %v, %v", created, err)
	}

	reply, err := client.SendMessage(ctx, "c2", Message{Role: RoleUser, Content: "hi"})
	if err != nil || reply.Role != RoleAssistant || reply.Content != "reply to: hi" {
		t.Errorf("SendMessage() = %v, %v", reply, err)
	}

	updated, err := client.UpdateChat(ctx, "c2", created)
	if err != nil || updated.ID != created.ID {
		t.Errorf("UpdateChat() = %v, %v", updated, err)
	}

	if err := client.DeleteChat(ctx, "c2"); err != nil {
		t.Errorf("DeleteChat() error = %v", err)
	}
}

func TestClient_NonOKStatus(t *testing.T) {
	srv, _ := testServer(t)
	client := NewClient(srv.URL)

	_, err := client.SendMessage(context.Background(), "missing", Message{Role: RoleUser, Content: "hi"})
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
	if ne.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", ne.Status)
	}
	if ne.Op != "send message" {
		t.Errorf("op = %q, want %q", ne.Op, "send message")
	}
}

func TestClient_ConnectionFailure(t *testing.T) {
	// A server that is immediately closed leaves a port nothing listens on.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListModels(context.Background())

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
	if ne.Status != 0 {
		t.Errorf("status = %d for a transport failure, want 0", ne.Status)
	}
}

func TestClient_ModelsCache(t *testing.T) {
	srv, calls := testServer(t)
	client := NewClient(srv.URL, WithModelsTTL(time.Hour))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := client.ListModels(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Errorf("backend hit %d times, want 1 (cached)", got)
	}
}

func TestClient_ModelsCacheExpiry(t *testing.T) {
	srv, calls := testServer(t)
	client := NewClient(srv.URL, WithModelsTTL(time.Nanosecond))
	ctx := context.Background()

	if _, err := client.ListModels(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, err := client.ListModels(ctx); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Errorf("backend hit %d times, want 2 (expired)", got)
	}
}
