package internal

import (
	"context"
	"sync"
)

// Synchronizer runs the optimistic-append/confirm cycle for outgoing user
// messages. At most one cycle is in flight per session: a second send for the
// same session waits until the first resolves, which is what keeps replies
// applied in send order. Sends for different sessions proceed independently.
type Synchronizer struct {
	store   *Store
	backend Backend

	mu    sync.Mutex
	gates map[string]*sync.Mutex
}

// NewSynchronizer creates a synchronizer that folds results into the store.
func NewSynchronizer(store *Store, backend Backend) *Synchronizer {
	return &Synchronizer{
		store:   store,
		backend: backend,
		gates:   make(map[string]*sync.Mutex),
	}
}

// Send appends the user message optimistically, runs the backend round trip,
// and appends the assistant reply on success. On failure the user message is
// not rolled back; it is marked failed and the error is returned.
func (sy *Synchronizer) Send(ctx context.Context, sessionID, content string) (*Message, error) {
	gate := sy.gate(sessionID)
	gate.Lock()
	defer gate.Unlock()

	user := Message{Role: RoleUser, Content: content}
	idx, err := sy.store.appendMessage(sessionID, user)
	if err != nil {
		return nil, err
	}

	reply, err := sy.backend.SendMessage(ctx, sessionID, user)
	if err != nil {
		LogError("failed to send message to session %s: %v", sessionID, err)
		if markErr := sy.store.markFailed(sessionID, idx); markErr != nil {
			LogWarn("could not mark message as failed: %v", markErr)
		}
		return nil, err
	}

	if _, err := sy.store.appendMessage(sessionID, *reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// gate returns the per-session send lock, creating it on first use.
func (sy *Synchronizer) gate(sessionID string) *sync.Mutex {
	sy.mu.Lock()
	defer sy.mu.Unlock()
	g, ok := sy.gates[sessionID]
	if !ok {
		g = &sync.Mutex{}
		sy.gates[sessionID] = g
	}
	return g
}
