package internal

import "fmt"

// CreateTestSession creates a test session with sample data
func CreateTestSession(id string) *Session {
	return &Session{
		ID:        id,
		Title:     "Test Conversation",
		Model:     "gpt-3.5-turbo",
		Timestamp: "2024-01-01T00:00:00Z",
		Messages: []Message{
			{Role: RoleUser, Content: "Hello, how are you?"},
			{Role: RoleAssistant, Content: "I'm doing well, thank you!"},
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	return &Session{
		ID:        id,
		Title:     "Test Conversation",
		Model:     "gpt-3.5-turbo",
		Timestamp: "2024-01-01T00:00:00Z",
		Messages:  messages,
	}
}

// CreateTestDocument creates a test document with n alternating messages
func CreateTestDocument(model string, n int) *Document {
	messages := make([]Message, 0, n)
	for i := 0; i < n; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		messages = append(messages, Message{Role: role, Content: fmt.Sprintf("message %d", i)})
	}
	return &Document{
		Title:    "Imported Conversation",
		Model:    model,
		Messages: messages,
	}
}
