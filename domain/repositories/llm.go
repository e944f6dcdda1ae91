package repositories

import "context"

// LargeLanguageModel abstracts any chat/LLM provider
type LargeLanguageModel interface {
	// Chat sends the whole message list in one blocking call and returns the reply text
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
	// Ping checks that the inference endpoint can be reached
	Ping(ctx context.Context) error
	// Name identifies the provider in logs
	Name() string
}

// ChatMessage represents a single message in a prompt
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role defines the type of message sender
type Role string

const (
	SystemRole    Role = "system"
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)
