package llm

import (
	"context"
	"fmt"

	"github.com/satriahrh/bhasha/domain/repositories"
)

// MockLLM echoes the user text tagged with the instruction, for local development
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Name() string {
	return "mock"
}

func (m *MockLLM) Chat(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	var system, user string
	for _, msg := range messages {
		switch msg.Role {
		case repositories.SystemRole:
			system = msg.Content
		case repositories.UserRole:
			user = msg.Content
		}
	}
	return fmt.Sprintf("[%s] %s", system, user), nil
}

func (m *MockLLM) Ping(ctx context.Context) error {
	return nil
}
