package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain/repositories"
)

const (
	defaultOpenAIBaseURL = "http://localhost:11434/v1"
	defaultOpenAIAPIKey  = "ollama"
)

// OpenAIConfig configures any OpenAI-compatible chat endpoint (Ollama /v1, vLLM, llama.cpp)
type OpenAIConfig struct {
	BaseURL string
	APIKey  string // local servers accept any non-empty key
	Model   string
}

// OpenAILLM implements LargeLanguageModel over the chat completions API
type OpenAILLM struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ repositories.LargeLanguageModel = (*OpenAILLM)(nil)

func NewOpenAILLM(config OpenAIConfig, logger *zap.Logger) *OpenAILLM {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = defaultOpenAIAPIKey
	}
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultOllamaModel
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL

	return &OpenAILLM{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}
}

func (o *OpenAILLM) Name() string {
	return "openai"
}

func (o *OpenAILLM) Chat(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: o.model,
	}
	for _, m := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(m.Role),
			Content: m.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", classify(o.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: response contained no choices")
	}

	o.logger.Debug("Chat completion received",
		zap.String("model", resp.Model),
		zap.Int("totalTokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAILLM) Ping(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return classify(o.Name(), err)
	}
	return nil
}

func toOpenAIRole(role repositories.Role) string {
	switch role {
	case repositories.SystemRole:
		return openai.ChatMessageRoleSystem
	case repositories.AssistantRole:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
