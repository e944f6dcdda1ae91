package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain/repositories"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.1:8b"
)

// OllamaConfig holds configuration for the Ollama adapter
type OllamaConfig struct {
	BaseURL string // Optional: defaults to http://localhost:11434
	Model   string // Optional: defaults to llama3.1:8b
}

// OllamaLLM talks to a local Ollama server over its native chat API.
// There is no client timeout; the caller bounds each call through ctx.
type OllamaLLM struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

var _ repositories.LargeLanguageModel = (*OllamaLLM)(nil)

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

// NewOllamaLLM creates a new Ollama client
func NewOllamaLLM(config OllamaConfig, logger *zap.Logger) *OllamaLLM {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultOllamaModel
	}

	return &OllamaLLM{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
		logger:  logger,
	}
}

func (o *OllamaLLM) Name() string {
	return "ollama"
}

// Chat submits the message list to /api/chat with streaming disabled
func (o *OllamaLLM) Chat(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	request := ollamaChatRequest{
		Model:  o.model,
		Stream: false,
	}
	for _, m := range messages {
		request.Messages = append(request.Messages, ollamaMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	o.logger.Debug("Sending chat request to Ollama",
		zap.String("model", o.model),
		zap.Int("messages", len(messages)))

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", classify(o.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(errorBody)))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", chatResp.Error)
	}

	return chatResp.Message.Content, nil
}

// Ping lists local models, which fails fast when the server is down
func (o *OllamaLLM) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return classify(o.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	o.logger.Info("Ollama is reachable", zap.String("baseURL", o.baseURL), zap.String("model", o.model))
	return nil
}
