package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arturoeanton/roadmapai/internal/port"
)

// OllamaEndpointConfig holds the configuration for a single Ollama endpoint.
type OllamaEndpointConfig struct {
	BaseURL string // e.g. http://localhost:11434 or https://api.ollama.com
	Model   string // e.g. qwen3
	Token   string // Bearer token for Ollama Cloud (empty = no auth)
}

// OllamaProvider implements port.TextGenerator using the Ollama chat API.
type OllamaProvider struct {
	chat       OllamaEndpointConfig
	httpClient *http.Client
}

// NewOllamaProvider creates a new Ollama-backed generator.
func NewOllamaProvider(chat OllamaEndpointConfig) *OllamaProvider {
	return &OllamaProvider{
		chat:       chat,
		httpClient: &http.Client{},
	}
}

// ModelName returns the chat model identifier.
func (o *OllamaProvider) ModelName() string {
	return o.chat.Model
}

// Generate sends prompt as a single user message.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return o.Chat(ctx, "", prompt)
}

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
	Message ollamaMessage `json:"message"`
}

// Chat sends an optional system prompt plus a user prompt and returns the reply.
func (o *OllamaProvider) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := ollamaChatRequest{Model: o.chat.Model}
	if systemPrompt != "" {
		req.Messages = append(req.Messages, ollamaMessage{Role: "system", Content: systemPrompt})
	}
	req.Messages = append(req.Messages, ollamaMessage{Role: "user", Content: userPrompt})

	var resp ollamaChatResponse
	if err := o.postJSON(ctx, "/api/chat", req, &resp); err != nil {
		return "", port.RemoteUnavailable("ollama chat failed", err)
	}
	if strings.TrimSpace(resp.Message.Content) == "" {
		return "", port.RemoteUnavailable("ollama returned empty content", nil)
	}
	return resp.Message.Content, nil
}

// postJSON sends in to the endpoint and decodes a 200 reply into out.
func (o *OllamaProvider) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(o.chat.BaseURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.chat.Token != "" {
		req.Header.Set("Authorization", "Bearer "+o.chat.Token)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ollama status %d: %s", resp.StatusCode, snippet)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
