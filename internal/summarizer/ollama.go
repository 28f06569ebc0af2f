package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go_5_quick_notes/internal/model"
)

// OllamaSummarizer はローカルの Ollama API でチャットモデルに要約させる実装です。
type OllamaSummarizer struct {
	baseURL string
	model   string
	client  *http.Client
}

// OllamaConfig configures the Ollama summarizer.
type OllamaConfig struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the chat model to use (default: gemma:2b).
	Model string

	// Timeout is the HTTP request timeout (default: 120s).
	Timeout time.Duration
}

// NewOllamaSummarizer creates a new Ollama summarizer.
func NewOllamaSummarizer(cfg OllamaConfig) *OllamaSummarizer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "gemma:2b"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &OllamaSummarizer{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Ollama chat API request/response types

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message ollamaChatMessage `json:"message"`
}

// Summarize は指定語数の範囲で要約するようモデルに指示し、応答本文を返します。
// API エラーや空応答は model.ErrSummarizer を包んだ error になります。
func (s *OllamaSummarizer) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	prompt := fmt.Sprintf("Summarize the following text in %d-%d words:\n\n%s", minWords, maxWords, text)

	reqBody := ollamaChatRequest{
		Model: s.model,
		Messages: []ollamaChatMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: send request: %v", model.ErrSummarizer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: ollama error (status %d): %s", model.ErrSummarizer, resp.StatusCode, string(respBody))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", model.ErrSummarizer, err)
	}

	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", model.ErrSummarizer)
	}

	return chatResp.Message.Content, nil
}
