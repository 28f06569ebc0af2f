package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/middleware"
)

// NoteSink は生成したクイックノートの外部ノートサービスへの連携を抽象化します。
// 連携はベストエフォートであり、失敗してもアップロード処理自体は成功として扱います。
type NoteSink interface {
	Publish(ctx context.Context, username, notes string) error
}

// --- LogNoteSink ---
type LogNoteSink struct{}

func (s *LogNoteSink) Publish(ctx context.Context, username, notes string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Publishing Notes (LogNoteSink) ---", "username", username, "notes_len", len(notes))
	return nil
}

// --- NotionNoteSink ---
// Notion API でデータベースにページを1件追加します。
type NotionNoteSink struct {
	cfg    *config.NotesConfig
	client *http.Client
}

func NewNotionNoteSink(cfg *config.NotesConfig) *NotionNoteSink {
	return &NotionNoteSink{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Notion pages API request types

type notionCreatePageRequest struct {
	Parent     notionParent              `json:"parent"`
	Properties map[string]notionProperty `json:"properties"`
}

type notionParent struct {
	DatabaseID string `json:"database_id"`
}

type notionProperty struct {
	Title    []notionRichText `json:"title,omitempty"`
	RichText []notionRichText `json:"rich_text,omitempty"`
}

type notionRichText struct {
	Text notionText `json:"text"`
}

type notionText struct {
	Content string `json:"content"`
}

func (s *NotionNoteSink) Publish(ctx context.Context, username, notes string) error {
	logger := middleware.GetLogger(ctx)

	apiBase := s.cfg.APIBase
	if apiBase == "" {
		apiBase = "https://api.notion.com"
	}

	reqBody := notionCreatePageRequest{
		Parent: notionParent{DatabaseID: s.cfg.DatabaseID},
		Properties: map[string]notionProperty{
			"Name": {
				Title: []notionRichText{
					{Text: notionText{Content: fmt.Sprintf("Notes for %s", username)}},
				},
			},
			"Notes": {
				RichText: []notionRichText{
					{Text: notionText{Content: notes}},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("notion: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notion: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	req.Header.Set("Notion-Version", "2022-06-28")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("Failed to publish notes to Notion", "error", err, "username", username)
		return fmt.Errorf("notion: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("Notion API returned an error", "status", resp.StatusCode, "username", username, "response", string(respBody))
		return fmt.Errorf("notion: unexpected status %d", resp.StatusCode)
	}

	logger.Info("Notes published successfully to Notion", "username", username)
	return nil
}

// --- NewNoteSink ファクトリ関数 ---
func NewNoteSink(cfg *config.Config) NoteSink {
	logger := slog.Default()
	switch cfg.Notes.Type {
	case "notion":
		logger.Info("Initializing Notion note sink...")
		return NewNotionNoteSink(&cfg.Notes)
	case "log":
		logger.Info("Initializing Log note sink...")
		return &LogNoteSink{}
	default:
		logger.Warn("Unknown note sink type, defaulting to LogNoteSink", "type", cfg.Notes.Type)
		return &LogNoteSink{}
	}
}
