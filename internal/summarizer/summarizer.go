package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/middleware"
)

// Summarizer はテキスト要約バックエンドを抽象化します。
// 失敗は必ず error として返し、エラーメッセージを要約本文として返すことはありません。
type Summarizer interface {
	Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error)
}

// --- LogSummarizer ---
// 開発用。実際のモデル呼び出しは行わず、入力の先頭部分をそのまま返します。
type LogSummarizer struct{}

func (s *LogSummarizer) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Summarizing (LogSummarizer) ---", "min_words", minWords, "max_words", maxWords, "input_len", len(text))

	words := strings.Fields(text)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " "), nil
}

// --- New ファクトリ関数 ---
func New(cfg *config.Config) Summarizer {
	logger := slog.Default()
	switch cfg.Summarizer.Type {
	case "ollama":
		logger.Info("Initializing Ollama summarizer...", "base_url", cfg.Summarizer.BaseURL, "model", cfg.Summarizer.Model)
		return NewOllamaSummarizer(OllamaConfig{
			BaseURL: cfg.Summarizer.BaseURL,
			Model:   cfg.Summarizer.Model,
			Timeout: cfg.Summarizer.Timeout,
		})
	case "log":
		logger.Info("Initializing Log summarizer...")
		return &LogSummarizer{}
	default:
		logger.Warn(fmt.Sprintf("Unknown summarizer type %q, defaulting to LogSummarizer", cfg.Summarizer.Type))
		return &LogSummarizer{}
	}
}
