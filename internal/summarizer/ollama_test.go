package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_5_quick_notes/internal/model"
)

func TestOllamaSummarizer_Summarize(t *testing.T) {
	t.Run("正常系: プロンプトに語数範囲が含まれ応答本文が返る", func(t *testing.T) {
		var gotReq ollamaChatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/chat", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			json.NewEncoder(w).Encode(ollamaChatResponse{
				Message: ollamaChatMessage{Role: "assistant", Content: "a concise summary"},
			})
		}))
		defer server.Close()

		s := NewOllamaSummarizer(OllamaConfig{BaseURL: server.URL, Model: "gemma:2b"})

		summary, err := s.Summarize(context.Background(), "some long lecture text", 15, 50)

		require.NoError(t, err)
		assert.Equal(t, "a concise summary", summary)
		assert.Equal(t, "gemma:2b", gotReq.Model)
		assert.False(t, gotReq.Stream)
		require.Len(t, gotReq.Messages, 1)
		assert.Equal(t, "user", gotReq.Messages[0].Role)
		assert.Equal(t, "Summarize the following text in 15-50 words:\n\nsome long lecture text", gotReq.Messages[0].Content)
	})

	t.Run("異常系: 非2xx応答は ErrSummarizer になる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
		}))
		defer server.Close()

		s := NewOllamaSummarizer(OllamaConfig{BaseURL: server.URL})

		summary, err := s.Summarize(context.Background(), "text", 5, 10)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrSummarizer)
		assert.Empty(t, summary)
	})

	t.Run("異常系: 空の応答本文は ErrSummarizer になる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ollamaChatResponse{})
		}))
		defer server.Close()

		s := NewOllamaSummarizer(OllamaConfig{BaseURL: server.URL})

		summary, err := s.Summarize(context.Background(), "text", 5, 10)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrSummarizer)
		assert.Empty(t, summary)
	})

	t.Run("異常系: 接続できない場合も ErrSummarizer になる", func(t *testing.T) {
		s := NewOllamaSummarizer(OllamaConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: 1 * time.Second,
		})

		_, err := s.Summarize(context.Background(), "text", 5, 10)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrSummarizer)
	})
}
