// Package retry は外部サービス呼び出し用の限定的なリトライヘルパーです。
// SMS・ノート連携・要約バックエンドはいずれもベストエフォートの副次チャネルであり、
// リトライは最大1回にとどめます。
package retry

import (
	"context"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// Config holds retry configuration
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 1,
		BaseDelay:  500 * time.Millisecond,
	}
}

// Do executes a function with backoff retry logic
func Do(ctx context.Context, config Config, operation func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}

		// リトライに値しないエラー、または最終試行ならそのまま返す
		if !isRetryableError(lastErr) || attempt == config.MaxRetries {
			return lastErr
		}

		// バックオフ + ジッタ
		delay := config.BaseDelay*time.Duration(1<<attempt) + time.Duration(rand.Int63n(int64(config.BaseDelay)))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

// isRetryableError determines if an error is worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// ネットワーク起因のエラーはリトライ対象
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "network") {
		return true
	}

	// ステータスコードつきエラーは 5xx と 429 のみリトライ
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "status 429") {
		return true
	}
	if strings.Contains(errStr, "status 4") {
		return false
	}

	// 形式が判別できないエラーはリトライしてみる
	return true
}

// HTTPStatusRetryable checks if an HTTP status code is retryable
func HTTPStatusRetryable(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
