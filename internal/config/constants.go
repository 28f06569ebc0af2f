// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "QuickNotes"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultUploadDir         = "uploads"
	DefaultMaxUploadMB       = 16
	DefaultAccessTokenTTL    = 24 * time.Hour
	DefaultOllamaBaseURL     = "http://localhost:11434"
	DefaultSummarizerModel   = "gemma:2b"
	DefaultSummarizerTimeout = 120 * time.Second
)
