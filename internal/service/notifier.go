package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/middleware"
)

// Notifier は保護者への通知チャネルを抽象化します。
// to には電話番号 (twilio) またはメールアドレス (ses) が入ります。
type Notifier interface {
	Notify(ctx context.Context, to, body string) error
}

// --- LogNotifier ---
type LogNotifier struct{}

func (n *LogNotifier) Notify(ctx context.Context, to, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Notification (LogNotifier) ---", "to", to, "body", body)
	return nil
}

// --- TwilioNotifier ---
// Twilio Messages API を直接叩いて SMS を送信します。
type TwilioNotifier struct {
	cfg    *config.TwilioConfig
	client *http.Client
}

func NewTwilioNotifier(cfg *config.TwilioConfig) *TwilioNotifier {
	return &TwilioNotifier{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *TwilioNotifier) Notify(ctx context.Context, to, body string) error {
	logger := middleware.GetLogger(ctx)

	apiBase := n.cfg.APIBase
	if apiBase == "" {
		apiBase = "https://api.twilio.com"
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", apiBase, n.cfg.AccountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", n.cfg.From)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(n.cfg.AccountSID, n.cfg.AuthToken)

	resp, err := n.client.Do(req)
	if err != nil {
		logger.Error("Failed to send SMS via Twilio", "error", err, "to", to)
		return fmt.Errorf("twilio: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("Twilio API returned an error", "status", resp.StatusCode, "to", to, "response", string(respBody))
		return fmt.Errorf("twilio: unexpected status %d", resp.StatusCode)
	}

	logger.Info("SMS sent successfully via Twilio", "to", to)
	return nil
}

// --- NewNotifier ファクトリ関数 ---
func NewNotifier(cfg *config.Config) Notifier {
	logger := slog.Default()
	switch cfg.Notifier.Type {
	case "twilio":
		logger.Info("Initializing Twilio notifier...")
		return NewTwilioNotifier(&cfg.Twilio)
	case "ses":
		logger.Info("Initializing SES notifier...")
		return NewSESNotifier(cfg)
	case "log":
		logger.Info("Initializing Log notifier...")
		return &LogNotifier{}
	default:
		logger.Warn("Unknown notifier type, defaulting to LogNotifier", "type", cfg.Notifier.Type)
		return &LogNotifier{}
	}
}
