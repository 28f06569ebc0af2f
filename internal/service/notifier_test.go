// internal/service/notifier_test.go
package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_5_quick_notes/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwilioNotifier_Notify(t *testing.T) {
	t.Run("正常系: Messages API にフォームで送信される", func(t *testing.T) {
		var gotPath, gotTo, gotFrom, gotBody string
		var gotUser, gotPass string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUser, gotPass, _ = r.BasicAuth()
			require.NoError(t, r.ParseForm())
			gotTo = r.PostFormValue("To")
			gotFrom = r.PostFormValue("From")
			gotBody = r.PostFormValue("Body")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"sid":"SM123"}`))
		}))
		defer server.Close()

		notifier := NewTwilioNotifier(&config.TwilioConfig{
			AccountSID: "AC123",
			AuthToken:  "token456",
			From:       "+15005550006",
			APIBase:    server.URL,
		})

		err := notifier.Notify(context.Background(), "+818012345678", "Your child taro completed the quiz.")

		require.NoError(t, err)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
		assert.Equal(t, "AC123", gotUser)
		assert.Equal(t, "token456", gotPass)
		assert.Equal(t, "+818012345678", gotTo)
		assert.Equal(t, "+15005550006", gotFrom)
		assert.Equal(t, "Your child taro completed the quiz.", gotBody)
	})

	t.Run("異常系: APIエラーはerrorとして返る", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"code": 21211}`, http.StatusBadRequest)
		}))
		defer server.Close()

		notifier := NewTwilioNotifier(&config.TwilioConfig{
			AccountSID: "AC123",
			AuthToken:  "token456",
			From:       "+15005550006",
			APIBase:    server.URL,
		})

		err := notifier.Notify(context.Background(), "not-a-number", "hello")

		require.Error(t, err)
	})
}

func TestNewNotifier(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		wantType interface{}
	}{
		{name: "正常系: twilio", typ: "twilio", wantType: &TwilioNotifier{}},
		{name: "正常系: log", typ: "log", wantType: &LogNotifier{}},
		{name: "正常系: 不明な種別はLogNotifierにフォールバック", typ: "carrier-pigeon", wantType: &LogNotifier{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Notifier.Type = tt.typ

			notifier := NewNotifier(cfg)

			assert.IsType(t, tt.wantType, notifier)
		})
	}
}
