// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name      string `mapstructure:"name"`
	UploadDir string `mapstructure:"upload_dir"`
	// アップロード可能なファイルサイズの上限 (MB)
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// NotifierConfig は保護者への通知チャネルの設定 (log / twilio / ses)
type NotifierConfig struct {
	Type string `mapstructure:"type"`
}

type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	From       string `mapstructure:"from"`
	// APIBase はテスト時に差し替えるためのエンドポイント
	APIBase string `mapstructure:"api_base"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" or "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

// NotesConfig は外部ノートサービス連携の設定 (log / notion)
type NotesConfig struct {
	Type       string `mapstructure:"type"`
	Token      string `mapstructure:"token"`
	DatabaseID string `mapstructure:"database_id"`
	APIBase    string `mapstructure:"api_base"`
}

// SummarizerConfig は要約バックエンドの設定 (ollama / log)
type SummarizerConfig struct {
	Type    string        `mapstructure:"type"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App        AppConfig        `mapstructure:"app"`
	CORS       CORSConfig       `mapstructure:"cors"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
	Twilio     TwilioConfig     `mapstructure:"twilio"`
	SES        SESConfig        `mapstructure:"ses"`
	Notes      NotesConfig      `mapstructure:"notes"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数からの上書き (例: APP_SERVER_PORT)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("twilio.account_sid", "TWILIO_SID")
	viper.BindEnv("twilio.auth_token", "TWILIO_AUTH_TOKEN")
	viper.BindEnv("notes.token", "NOTION_TOKEN")
	viper.BindEnv("notes.database_id", "NOTION_DATABASE_ID")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.App.Name == "" {
		Cfg.App.Name = AppName
	}
	if Cfg.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.App.UploadDir == "" {
		log.Println("Upload dir not set, using default 'uploads'")
		Cfg.App.UploadDir = DefaultUploadDir
	}
	if Cfg.App.MaxUploadMB <= 0 {
		Cfg.App.MaxUploadMB = DefaultMaxUploadMB
	}
	if Cfg.JWT.AccessTokenTTL <= 0 {
		Cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if Cfg.Notifier.Type == "" {
		Cfg.Notifier.Type = "log"
	}
	if Cfg.Notes.Type == "" {
		Cfg.Notes.Type = "log"
	}
	if Cfg.Summarizer.Type == "" {
		Cfg.Summarizer.Type = "ollama"
	}
	if Cfg.Summarizer.BaseURL == "" {
		Cfg.Summarizer.BaseURL = DefaultOllamaBaseURL
	}
	if Cfg.Summarizer.Model == "" {
		Cfg.Summarizer.Model = DefaultSummarizerModel
	}
	if Cfg.Summarizer.Timeout <= 0 {
		Cfg.Summarizer.Timeout = DefaultSummarizerTimeout
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Upload Dir: %s", Cfg.App.UploadDir)
	log.Printf("Summarizer: %s (%s)", Cfg.Summarizer.Type, Cfg.Summarizer.Model)
	log.Printf("Notifier: %s / Notes: %s", Cfg.Notifier.Type, Cfg.Notes.Type)

	return nil
}
