package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Google Ads proxy API
	ProxyBaseURL    string `env:"GOOGLE_ADS_PROXY_URL" envDefault:"https://google-ads.theaio.co/api/google-ads"`
	APIVersion      string `env:"GOOGLE_ADS_API_VERSION" envDefault:"v20"`
	OrgID           string `env:"GOOGLE_ADS_ORG_ID"`
	LinkedAccountID string `env:"GOOGLE_ADS_LINKED_ACCOUNT_ID"`
	RootMCCID       string `env:"GOOGLE_ADS_MCC_ID" envDefault:"1639353427"`

	// Auth: a permanent token wins over the session file
	PermanentJWTToken string `env:"PERMANENT_JWT_TOKEN"`
	SessionFilePath   string `env:"SESSION_FILE_PATH" envDefault:"data/session.json"`

	// Learning storage
	EventLogPath        string `env:"EVENT_LOG_PATH" envDefault:"data/api_success_log.json"`
	LearningContextPath string `env:"LEARNING_CONTEXT_PATH" envDefault:"data/ai_learning_context.json"`

	// Daily learning summary (cron spec, UTC)
	ReportSchedule string `env:"REPORT_SCHEDULE" envDefault:"0 21 * * *"`

	// Optional advisor LLM
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
