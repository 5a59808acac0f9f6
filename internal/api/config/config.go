package config

import (
	"market-lens/pkg/config"
)

// CORS holds the origins allowed to call the API from a browser.
type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	SearchBaseURL       string `mapstructure:"search_base_url"`
	RSSBaseURL          string `mapstructure:"rss_base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CacheTTLSeconds     int    `mapstructure:"cache_ttl_seconds"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider         string `mapstructure:"provider"`
	CacheTTLMinutes  int    `mapstructure:"cache_ttl_minutes"`
	NewsContextItems int    `mapstructure:"news_context_items"`
}

// Stockbit holds the configuration for the Stockbit proxy.
type Stockbit struct {
	BaseURL                   string `mapstructure:"base_url"`
	ExodusBaseURL             string `mapstructure:"exodus_base_url"`
	DefaultScreenerTemplateID string `mapstructure:"default_screener_template_id"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Signals holds retention settings for recorded AI signals.
type Signals struct {
	RetentionDays int    `mapstructure:"retention_days"`
	PruneSchedule string `mapstructure:"prune_schedule"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	API          config.API      `mapstructure:"api"`
	CORS         CORS            `mapstructure:"cors"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Gemini       Gemini          `mapstructure:"gemini"`
	AI           AI              `mapstructure:"ai"`
	Stockbit     Stockbit        `mapstructure:"stockbit"`
	Telegram     Telegram        `mapstructure:"telegram"`
	Signals      Signals         `mapstructure:"signals"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
