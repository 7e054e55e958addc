package config

import (
	"time"

	"news-risk-analyzer/pkg/config"
)

// Knowledge holds the knowledge-base location.
type Knowledge struct {
	Path string `mapstructure:"path"`
}

// SourceChannel describes one input channel of news articles. Type is
// either "json" for collector dump files or "rss" for feeds; RSS
// channels read from URL when set, otherwise from Path.
type SourceChannel struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
}

// Sources configures where input articles come from. Every *.json file
// under Dir becomes a channel, followed by the explicit Channels.
type Sources struct {
	Dir      string          `mapstructure:"dir"`
	Channels []SourceChannel `mapstructure:"channels"`
}

// Analyzer holds the scoring knobs.
type Analyzer struct {
	MaxSentences      int           `mapstructure:"max_sentences"`
	HighRiskThreshold float64       `mapstructure:"high_risk_threshold"`
	TopHighRisk       int           `mapstructure:"top_high_risk"`
	MaxConcurrency    int           `mapstructure:"max_concurrency"`
	DenialPhrases     []string      `mapstructure:"denial_phrases"`
	RunTimeout        time.Duration `mapstructure:"run_timeout"`
}

// Report configures where the batch report document is written and how
// long API reads may serve it from cache.
type Report struct {
	OutputPath string        `mapstructure:"output_path"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// Scheduler configures periodic analysis runs.
type Scheduler struct {
	Enabled    bool   `mapstructure:"enabled"`
	Cron       string `mapstructure:"cron"`
	RunOnStart bool   `mapstructure:"run_on_start"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Trigger bounds how often analysis runs may be requested over the API.
type Trigger struct {
	MaxRequestPerMinute int `mapstructure:"max_request_per_minute"`
}

// Config holds the full configuration for the analyzer service.
type Config struct {
	App       config.App    `mapstructure:"app"`
	Logger    config.Logger `mapstructure:"logger"`
	API       config.API    `mapstructure:"api"`
	Redis     config.Redis  `mapstructure:"redis"`
	Knowledge Knowledge     `mapstructure:"knowledge"`
	Sources   Sources       `mapstructure:"sources"`
	Analyzer  Analyzer      `mapstructure:"analyzer"`
	Report    Report        `mapstructure:"report"`
	Scheduler Scheduler     `mapstructure:"scheduler"`
	Telegram  Telegram      `mapstructure:"telegram"`
	Trigger   Trigger       `mapstructure:"trigger"`
}

// Load loads the analyzer configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
