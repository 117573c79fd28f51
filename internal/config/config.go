package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "MOVIE_SCANNER_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	listingURLEnv    = "MOVIE_SCANNER_LISTING_URL"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Site          SiteConfig         `yaml:"site"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Database      DatabaseConfig     `yaml:"database"`
	Report        ReportConfig       `yaml:"report"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// SiteConfig identifies the review site and the single listing view to scrape.
type SiteConfig struct {
	Scanner    string `yaml:"scanner"`
	BaseURL    string `yaml:"baseUrl"`
	ListingURL string `yaml:"listingUrl"`
}

// FetchConfig tunes the HTTP layer: worker pool width, per-request timeout,
// bounded retries with backoff.
type FetchConfig struct {
	Concurrency    int    `yaml:"concurrency"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	RetryMax       int    `yaml:"retryMax"`
	BackoffMillis  int    `yaml:"backoffMillis"`
	UserAgent      string `yaml:"userAgent"`
}

// Timeout resolves the per-request timeout.
func (f FetchConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Backoff resolves the base retry backoff.
func (f FetchConfig) Backoff() time.Duration {
	if f.BackoffMillis <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(f.BackoffMillis) * time.Millisecond
}

// DatabaseConfig describes Postgres connection details. An empty DSN disables
// persistence; the pipeline still runs end to end.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ReportConfig controls where the reporting layer writes its artifacts.
type ReportConfig struct {
	OutputDir string `yaml:"outputDir"`
	Plots     bool   `yaml:"plots"`
}

// SchedulerConfig defines whether and how often the scrape repeats.
type SchedulerConfig struct {
	Enabled       bool `yaml:"enabled"`
	IntervalHours int  `yaml:"intervalHours"`
}

// Interval resolves the repeat interval for scheduled runs.
func (s SchedulerConfig) Interval() time.Duration {
	if s.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.IntervalHours) * time.Hour
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig selects log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(listingURLEnv); v != "" {
		c.Site.ListingURL = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Site.Scanner != "" {
		base.Site.Scanner = override.Site.Scanner
	}
	if override.Site.BaseURL != "" {
		base.Site.BaseURL = override.Site.BaseURL
	}
	if override.Site.ListingURL != "" {
		base.Site.ListingURL = override.Site.ListingURL
	}

	if override.Fetch.Concurrency > 0 {
		base.Fetch.Concurrency = override.Fetch.Concurrency
	}
	if override.Fetch.TimeoutSeconds > 0 {
		base.Fetch.TimeoutSeconds = override.Fetch.TimeoutSeconds
	}
	if override.Fetch.RetryMax > 0 {
		base.Fetch.RetryMax = override.Fetch.RetryMax
	}
	if override.Fetch.BackoffMillis > 0 {
		base.Fetch.BackoffMillis = override.Fetch.BackoffMillis
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Report.OutputDir != "" {
		base.Report.OutputDir = override.Report.OutputDir
	}
	if override.Report.Plots {
		base.Report.Plots = true
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.IntervalHours > 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Scanner:    "metacritic",
			BaseURL:    "https://www.metacritic.com",
			ListingURL: "https://www.metacritic.com/browse/movies/score/metascore/all/filtered?sort=desc",
		},
		Fetch: FetchConfig{
			Concurrency:    4,
			TimeoutSeconds: 20,
			RetryMax:       2,
			BackoffMillis:  500,
			UserAgent:      "MovieScanner/1.0",
		},
		Database: DatabaseConfig{DSN: ""},
		Report:   ReportConfig{OutputDir: "reports", Plots: true},
		Scheduler: SchedulerConfig{
			Enabled:       false,
			IntervalHours: 24,
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
