// Package config exposes the strongly typed application configuration,
// assembled once at startup and passed into the pipeline and triggers. The
// core never reads the environment itself.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/juv/sma-tracker/internal/apperr"
)

// Execution modes recognized at startup.
const (
	ModeOnce   = "once"
	ModeCron   = "cron"
	ModeServer = "server"
)

// App captures process-wide runtime settings.
type App struct {
	Mode        string `yaml:"mode" envconfig:"EXECUTION_MODE"`
	LogLevel    string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	MetricsAddr string `yaml:"metrics_addr" envconfig:"METRICS_ADDR"`
}

// Market describes the upstream chart API request parameters.
type Market struct {
	BaseURL    string `yaml:"base_url" envconfig:"YAHOO_FINANCE_API_URL"`
	Symbol     string `yaml:"symbol" envconfig:"MARKET_SYMBOL"`
	WindowDays int    `yaml:"window_days" envconfig:"MARKET_WINDOW_DAYS"`
	TimeoutMS  int    `yaml:"timeout_ms" envconfig:"MARKET_HTTP_TIMEOUT_MS"`
}

// Timeout returns the HTTP client timeout as a duration.
func (m Market) Timeout() time.Duration { return time.Duration(m.TimeoutMS) * time.Millisecond }

// Evaluation selects the classification strategy.
type Evaluation struct {
	Mode string `yaml:"mode" envconfig:"EVAL_MODE"`
}

// Schedule configures the recurring trigger. The cron expression uses the
// six-field grammar with a leading seconds column.
type Schedule struct {
	Cron string `yaml:"cron" envconfig:"CRON_SCHEDULE"`
}

// Telegram holds the delivery credentials for the notification channel. An
// empty token leaves the tracker logging reports instead of sending them.
type Telegram struct {
	Token     string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID    int64  `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	TimeoutMS int    `yaml:"timeout_ms" envconfig:"TELEGRAM_HTTP_TIMEOUT_MS"`
}

// Timeout returns the HTTP client timeout as a duration.
func (t Telegram) Timeout() time.Duration { return time.Duration(t.TimeoutMS) * time.Millisecond }

// Config collects every configuration leaf.
type Config struct {
	App      App        `yaml:"app"`
	Market   Market     `yaml:"market"`
	Eval     Evaluation `yaml:"evaluation"`
	Schedule Schedule   `yaml:"schedule"`
	Telegram Telegram   `yaml:"telegram"`
}

func defaults() Config {
	return Config{
		App: App{
			Mode:        ModeOnce,
			LogLevel:    "info",
			MetricsAddr: ":9102",
		},
		Market: Market{
			BaseURL:    "https://query1.finance.yahoo.com",
			Symbol:     "^GSPC",
			WindowDays: 200,
			TimeoutMS:  10000,
		},
		Eval: Evaluation{
			Mode: "two-factor",
		},
		Schedule: Schedule{
			Cron: "0 */1 * * * 1-5",
		},
		Telegram: Telegram{
			TimeoutMS: 30000,
		},
	}
}

// Load assembles the configuration: built-in defaults, overlaid with an
// optional YAML file (path may be empty), overlaid with environment
// variables. The result is validated before anything else runs.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: open config file: %v", apperr.ErrConfig, err)
		}
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: decode config file: %v", apperr.ErrConfig, err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.App.Mode {
	case ModeOnce, ModeCron, ModeServer:
	default:
		return fmt.Errorf("%w: unsupported execution mode %q", apperr.ErrConfig, c.App.Mode)
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("%w: market base URL must not be empty", apperr.ErrConfig)
	}
	if c.Market.Symbol == "" {
		return fmt.Errorf("%w: market symbol must not be empty", apperr.ErrConfig)
	}
	if c.Market.WindowDays <= 0 {
		return fmt.Errorf("%w: window days must be positive, got %d", apperr.ErrConfig, c.Market.WindowDays)
	}
	if c.App.Mode == ModeServer {
		if c.Telegram.Token == "" {
			return fmt.Errorf("%w: server mode requires a telegram bot token", apperr.ErrConfig)
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("%w: server mode requires a telegram chat id", apperr.ErrConfig)
		}
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("%w: telegram token set without a chat id", apperr.ErrConfig)
	}
	return nil
}
