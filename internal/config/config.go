// Load envs from .env
// Load YAML config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Delays holds the pacing bounds (milliseconds) used to throttle requests
// and mimic human timing. Bounds are policy, not correctness: zero values
// mean "no delay" and are what the tests use.
type Delays struct {
	//Bounded UI waits (element presence/clickability/invisibility)
	WaitTimeoutMs int `yaml:"wait_timeout_ms"`
	//Fixed settle after navigating to the site root, before the liveness check
	LoginSettleMs int `yaml:"login_settle_ms"`
	//Randomized settle after listing titles appear
	CardMinMs int `yaml:"card_min_ms"`
	CardMaxMs int `yaml:"card_max_ms"`
	//Randomized pause between result pages
	PageMinMs int `yaml:"page_min_ms"`
	PageMaxMs int `yaml:"page_max_ms"`
	//Randomized pause between search URLs
	URLMinMs int `yaml:"url_min_ms"`
	URLMaxMs int `yaml:"url_max_ms"`
	//Randomized settle after opening a vacancy page
	OpenMinMs int `yaml:"open_min_ms"`
	OpenMaxMs int `yaml:"open_max_ms"`
	//Fixed settle after clicking apply, before the URL comparison
	ClickSettleMs int `yaml:"click_settle_ms"`
	//Short probe for the country/relocation alert
	AlertProbeMs int `yaml:"alert_probe_ms"`
}

type Config struct {
	//Site root, also used for cookie replay
	BaseURL string `yaml:"base_url"`
	//Paths
	AccountsDir string `yaml:"accounts_dir"`
	LogsDir     string `yaml:"logs_dir"`
	//Pacing
	Delays Delays `yaml:"delays"`
	//Optional run-summary reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

// DefaultDelays returns the pacing bounds the automation was tuned with.
func DefaultDelays() Delays {
	return Delays{
		WaitTimeoutMs: 15000,
		LoginSettleMs: 2000,
		CardMinMs:     1200,
		CardMaxMs:     2500,
		PageMinMs:     1500,
		PageMaxMs:     3000,
		URLMinMs:      2000,
		URLMaxMs:      4000,
		OpenMinMs:     1500,
		OpenMaxMs:     2000,
		ClickSettleMs: 2000,
		AlertProbeMs:  200,
	}
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hh.ru"
	}

	if cfg.AccountsDir == "" {
		cfg.AccountsDir = "accounts"
	}

	if cfg.LogsDir == "" {
		cfg.LogsDir = "logs"
	}

	def := DefaultDelays()
	if cfg.Delays.WaitTimeoutMs == 0 {
		cfg.Delays.WaitTimeoutMs = def.WaitTimeoutMs
	}
	if cfg.Delays.LoginSettleMs == 0 {
		cfg.Delays.LoginSettleMs = def.LoginSettleMs
	}
	if cfg.Delays.CardMaxMs == 0 {
		cfg.Delays.CardMinMs, cfg.Delays.CardMaxMs = def.CardMinMs, def.CardMaxMs
	}
	if cfg.Delays.PageMaxMs == 0 {
		cfg.Delays.PageMinMs, cfg.Delays.PageMaxMs = def.PageMinMs, def.PageMaxMs
	}
	if cfg.Delays.URLMaxMs == 0 {
		cfg.Delays.URLMinMs, cfg.Delays.URLMaxMs = def.URLMinMs, def.URLMaxMs
	}
	if cfg.Delays.OpenMaxMs == 0 {
		cfg.Delays.OpenMinMs, cfg.Delays.OpenMaxMs = def.OpenMinMs, def.OpenMaxMs
	}
	if cfg.Delays.ClickSettleMs == 0 {
		cfg.Delays.ClickSettleMs = def.ClickSettleMs
	}
	if cfg.Delays.AlertProbeMs == 0 {
		cfg.Delays.AlertProbeMs = def.AlertProbeMs
	}

	return cfg
}
