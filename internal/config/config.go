// Package config loads agent configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"sniper-agent/internal/domain"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultCycleInterval  = 1 * time.Hour
	DefaultHoldDuration   = 5 * time.Minute
	DefaultPostLimit      = 10
	DefaultScoreThreshold = 85.0
	DefaultSlippageBps    = 1500
	DefaultMoonbagPercent = 20
	// DefaultProfitTargetRatio is the x-multiple a sell aims for. It is
	// advisory: the agent sells after the hold window regardless.
	DefaultProfitTargetRatio = 2.0
	DefaultBuyAmountSOL      = "0.01"
	DefaultMetricsAddr       = ":9090"
)

// Config is the full agent configuration.
type Config struct {
	// Chain
	WalletPrivateKey string
	RPCEndpoint      string

	// Discovery
	TrackedAccounts []domain.TrackedAccount
	SocialBaseURL   string
	PostLimit       int

	// Vetting
	RiskScoreBaseURL    string
	ScoreThreshold      float64
	AbortBelowThreshold bool

	// Trading
	BuyAmountSOL      decimal.Decimal
	SlippageBps       int
	MoonbagPercent    int
	ProfitTargetRatio float64
	HoldDuration      time.Duration

	// Notifications
	TelegramToken  string
	TelegramChatID string

	// Storage
	PostgresDSN   string
	ClickhouseDSN string
	UseMemory     bool

	// Scheduling and observability
	CycleInterval time.Duration
	MetricsAddr   string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win over file entries.
func Load() (*Config, error) {
	// Ignore a missing .env; only the environment is authoritative.
	_ = godotenv.Load()

	cfg := &Config{
		WalletPrivateKey:    os.Getenv("SNIPER_WALLET_PRIVATE_KEY"),
		RPCEndpoint:         os.Getenv("SNIPER_RPC_ENDPOINT"),
		SocialBaseURL:       os.Getenv("SNIPER_SOCIAL_BASE_URL"),
		RiskScoreBaseURL:    os.Getenv("SNIPER_RISKSCORE_BASE_URL"),
		TelegramToken:       os.Getenv("SNIPER_TELEGRAM_TOKEN"),
		TelegramChatID:      os.Getenv("SNIPER_TELEGRAM_CHAT_ID"),
		PostgresDSN:         os.Getenv("SNIPER_POSTGRES_DSN"),
		ClickhouseDSN:       os.Getenv("SNIPER_CLICKHOUSE_DSN"),
		MetricsAddr:         envOr("SNIPER_METRICS_ADDR", DefaultMetricsAddr),
		AbortBelowThreshold: envBool("SNIPER_ABORT_BELOW_THRESHOLD"),
		UseMemory:           envBool("SNIPER_USE_MEMORY"),
	}

	for _, raw := range strings.Split(os.Getenv("SNIPER_TRACKED_ACCOUNTS"), ",") {
		account := strings.TrimSpace(raw)
		if account != "" {
			cfg.TrackedAccounts = append(cfg.TrackedAccounts, domain.TrackedAccount(account))
		}
	}

	var err error
	if cfg.PostLimit, err = envInt("SNIPER_POST_LIMIT", DefaultPostLimit); err != nil {
		return nil, err
	}
	if cfg.ScoreThreshold, err = envFloat("SNIPER_SCORE_THRESHOLD", DefaultScoreThreshold); err != nil {
		return nil, err
	}
	if cfg.SlippageBps, err = envInt("SNIPER_SLIPPAGE_BPS", DefaultSlippageBps); err != nil {
		return nil, err
	}
	if cfg.MoonbagPercent, err = envInt("SNIPER_MOONBAG_PERCENT", DefaultMoonbagPercent); err != nil {
		return nil, err
	}
	if cfg.ProfitTargetRatio, err = envFloat("SNIPER_PROFIT_TARGET_RATIO", DefaultProfitTargetRatio); err != nil {
		return nil, err
	}
	if cfg.HoldDuration, err = envDuration("SNIPER_HOLD_DURATION", DefaultHoldDuration); err != nil {
		return nil, err
	}
	if cfg.CycleInterval, err = envDuration("SNIPER_CYCLE_INTERVAL", DefaultCycleInterval); err != nil {
		return nil, err
	}

	buyAmount := envOr("SNIPER_BUY_AMOUNT_SOL", DefaultBuyAmountSOL)
	if cfg.BuyAmountSOL, err = decimal.NewFromString(buyAmount); err != nil {
		return nil, fmt.Errorf("SNIPER_BUY_AMOUNT_SOL: %w", err)
	}

	return cfg, nil
}

// Validate checks that every required variable is present and every
// numeric one is in range. A failure here is fatal at startup.
func (c *Config) Validate() error {
	var missing []string
	if c.WalletPrivateKey == "" {
		missing = append(missing, "SNIPER_WALLET_PRIVATE_KEY")
	}
	if c.RPCEndpoint == "" {
		missing = append(missing, "SNIPER_RPC_ENDPOINT")
	}
	if len(c.TrackedAccounts) == 0 {
		missing = append(missing, "SNIPER_TRACKED_ACCOUNTS")
	}
	if c.SocialBaseURL == "" {
		missing = append(missing, "SNIPER_SOCIAL_BASE_URL")
	}
	if !c.UseMemory {
		if c.PostgresDSN == "" {
			missing = append(missing, "SNIPER_POSTGRES_DSN")
		}
		if c.ClickhouseDSN == "" {
			missing = append(missing, "SNIPER_CLICKHOUSE_DSN")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.ScoreThreshold < 0 || c.ScoreThreshold > 100 {
		return fmt.Errorf("SNIPER_SCORE_THRESHOLD %g out of range [0,100]", c.ScoreThreshold)
	}
	if c.SlippageBps < 0 || c.SlippageBps >= 10_000 {
		return fmt.Errorf("SNIPER_SLIPPAGE_BPS %d out of range [0,10000)", c.SlippageBps)
	}
	if c.MoonbagPercent < 0 || c.MoonbagPercent >= 100 {
		return fmt.Errorf("SNIPER_MOONBAG_PERCENT %d out of range [0,100)", c.MoonbagPercent)
	}
	if c.BuyAmountSOL.Sign() <= 0 {
		return fmt.Errorf("SNIPER_BUY_AMOUNT_SOL %s must be positive", c.BuyAmountSOL)
	}
	if c.ProfitTargetRatio <= 0 {
		return fmt.Errorf("SNIPER_PROFIT_TARGET_RATIO %g must be positive", c.ProfitTargetRatio)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
