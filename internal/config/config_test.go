package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SNIPER_WALLET_PRIVATE_KEY", "key")
	t.Setenv("SNIPER_RPC_ENDPOINT", "https://rpc.example")
	t.Setenv("SNIPER_TRACKED_ACCOUNTS", "alpha_caller, beta_caller")
	t.Setenv("SNIPER_SOCIAL_BASE_URL", "https://social.example")
	t.Setenv("SNIPER_USE_MEMORY", "true")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.CycleInterval != time.Hour {
		t.Errorf("cycle interval = %v, want 1h", cfg.CycleInterval)
	}
	if cfg.ScoreThreshold != 85 {
		t.Errorf("score threshold = %g, want 85", cfg.ScoreThreshold)
	}
	if cfg.SlippageBps != 1500 {
		t.Errorf("slippage = %d, want 1500", cfg.SlippageBps)
	}
	if cfg.MoonbagPercent != 20 {
		t.Errorf("moonbag = %d, want 20", cfg.MoonbagPercent)
	}
	if cfg.BuyAmountSOL.String() != "0.01" {
		t.Errorf("buy amount = %s, want 0.01", cfg.BuyAmountSOL)
	}
	if cfg.ProfitTargetRatio != 2.0 {
		t.Errorf("profit target ratio = %g, want 2", cfg.ProfitTargetRatio)
	}
}

func TestLoad_TrackedAccountsSplitAndTrimmed(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.TrackedAccounts) != 2 {
		t.Fatalf("accounts = %v, want 2", cfg.TrackedAccounts)
	}
	if cfg.TrackedAccounts[1] != "beta_caller" {
		t.Errorf("second account = %q", cfg.TrackedAccounts[1])
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	t.Setenv("SNIPER_WALLET_PRIVATE_KEY", "")
	t.Setenv("SNIPER_RPC_ENDPOINT", "")
	t.Setenv("SNIPER_TRACKED_ACCOUNTS", "")
	t.Setenv("SNIPER_SOCIAL_BASE_URL", "")
	t.Setenv("SNIPER_USE_MEMORY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate should fail with everything missing")
	}
}

func TestValidate_DSNsRequiredWithoutMemory(t *testing.T) {
	setRequired(t)
	t.Setenv("SNIPER_USE_MEMORY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate should require DSNs when not in memory mode")
	}

	t.Setenv("SNIPER_POSTGRES_DSN", "postgres://u:p@localhost/db")
	t.Setenv("SNIPER_CLICKHOUSE_DSN", "clickhouse://u:p@localhost:9000/db")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_RangeChecks(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"threshold above 100", "SNIPER_SCORE_THRESHOLD", "250"},
		{"slippage full", "SNIPER_SLIPPAGE_BPS", "10000"},
		{"moonbag full", "SNIPER_MOONBAG_PERCENT", "100"},
		{"zero buy amount", "SNIPER_BUY_AMOUNT_SOL", "0"},
		{"zero profit target", "SNIPER_PROFIT_TARGET_RATIO", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate should reject %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_MalformedNumberFails(t *testing.T) {
	setRequired(t)
	t.Setenv("SNIPER_SLIPPAGE_BPS", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail on a malformed integer")
	}
}
