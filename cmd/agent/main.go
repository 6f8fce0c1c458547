// Command agent runs the discovery and trade loop: poll tracked social
// accounts, vet new token addresses against market data and risk score,
// and execute the buy/hold/sell sequence, recording everything in the
// ledger.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"

	"sniper-agent/internal/config"
	"sniper-agent/internal/dexscreener"
	"sniper-agent/internal/domain"
	"sniper-agent/internal/notify"
	"sniper-agent/internal/observability"
	"sniper-agent/internal/riskscore"
	"sniper-agent/internal/scheduler"
	"sniper-agent/internal/social"
	"sniper-agent/internal/storage"
	chstore "sniper-agent/internal/storage/clickhouse"
	"sniper-agent/internal/storage/memory"
	"sniper-agent/internal/storage/migrations"
	"sniper-agent/internal/storage/postgres"
	"sniper-agent/internal/trade"
)

func main() {
	logger := log.New(os.Stdout, "[agent] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	wallet, err := solana.PrivateKeyFromBase58(cfg.WalletPrivateKey)
	if err != nil {
		logger.Fatalf("Failed to parse wallet private key: %v", err)
	}
	logger.Printf("Wallet: %s", wallet.PublicKey())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger, cleanup, err := createLedger(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to create ledger: %v", err)
	}
	defer cleanup()

	chain := trade.NewRPCChain(cfg.RPCEndpoint, wallet)
	executor := trade.NewExecutor(trade.Options{
		Context:        &trade.TradeContext{Chain: chain, Ledger: ledger},
		MoonbagPercent: cfg.MoonbagPercent,
		Logger:         log.New(os.Stdout, "[executor] ", log.LstdFlags),
	})

	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		notifier = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID,
			log.New(os.Stdout, "[telegram] ", log.LstdFlags))
	} else {
		logger.Println("Telegram not configured, alerts disabled")
	}

	var risk riskscore.Provider = unknownRisk{}
	if cfg.RiskScoreBaseURL != "" {
		risk = riskscore.NewHTMLProvider(cfg.RiskScoreBaseURL,
			log.New(os.Stdout, "[riskscore] ", log.LstdFlags))
	} else {
		logger.Println("Risk score source not configured, all scores unknown")
	}

	sched := scheduler.New(scheduler.Options{
		Accounts:            cfg.TrackedAccounts,
		Source:              social.NewHTTPSource(cfg.SocialBaseURL),
		Market:              dexscreener.NewClient(),
		Risk:                risk,
		Trader:              executor,
		Ledger:              ledger,
		Notifier:            notifier,
		Logger:              log.New(os.Stdout, "[scheduler] ", log.LstdFlags),
		PostLimit:           cfg.PostLimit,
		ScoreThreshold:      cfg.ScoreThreshold,
		AbortBelowThreshold: cfg.AbortBelowThreshold,
		BuyAmountSOL:        cfg.BuyAmountSOL,
		SlippageBps:         cfg.SlippageBps,
		ProfitTargetRatio:   cfg.ProfitTargetRatio,
		HoldDuration:        cfg.HoldDuration,
		CycleInterval:       cfg.CycleInterval,
	})

	done := make(chan error, 1)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	go startHTTPServer(cfg.MetricsAddr, logger)

	logger.Printf("Tracking %d accounts, cycle interval %v", len(cfg.TrackedAccounts), cfg.CycleInterval)
	err = sched.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Scheduler error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createLedger wires the storage backends: in-memory for development,
// PostgreSQL plus ClickHouse otherwise.
func createLedger(ctx context.Context, cfg *config.Config) (*storage.Ledger, func(), error) {
	if cfg.UseMemory {
		ledger := storage.NewLedger(
			memory.NewCandidateStore(),
			memory.NewAssessmentStore(),
			memory.NewSnapshotStore(),
			memory.NewSnapshotHistoryStore(),
			memory.NewOrderStore(),
			memory.NewPositionStore(),
		)
		return ledger, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	conn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	ledger := storage.NewLedger(
		postgres.NewCandidateStore(pool),
		postgres.NewAssessmentStore(pool),
		postgres.NewSnapshotStore(pool),
		chstore.NewSnapshotHistoryStore(conn),
		postgres.NewOrderStore(pool),
		postgres.NewPositionStore(pool),
	)

	cleanup := func() {
		pool.Close()
		conn.Close()
	}
	return ledger, cleanup, nil
}

// startHTTPServer serves health and Prometheus metrics.
func startHTTPServer(addr string, logger *log.Logger) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", observability.Handler())

	logger.Printf("HTTP server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Printf("HTTP server error: %v", err)
	}
}

// unknownRisk is used when no risk score source is configured.
type unknownRisk struct{}

func (unknownRisk) Score(context.Context, string) domain.Score {
	return domain.ScoreUnknown
}
