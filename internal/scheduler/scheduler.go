// Package scheduler drives the discovery and trade cycle: poll tracked
// accounts, extract candidate addresses, vet them against market data
// and risk score, then buy, hold and sell. Each external call is a
// local failure boundary; a cycle never aborts because one account or
// one candidate misbehaved.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"sniper-agent/internal/dexscreener"
	"sniper-agent/internal/domain"
	"sniper-agent/internal/extract"
	"sniper-agent/internal/notify"
	"sniper-agent/internal/observability"
	"sniper-agent/internal/riskscore"
	"sniper-agent/internal/social"
	"sniper-agent/internal/storage"
	"sniper-agent/internal/trade"
)

// MarketData provides trading pair snapshots for a token address.
type MarketData interface {
	Pairs(ctx context.Context, address string) ([]domain.MarketSnapshot, error)
}

// Trader executes buy and sell orders.
type Trader interface {
	Buy(ctx context.Context, address string, amountSOL decimal.Decimal, slippageBps int) (*domain.TradeOrder, error)
	Sell(ctx context.Context, address string, profitTargetRatio float64) (*domain.TradeOrder, error)
}

// Compile-time checks against the concrete implementations.
var (
	_ MarketData = (*dexscreener.Client)(nil)
	_ Trader     = (*trade.Executor)(nil)
)

// Options configures a Scheduler.
type Options struct {
	Accounts []domain.TrackedAccount
	Source   social.Source
	Market   MarketData
	Risk     riskscore.Provider
	Trader   Trader
	Ledger   *storage.Ledger
	Notifier notify.Notifier
	Logger   *log.Logger

	// PostLimit is how many recent posts to scan per account.
	PostLimit int
	// ScoreThreshold triggers an alert when a known score falls below it.
	ScoreThreshold float64
	// AbortBelowThreshold skips the trade for candidates whose score is
	// below the threshold instead of only alerting.
	AbortBelowThreshold bool
	BuyAmountSOL        decimal.Decimal
	SlippageBps         int
	// ProfitTargetRatio is passed to the trader on sell. Advisory only;
	// the sell happens after HoldDuration either way.
	ProfitTargetRatio float64
	// HoldDuration is the wait between a confirmed buy and the sell.
	HoldDuration time.Duration
	// CycleInterval is the pause between full scans in Run.
	CycleInterval time.Duration
}

// CycleResult summarizes one full scan.
type CycleResult struct {
	AccountsScanned int
	PostsFetched    int
	NewCandidates   int
	Alerts          int
	Buys            int
	Sells           int
	Errors          int
}

// Scheduler owns the discovery loop.
type Scheduler struct {
	opts   Options
	logger *log.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a Scheduler from options.
func New(opts Options) *Scheduler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[scheduler] ", log.LstdFlags)
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.PostLimit <= 0 {
		opts.PostLimit = 10
	}
	return &Scheduler{
		opts:   opts,
		logger: logger,
		sleep:  sleepCtx,
	}
}

// Run executes cycles until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		start := time.Now()
		result := s.RunCycle(ctx)
		status := "ok"
		if result.Errors > 0 {
			status = "degraded"
		}
		observability.RecordCycle(status, time.Since(start).Seconds())
		observability.DefaultMetrics.LastSuccessfulScan.SetToCurrentTime()

		s.logger.Printf("cycle done: %d accounts, %d posts, %d new candidates, %d alerts, %d buys, %d sells, %d errors",
			result.AccountsScanned, result.PostsFetched, result.NewCandidates,
			result.Alerts, result.Buys, result.Sells, result.Errors)

		if err := s.sleep(ctx, s.opts.CycleInterval); err != nil {
			return err
		}
	}
}

// RunCycle scans every tracked account once.
func (s *Scheduler) RunCycle(ctx context.Context) *CycleResult {
	result := &CycleResult{}

	for _, account := range s.opts.Accounts {
		if ctx.Err() != nil {
			return result
		}
		s.scanAccount(ctx, account, result)
		result.AccountsScanned++
	}

	return result
}

// scanAccount fetches one account's posts and processes every new
// address found in them.
func (s *Scheduler) scanAccount(ctx context.Context, account domain.TrackedAccount, result *CycleResult) {
	posts, err := s.opts.Source.RecentPosts(ctx, account.String(), s.opts.PostLimit)
	if err != nil {
		s.logger.Printf("fetch posts for %s: %v", account, err)
		result.Errors++
		return
	}
	result.PostsFetched += len(posts)
	observability.RecordPostsFetched(account.String(), len(posts))

	texts := make([]string, 0, len(posts))
	for _, p := range posts {
		texts = append(texts, p.Text)
	}

	addresses := extract.Addresses(texts)
	symbols := extract.Symbols(texts)
	observability.DefaultMetrics.AddressesExtracted.Add(float64(len(addresses)))

	for _, address := range addresses {
		if ctx.Err() != nil {
			return
		}
		s.processCandidate(ctx, account, address, symbols, result)
	}
}

// processCandidate records a sighting and, for a first sighting, runs
// the vet-and-trade pipeline.
func (s *Scheduler) processCandidate(ctx context.Context, account domain.TrackedAccount, address string, symbols []string, result *CycleResult) {
	known, err := s.opts.Ledger.HasCandidate(ctx, address)
	if err != nil {
		s.logger.Printf("check candidate %s: %v", address, err)
		result.Errors++
		return
	}

	if err := s.opts.Ledger.UpsertCandidate(ctx, address, symbols, account.String()); err != nil {
		s.logger.Printf("record candidate %s: %v", address, err)
		result.Errors++
		return
	}

	if known {
		observability.RecordCandidateSkipped()
		return
	}
	observability.RecordCandidateDiscovered()
	result.NewCandidates++
	s.logger.Printf("new candidate %s from %s", address, account)

	tradable := s.vet(ctx, address, result)
	if !tradable {
		return
	}

	s.trade(ctx, address, result)
}

// vet fetches market data and the risk score for a fresh candidate.
// Returns false when the candidate must not be traded: no market data,
// or a below-threshold score with the abort policy enabled.
func (s *Scheduler) vet(ctx context.Context, address string, result *CycleResult) bool {
	snapshots, err := s.opts.Market.Pairs(ctx, address)
	if err != nil {
		s.logger.Printf("market data for %s: %v", address, err)
		result.Errors++
		return false
	}
	if len(snapshots) == 0 {
		s.logger.Printf("no trading pairs for %s, skipping", address)
		return false
	}

	refs := make([]*domain.MarketSnapshot, len(snapshots))
	for i := range snapshots {
		refs[i] = &snapshots[i]
	}
	if err := s.opts.Ledger.RecordSnapshots(ctx, refs); err != nil {
		s.logger.Printf("record snapshots for %s: %v", address, err)
		result.Errors++
	}
	observability.DefaultMetrics.SnapshotsRecorded.Add(float64(len(snapshots)))

	score := s.opts.Risk.Score(ctx, address)
	if err := s.opts.Ledger.RecordAssessment(ctx, address, score); err != nil {
		s.logger.Printf("record assessment for %s: %v", address, err)
		result.Errors++
	}

	if !score.Known {
		observability.DefaultMetrics.ScoresUnknown.Inc()
		s.logger.Printf("risk score for %s unknown, proceeding", address)
		return true
	}

	if score.Below(s.opts.ScoreThreshold) {
		observability.DefaultMetrics.ScoresBelowLimit.Inc()
		text := fmt.Sprintf("risk alert: %s scored %g, below threshold %g",
			address, score.Value, s.opts.ScoreThreshold)
		ok := s.opts.Notifier.Notify(ctx, text)
		observability.RecordAlert(ok)
		if ok {
			result.Alerts++
		}
		if s.opts.AbortBelowThreshold {
			s.logger.Printf("aborting trade for %s: score %g below %g",
				address, score.Value, s.opts.ScoreThreshold)
			return false
		}
	}

	return true
}

// trade runs buy, hold, sell for a vetted candidate. A failed buy ends
// the sequence; a failed sell leaves the position open for a later
// cycle.
func (s *Scheduler) trade(ctx context.Context, address string, result *CycleResult) {
	open, err := s.opts.Ledger.HasOpenPosition(ctx, address)
	if err != nil {
		s.logger.Printf("check position for %s: %v", address, err)
		result.Errors++
		return
	}
	if open {
		s.logger.Printf("position already open for %s, skipping buy", address)
		return
	}

	buyOrder, err := s.opts.Trader.Buy(ctx, address, s.opts.BuyAmountSOL, s.opts.SlippageBps)
	if err != nil {
		s.logger.Printf("buy %s: %v", address, err)
		observability.RecordOrder(string(domain.SideBuy), true)
		result.Errors++
		return
	}
	observability.RecordOrder(string(domain.SideBuy), false)
	observability.DefaultMetrics.PositionsOpened.Inc()
	result.Buys++
	s.notifyTrade(ctx, buyOrder)

	if err := s.sleep(ctx, s.opts.HoldDuration); err != nil {
		return
	}

	sellOrder, err := s.opts.Trader.Sell(ctx, address, s.opts.ProfitTargetRatio)
	if err != nil {
		s.logger.Printf("sell %s: %v", address, err)
		observability.RecordOrder(string(domain.SideSell), true)
		result.Errors++
		return
	}
	observability.RecordOrder(string(domain.SideSell), false)
	observability.DefaultMetrics.PositionsClosed.Inc()
	result.Sells++
	s.notifyTrade(ctx, sellOrder)
}

// notifyTrade reports a confirmed order to the operator.
func (s *Scheduler) notifyTrade(ctx context.Context, order *domain.TradeOrder) {
	if order == nil {
		return
	}
	sig := ""
	if order.Signature != nil {
		sig = *order.Signature
	}
	text := fmt.Sprintf("%s %s: %d base units, signature %s",
		order.Side, order.Address, order.RequestedAmount, sig)
	observability.RecordAlert(s.opts.Notifier.Notify(ctx, text))
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
