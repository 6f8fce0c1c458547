package trade

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/storage"
)

// ErrNoBalance is returned when the wallet cannot cover the requested
// trade.
var ErrNoBalance = errors.New("insufficient balance")

// feeReserveLamports is kept aside so a buy never drains the lamports
// needed to pay the transaction fee.
const feeReserveLamports = 5_000

// Options configures an Executor.
type Options struct {
	Context *TradeContext
	// MoonbagPercent is the share of a position retained on sell.
	MoonbagPercent int
	Logger         *log.Logger
}

// Executor turns buy and sell decisions into chain transactions and
// ledger records. Every outcome, including a failure, leaves an order
// row behind.
type Executor struct {
	chain          ChainClient
	ledger         *storage.Ledger
	moonbagPercent int
	logger         *log.Logger
	now            func() time.Time
}

// NewExecutor creates an Executor from options.
func NewExecutor(opts Options) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[executor] ", log.LstdFlags)
	}
	return &Executor{
		chain:          opts.Context.Chain,
		ledger:         opts.Context.Ledger,
		moonbagPercent: opts.MoonbagPercent,
		logger:         logger,
		now:            time.Now,
	}
}

// Buy spends amountSOL on the token at address and opens a position.
// The requested amount is reduced by the slippage tolerance before
// submission. Returns ErrNoBalance if the wallet cannot cover the
// amount plus the fee reserve.
func (e *Executor) Buy(ctx context.Context, address string, amountSOL decimal.Decimal, slippageBps int) (*domain.TradeOrder, error) {
	lamports := LamportsFromSOL(amountSOL)
	if lamports == 0 {
		return nil, fmt.Errorf("buy amount %s SOL is below one lamport", amountSOL)
	}
	requested := ApplySlippage(lamports, slippageBps)

	order := e.newOrder(domain.SideBuy, address, requested, slippageBps)

	balance, err := e.chain.Balance(ctx)
	if err != nil {
		return e.fail(ctx, order, fmt.Sprintf("balance check: %v", err)), fmt.Errorf("check balance: %w", err)
	}
	if balance < requested+feeReserveLamports {
		e.logger.Printf("buy %s: balance %d lamports below requested %d", address, balance, requested)
		return e.fail(ctx, order, "insufficient SOL balance"), ErrNoBalance
	}

	destination := e.resolveDestination(ctx, address)
	sig, err := e.chain.SubmitTransfer(ctx, destination, requested)
	if err != nil {
		return e.fail(ctx, order, fmt.Sprintf("submit: %v", err)), fmt.Errorf("submit buy: %w", err)
	}

	order.Signature = &sig
	order.Status = domain.OrderConfirmed
	e.record(ctx, order)

	if err := e.ledger.OpenPosition(ctx, address, requested, e.moonbagPercent); err != nil {
		return order, fmt.Errorf("open position: %w", err)
	}

	e.logger.Printf("buy %s: %d lamports confirmed, signature %s", address, requested, sig)
	return order, nil
}

// Sell disposes of the open position in address, retaining the
// position's moonbag share of the current token balance. The sell is
// unconditional: profitTargetRatio is an advisory knob that is logged
// with the outcome but never gates the trade. Returns ErrNoBalance if
// the wallet holds none of the token; the position stays open in that
// case.
func (e *Executor) Sell(ctx context.Context, address string, profitTargetRatio float64) (*domain.TradeOrder, error) {
	pos, err := e.ledger.Positions.GetOpen(ctx, address)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNoOpenPosition
		}
		return nil, fmt.Errorf("get open position: %w", err)
	}

	balance, err := e.chain.TokenBalance(ctx, address)
	if err != nil {
		order := e.newOrder(domain.SideSell, address, 0, 0)
		return e.fail(ctx, order, fmt.Sprintf("token balance check: %v", err)), fmt.Errorf("check token balance: %w", err)
	}

	amount := SellAmount(balance, pos.MoonbagPercent)
	order := e.newOrder(domain.SideSell, address, amount, 0)

	if balance == 0 || amount == 0 {
		e.logger.Printf("sell %s: no sellable token balance", address)
		return e.fail(ctx, order, "no token balance"), ErrNoBalance
	}

	destination := e.resolveDestination(ctx, address)
	sig, err := e.chain.SubmitTokenTransfer(ctx, address, destination, amount)
	if err != nil {
		return e.fail(ctx, order, fmt.Sprintf("submit: %v", err)), fmt.Errorf("submit sell: %w", err)
	}

	order.Signature = &sig
	order.Status = domain.OrderConfirmed
	e.record(ctx, order)

	if err := e.ledger.ClosePosition(ctx, address); err != nil {
		return order, fmt.Errorf("close position: %w", err)
	}

	e.logger.Printf("sell %s: %d of %d base units confirmed, moonbag %d%%, profit target x%g advisory, signature %s",
		address, amount, balance, pos.MoonbagPercent, profitTargetRatio, sig)
	return order, nil
}

// resolveDestination prefers the primary pair address from the latest
// snapshot and falls back to the token address itself.
func (e *Executor) resolveDestination(ctx context.Context, address string) string {
	snap, err := e.ledger.LatestSnapshot(ctx, address)
	if err == nil && snap.PairAddress != "" {
		return snap.PairAddress
	}
	return address
}

// newOrder builds a pending order with a fresh ULID.
func (e *Executor) newOrder(side domain.Side, address string, amount uint64, slippageBps int) *domain.TradeOrder {
	return &domain.TradeOrder{
		OrderID:         ulid.Make().String(),
		Address:         address,
		Side:            side,
		RequestedAmount: amount,
		SlippageBps:     slippageBps,
		Status:          domain.OrderPending,
		SubmittedAt:     e.now().UnixMilli(),
	}
}

// fail marks the order failed with a reason and records it.
func (e *Executor) fail(ctx context.Context, order *domain.TradeOrder, reason string) *domain.TradeOrder {
	order.Status = domain.OrderFailed
	order.Reason = reason
	e.record(ctx, order)
	return order
}

// record persists the order. A ledger write failure here is logged but
// never masks the trade outcome.
func (e *Executor) record(ctx context.Context, order *domain.TradeOrder) {
	if err := e.ledger.RecordOrder(ctx, order); err != nil {
		e.logger.Printf("record order %s: %v", order.OrderID, err)
	}
}
