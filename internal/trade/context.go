package trade

import "sniper-agent/internal/storage"

// TradeContext groups the dependencies a trade touches. It is passed
// explicitly; nothing in this package keeps global state.
type TradeContext struct {
	Chain  ChainClient
	Ledger *storage.Ledger
}
