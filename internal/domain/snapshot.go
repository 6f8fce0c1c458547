package domain

import "github.com/shopspring/decimal"

// MarketSnapshot is one observed trading pair for a candidate. A token
// can have multiple pairs; the first pair returned by the aggregator is
// the primary one and drives trade decisions.
type MarketSnapshot struct {
	Address      string // token mint address
	TokenName    string
	Symbol       string
	PriceUSD     decimal.Decimal
	Volume24hUSD decimal.Decimal
	LiquidityUSD decimal.Decimal
	PairAddress  string
	ObservedAt   int64 // Unix timestamp in milliseconds
}
