package trade

import "github.com/shopspring/decimal"

// lamportsPerSOL is the number of base units in one SOL.
const lamportsPerSOL = 1_000_000_000

// LamportsFromSOL converts a SOL amount to lamports, truncating any
// fraction below one lamport. Never rounds up.
func LamportsFromSOL(sol decimal.Decimal) uint64 {
	lamports := sol.Shift(9).Truncate(0)
	if lamports.Sign() <= 0 {
		return 0
	}
	return uint64(lamports.IntPart())
}

// ApplySlippage reduces amount by the slippage tolerance in basis
// points, using integer math with truncation. The quotient/remainder
// split keeps every intermediate product inside uint64 even for
// amounts near the top of the range.
func ApplySlippage(amount uint64, slippageBps int) uint64 {
	if slippageBps <= 0 {
		return amount
	}
	if slippageBps >= 10_000 {
		return 0
	}
	keep := uint64(10_000 - slippageBps)
	return amount/10_000*keep + amount%10_000*keep/10_000
}

// SellAmount returns the portion of balance to sell after retaining
// moonbagPercent, truncating toward the moonbag. Overflow-safe for any
// uint64 balance; 9-decimal tokens routinely carry balances beyond
// what a naive multiply-then-divide can hold.
func SellAmount(balance uint64, moonbagPercent int) uint64 {
	if moonbagPercent <= 0 {
		return balance
	}
	if moonbagPercent >= 100 {
		return 0
	}
	keep := uint64(100 - moonbagPercent)
	return balance/100*keep + balance%100*keep/100
}
