package domain

// Side is the direction of a trade order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// IsValid checks if the side is a valid value.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// OrderStatus is the lifecycle state of a trade order. Orders are
// immutable once Confirmed or Failed.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderFailed    OrderStatus = "FAILED"
)

// IsValid checks if the status is a valid value.
func (s OrderStatus) IsValid() bool {
	return s == OrderPending || s == OrderConfirmed || s == OrderFailed
}

// TradeOrder records one submitted buy or sell. Amounts are integer
// base units (lamports for SOL, the token's smallest denomination for
// SPL tokens).
type TradeOrder struct {
	OrderID         string // ULID
	Address         string // token mint address
	Side            Side
	RequestedAmount uint64 // base units, after slippage/moonbag policy
	SlippageBps     int
	Signature       *string // chain signature once submitted (nullable)
	Status          OrderStatus
	Reason          string // failure reason, empty unless Status=FAILED
	SubmittedAt     int64  // Unix timestamp in milliseconds
}
