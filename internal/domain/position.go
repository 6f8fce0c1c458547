package domain

// Position tracks an open holding for a candidate. At most one open
// position may exist per address. A sell closes the position while the
// moonbag fraction stays in the wallet indefinitely; that retained
// fraction is policy, not a leak.
type Position struct {
	Address        string
	EntryAmount    uint64 // lamports spent on entry
	MoonbagPercent int    // 0 <= pct < 100, fraction retained on sell
	OpenedAt       int64  // Unix timestamp in milliseconds
	ClosedAt       *int64 // nil while open
}

// IsOpen reports whether the position has not been closed yet.
func (p *Position) IsOpen() bool {
	return p.ClosedAt == nil
}
