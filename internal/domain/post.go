package domain

// TrackedAccount identifies a social account to poll. Immutable,
// configured at startup.
type TrackedAccount string

// String returns the string representation of TrackedAccount.
func (a TrackedAccount) String() string {
	return string(a)
}

// RawPost is the raw text of a single social post. Transient; never
// persisted.
type RawPost struct {
	Account   string // source account identifier
	Text      string // raw post text
	FetchedAt int64  // fetch timestamp (ms)
}
