package domain

// Candidate represents a token contract address discovered from social
// content. Corresponds to the candidates table in PostgreSQL.
// The address is the natural key; repeated sightings merge new symbols
// and source accounts into the existing record.
type Candidate struct {
	Address        string   // base58 mint address, PRIMARY KEY
	Symbols        []string // cashtag symbols seen alongside the address
	SourceAccounts []string // social accounts that mentioned the address
	FirstSeenAt    int64    // Unix timestamp in milliseconds
	CreatedAt      int64    // record creation timestamp (ms)
}

// HasSymbol reports whether the candidate already carries the symbol.
func (c *Candidate) HasSymbol(symbol string) bool {
	for _, s := range c.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// HasSource reports whether the candidate already carries the source account.
func (c *Candidate) HasSource(account string) bool {
	for _, s := range c.SourceAccounts {
		if s == account {
			return true
		}
	}
	return false
}
