// Package trade executes buy and sell orders against the chain and
// records the outcome in the ledger.
package trade

import "context"

// ChainClient abstracts the chain RPC operations the executor needs.
// Implementations must be safe for sequential reuse across cycles.
type ChainClient interface {
	// Balance returns the wallet's SOL balance in lamports.
	Balance(ctx context.Context) (uint64, error)

	// TokenBalance returns the wallet's balance of the given mint in the
	// token's base units. A wallet with no token account holds zero.
	TokenBalance(ctx context.Context, mint string) (uint64, error)

	// SubmitTransfer sends lamports to destination and waits for
	// confirmation. Returns the transaction signature.
	SubmitTransfer(ctx context.Context, destination string, lamports uint64) (string, error)

	// SubmitTokenTransfer sends token base units of mint to destination
	// and waits for confirmation. Returns the transaction signature.
	SubmitTokenTransfer(ctx context.Context, mint string, destination string, amount uint64) (string, error)
}
