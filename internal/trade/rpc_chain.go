package trade

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	"sniper-agent/internal/observability"
)

// Confirmation polling parameters. A transaction not confirmed after
// maxConfirmPolls is treated as failed.
const (
	confirmPollInterval = 2 * time.Second
	maxConfirmPolls     = 10
)

// RPCChain implements ChainClient against a Solana JSON-RPC endpoint.
type RPCChain struct {
	client *rpc.Client
	wallet solana.PrivateKey
}

// NewRPCChain creates an RPCChain for the given endpoint and wallet.
func NewRPCChain(endpoint string, wallet solana.PrivateKey) *RPCChain {
	return &RPCChain{
		client: rpc.New(endpoint),
		wallet: wallet,
	}
}

// Compile-time interface check.
var _ ChainClient = (*RPCChain)(nil)

// Balance returns the wallet's SOL balance in lamports.
func (c *RPCChain) Balance(ctx context.Context) (uint64, error) {
	out, err := c.client.GetBalance(ctx, c.wallet.PublicKey(), rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return out.Value, nil
}

// TokenBalance returns the wallet's balance of mint in base units,
// summed over all token accounts. No token account means zero.
func (c *RPCChain) TokenBalance(ctx context.Context, mint string) (uint64, error) {
	mintKey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return 0, fmt.Errorf("parse mint %q: %w", mint, err)
	}

	out, err := c.client.GetTokenAccountsByOwner(ctx,
		c.wallet.PublicKey(),
		&rpc.GetTokenAccountsConfig{Mint: &mintKey},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingBase64},
	)
	if err != nil {
		return 0, fmt.Errorf("get token accounts: %w", err)
	}

	var total uint64
	for _, acc := range out.Value {
		data := acc.Account.Data.GetBinary()
		// SPL token account layout: amount is a u64 at offset 64.
		if len(data) < 72 {
			continue
		}
		total += binary.LittleEndian.Uint64(data[64:72])
	}
	return total, nil
}

// SubmitTransfer sends lamports to destination and waits for
// confirmation.
func (c *RPCChain) SubmitTransfer(ctx context.Context, destination string, lamports uint64) (string, error) {
	destKey, err := solana.PublicKeyFromBase58(destination)
	if err != nil {
		return "", fmt.Errorf("parse destination %q: %w", destination, err)
	}

	ix := system.NewTransferInstruction(lamports, c.wallet.PublicKey(), destKey).Build()
	return c.submit(ctx, []solana.Instruction{ix})
}

// SubmitTokenTransfer sends token base units of mint to the
// destination owner's associated token account and waits for
// confirmation. The destination account must already exist.
func (c *RPCChain) SubmitTokenTransfer(ctx context.Context, mint string, destination string, amount uint64) (string, error) {
	mintKey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return "", fmt.Errorf("parse mint %q: %w", mint, err)
	}
	destKey, err := solana.PublicKeyFromBase58(destination)
	if err != nil {
		return "", fmt.Errorf("parse destination %q: %w", destination, err)
	}

	source, _, err := solana.FindAssociatedTokenAddress(c.wallet.PublicKey(), mintKey)
	if err != nil {
		return "", fmt.Errorf("derive source token account: %w", err)
	}
	dest, _, err := solana.FindAssociatedTokenAddress(destKey, mintKey)
	if err != nil {
		return "", fmt.Errorf("derive destination token account: %w", err)
	}

	ix := token.NewTransferInstruction(amount, source, dest, c.wallet.PublicKey(), nil).Build()
	return c.submit(ctx, []solana.Instruction{ix})
}

// submit signs, sends and confirms a transaction built from the given
// instructions. The recorded latency covers the whole round trip
// including confirmation polling.
func (c *RPCChain) submit(ctx context.Context, instructions []solana.Instruction) (string, error) {
	start := time.Now()
	defer func() {
		observability.RecordExternalCall("chain", time.Since(start).Seconds())
	}()

	recent, err := c.client.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return "", fmt.Errorf("get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(c.wallet.PublicKey()),
	)
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}

	_, err = tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if pub.Equals(c.wallet.PublicKey()) {
			return &c.wallet
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := c.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       true,
		PreflightCommitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	if err := c.confirm(ctx, sig); err != nil {
		return "", err
	}
	return sig.String(), nil
}

// confirm polls signature statuses until the transaction is confirmed
// or the poll budget runs out.
func (c *RPCChain) confirm(ctx context.Context, sig solana.Signature) error {
	for i := 0; i < maxConfirmPolls; i++ {
		statuses, err := c.client.GetSignatureStatuses(ctx, true, sig)
		if err == nil && len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.Err != nil {
				return fmt.Errorf("transaction failed on chain: %v", status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(confirmPollInterval):
		}
	}
	return fmt.Errorf("transaction %s not confirmed after %d polls", sig, maxConfirmPolls)
}
