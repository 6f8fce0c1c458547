// Command walletinfo prints the configured wallet's address and SOL
// balance, generating and saving a fresh keypair when none exists yet.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	walletFile := flag.String("wallet-file", "wallet.json", "Path to the wallet key file")
	flag.Parse()

	logger := log.New(os.Stdout, "[walletinfo] ", log.LstdFlags)

	wallet, created, err := loadOrCreateWallet(os.Getenv("SNIPER_WALLET_PRIVATE_KEY"), *walletFile)
	if err != nil {
		logger.Fatalf("Failed to load wallet: %v", err)
	}
	if created {
		logger.Printf("Generated new wallet, key saved to %s", *walletFile)
	}

	logger.Printf("Address: %s", wallet.PublicKey())

	endpoint := os.Getenv("SNIPER_RPC_ENDPOINT")
	if endpoint == "" {
		logger.Println("SNIPER_RPC_ENDPOINT not set, skipping balance check")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := rpc.New(endpoint)
	out, err := client.GetBalance(ctx, wallet.PublicKey(), rpc.CommitmentConfirmed)
	if err != nil {
		logger.Fatalf("Failed to fetch balance: %v", err)
	}

	sol := decimal.NewFromUint64(out.Value).Shift(-9)
	logger.Printf("Balance: %s SOL (%d lamports)", sol, out.Value)
}

// loadOrCreateWallet resolves the key from the environment first, then
// from the wallet file, and finally generates a new keypair and writes
// it to the file.
func loadOrCreateWallet(envKey, path string) (solana.PrivateKey, bool, error) {
	if envKey != "" {
		key, err := solana.PrivateKeyFromBase58(envKey)
		return key, false, err
	}

	if data, err := os.ReadFile(path); err == nil {
		var stored string
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, false, err
		}
		key, err := solana.PrivateKeyFromBase58(stored)
		return key, false, err
	}

	wallet := solana.NewWallet()
	data, err := json.Marshal(wallet.PrivateKey.String())
	if err != nil {
		return nil, false, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, false, err
	}
	return wallet.PrivateKey, true, nil
}
