package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sniper-agent/internal/domain"
)

func TestOrderStore_InsertAndGetByAddress(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	sig := "5igSig111"
	buy := &domain.TradeOrder{
		OrderID:         "01HV0000000000000000000001",
		Address:         "Mint111",
		Side:            domain.SideBuy,
		RequestedAmount: 8500000,
		SlippageBps:     1500,
		Signature:       &sig,
		Status:          domain.OrderConfirmed,
		SubmittedAt:     1700000000000,
	}
	sell := &domain.TradeOrder{
		OrderID:         "01HV0000000000000000000002",
		Address:         "Mint111",
		Side:            domain.SideSell,
		RequestedAmount: 800,
		SlippageBps:     1500,
		Status:          domain.OrderFailed,
		Reason:          "no token balance",
		SubmittedAt:     1700000060000,
	}

	require.NoError(t, store.Insert(ctx, buy))
	require.NoError(t, store.Insert(ctx, sell))

	orders, err := store.GetByAddress(ctx, "Mint111")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, domain.SideBuy, orders[0].Side)
	assert.Equal(t, uint64(8500000), orders[0].RequestedAmount)
	require.NotNil(t, orders[0].Signature)
	assert.Equal(t, sig, *orders[0].Signature)

	assert.Equal(t, domain.SideSell, orders[1].Side)
	assert.Nil(t, orders[1].Signature)
	assert.Equal(t, domain.OrderFailed, orders[1].Status)
	assert.Equal(t, "no token balance", orders[1].Reason)
}

func TestOrderStore_GetByAddressEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)

	orders, err := store.GetByAddress(context.Background(), "Mint111")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
