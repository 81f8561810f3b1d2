package marketplace_test

import (
	"math/big"
	"testing"

	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/marketplace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoyaltyInfo(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Mint(alice, "ipfs://x", big.NewInt(100))
	require.NoError(t, err)

	tests := []struct {
		name     string
		bps      uint64
		price    int64
		expected int64
	}{
		{"zero fee", 0, 1_000_000, 0},
		{"five percent", 500, 1_000_000, 50_000},
		{"ceiling", 5000, 1_000_000, 500_000},
		{"floors partial bp", 1, 9_999, 0},
		{"floors odd division", 333, 1_000, 33},
		{"one bp of minimum", 1, 10_000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, r.SetRoyaltyFee(owner, tt.bps))

			receiver, amount := r.RoyaltyInfo(1, big.NewInt(tt.price))
			assert.Equal(t, tt.expected, amount.Int64())
			assert.True(t, amount.Cmp(big.NewInt(tt.price)) <= 0)

			if tt.expected == 0 && tt.bps == 0 {
				assert.Equal(t, entity.NullAddress, receiver)
			} else {
				assert.Equal(t, alice, receiver)
			}
		})
	}
}

func TestRoyaltyInfoWideValues(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Mint(alice, "ipfs://x", marketplace.DefaultMaxPrice)
	require.NoError(t, err)
	require.NoError(t, r.SetRoyaltyFee(owner, marketplace.RoyaltyFeeCeiling))

	// 50% of 10^21 does not fit in 64 bits; the math must not truncate.
	receiver, amount := r.RoyaltyInfo(1, marketplace.DefaultMaxPrice)
	assert.Equal(t, alice, receiver)

	expected := new(big.Int).Quo(marketplace.DefaultMaxPrice, big.NewInt(2))
	assert.Equal(t, 0, amount.Cmp(expected))
}

func TestRoyaltyInfoIsPure(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Mint(alice, "ipfs://x", big.NewInt(100))
	require.NoError(t, err)
	require.NoError(t, r.SetRoyaltyFee(owner, 500))
	r.TakePending()

	r.RoyaltyInfo(1, big.NewInt(1_000_000))
	r.RoyaltyInfo(999, big.NewInt(1_000_000))

	assert.Empty(t, r.TakePending())
	assert.True(t, r.IsForSale(1))
}
