package marketplace

import (
	"math/big"

	"github.com/gallerix/artwork-marketplace/internal/entity"
)

// RoyaltyInfo reports who receives the creator royalty on a sale at the
// given price, and how much. Safe to call for non-existent ids: those
// resolve to the null artist and the zero case.
func (r *Registry) RoyaltyInfo(id uint64, salePrice *big.Int) (entity.Address, *big.Int) {
	return r.royaltyFor(r.ArtistOf(id), salePrice)
}

// royaltyFor floors, never rounds up: multiply first, divide last, so
// basis-point precision is only lost to the final integer division.
func (r *Registry) royaltyFor(artist entity.Address, salePrice *big.Int) (entity.Address, *big.Int) {
	if artist.IsNull() || r.royaltyFeeBps == 0 || salePrice == nil || salePrice.Sign() <= 0 {
		return entity.NullAddress, big.NewInt(0)
	}

	amount := new(big.Int).Mul(salePrice, new(big.Int).SetUint64(r.royaltyFeeBps))
	amount.Quo(amount, big.NewInt(basisPointDivisor))

	return artist, amount
}
