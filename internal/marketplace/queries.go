package marketplace

import (
	"math/big"

	"github.com/gallerix/artwork-marketplace/internal/entity"
)

// Queries never mutate and stay callable while paused.
//
// Non-existent ids are deliberately asymmetric: GetListing, MetadataURI
// and OwnerOf fail with ErrNotFound, while IsForSale and GetPrice read a
// default record and return false/0.

func (r *Registry) GetListing(id uint64) (entity.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return entity.Listing{}, ErrNotFound
	}

	return entity.Listing{
		Price:   new(big.Int).Set(listing.Price),
		ForSale: listing.ForSale,
		Artist:  listing.Artist,
		Uri:     listing.Uri,
	}, nil
}

func (r *Registry) IsForSale(id uint64) bool {
	listing, ok := r.listings[id]
	return ok && listing.ForSale
}

func (r *Registry) GetPrice(id uint64) *big.Int {
	listing, ok := r.listings[id]
	if !ok {
		return big.NewInt(0)
	}

	return new(big.Int).Set(listing.Price)
}

// TotalMinted is the count of ever-minted artworks; ids are assigned
// densely from 1, so the last issued id equals this count.
func (r *Registry) TotalMinted() uint64 {
	return r.nextId
}

func (r *Registry) MetadataURI(id uint64) (string, error) {
	listing, ok := r.listings[id]
	if !ok {
		return "", ErrNotFound
	}

	return listing.Uri, nil
}

func (r *Registry) OwnerOf(id uint64) (entity.Address, error) {
	owner, ok := r.tokenOwner[id]
	if !ok {
		return entity.NullAddress, ErrNotFound
	}

	return owner, nil
}

// ArtistOf defaults to the null principal for non-existent ids.
func (r *Registry) ArtistOf(id uint64) entity.Address {
	listing, ok := r.listings[id]
	if !ok {
		return entity.NullAddress
	}

	return listing.Artist
}

func (r *Registry) IsOwner(account entity.Address) bool {
	return account == r.owner
}

func (r *Registry) IsAdmin(account entity.Address) bool {
	return r.admins[account] || account == r.owner
}

func (r *Registry) Paused() bool {
	return r.paused
}

func (r *Registry) RoyaltyFeeBps() uint64 {
	return r.royaltyFeeBps
}

func (r *Registry) MaxPrice() *big.Int {
	return new(big.Int).Set(r.maxPrice)
}
