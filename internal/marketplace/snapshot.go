package marketplace

import (
	"math/big"

	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/event"
)

// Snapshot is an opaque deep copy of the registry state, taken by the
// executor before each mutating call so a failed call can be rolled back
// with no observable state change.
type Snapshot struct {
	admins     map[entity.Address]bool
	nextId     uint64
	listings   map[uint64]*entity.Listing
	tokenOwner map[uint64]entity.Address

	royaltyFeeBps uint64
	maxPrice      *big.Int
	paused        bool

	pending []event.Message
}

func (r *Registry) Snapshot() Snapshot {
	admins := make(map[entity.Address]bool, len(r.admins))
	for account, flag := range r.admins {
		admins[account] = flag
	}

	listings := make(map[uint64]*entity.Listing, len(r.listings))
	for id, listing := range r.listings {
		listings[id] = &entity.Listing{
			Price:   new(big.Int).Set(listing.Price),
			ForSale: listing.ForSale,
			Artist:  listing.Artist,
			Uri:     listing.Uri,
		}
	}

	tokenOwner := make(map[uint64]entity.Address, len(r.tokenOwner))
	for id, owner := range r.tokenOwner {
		tokenOwner[id] = owner
	}

	pending := make([]event.Message, len(r.pending))
	copy(pending, r.pending)

	return Snapshot{
		admins:        admins,
		nextId:        r.nextId,
		listings:      listings,
		tokenOwner:    tokenOwner,
		royaltyFeeBps: r.royaltyFeeBps,
		maxPrice:      new(big.Int).Set(r.maxPrice),
		paused:        r.paused,
		pending:       pending,
	}
}

func (r *Registry) Restore(s Snapshot) {
	r.admins = s.admins
	r.nextId = s.nextId
	r.listings = s.listings
	r.tokenOwner = s.tokenOwner
	r.royaltyFeeBps = s.royaltyFeeBps
	r.maxPrice = s.maxPrice
	r.paused = s.paused
	r.busy = false
	r.pending = s.pending
}
