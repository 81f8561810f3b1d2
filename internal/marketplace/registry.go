package marketplace

import (
	"fmt"
	"math/big"

	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/event"
)

// RoyaltyFeeCeiling is the hard upper bound on the royalty fee, in basis
// points (50%). Enforced on every admin write, never only at read time.
const RoyaltyFeeCeiling uint64 = 5000

const basisPointDivisor = 10000

// DefaultMaxPrice is the initial cap on listing prices: 1000 whole units
// of currency at 18 decimals.
var DefaultMaxPrice = new(big.Int).Mul(big.NewInt(1000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// Transferrer moves funds out of the marketplace escrow to an address.
// Implementations may call back into the marketplace; Buy guards against
// that explicitly.
type Transferrer interface {
	Transfer(to entity.Address, amount *big.Int) error
}

// Registry is the whole marketplace state machine. It is not safe for
// concurrent use on its own: every entry point must run to completion
// before the next begins, which the txn executor enforces. Mutating
// operations buffer audit events; the executor emits them on commit and
// discards them on rollback.
type Registry struct {
	owner      entity.Address
	admins     map[entity.Address]bool
	nextId     uint64
	listings   map[uint64]*entity.Listing
	tokenOwner map[uint64]entity.Address

	royaltyFeeBps uint64
	maxPrice      *big.Int
	paused        bool
	busy          bool

	pay     Transferrer
	pending []event.Message
}

// NewRegistry records the deployer as owner and as the first admin, and
// buffers the corresponding AdminStatusChanged event exactly once.
func NewRegistry(owner entity.Address, pay Transferrer) *Registry {
	r := &Registry{
		owner:      owner,
		admins:     map[entity.Address]bool{owner: true},
		listings:   make(map[uint64]*entity.Listing),
		tokenOwner: make(map[uint64]entity.Address),
		maxPrice:   new(big.Int).Set(DefaultMaxPrice),
		pay:        pay,
	}
	r.emit(event.AdminStatusChangedEvent, entity.NewAdminStatusChanged(owner, true))

	return r
}

func (r *Registry) emit(t event.Type, payload interface{}) {
	r.pending = append(r.pending, event.Message{Type: t, Payload: payload})
}

// TakePending returns the buffered audit events in emission order and
// clears the buffer.
func (r *Registry) TakePending() []event.Message {
	pending := r.pending
	r.pending = nil
	return pending
}

// Mint lists a new artwork. Open to any caller; the caller becomes both
// the initial holder and the immutable artist for royalty purposes.
func (r *Registry) Mint(caller entity.Address, uri string, price *big.Int) (uint64, error) {
	if r.paused {
		return 0, ErrPaused
	}
	if uri == "" {
		return 0, ErrInvalidMetadata
	}
	if price == nil || price.Sign() <= 0 {
		return 0, ErrInvalidPrice
	}
	if price.Cmp(r.maxPrice) > 0 {
		return 0, ErrPriceTooHigh
	}

	r.nextId++
	id := r.nextId

	r.listings[id] = &entity.Listing{
		Price:   new(big.Int).Set(price),
		ForSale: true,
		Artist:  caller,
		Uri:     uri,
	}
	r.tokenOwner[id] = caller

	r.emit(event.ArtworkListedEvent, entity.NewArtworkListed(id, caller, new(big.Int).Set(price)))

	return id, nil
}

// MintBatch applies Mint once per uri/price pair, in input order. A
// failure on any element fails the whole call; the executor's rollback
// makes that all-or-nothing.
func (r *Registry) MintBatch(caller entity.Address, uris []string, prices []*big.Int) ([]uint64, error) {
	if r.paused {
		return nil, ErrPaused
	}
	if len(uris) != len(prices) {
		return nil, ErrLengthMismatch
	}
	if len(uris) == 0 {
		return nil, ErrEmptyBatch
	}

	ids := make([]uint64, 0, len(uris))
	for i := range uris {
		id, err := r.Mint(caller, uris[i], prices[i])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	r.emit(event.BatchListedEvent, entity.NewBatchListed(ids))

	return ids, nil
}

// Buy settles a purchase: the attached payment must equal the listing
// price exactly. State is mutated before any funds move, so a reentrant
// call through the transfer capability would already observe the listing
// as sold; nested entry is rejected outright via the busy flag.
func (r *Registry) Buy(caller entity.Address, id uint64, payment *big.Int) error {
	if r.busy {
		return ErrReentrant
	}
	r.busy = true
	defer func() { r.busy = false }()

	if r.paused {
		return ErrPaused
	}

	seller, ok := r.tokenOwner[id]
	if !ok {
		return ErrNotFound
	}

	listing := r.listings[id]
	if !listing.ForSale {
		return ErrNotForSale
	}
	if payment == nil || payment.Cmp(listing.Price) != 0 {
		return ErrWrongPayment
	}

	price := new(big.Int).Set(listing.Price)

	// Effects before interactions.
	listing.ForSale = false

	receiver, royalty := r.royaltyFor(listing.Artist, price)
	if royalty.Cmp(price) > 0 {
		return ErrRoyaltyOverflow
	}

	r.tokenOwner[id] = caller

	if royalty.Sign() > 0 && !receiver.IsNull() {
		if err := r.pay.Transfer(receiver, royalty); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
	}

	proceeds := new(big.Int).Sub(price, royalty)
	if proceeds.Sign() > 0 {
		if err := r.pay.Transfer(seller, proceeds); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
	}

	r.emit(event.ArtworkSoldEvent, entity.NewArtworkSold(id, seller, caller, price))

	return nil
}

// UpdatePrice sets a new price and unconditionally relists: a sold or
// delisted artwork comes back on sale at the new price with its artist
// and uri untouched.
func (r *Registry) UpdatePrice(caller entity.Address, id uint64, newPrice *big.Int) error {
	listing, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if newPrice == nil || newPrice.Sign() <= 0 {
		return ErrInvalidPrice
	}
	if newPrice.Cmp(r.maxPrice) > 0 {
		return ErrPriceTooHigh
	}

	listing.Price = new(big.Int).Set(newPrice)
	listing.ForSale = true

	r.emit(event.PriceUpdatedEvent, entity.NewPriceUpdated(id, new(big.Int).Set(newPrice)))

	return nil
}

// Delist takes an artwork off sale. Idempotent: delisting an already
// delisted id succeeds, though the audit event is still emitted each call.
func (r *Registry) Delist(caller entity.Address, id uint64) error {
	listing, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	if err := r.requireAdmin(caller); err != nil {
		return err
	}

	listing.ForSale = false

	r.emit(event.ArtworkDelistedEvent, entity.NewArtworkDelisted(id))

	return nil
}

func (r *Registry) SetRoyaltyFee(caller entity.Address, bps uint64) error {
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if bps > RoyaltyFeeCeiling {
		return ErrInvalidRoyaltyFee
	}

	r.royaltyFeeBps = bps

	r.emit(event.RoyaltyFeeUpdatedEvent, entity.NewRoyaltyFeeUpdated(bps))

	return nil
}

// SetMaxPrice accepts any non-negative value. Zero is allowed; it halts
// new listings above zero price, which is the operator's call to make.
func (r *Registry) SetMaxPrice(caller entity.Address, value *big.Int) error {
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if value == nil || value.Sign() < 0 {
		return ErrInvalidPrice
	}

	r.maxPrice = new(big.Int).Set(value)

	r.emit(event.MaxPriceUpdatedEvent, entity.NewMaxPriceUpdated(new(big.Int).Set(value)))

	return nil
}

// SetAdmin grants or revokes admin status. The audit event is emitted
// even when the flag is unchanged.
func (r *Registry) SetAdmin(caller, account entity.Address, flag bool) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}

	if flag {
		r.admins[account] = true
	} else {
		delete(r.admins, account)
	}

	r.emit(event.AdminStatusChangedEvent, entity.NewAdminStatusChanged(account, flag))

	return nil
}

// Pause gates every state-mutating entry point except Pause and Unpause
// themselves. Both are idempotent.
func (r *Registry) Pause(caller entity.Address) error {
	if caller != r.owner {
		return ErrNotOwner
	}
	r.paused = true
	return nil
}

func (r *Registry) Unpause(caller entity.Address) error {
	if caller != r.owner {
		return ErrNotOwner
	}
	r.paused = false
	return nil
}

// Authorization is checked before the pause gate on admin paths, so a
// non-admin caller sees ErrNotAdmin even while paused.
func (r *Registry) requireAdmin(caller entity.Address) error {
	if !r.IsAdmin(caller) {
		return ErrNotAdmin
	}
	if r.paused {
		return ErrPaused
	}
	return nil
}

func (r *Registry) requireOwner(caller entity.Address) error {
	if caller != r.owner {
		return ErrNotOwner
	}
	if r.paused {
		return ErrPaused
	}
	return nil
}
