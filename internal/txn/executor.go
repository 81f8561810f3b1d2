package txn

import (
	"math/big"
	"sync"

	"github.com/gallerix/artwork-marketplace/internal/bank"
	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/event"
	"github.com/gallerix/artwork-marketplace/internal/marketplace"
)

// EscrowAddress holds attached payments while a purchase settles. On a
// committed sale the escrow nets to zero; on rollback the buyer's funds
// are restored with everything else.
const EscrowAddress = entity.Address("escrow.marketplace")

// Executor gives every marketplace entry point the execution guarantees
// the engine is designed around: total ordering (one mutex, no
// interleaving of intermediate states) and per-call atomicity (registry
// and ledger are snapshotted before each mutating call and restored on
// failure). Buffered audit events are emitted only when a call commits.
type Executor struct {
	mu       sync.Mutex
	registry *marketplace.Registry
	ledger   *bank.Ledger
}

func NewExecutor(owner entity.Address, ledger *bank.Ledger) *Executor {
	e := &Executor{
		registry: marketplace.NewRegistry(owner, ledger.Account(EscrowAddress)),
		ledger:   ledger,
	}
	e.flush()

	return e
}

func (e *Executor) execute(op func(r *marketplace.Registry) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	registrySnap := e.registry.Snapshot()
	ledgerSnap := e.ledger.Snapshot()

	if err := op(e.registry); err != nil {
		e.registry.Restore(registrySnap)
		e.ledger.Restore(ledgerSnap)
		return err
	}

	e.flush()

	return nil
}

func (e *Executor) flush() {
	for _, msg := range e.registry.TakePending() {
		event.EmitEvent(msg.Type, msg.Payload)
	}
}

func (e *Executor) Mint(caller entity.Address, uri string, price *big.Int) (uint64, error) {
	var id uint64
	err := e.execute(func(r *marketplace.Registry) error {
		var err error
		id, err = r.Mint(caller, uri, price)
		return err
	})

	return id, err
}

func (e *Executor) MintBatch(caller entity.Address, uris []string, prices []*big.Int) ([]uint64, error) {
	var ids []uint64
	err := e.execute(func(r *marketplace.Registry) error {
		var err error
		ids, err = r.MintBatch(caller, uris, prices)
		return err
	})

	return ids, err
}

// Buy moves the attached payment into escrow before handing control to
// the engine, mirroring payable call semantics. Any failure rolls the
// payment back along with the rest of the call's effects.
func (e *Executor) Buy(caller entity.Address, id uint64, payment *big.Int) error {
	if payment == nil {
		payment = big.NewInt(0)
	}

	return e.execute(func(r *marketplace.Registry) error {
		if err := e.ledger.Move(caller, EscrowAddress, payment); err != nil {
			return err
		}

		return r.Buy(caller, id, payment)
	})
}

func (e *Executor) UpdatePrice(caller entity.Address, id uint64, newPrice *big.Int) error {
	return e.execute(func(r *marketplace.Registry) error {
		return r.UpdatePrice(caller, id, newPrice)
	})
}

func (e *Executor) Delist(caller entity.Address, id uint64) error {
	return e.execute(func(r *marketplace.Registry) error {
		return r.Delist(caller, id)
	})
}

func (e *Executor) SetRoyaltyFee(caller entity.Address, bps uint64) error {
	return e.execute(func(r *marketplace.Registry) error {
		return r.SetRoyaltyFee(caller, bps)
	})
}

func (e *Executor) SetMaxPrice(caller entity.Address, value *big.Int) error {
	return e.execute(func(r *marketplace.Registry) error {
		return r.SetMaxPrice(caller, value)
	})
}

func (e *Executor) SetAdmin(caller, account entity.Address, flag bool) error {
	return e.execute(func(r *marketplace.Registry) error {
		return r.SetAdmin(caller, account, flag)
	})
}

func (e *Executor) Pause(caller entity.Address) error {
	return e.execute(func(r *marketplace.Registry) error {
		return r.Pause(caller)
	})
}

func (e *Executor) Unpause(caller entity.Address) error {
	return e.execute(func(r *marketplace.Registry) error {
		return r.Unpause(caller)
	})
}

// Deposit funds an account on the local ledger. Not a marketplace entry
// point; it exists so operators and tests can seed balances.
func (e *Executor) Deposit(account entity.Address, amount *big.Int) error {
	return e.execute(func(r *marketplace.Registry) error {
		return e.ledger.Deposit(account, amount)
	})
}

// Queries are serialized with mutators but never snapshot, and they stay
// callable while paused.

func (e *Executor) GetListing(id uint64) (entity.Listing, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.GetListing(id)
}

func (e *Executor) IsForSale(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.IsForSale(id)
}

func (e *Executor) GetPrice(id uint64) *big.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.GetPrice(id)
}

func (e *Executor) TotalMinted() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.TotalMinted()
}

func (e *Executor) MetadataURI(id uint64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.MetadataURI(id)
}

func (e *Executor) OwnerOf(id uint64) (entity.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.OwnerOf(id)
}

func (e *Executor) RoyaltyInfo(id uint64, salePrice *big.Int) (entity.Address, *big.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.RoyaltyInfo(id, salePrice)
}

func (e *Executor) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Paused()
}

func (e *Executor) Balance(account entity.Address) *big.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Balance(account)
}
