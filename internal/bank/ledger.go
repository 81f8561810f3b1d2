package bank

import (
	"errors"
	"math/big"

	"github.com/gallerix/artwork-marketplace/internal/entity"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// Ledger is the in-memory value-transfer substrate: plain account
// balances with synchronous, all-or-nothing moves. The txn executor owns
// serialization and rollback; the ledger itself does no locking.
type Ledger struct {
	balances map[entity.Address]*big.Int
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[entity.Address]*big.Int)}
}

func (l *Ledger) Deposit(account entity.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	l.credit(account, amount)

	return nil
}

func (l *Ledger) Balance(account entity.Address) *big.Int {
	balance, ok := l.balances[account]
	if !ok {
		return big.NewInt(0)
	}

	return new(big.Int).Set(balance)
}

func (l *Ledger) Move(from, to entity.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	balance, ok := l.balances[from]
	if !ok || balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}

	balance.Sub(balance, amount)
	l.credit(to, amount)

	return nil
}

func (l *Ledger) credit(account entity.Address, amount *big.Int) {
	balance, ok := l.balances[account]
	if !ok {
		balance = big.NewInt(0)
		l.balances[account] = balance
	}
	balance.Add(balance, amount)
}

// Account binds the ledger to a single source address. The result
// satisfies the marketplace's Transferrer capability: transfers always
// originate from the bound address.
func (l *Ledger) Account(addr entity.Address) *Account {
	return &Account{ledger: l, addr: addr}
}

type Account struct {
	ledger *Ledger
	addr   entity.Address
}

func (a *Account) Transfer(to entity.Address, amount *big.Int) error {
	return a.ledger.Move(a.addr, to, amount)
}

// Snapshot deep-copies all balances for the executor's rollback path.
func (l *Ledger) Snapshot() map[entity.Address]*big.Int {
	balances := make(map[entity.Address]*big.Int, len(l.balances))
	for account, balance := range l.balances {
		balances[account] = new(big.Int).Set(balance)
	}

	return balances
}

func (l *Ledger) Restore(balances map[entity.Address]*big.Int) {
	l.balances = balances
}
