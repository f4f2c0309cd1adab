package treasury

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/MinterTeam/taxtoken/coreV2/types"
)

// Ledger is a token ledger hosted next to this one. Transfer moves amount
// from sender to recipient on that ledger with sender as the caller.
type Ledger interface {
	BalanceOf(address types.Address) *big.Int
	Transfer(sender, recipient types.Address, amount *big.Int) error
}

// Registry resolves ledger addresses to ledgers
type Registry struct {
	ledgers map[types.Address]Ledger

	lock sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{ledgers: map[types.Address]Ledger{}}
}

func (r *Registry) Register(address types.Address, ledger Ledger) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.ledgers[address] = ledger
}

func (r *Registry) Unregister(address types.Address) {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.ledgers, address)
}

func (r *Registry) Get(address types.Address) (Ledger, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ledger, ok := r.ledgers[address]
	return ledger, ok
}

// Sweep moves the whole balance of holder on the ledger at address to recipient.
// It returns the amount moved; a zero balance is still passed to the ledger.
func (r *Registry) Sweep(address, holder, recipient types.Address) (*big.Int, error) {
	ledger, ok := r.Get(address)
	if !ok {
		return nil, fmt.Errorf("ledger %s is not registered", address.String())
	}

	amount := ledger.BalanceOf(holder)
	if amount == nil {
		amount = big.NewInt(0)
	}

	if err := ledger.Transfer(holder, recipient, amount); err != nil {
		return nil, err
	}

	return amount, nil
}
