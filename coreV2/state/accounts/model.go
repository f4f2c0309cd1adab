package accounts

import (
	"bytes"
	"math/big"
	"sort"
	"sync"

	"github.com/MinterTeam/taxtoken/coreV2/types"
)

type Model struct {
	address    types.Address
	balances   map[types.CoinID]*big.Int
	allowances map[types.Address]*big.Int
	nonce      *uint64

	dirtyNonce      bool
	dirtyBalances   map[types.CoinID]struct{}
	dirtyAllowances map[types.Address]struct{}

	markDirty func(types.Address)
	lock      sync.RWMutex
}

func newModel(address types.Address, markDirty func(types.Address)) *Model {
	return &Model{
		address:         address,
		balances:        map[types.CoinID]*big.Int{},
		allowances:      map[types.Address]*big.Int{},
		dirtyBalances:   map[types.CoinID]struct{}{},
		dirtyAllowances: map[types.Address]struct{}{},
		markDirty:       markDirty,
	}
}

func (model *Model) getBalance(coin types.CoinID) (*big.Int, bool) {
	model.lock.RLock()
	defer model.lock.RUnlock()

	balance, ok := model.balances[coin]
	return balance, ok
}

func (model *Model) cacheBalance(coin types.CoinID, balance *big.Int) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.balances[coin] = balance
}

func (model *Model) setBalance(coin types.CoinID, amount *big.Int) {
	model.lock.Lock()
	model.balances[coin] = amount
	model.dirtyBalances[coin] = struct{}{}
	model.lock.Unlock()

	model.markDirty(model.address)
}

func (model *Model) getNonce() (uint64, bool) {
	model.lock.RLock()
	defer model.lock.RUnlock()

	if model.nonce == nil {
		return 0, false
	}
	return *model.nonce, true
}

func (model *Model) cacheNonce(nonce uint64) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.nonce = &nonce
}

func (model *Model) setNonce(nonce uint64) {
	model.lock.Lock()
	model.nonce = &nonce
	model.dirtyNonce = true
	model.lock.Unlock()

	model.markDirty(model.address)
}

func (model *Model) isDirtyNonce() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.dirtyNonce
}

func (model *Model) getAllowance(spender types.Address) (*big.Int, bool) {
	model.lock.RLock()
	defer model.lock.RUnlock()

	allowance, ok := model.allowances[spender]
	return allowance, ok
}

func (model *Model) cacheAllowance(spender types.Address, allowance *big.Int) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.allowances[spender] = allowance
}

func (model *Model) setAllowance(spender types.Address, amount *big.Int) {
	model.lock.Lock()
	model.allowances[spender] = amount
	model.dirtyAllowances[spender] = struct{}{}
	model.lock.Unlock()

	model.markDirty(model.address)
}

func (model *Model) getOrderedDirtyCoins() []types.CoinID {
	model.lock.RLock()
	keys := make([]types.CoinID, 0, len(model.dirtyBalances))
	for k := range model.dirtyBalances {
		keys = append(keys, k)
	}
	model.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i] > keys[j]
	})

	return keys
}

func (model *Model) getOrderedDirtySpenders() []types.Address {
	model.lock.RLock()
	keys := make([]types.Address, 0, len(model.dirtyAllowances))
	for k := range model.dirtyAllowances {
		keys = append(keys, k)
	}
	model.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) == 1
	})

	return keys
}

func (model *Model) clearDirty() {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.dirtyNonce = false
	model.dirtyBalances = map[types.CoinID]struct{}{}
	model.dirtyAllowances = map[types.Address]struct{}{}
}
