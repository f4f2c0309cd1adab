package accounts

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/MinterTeam/taxtoken/coreV2/state/bus"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/cosmos/iavl"
)

const mainPrefix = byte('a')
const balancePrefix = byte('b')
const allowancePrefix = byte('l')
const noncePrefix = byte('n')

type RAccounts interface {
	Export(state *types.AppState)
	GetBalance(address types.Address, coin types.CoinID) *big.Int
	GetAllowance(owner types.Address, spender types.Address) *big.Int
	GetNonce(address types.Address) uint64
}

// Accounts is the ledger: balances of every coin per address and token allowances.
// Changes are kept in memory until Commit writes them to the tree or Rollback drops them.
type Accounts struct {
	list  map[types.Address]*Model
	dirty map[types.Address]struct{}

	db  atomic.Value
	bus *bus.Bus

	lock sync.RWMutex
}

func NewAccounts(stateBus *bus.Bus, db *iavl.ImmutableTree) *Accounts {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}
	return &Accounts{db: immutableTree, bus: stateBus, list: map[types.Address]*Model{}, dirty: map[types.Address]struct{}{}}
}

func (a *Accounts) immutableTree() *iavl.ImmutableTree {
	db := a.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (a *Accounts) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	a.db.Store(immutableTree)
}

func (a *Accounts) load(path []byte) []byte {
	tree := a.immutableTree()
	if tree == nil {
		return nil
	}
	_, enc := tree.Get(path)
	return enc
}

func balancePath(address types.Address, coin types.CoinID) []byte {
	path := []byte{mainPrefix}
	path = append(path, address[:]...)
	path = append(path, balancePrefix)
	return append(path, coin.Bytes()...)
}

func allowancePath(owner types.Address, spender types.Address) []byte {
	path := []byte{mainPrefix}
	path = append(path, owner[:]...)
	path = append(path, allowancePrefix)
	return append(path, spender[:]...)
}

func noncePath(address types.Address) []byte {
	path := []byte{mainPrefix}
	path = append(path, address[:]...)
	return append(path, noncePrefix)
}

func (a *Accounts) Commit(db *iavl.MutableTree) error {
	accounts := a.getOrderedDirtyAccounts()
	for _, address := range accounts {
		account := a.getFromMap(address)
		a.lock.Lock()
		delete(a.dirty, address)
		a.lock.Unlock()

		for _, coin := range account.getOrderedDirtyCoins() {
			balance, _ := account.getBalance(coin)
			path := balancePath(address, coin)
			switch balance.Sign() {
			case 0:
				db.Remove(path)
			case 1:
				db.Set(path, balance.Bytes())
			case -1:
				return fmt.Errorf("address %s has negative balance of coin %s: %s", address.String(), coin.String(), balance)
			}
		}

		for _, spender := range account.getOrderedDirtySpenders() {
			allowance, _ := account.getAllowance(spender)
			path := allowancePath(address, spender)
			if allowance.Sign() == 0 {
				db.Remove(path)
				continue
			}
			db.Set(path, allowance.Bytes())
		}

		if account.isDirtyNonce() {
			nonce, _ := account.getNonce()
			path := noncePath(address)
			if nonce == 0 {
				db.Remove(path)
			} else {
				db.Set(path, encodeNonce(nonce))
			}
		}

		account.clearDirty()
	}

	return nil
}

// Rollback drops every uncommitted change. Models are reloaded from the tree on next access.
func (a *Accounts) Rollback() {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.list = map[types.Address]*Model{}
	a.dirty = map[types.Address]struct{}{}
}

func (a *Accounts) getOrderedDirtyAccounts() []types.Address {
	a.lock.RLock()
	keys := make([]types.Address, 0, len(a.dirty))
	for k := range a.dirty {
		keys = append(keys, k)
	}
	a.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) == 1
	})

	return keys
}

func (a *Accounts) AddBalance(address types.Address, coin types.CoinID, amount *big.Int) {
	balance := a.GetBalance(address, coin)
	a.SetBalance(address, coin, big.NewInt(0).Add(balance, amount))
}

func (a *Accounts) SubBalance(address types.Address, coin types.CoinID, amount *big.Int) {
	balance := big.NewInt(0).Sub(a.GetBalance(address, coin), amount)
	a.SetBalance(address, coin, balance)
}

func (a *Accounts) GetBalance(address types.Address, coin types.CoinID) *big.Int {
	account := a.getOrNew(address)

	balance, ok := account.getBalance(coin)
	if !ok {
		balance = big.NewInt(0)
		if enc := a.load(balancePath(address, coin)); len(enc) != 0 {
			balance = big.NewInt(0).SetBytes(enc)
		}
		account.cacheBalance(coin, balance)
	}

	return big.NewInt(0).Set(balance)
}

func (a *Accounts) SetBalance(address types.Address, coin types.CoinID, amount *big.Int) {
	account := a.getOrNew(address)
	oldBalance := a.GetBalance(address, coin)
	a.bus.Checker().AddCoin(coin, big.NewInt(0).Sub(amount, oldBalance))

	account.setBalance(coin, big.NewInt(0).Set(amount))
}

// GetNonce returns the nonce of the last signed transaction of address
func (a *Accounts) GetNonce(address types.Address) uint64 {
	account := a.getOrNew(address)

	nonce, ok := account.getNonce()
	if !ok {
		if enc := a.load(noncePath(address)); len(enc) == 8 {
			nonce = binary.BigEndian.Uint64(enc)
		}
		account.cacheNonce(nonce)
	}

	return nonce
}

func (a *Accounts) SetNonce(address types.Address, nonce uint64) {
	a.getOrNew(address).setNonce(nonce)
}

func encodeNonce(nonce uint64) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, nonce)
	return enc
}

func (a *Accounts) GetAllowance(owner types.Address, spender types.Address) *big.Int {
	account := a.getOrNew(owner)

	allowance, ok := account.getAllowance(spender)
	if !ok {
		allowance = big.NewInt(0)
		if enc := a.load(allowancePath(owner, spender)); len(enc) != 0 {
			allowance = big.NewInt(0).SetBytes(enc)
		}
		account.cacheAllowance(spender, allowance)
	}

	return big.NewInt(0).Set(allowance)
}

func (a *Accounts) SetAllowance(owner types.Address, spender types.Address, amount *big.Int) {
	a.getOrNew(owner).setAllowance(spender, big.NewInt(0).Set(amount))
}

func (a *Accounts) getOrNew(address types.Address) *Model {
	if account := a.getFromMap(address); account != nil {
		return account
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	if account, ok := a.list[address]; ok {
		return account
	}

	account := newModel(address, a.markDirty)
	a.list[address] = account

	return account
}

func (a *Accounts) markDirty(addr types.Address) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.dirty[addr] = struct{}{}
}

// Export appends every committed account to the app state
func (a *Accounts) Export(state *types.AppState) {
	tree := a.immutableTree()
	if tree == nil {
		return
	}

	var current *types.Account
	flush := func() {
		if current != nil {
			state.Accounts = append(state.Accounts, *current)
		}
	}

	tree.IterateRange([]byte{mainPrefix}, []byte{mainPrefix + 1}, true, func(key []byte, value []byte) bool {
		if len(key) < 2+types.AddressLength {
			return false
		}

		address := types.BytesToAddress(key[1 : 1+types.AddressLength])
		if current == nil || current.Address != address {
			flush()
			current = &types.Account{Address: address}
		}

		rest := key[2+types.AddressLength:]
		switch key[1+types.AddressLength] {
		case balancePrefix:
			coin := types.CoinID(big.NewInt(0).SetBytes(rest).Uint64())
			current.Balance = append(current.Balance, types.Balance{
				Coin:  uint64(coin),
				Value: big.NewInt(0).SetBytes(value).String(),
			})
		case allowancePrefix:
			current.Allowances = append(current.Allowances, types.Allowance{
				Spender: types.BytesToAddress(rest),
				Value:   big.NewInt(0).SetBytes(value).String(),
			})
		case noncePrefix:
			current.Nonce = binary.BigEndian.Uint64(value)
		}

		return false
	})
	flush()
}

func (a *Accounts) getFromMap(address types.Address) *Model {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return a.list[address]
}
