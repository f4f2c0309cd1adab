package app

import (
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/MinterTeam/taxtoken/coreV2/state/bus"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/cosmos/iavl"
	"github.com/pkg/errors"
	"github.com/tendermint/go-amino"
)

const mainPrefix = 'd'

var cdc = amino.NewCodec()

type RApp interface {
	Export(state *types.AppState)
	Name() string
	Symbol() string
	Decimals() uint32
	Owner() types.Address
	ContractAddress() types.Address
	TaxWallet() types.Address
	GetTotalSupply() *big.Int
	Taxes() (buy uint32, sell uint32)
	TradingEnabled() bool
	FeeBurnEnabled() bool
}

// App holds the process-wide token settings and the total supply
type App struct {
	model   *Model
	isDirty bool

	db atomic.Value

	bus *bus.Bus
	mx  sync.Mutex
}

func NewApp(stateBus *bus.Bus, db *iavl.ImmutableTree) *App {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}
	return &App{bus: stateBus, db: immutableTree}
}

func (a *App) immutableTree() *iavl.ImmutableTree {
	db := a.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (a *App) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	a.db.Store(immutableTree)
}

func (a *App) Commit(db *iavl.MutableTree) error {
	a.mx.Lock()
	defer a.mx.Unlock()

	if !a.isDirty {
		return nil
	}

	a.isDirty = false

	a.model.mx.RLock()
	data, err := cdc.MarshalBinaryBare(a.model)
	a.model.mx.RUnlock()
	if err != nil {
		return errors.Wrap(err, "can't encode app model")
	}

	db.Set([]byte{mainPrefix}, data)

	return nil
}

// Rollback drops uncommitted settings; the model is reloaded from the tree on next access
func (a *App) Rollback() {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.model = nil
	a.isDirty = false
}

func (a *App) get() *Model {
	a.mx.Lock()
	defer a.mx.Unlock()

	if a.model != nil {
		return a.model
	}

	tree := a.immutableTree()
	if tree == nil {
		return nil
	}

	_, enc := tree.Get([]byte{mainPrefix})
	if len(enc) == 0 {
		return nil
	}

	model := &Model{}
	if err := cdc.UnmarshalBinaryBare(enc, model); err != nil {
		panic(errors.Wrap(err, "failed to decode app model"))
	}

	a.model = model
	a.model.markDirty = a.markDirty
	return a.model
}

func (a *App) getOrNew() *Model {
	model := a.get()
	if model == nil {
		model = &Model{markDirty: a.markDirty}
		a.mx.Lock()
		a.model = model
		a.mx.Unlock()
	}

	return model
}

func (a *App) markDirty() {
	a.isDirty = true
}

// Init sets the immutable deployment parameters
func (a *App) Init(name, symbol string, decimals uint32, owner, contract types.Address) {
	model := a.getOrNew()
	model.mx.Lock()
	model.Name = name
	model.Symbol = symbol
	model.Decimals = decimals
	model.Owner = owner
	model.ContractAddress = contract
	model.mx.Unlock()

	a.mx.Lock()
	a.isDirty = true
	a.mx.Unlock()
}

func (a *App) Name() string {
	model := a.getOrNew()
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.Name
}

func (a *App) Symbol() string {
	model := a.getOrNew()
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.Symbol
}

func (a *App) Decimals() uint32 {
	model := a.getOrNew()
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.Decimals
}

func (a *App) ContractAddress() types.Address {
	model := a.getOrNew()
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.ContractAddress
}

func (a *App) Owner() types.Address {
	return a.getOrNew().getOwner()
}

func (a *App) GetTotalSupply() *big.Int {
	return a.getOrNew().getTotalSupply()
}

func (a *App) AddTotalSupply(amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}

	model := a.getOrNew()
	model.setTotalSupply(big.NewInt(0).Add(model.getTotalSupply(), amount))
	a.bus.Checker().AddCoinVolume(types.TokenCoinID, amount)
}

func (a *App) SubTotalSupply(amount *big.Int) {
	a.AddTotalSupply(big.NewInt(0).Neg(amount))
}

func (a *App) TaxWallet() types.Address {
	return a.getOrNew().getTaxWallet()
}

func (a *App) SetTaxWallet(wallet types.Address) {
	a.getOrNew().setTaxWallet(wallet)
}

func (a *App) Taxes() (buy uint32, sell uint32) {
	return a.getOrNew().getTaxes()
}

func (a *App) SetTaxes(buy uint32, sell uint32) {
	a.getOrNew().setTaxes(buy, sell)
}

func (a *App) TradingEnabled() bool {
	return a.getOrNew().isTradingEnabled()
}

func (a *App) EnableTrading() {
	a.getOrNew().enableTrading()
}

func (a *App) FeeBurnEnabled() bool {
	return a.getOrNew().isFeeBurn()
}

func (a *App) SetFeeBurn(enabled bool) {
	a.getOrNew().setFeeBurn(enabled)
}

func (a *App) Export(state *types.AppState) {
	model := a.getOrNew()
	model.mx.RLock()
	defer model.mx.RUnlock()

	state.Name = model.Name
	state.Symbol = model.Symbol
	state.Decimals = model.Decimals
	state.Owner = model.Owner
	state.ContractAddress = model.ContractAddress
	state.TaxWallet = model.TaxWallet
	state.TotalSupply = new(big.Int).SetBytes(model.TotalSupply).String()
	state.BuyTax = model.BuyTax
	state.SellTax = model.SellTax
	state.TradingEnabled = model.TradingEnabled
	state.FeeBurn = model.FeeBurn
}
