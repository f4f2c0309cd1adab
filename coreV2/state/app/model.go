package app

import (
	"math/big"
	"sync"

	"github.com/MinterTeam/taxtoken/coreV2/types"
)

type Model struct {
	Name            string
	Symbol          string
	Decimals        uint32
	Owner           types.Address
	ContractAddress types.Address
	TaxWallet       types.Address
	TotalSupply     []byte
	BuyTax          uint32
	SellTax         uint32
	TradingEnabled  bool
	FeeBurn         bool

	markDirty func()
	mx        sync.RWMutex
}

func (model *Model) getTotalSupply() *big.Int {
	model.mx.RLock()
	defer model.mx.RUnlock()

	return new(big.Int).SetBytes(model.TotalSupply)
}

func (model *Model) setTotalSupply(supply *big.Int) {
	model.mx.Lock()
	defer model.mx.Unlock()

	model.TotalSupply = supply.Bytes()
	model.markDirty()
}

func (model *Model) getOwner() types.Address {
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.Owner
}

func (model *Model) getTaxWallet() types.Address {
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.TaxWallet
}

func (model *Model) setTaxWallet(wallet types.Address) {
	model.mx.Lock()
	defer model.mx.Unlock()

	if model.TaxWallet != wallet {
		model.markDirty()
	}
	model.TaxWallet = wallet
}

func (model *Model) getTaxes() (buy uint32, sell uint32) {
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.BuyTax, model.SellTax
}

func (model *Model) setTaxes(buy uint32, sell uint32) {
	model.mx.Lock()
	defer model.mx.Unlock()

	if model.BuyTax != buy || model.SellTax != sell {
		model.markDirty()
	}
	model.BuyTax = buy
	model.SellTax = sell
}

func (model *Model) isTradingEnabled() bool {
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.TradingEnabled
}

// enableTrading is one way: there is no setter back to false
func (model *Model) enableTrading() {
	model.mx.Lock()
	defer model.mx.Unlock()

	if !model.TradingEnabled {
		model.markDirty()
	}
	model.TradingEnabled = true
}

func (model *Model) isFeeBurn() bool {
	model.mx.RLock()
	defer model.mx.RUnlock()

	return model.FeeBurn
}

func (model *Model) setFeeBurn(enabled bool) {
	model.mx.Lock()
	defer model.mx.Unlock()

	if model.FeeBurn != enabled {
		model.markDirty()
	}
	model.FeeBurn = enabled
}
