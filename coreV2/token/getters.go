package token

import (
	"fmt"
	"math/big"

	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/types"
)

func (t *Token) view() *state.CheckState {
	return state.NewCheckState(t.state)
}

func (t *Token) Name() string {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().Name()
}

func (t *Token) Symbol() string {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().Symbol()
}

func (t *Token) Decimals() uint32 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().Decimals()
}

func (t *Token) TotalSupply() *big.Int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().GetTotalSupply()
}

func (t *Token) BalanceOf(address types.Address) *big.Int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().Accounts().GetBalance(address, types.TokenCoinID)
}

// NativeBalanceOf is the host currency balance held by address
func (t *Token) NativeBalanceOf(address types.Address) *big.Int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().Accounts().GetBalance(address, types.NativeCoinID)
}

func (t *Token) Allowance(owner, spender types.Address) *big.Int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().Accounts().GetAllowance(owner, spender)
}

// Nonce is the nonce of the last signed transaction of address. The next one must use Nonce+1.
func (t *Token) Nonce(address types.Address) uint64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().Accounts().GetNonce(address)
}

func (t *Token) Owner() types.Address {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().Owner()
}

func (t *Token) ContractAddress() types.Address {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().ContractAddress()
}

func (t *Token) TaxWallet() types.Address {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().TaxWallet()
}

func (t *Token) BuyTax() uint32 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	buy, _ := t.view().App().Taxes()
	return buy
}

func (t *Token) SellTax() uint32 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	_, sell := t.view().App().Taxes()
	return sell
}

func (t *Token) TradingEnabled() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().TradingEnabled()
}

func (t *Token) FeeBurnEnabled() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().App().FeeBurnEnabled()
}

func (t *Token) IsExcludedFromFee(address types.Address) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().ExcludedFromFee().Has(address)
}

func (t *Token) IsAMMPair(address types.Address) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.view().AMMPairs().Has(address)
}

func (t *Token) Height() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.state.Height()
}

func (t *Token) Hash() []byte {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.state.Hash()
}

// Events returns the events emitted by the operation committed at height
func (t *Token) Events(height int64) (events.Events, error) {
	return t.events.LoadEvents(height)
}

// Export dumps the last committed state in genesis format
func (t *Token) Export() (types.AppState, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.state.Export()
}

// Status is a snapshot of the token settings
type Status struct {
	Name            string        `json:"name"`
	Symbol          string        `json:"symbol"`
	Decimals        uint32        `json:"decimals"`
	TotalSupply     string        `json:"total_supply"`
	Owner           types.Address `json:"owner"`
	ContractAddress types.Address `json:"contract_address"`
	TaxWallet       types.Address `json:"tax_wallet"`
	BuyTax          uint32        `json:"buy_tax"`
	SellTax         uint32        `json:"sell_tax"`
	TradingEnabled  bool          `json:"trading_enabled"`
	FeeBurn         bool          `json:"fee_burn"`
	Height          int64         `json:"height"`
	AppHash         string        `json:"app_hash"`
}

func (t *Token) Status() Status {
	t.lock.RLock()
	defer t.lock.RUnlock()

	app := t.view().App()
	buy, sell := app.Taxes()

	return Status{
		Name:            app.Name(),
		Symbol:          app.Symbol(),
		Decimals:        app.Decimals(),
		TotalSupply:     app.GetTotalSupply().String(),
		Owner:           app.Owner(),
		ContractAddress: app.ContractAddress(),
		TaxWallet:       app.TaxWallet(),
		BuyTax:          buy,
		SellTax:         sell,
		TradingEnabled:  app.TradingEnabled(),
		FeeBurn:         app.FeeBurnEnabled(),
		Height:          t.state.Height(),
		AppHash:         fmt.Sprintf("%X", t.state.Hash()),
	}
}
