package transaction

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/treasury"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	abcTypes "github.com/tendermint/tendermint/abci/types"
)

type UpdateTaxWalletData struct {
	Wallet types.Address `json:"wallet"`
}

func (data UpdateTaxWalletData) TxType() TxType {
	return TypeUpdateTaxWallet
}

func (data UpdateTaxWalletData) String() string {
	return fmt.Sprintf("UPDATE TAX WALLET wallet:%s", data.Wallet.String())
}

func (data UpdateTaxWalletData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	if response := checkAddress("wallet", data.Wallet); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState != nil {
		deliverState.App.SetTaxWallet(data.Wallet)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.tax_wallet"), Value: []byte(hex.EncodeToString(data.Wallet[:])), Index: true},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}

type UpdateTaxData struct {
	BuyTax  uint32 `json:"buy_tax"`
	SellTax uint32 `json:"sell_tax"`
}

func (data UpdateTaxData) TxType() TxType {
	return TypeUpdateTax
}

func (data UpdateTaxData) String() string {
	return fmt.Sprintf("UPDATE TAX buy:%d sell:%d", data.BuyTax, data.SellTax)
}

func (data UpdateTaxData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	if data.BuyTax > types.MaxTaxBps || data.SellTax > types.MaxTaxBps {
		return Response{
			Code: code.InvalidTaxRate,
			Log:  fmt.Sprintf("Tax should not exceed %d bps", types.MaxTaxBps),
			Info: EncodeError(code.NewInvalidTaxRate(strconv.Itoa(int(data.BuyTax)), strconv.Itoa(int(data.SellTax)), strconv.Itoa(types.MaxTaxBps))),
		}
	}

	var tags []abcTypes.EventAttribute
	var emitted events.Events
	if deliverState != nil {
		deliverState.App.SetTaxes(data.BuyTax, data.SellTax)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.buy_tax"), Value: []byte(strconv.Itoa(int(data.BuyTax)))},
			{Key: []byte("tx.sell_tax"), Value: []byte(strconv.Itoa(int(data.SellTax)))},
		}
		emitted = events.Events{&events.TaxUpdateEvent{BuyTax: data.BuyTax, SellTax: data.SellTax}}
	}

	return Response{
		Code:   code.OK,
		Tags:   tags,
		Events: emitted,
	}
}

type EnableTradingData struct{}

func (data EnableTradingData) TxType() TxType {
	return TypeEnableTrading
}

func (data EnableTradingData) String() string {
	return "ENABLE TRADING"
}

func (data EnableTradingData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	if checkState.App().TradingEnabled() {
		return Response{
			Code: code.TradingAlreadyEnabled,
			Log:  "Trading is already enabled",
			Info: EncodeError(code.NewTradingAlreadyEnabled()),
		}
	}

	var emitted events.Events
	if deliverState != nil {
		deliverState.App.EnableTrading()
		emitted = events.Events{&events.TradingEnabledEvent{Owner: tx.Sender}}
	}

	return Response{
		Code:   code.OK,
		Events: emitted,
	}
}

type WhiteListWalletData struct {
	Wallet types.Address `json:"wallet"`
}

func (data WhiteListWalletData) TxType() TxType {
	return TypeWhiteListWallet
}

func (data WhiteListWalletData) String() string {
	return fmt.Sprintf("WHITELIST wallet:%s", data.Wallet.String())
}

func (data WhiteListWalletData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState != nil {
		deliverState.ExcludedFromFee.Add(data.Wallet)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.wallet"), Value: []byte(hex.EncodeToString(data.Wallet[:])), Index: true},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}

type RemoveFromWhiteListData struct {
	Wallet types.Address `json:"wallet"`
}

func (data RemoveFromWhiteListData) TxType() TxType {
	return TypeRemoveFromWhiteList
}

func (data RemoveFromWhiteListData) String() string {
	return fmt.Sprintf("REMOVE FROM WHITELIST wallet:%s", data.Wallet.String())
}

func (data RemoveFromWhiteListData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState != nil {
		deliverState.ExcludedFromFee.Remove(data.Wallet)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.wallet"), Value: []byte(hex.EncodeToString(data.Wallet[:])), Index: true},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}

type SetAMMPairData struct {
	Pair  types.Address `json:"pair"`
	Value bool          `json:"value"`
}

func (data SetAMMPairData) TxType() TxType {
	return TypeSetAMMPair
}

func (data SetAMMPairData) String() string {
	return fmt.Sprintf("SET AMM PAIR pair:%s value:%t", data.Pair.String(), data.Value)
}

func (data SetAMMPairData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	if response := checkAddress("pair", data.Pair); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState != nil {
		if data.Value {
			deliverState.AMMPairs.Add(data.Pair)
		} else {
			deliverState.AMMPairs.Remove(data.Pair)
		}

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.pair"), Value: []byte(hex.EncodeToString(data.Pair[:])), Index: true},
			{Key: []byte("tx.pair_value"), Value: []byte(strconv.FormatBool(data.Value))},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}

type EnableFeeBurnData struct{}

func (data EnableFeeBurnData) TxType() TxType {
	return TypeEnableFeeBurn
}

func (data EnableFeeBurnData) String() string {
	return "ENABLE FEE BURN"
}

func (data EnableFeeBurnData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	return setFeeBurn(tx, context, true)
}

type DisableFeeBurnData struct{}

func (data DisableFeeBurnData) TxType() TxType {
	return TypeDisableFeeBurn
}

func (data DisableFeeBurnData) String() string {
	return "DISABLE FEE BURN"
}

func (data DisableFeeBurnData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	return setFeeBurn(tx, context, false)
}

func setFeeBurn(tx *Transaction, context state.Interface, enabled bool) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	if deliverState != nil {
		deliverState.App.SetFeeBurn(enabled)
	}

	return Response{
		Code: code.OK,
	}
}
