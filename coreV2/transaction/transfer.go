package transaction

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/fee"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/treasury"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	abcTypes "github.com/tendermint/tendermint/abci/types"
)

type TransferData struct {
	To    types.Address `json:"to"`
	Value *big.Int      `json:"value"`
}

func (data TransferData) TxType() TxType {
	return TypeTransfer
}

func (data TransferData) String() string {
	return fmt.Sprintf("TRANSFER to:%s value:%s", data.To.String(), data.Value)
}

func (data TransferData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := checkTransfer(checkState, tx.Sender, tx.Sender, data.To, data.Value); response != nil {
		return *response
	}

	split := fee.Calculate(checkState, tx.Sender, data.To, data.Value)

	var tags []abcTypes.EventAttribute
	var emitted events.Events
	if deliverState != nil {
		tags, emitted = deliverTransfer(deliverState, tx.Sender, data.To, split)
	}

	return Response{
		Code:   code.OK,
		Tags:   tags,
		Events: emitted,
	}
}

// checkTransfer validates a movement of value from one account to another started by caller
func checkTransfer(checkState *state.CheckState, caller, from, to types.Address, value *big.Int) *Response {
	if response := checkAmount(value); response != nil {
		return response
	}

	if response := checkAddress("from", from); response != nil {
		return response
	}

	if response := checkAddress("to", to); response != nil {
		return response
	}

	if response := checkTradingGate(checkState, caller, from, to); response != nil {
		return response
	}

	return checkBalance(checkState, from, types.TokenCoinID, value)
}

func deliverTransfer(deliverState *state.State, from, to types.Address, split fee.Split) ([]abcTypes.EventAttribute, events.Events) {
	route := fee.Apply(deliverState, from, to, split)

	emitted := events.Events{&events.TransferEvent{From: from, To: to, Value: split.Net.String()}}
	switch route {
	case fee.RouteTaxWallet:
		emitted = append(emitted, &events.TransferEvent{From: from, To: deliverState.App.TaxWallet(), Value: split.Fee.String()})
	case fee.RouteBurn:
		emitted = append(emitted, &events.TransferEvent{From: from, To: types.ZeroAddress, Value: split.Fee.String()})
	}

	return []abcTypes.EventAttribute{
		{Key: []byte("tx.to"), Value: []byte(hex.EncodeToString(to[:])), Index: true},
		{Key: []byte("tx.amount"), Value: []byte(split.Gross.String())},
		{Key: []byte("tx.net"), Value: []byte(split.Net.String())},
		{Key: []byte("tx.fee"), Value: []byte(split.Fee.String())},
		{Key: []byte("tx.fee_kind"), Value: []byte(split.Kind.String()), Index: true},
		{Key: []byte("tx.fee_route"), Value: []byte(string(route))},
	}, emitted
}

type TransferFromData struct {
	From  types.Address `json:"from"`
	To    types.Address `json:"to"`
	Value *big.Int      `json:"value"`
}

func (data TransferFromData) TxType() TxType {
	return TypeTransferFrom
}

func (data TransferFromData) String() string {
	return fmt.Sprintf("TRANSFER FROM from:%s to:%s value:%s", data.From.String(), data.To.String(), data.Value)
}

func (data TransferFromData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := checkAmount(data.Value); response != nil {
		return *response
	}

	allowance := checkState.Accounts().GetAllowance(data.From, tx.Sender)
	if allowance.Cmp(data.Value) < 0 {
		return Response{
			Code: code.InsufficientAllowance,
			Log:  fmt.Sprintf("Insufficient allowance of %s for %s. Wanted %s, has %s", tx.Sender.String(), data.From.String(), data.Value.String(), allowance.String()),
			Info: EncodeError(code.NewInsufficientAllowance(data.From.String(), tx.Sender.String(), data.Value.String(), allowance.String())),
		}
	}

	if response := checkTransfer(checkState, tx.Sender, data.From, data.To, data.Value); response != nil {
		return *response
	}

	split := fee.Calculate(checkState, data.From, data.To, data.Value)

	var tags []abcTypes.EventAttribute
	var emitted events.Events
	if deliverState != nil {
		if allowance.Cmp(types.MaxAmount) != 0 {
			deliverState.Accounts.SetAllowance(data.From, tx.Sender, big.NewInt(0).Sub(allowance, data.Value))
		}

		tags, emitted = deliverTransfer(deliverState, data.From, data.To, split)
		tags = append(tags, abcTypes.EventAttribute{Key: []byte("tx.owner"), Value: []byte(hex.EncodeToString(data.From[:])), Index: true})
	}

	return Response{
		Code:   code.OK,
		Tags:   tags,
		Events: emitted,
	}
}

type ApproveData struct {
	Spender types.Address `json:"spender"`
	Value   *big.Int      `json:"value"`
}

func (data ApproveData) TxType() TxType {
	return TypeApprove
}

func (data ApproveData) String() string {
	return fmt.Sprintf("APPROVE spender:%s value:%s", data.Spender.String(), data.Value)
}

func (data ApproveData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	_, deliverState := splitContext(context)

	if response := checkAmount(data.Value); response != nil {
		return *response
	}

	if response := checkAddress("spender", data.Spender); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	var emitted events.Events
	if deliverState != nil {
		deliverState.Accounts.SetAllowance(tx.Sender, data.Spender, data.Value)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.spender"), Value: []byte(hex.EncodeToString(data.Spender[:])), Index: true},
			{Key: []byte("tx.amount"), Value: []byte(data.Value.String())},
		}
		emitted = events.Events{&events.ApprovalEvent{Owner: tx.Sender, Spender: data.Spender, Value: data.Value.String()}}
	}

	return Response{
		Code:   code.OK,
		Tags:   tags,
		Events: emitted,
	}
}
