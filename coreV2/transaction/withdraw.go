package transaction

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/treasury"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	abcTypes "github.com/tendermint/tendermint/abci/types"
)

type WithdrawNativeData struct{}

func (data WithdrawNativeData) TxType() TxType {
	return TypeWithdrawNative
}

func (data WithdrawNativeData) String() string {
	return "WITHDRAW NATIVE"
}

func (data WithdrawNativeData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState != nil {
		contract := deliverState.App.ContractAddress()
		owner := deliverState.App.Owner()
		amount := deliverState.Accounts.GetBalance(contract, types.NativeCoinID)

		// an empty balance is not an error, nothing moves
		if amount.Sign() > 0 {
			deliverState.Accounts.SubBalance(contract, types.NativeCoinID, amount)
			deliverState.Accounts.AddBalance(owner, types.NativeCoinID, amount)
		}

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.to"), Value: []byte(hex.EncodeToString(owner[:])), Index: true},
			{Key: []byte("tx.amount"), Value: []byte(amount.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}

type WithdrawForeignTokenData struct {
	Token types.Address `json:"token"`
}

func (data WithdrawForeignTokenData) TxType() TxType {
	return TypeWithdrawForeignToken
}

func (data WithdrawForeignTokenData) String() string {
	return fmt.Sprintf("WITHDRAW FOREIGN TOKEN token:%s", data.Token.String())
}

// Run changes nothing in the own state. The sweep itself is returned as an
// Interaction for the caller to run once the operation is finalized, so a
// foreign ledger calling back into the token sees committed state only.
func (data WithdrawForeignTokenData) Run(tx *Transaction, context state.Interface, registry *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := requireOwner(checkState, tx.Sender); response != nil {
		return *response
	}

	if registry == nil {
		return externalCallFailed(data.Token, "no ledger registry")
	}

	if _, ok := registry.Get(data.Token); !ok {
		return externalCallFailed(data.Token, "ledger is not registered")
	}

	var tags []abcTypes.EventAttribute
	var interaction *Interaction
	if deliverState != nil {
		contract := deliverState.App.ContractAddress()
		owner := deliverState.App.Owner()
		token := data.Token

		interaction = &Interaction{
			Ledger: token,
			Call: func() error {
				_, err := registry.Sweep(token, contract, owner)
				return err
			},
		}

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.token"), Value: []byte(hex.EncodeToString(token[:])), Index: true},
			{Key: []byte("tx.to"), Value: []byte(hex.EncodeToString(owner[:])), Index: true},
		}
	}

	return Response{
		Code:        code.OK,
		Tags:        tags,
		Interaction: interaction,
	}
}

func externalCallFailed(ledger types.Address, err string) Response {
	return Response{
		Code: code.ExternalCallFailed,
		Log:  fmt.Sprintf("Call to ledger %s failed: %s", ledger.String(), err),
		Info: EncodeError(code.NewExternalCallFailed(ledger.String(), err)),
	}
}

// ExternalCallFailedResponse reports an Interaction that returned err
func ExternalCallFailedResponse(ledger types.Address, err error) Response {
	return externalCallFailed(ledger, err.Error())
}

type DepositNativeData struct {
	Value *big.Int `json:"value"`
}

func (data DepositNativeData) TxType() TxType {
	return TypeDepositNative
}

func (data DepositNativeData) String() string {
	return fmt.Sprintf("DEPOSIT NATIVE value:%s", data.Value)
}

func (data DepositNativeData) Run(tx *Transaction, context state.Interface, _ *treasury.Registry) Response {
	checkState, deliverState := splitContext(context)

	if response := checkAmount(data.Value); response != nil {
		return *response
	}

	if response := checkBalance(checkState, tx.Sender, types.NativeCoinID, data.Value); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState != nil {
		contract := deliverState.App.ContractAddress()
		deliverState.Accounts.SubBalance(tx.Sender, types.NativeCoinID, data.Value)
		deliverState.Accounts.AddBalance(contract, types.NativeCoinID, data.Value)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.to"), Value: []byte(hex.EncodeToString(contract[:])), Index: true},
			{Key: []byte("tx.amount"), Value: []byte(data.Value.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
