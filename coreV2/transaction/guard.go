package transaction

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/types"
)

func splitContext(context state.Interface) (*state.CheckState, *state.State) {
	if deliverState, ok := context.(*state.State); ok {
		return state.NewCheckState(deliverState), deliverState
	}
	return context.(*state.CheckState), nil
}

// checkNonce requires a signed tx to use the next nonce of its sender
func checkNonce(checkState *state.CheckState, tx *Transaction) *Response {
	expected := checkState.Accounts().GetNonce(tx.Sender) + 1
	if tx.Nonce == expected {
		return nil
	}

	return &Response{
		Code: code.WrongNonce,
		Log:  fmt.Sprintf("Unexpected nonce. Expected: %d, got %d.", expected, tx.Nonce),
		Info: EncodeError(code.NewWrongNonce(strconv.FormatUint(expected, 10), strconv.FormatUint(tx.Nonce, 10))),
	}
}

func requireOwner(checkState *state.CheckState, sender types.Address) *Response {
	owner := checkState.App().Owner()
	if sender == owner {
		return nil
	}

	return &Response{
		Code: code.Unauthorized,
		Log:  fmt.Sprintf("Sender %s is not the owner", sender.String()),
		Info: EncodeError(code.NewUnauthorized(sender.String(), owner.String())),
	}
}

// checkTradingGate lets a transfer through before launch only when the owner
// takes part in it or one side is excluded from fee.
func checkTradingGate(checkState *state.CheckState, caller, from, to types.Address) *Response {
	if checkState.App().TradingEnabled() {
		return nil
	}

	owner := checkState.App().Owner()
	if caller == owner || from == owner || to == owner {
		return nil
	}

	excluded := checkState.ExcludedFromFee()
	if excluded.Has(from) || excluded.Has(to) {
		return nil
	}

	return &Response{
		Code: code.TradingDisabled,
		Log:  "Trading is not enabled",
		Info: EncodeError(code.NewTradingDisabled(from.String(), to.String())),
	}
}

func checkAmount(value *big.Int) *Response {
	if value != nil && value.Sign() >= 0 {
		return nil
	}

	str := "<nil>"
	if value != nil {
		str = value.String()
	}

	return &Response{
		Code: code.InvalidAmount,
		Log:  fmt.Sprintf("Invalid amount %s", str),
		Info: EncodeError(code.NewInvalidAmount(str)),
	}
}

func checkAddress(field string, address types.Address) *Response {
	if !address.IsZero() {
		return nil
	}

	return &Response{
		Code: code.InvalidAddress,
		Log:  fmt.Sprintf("Invalid %s address %s", field, address.String()),
		Info: EncodeError(code.NewInvalidAddress(field, address.String())),
	}
}

func checkBalance(checkState *state.CheckState, address types.Address, coin types.CoinID, value *big.Int) *Response {
	balance := checkState.Accounts().GetBalance(address, coin)
	if balance.Cmp(value) >= 0 {
		return nil
	}

	return &Response{
		Code: code.InsufficientBalance,
		Log:  fmt.Sprintf("Insufficient funds for sender account: %s. Wanted %s, has %s", address.String(), value.String(), balance.String()),
		Info: EncodeError(code.NewInsufficientBalance(address.String(), value.String(), balance.String(), coin.String())),
	}
}
