package transaction

import (
	"math/big"
	"testing"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer_FromOwnerBeforeLaunch(t *testing.T) {
	t.Parallel()
	s := getState(t)

	response := deliver(t, s, owner, &TransferData{To: alice, Value: tokens(100)})
	requireCode(t, response, code.OK)

	assert.Equal(t, tokens(100).String(), balance(s, alice))
	assert.Equal(t, tokens(949999900).String(), balance(s, owner))
	assert.Equal(t, "0", balance(s, wallet))
}

func TestTransfer_TradingDisabled(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &TransferData{To: alice, Value: tokens(100)}), code.OK)

	response := deliver(t, s, alice, &TransferData{To: bob, Value: tokens(50)})
	requireCode(t, response, code.TradingDisabled)
	assert.Equal(t, tokens(100).String(), balance(s, alice))
	assert.Equal(t, "0", balance(s, bob))

	// a non-owner may still send to the owner
	requireCode(t, deliver(t, s, alice, &TransferData{To: owner, Value: tokens(1)}), code.OK)

	// or to an excluded wallet
	requireCode(t, deliver(t, s, owner, &WhiteListWalletData{Wallet: bob}), code.OK)
	requireCode(t, deliver(t, s, alice, &TransferData{To: bob, Value: tokens(1)}), code.OK)
}

func TestTransfer_AfterLaunchUntaxed(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &TransferData{To: alice, Value: tokens(100)}), code.OK)

	response := deliver(t, s, alice, &TransferData{To: bob, Value: tokens(50)})
	requireCode(t, response, code.OK)

	assert.Equal(t, tokens(50).String(), balance(s, alice))
	assert.Equal(t, tokens(50).String(), balance(s, bob))
	assert.Equal(t, "0", balance(s, wallet))

	kind, ok := response.Tag("tx.fee_kind")
	require.True(t, ok)
	assert.Equal(t, "transfer", kind)
}

func TestTransfer_BuyAndSellTax(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &TransferData{To: pair, Value: tokens(100)}), code.OK)
	assert.Equal(t, tokens(100).String(), balance(s, pair), "owner is excluded, no tax")

	response := deliver(t, s, pair, &TransferData{To: alice, Value: tokens(100)})
	requireCode(t, response, code.OK)
	assert.Equal(t, "97500000000000000000", balance(s, alice))
	assert.Equal(t, "2500000000000000000", balance(s, wallet))

	feeTag, _ := response.Tag("tx.fee")
	assert.Equal(t, "2500000000000000000", feeTag)
	route, _ := response.Tag("tx.fee_route")
	assert.Equal(t, "tax_wallet", route)

	assert.Equal(t, events.Events{
		&events.TransferEvent{From: pair, To: alice, Value: "97500000000000000000"},
		&events.TransferEvent{From: pair, To: wallet, Value: "2500000000000000000"},
	}, response.Events)

	requireCode(t, deliver(t, s, alice, &TransferData{To: pair, Value: tokens(40)}), code.OK)
	assert.Equal(t, "57500000000000000000", balance(s, alice))
	assert.Equal(t, "39000000000000000000", balance(s, pair))
	assert.Equal(t, "3500000000000000000", balance(s, wallet))
}

func TestTransfer_Burn(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &EnableFeeBurnData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &TransferData{To: pair, Value: tokens(100)}), code.OK)
	supply := s.App.GetTotalSupply()

	response := deliver(t, s, pair, &TransferData{To: alice, Value: tokens(100)})
	requireCode(t, response, code.OK)
	assert.Equal(t, "97500000000000000000", balance(s, alice))
	assert.Equal(t, "0", balance(s, wallet))
	require.Len(t, response.Events, 2)
	assert.Equal(t, &events.TransferEvent{From: pair, To: types.ZeroAddress, Value: "2500000000000000000"}, response.Events[1])
	assert.Equal(t, big.NewInt(0).Sub(supply, big.NewInt(2500000000000000000)).String(), s.App.GetTotalSupply().String())
}

func TestTransfer_Errors(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &TransferData{To: types.ZeroAddress, Value: tokens(1)}), code.InvalidAddress)
	requireCode(t, deliver(t, s, owner, &TransferData{To: alice, Value: big.NewInt(-1)}), code.InvalidAmount)
	requireCode(t, deliver(t, s, owner, &TransferData{To: alice}), code.InvalidAmount)
	requireCode(t, deliver(t, s, owner, &TransferData{To: alice, Value: tokens(950000001)}), code.InsufficientBalance)

	assert.Equal(t, tokens(950000000).String(), balance(s, owner))
}

func TestTransfer_ZeroAmount(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	response := deliver(t, s, pair, &TransferData{To: alice, Value: big.NewInt(0)})
	requireCode(t, response, code.OK)

	route, _ := response.Tag("tx.fee_route")
	assert.Equal(t, "none", route)
	assert.Equal(t, "0", balance(s, alice))
}

func TestTransfer_CheckStateDoesNotMutate(t *testing.T) {
	t.Parallel()
	s := getState(t)

	response := newExecutor().RunTx(state.NewCheckState(s), NewTransaction(owner, &TransferData{To: alice, Value: tokens(1)}))
	requireCode(t, response, code.OK)
	assert.Nil(t, response.Tags)
	assert.Nil(t, response.Events)
	assert.Equal(t, "0", balance(s, alice))
}

func TestApproveAndTransferFrom(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &TransferData{To: alice, Value: tokens(100)}), code.OK)
	requireCode(t, deliver(t, s, alice, &ApproveData{Spender: bob, Value: tokens(30)}), code.OK)
	assert.Equal(t, tokens(30).String(), s.Accounts.GetAllowance(alice, bob).String())

	requireCode(t, deliver(t, s, bob, &TransferFromData{From: alice, To: pair, Value: tokens(40)}), code.InsufficientAllowance)

	requireCode(t, deliver(t, s, bob, &TransferFromData{From: alice, To: pair, Value: tokens(20)}), code.OK)
	assert.Equal(t, tokens(10).String(), s.Accounts.GetAllowance(alice, bob).String())
	assert.Equal(t, tokens(80).String(), balance(s, alice))
	assert.Equal(t, "19500000000000000000", balance(s, pair))
	assert.Equal(t, "500000000000000000", balance(s, wallet))
}

func TestTransferFrom_InfiniteAllowance(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &ApproveData{Spender: bob, Value: types.MaxAmount}), code.OK)
	requireCode(t, deliver(t, s, bob, &TransferFromData{From: owner, To: alice, Value: tokens(5)}), code.OK)

	assert.Equal(t, types.MaxAmount.String(), s.Accounts.GetAllowance(owner, bob).String())
	assert.Equal(t, tokens(5).String(), balance(s, alice))
}

func TestTransferFrom_FailureKeepsAllowance(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &TransferData{To: alice, Value: tokens(10)}), code.OK)
	requireCode(t, deliver(t, s, alice, &ApproveData{Spender: bob, Value: tokens(30)}), code.OK)

	requireCode(t, deliver(t, s, bob, &TransferFromData{From: alice, To: bob, Value: tokens(5)}), code.TradingDisabled)
	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, bob, &TransferFromData{From: alice, To: bob, Value: tokens(20)}), code.InsufficientBalance)

	assert.Equal(t, tokens(30).String(), s.Accounts.GetAllowance(alice, bob).String())
	assert.Equal(t, tokens(10).String(), balance(s, alice))
}

func TestApprove_Errors(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, alice, &ApproveData{Spender: types.ZeroAddress, Value: tokens(1)}), code.InvalidAddress)
	requireCode(t, deliver(t, s, alice, &ApproveData{Spender: bob, Value: big.NewInt(-5)}), code.InvalidAmount)
}
