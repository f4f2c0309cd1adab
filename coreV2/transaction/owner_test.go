package transaction

import (
	"testing"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/stretchr/testify/assert"
)

func TestOwnerOperations_Unauthorized(t *testing.T) {
	t.Parallel()

	cases := []Data{
		&UpdateTaxWalletData{Wallet: alice},
		&UpdateTaxData{BuyTax: 1, SellTax: 1},
		&EnableTradingData{},
		&WhiteListWalletData{Wallet: alice},
		&RemoveFromWhiteListData{Wallet: owner},
		&SetAMMPairData{Pair: alice, Value: true},
		&EnableFeeBurnData{},
		&DisableFeeBurnData{},
		&WithdrawNativeData{},
		&WithdrawForeignTokenData{Token: bob},
	}

	for _, data := range cases {
		data := data
		t.Run(data.TxType().Name(), func(t *testing.T) {
			t.Parallel()
			s := getState(t)
			hash := s.Hash()

			requireCode(t, deliver(t, s, alice, data), code.Unauthorized)
			assert.Equal(t, hash, s.Hash())
		})
	}
}

func TestUpdateTax(t *testing.T) {
	t.Parallel()
	s := getState(t)

	response := deliver(t, s, owner, &UpdateTaxData{BuyTax: 500, SellTax: types.MaxTaxBps})
	requireCode(t, response, code.OK)
	assert.Equal(t, events.Events{&events.TaxUpdateEvent{BuyTax: 500, SellTax: types.MaxTaxBps}}, response.Events)
	buy, sell := s.App.Taxes()
	assert.Equal(t, uint32(500), buy)
	assert.Equal(t, uint32(types.MaxTaxBps), sell)

	requireCode(t, deliver(t, s, owner, &UpdateTaxData{BuyTax: 10001, SellTax: 0}), code.InvalidTaxRate)
	requireCode(t, deliver(t, s, owner, &UpdateTaxData{BuyTax: 0, SellTax: 10001}), code.InvalidTaxRate)

	buy, sell = s.App.Taxes()
	assert.Equal(t, uint32(500), buy)
	assert.Equal(t, uint32(types.MaxTaxBps), sell)
}

func TestUpdateTaxWallet(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &UpdateTaxWalletData{Wallet: types.ZeroAddress}), code.InvalidAddress)
	requireCode(t, deliver(t, s, owner, &UpdateTaxWalletData{Wallet: bob}), code.OK)
	assert.Equal(t, bob, s.App.TaxWallet())

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &TransferData{To: pair, Value: tokens(100)}), code.OK)
	requireCode(t, deliver(t, s, pair, &TransferData{To: alice, Value: tokens(100)}), code.OK)
	assert.Equal(t, "2500000000000000000", balance(s, bob))
	assert.Equal(t, "0", balance(s, wallet))
}

func TestEnableTrading_Twice(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.TradingAlreadyEnabled)
	assert.True(t, s.App.TradingEnabled())
}

func TestWhiteList(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &TransferData{To: pair, Value: tokens(200)}), code.OK)
	requireCode(t, deliver(t, s, owner, &WhiteListWalletData{Wallet: alice}), code.OK)
	assert.True(t, s.ExcludedFromFee.Has(alice))

	requireCode(t, deliver(t, s, pair, &TransferData{To: alice, Value: tokens(100)}), code.OK)
	assert.Equal(t, tokens(100).String(), balance(s, alice))

	requireCode(t, deliver(t, s, owner, &RemoveFromWhiteListData{Wallet: alice}), code.OK)
	assert.False(t, s.ExcludedFromFee.Has(alice))

	requireCode(t, deliver(t, s, pair, &TransferData{To: alice, Value: tokens(100)}), code.OK)
	assert.Equal(t, "197500000000000000000", balance(s, alice))
}

func TestSetAMMPair(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &SetAMMPairData{Pair: types.ZeroAddress, Value: true}), code.InvalidAddress)
	requireCode(t, deliver(t, s, owner, &SetAMMPairData{Pair: bob, Value: true}), code.OK)
	assert.True(t, s.AMMPairs.Has(bob))

	requireCode(t, deliver(t, s, owner, &SetAMMPairData{Pair: pair, Value: false}), code.OK)
	assert.False(t, s.AMMPairs.Has(pair))

	requireCode(t, deliver(t, s, owner, &EnableTradingData{}), code.OK)
	requireCode(t, deliver(t, s, owner, &TransferData{To: pair, Value: tokens(10)}), code.OK)
	requireCode(t, deliver(t, s, pair, &TransferData{To: alice, Value: tokens(10)}), code.OK)
	assert.Equal(t, tokens(10).String(), balance(s, alice), "a removed pair is an ordinary wallet")
}

func TestFeeBurnToggle(t *testing.T) {
	t.Parallel()
	s := getState(t)

	requireCode(t, deliver(t, s, owner, &EnableFeeBurnData{}), code.OK)
	assert.True(t, s.App.FeeBurnEnabled())
	requireCode(t, deliver(t, s, owner, &DisableFeeBurnData{}), code.OK)
	assert.False(t, s.App.FeeBurnEnabled())
}
