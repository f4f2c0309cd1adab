package state

import (
	"math/big"
	"testing"

	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/MinterTeam/taxtoken/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db "github.com/tendermint/tm-db"
)

var (
	owner = types.HexToAddress("0x1000000000000000000000000000000000000001")
	team  = types.HexToAddress("0x2000000000000000000000000000000000000002")
	alice = types.HexToAddress("0x3000000000000000000000000000000000000003")
)

func newGenesisState(t *testing.T, memDB db.DB) *State {
	t.Helper()

	state, err := NewState(memDB, 1024, 0)
	require.NoError(t, err)

	genesis := types.NewDefaultAppState(owner, team)
	genesis.Accounts[0].Balance = append(genesis.Accounts[0].Balance, types.Balance{Coin: uint64(types.NativeCoinID), Value: "100"})
	require.NoError(t, state.Import(genesis))
	require.NoError(t, state.Check())
	_, err = state.Commit()
	require.NoError(t, err)

	return state
}

func TestState_ImportCommit(t *testing.T) {
	t.Parallel()

	state := newGenesisState(t, db.NewMemDB())

	assert.Equal(t, int64(1), state.Height())
	assert.Equal(t, owner, state.App.Owner())
	assert.Equal(t, types.DefaultSymbol, state.App.Symbol())
	assert.Equal(t, helpers.TokensToUnits(big.NewInt(types.DefaultTotalUnits)), state.App.GetTotalSupply())
	assert.Equal(t, helpers.TokensToUnits(big.NewInt(types.DefaultTeamUnits)), state.Accounts.GetBalance(team, types.TokenCoinID))
	assert.Equal(t, big.NewInt(100), state.Accounts.GetBalance(owner, types.NativeCoinID))
	assert.True(t, state.ExcludedFromFee.Has(owner))
	assert.False(t, state.App.TradingEnabled())
}

func TestState_ImportRejectsSupplyMismatch(t *testing.T) {
	t.Parallel()

	state, err := NewState(db.NewMemDB(), 1024, 0)
	require.NoError(t, err)

	genesis := types.NewDefaultAppState(owner, team)
	genesis.TotalSupply = "1"
	require.Error(t, state.Import(genesis))
}

func TestState_CheckDetectsUnbackedBalance(t *testing.T) {
	t.Parallel()

	state := newGenesisState(t, db.NewMemDB())

	state.Accounts.AddBalance(alice, types.TokenCoinID, big.NewInt(1))
	require.Error(t, state.Check())

	state.App.AddTotalSupply(big.NewInt(1))
	require.NoError(t, state.Check())
}

func TestState_Rollback(t *testing.T) {
	t.Parallel()

	state := newGenesisState(t, db.NewMemDB())
	hash := state.Hash()

	state.Accounts.SubBalance(owner, types.TokenCoinID, big.NewInt(10))
	state.Accounts.AddBalance(alice, types.TokenCoinID, big.NewInt(10))
	state.App.EnableTrading()
	state.AMMPairs.Add(alice)
	state.Rollback()

	assert.Equal(t, big.NewInt(0), state.Accounts.GetBalance(alice, types.TokenCoinID))
	assert.False(t, state.App.TradingEnabled())
	assert.False(t, state.AMMPairs.Has(alice))
	require.NoError(t, state.Check())

	_, err := state.Commit()
	require.NoError(t, err)
	assert.Equal(t, hash, state.Hash())
}

func TestState_Reopen(t *testing.T) {
	t.Parallel()

	memDB := db.NewMemDB()
	state := newGenesisState(t, memDB)

	state.Accounts.SubBalance(owner, types.TokenCoinID, big.NewInt(10))
	state.Accounts.AddBalance(alice, types.TokenCoinID, big.NewInt(10))
	state.Accounts.SetAllowance(owner, alice, big.NewInt(5))
	state.App.EnableTrading()
	require.NoError(t, state.Check())
	hash, err := state.Commit()
	require.NoError(t, err)

	reopened, err := NewState(memDB, 1024, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), reopened.Height())
	assert.Equal(t, hash, reopened.Hash())
	assert.Equal(t, big.NewInt(10), reopened.Accounts.GetBalance(alice, types.TokenCoinID))
	assert.Equal(t, big.NewInt(5), reopened.Accounts.GetAllowance(owner, alice))
	assert.True(t, reopened.App.TradingEnabled())
}

func TestState_ExportImport(t *testing.T) {
	t.Parallel()

	state := newGenesisState(t, db.NewMemDB())
	state.AMMPairs.Add(alice)
	state.Accounts.SetAllowance(team, alice, big.NewInt(7))
	state.App.SetTaxes(100, 300)
	_, err := state.Commit()
	require.NoError(t, err)

	exported, err := state.Export()
	require.NoError(t, err)
	require.NoError(t, exported.Verify())
	assert.Equal(t, []types.Address{alice}, exported.AMMPairs)
	assert.Equal(t, uint32(100), exported.BuyTax)
	assert.Equal(t, uint32(300), exported.SellTax)

	imported, err := NewState(db.NewMemDB(), 1024, 0)
	require.NoError(t, err)
	require.NoError(t, imported.Import(exported))
	require.NoError(t, imported.Check())
	_, err = imported.Commit()
	require.NoError(t, err)

	reexported, err := imported.Export()
	require.NoError(t, err)
	assert.Equal(t, exported, reexported)
}

func TestState_KeepLastStates(t *testing.T) {
	t.Parallel()

	state, err := NewState(db.NewMemDB(), 1024, 1)
	require.NoError(t, err)
	require.NoError(t, state.Import(types.NewDefaultAppState(owner, team)))
	for i := 0; i < 4; i++ {
		state.App.SetTaxes(uint32(i), uint32(i))
		_, err := state.Commit()
		require.NoError(t, err)
	}

	assert.Equal(t, []int{3, 4}, state.Tree().AvailableVersions())
}
