package accounts

import (
	"math/big"
	"testing"

	"github.com/MinterTeam/taxtoken/coreV2/state/bus"
	"github.com/MinterTeam/taxtoken/coreV2/state/checker"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/cosmos/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db "github.com/tendermint/tm-db"
)

func newAccounts(t *testing.T) (*Accounts, *checker.Checker, *iavl.MutableTree) {
	t.Helper()

	b := bus.NewBus()
	c := checker.NewChecker(b)
	tree, err := iavl.NewMutableTree(db.NewMemDB(), 1024)
	require.NoError(t, err)

	return NewAccounts(b, nil), c, tree
}

func save(t *testing.T, a *Accounts, tree *iavl.MutableTree) {
	t.Helper()

	require.NoError(t, a.Commit(tree))
	_, version, err := tree.SaveVersion()
	require.NoError(t, err)
	immutable, err := tree.GetImmutable(version)
	require.NoError(t, err)
	a.SetImmutableTree(immutable)
}

func TestAccounts_Balance(t *testing.T) {
	a, c, tree := newAccounts(t)
	addr := types.BytesToAddress([]byte{1})

	assert.Equal(t, big.NewInt(0), a.GetBalance(addr, types.TokenCoinID))

	a.AddBalance(addr, types.TokenCoinID, big.NewInt(100))
	a.SubBalance(addr, types.TokenCoinID, big.NewInt(30))
	assert.Equal(t, big.NewInt(70), a.GetBalance(addr, types.TokenCoinID))
	assert.Error(t, c.Check())

	save(t, a, tree)
	a.Rollback()
	assert.Equal(t, big.NewInt(70), a.GetBalance(addr, types.TokenCoinID))
	assert.Equal(t, big.NewInt(0), a.GetBalance(addr, types.NativeCoinID))
}

func TestAccounts_GetBalanceReturnsCopy(t *testing.T) {
	a, _, _ := newAccounts(t)
	addr := types.BytesToAddress([]byte{1})
	a.SetBalance(addr, types.TokenCoinID, big.NewInt(5))

	balance := a.GetBalance(addr, types.TokenCoinID)
	balance.SetInt64(1000)

	assert.Equal(t, big.NewInt(5), a.GetBalance(addr, types.TokenCoinID))
}

func TestAccounts_NegativeBalanceFailsCommit(t *testing.T) {
	a, _, tree := newAccounts(t)
	addr := types.BytesToAddress([]byte{1})

	a.SubBalance(addr, types.TokenCoinID, big.NewInt(1))
	assert.Error(t, a.Commit(tree))
}

func TestAccounts_AllowanceAndExport(t *testing.T) {
	a, _, tree := newAccounts(t)
	owner := types.BytesToAddress([]byte{1})
	spender := types.BytesToAddress([]byte{2})

	a.SetBalance(owner, types.TokenCoinID, big.NewInt(10))
	a.SetBalance(owner, types.NativeCoinID, big.NewInt(3))
	a.SetAllowance(owner, spender, big.NewInt(4))
	save(t, a, tree)

	assert.Equal(t, big.NewInt(4), a.GetAllowance(owner, spender))
	assert.Equal(t, big.NewInt(0), a.GetAllowance(spender, owner))

	appState := new(types.AppState)
	a.Export(appState)
	require.Len(t, appState.Accounts, 1)
	assert.Equal(t, owner, appState.Accounts[0].Address)
	assert.Equal(t, []types.Balance{
		{Coin: uint64(types.NativeCoinID), Value: "3"},
		{Coin: uint64(types.TokenCoinID), Value: "10"},
	}, appState.Accounts[0].Balance)
	assert.Equal(t, []types.Allowance{{Spender: spender, Value: "4"}}, appState.Accounts[0].Allowances)

	a.SetAllowance(owner, spender, big.NewInt(0))
	a.SetBalance(owner, types.NativeCoinID, big.NewInt(0))
	save(t, a, tree)

	appState = new(types.AppState)
	a.Export(appState)
	require.Len(t, appState.Accounts, 1)
	assert.Len(t, appState.Accounts[0].Balance, 1)
	assert.Empty(t, appState.Accounts[0].Allowances)
}

func TestAccounts_Nonce(t *testing.T) {
	a, c, tree := newAccounts(t)
	addr := types.BytesToAddress([]byte{1})

	assert.Equal(t, uint64(0), a.GetNonce(addr))

	a.SetNonce(addr, 3)
	assert.NoError(t, c.Check())
	a.Rollback()
	assert.Equal(t, uint64(0), a.GetNonce(addr))

	a.SetNonce(addr, 3)
	save(t, a, tree)
	a.Rollback()
	assert.Equal(t, uint64(3), a.GetNonce(addr))

	appState := new(types.AppState)
	a.Export(appState)
	require.Len(t, appState.Accounts, 1)
	assert.Equal(t, uint64(3), appState.Accounts[0].Nonce)
	assert.Empty(t, appState.Accounts[0].Balance)
}
