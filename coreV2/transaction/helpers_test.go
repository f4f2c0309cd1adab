package transaction

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/treasury"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/MinterTeam/taxtoken/crypto"
	"github.com/MinterTeam/taxtoken/helpers"
	"github.com/stretchr/testify/require"
	db "github.com/tendermint/tm-db"
)

var (
	ownerKey = mustKey("6c8b2c2e1f0b1b6a3f1a6d1a4e9c0f2b7a5d3e8c1b9f4a2d6e0c7b3a5f8d1e20")
	bobKey   = mustKey("1f3c5a7e9b2d4f6a8c0e1b3d5f7a9c2e4b6d8f0a1c3e5b7d9f2a4c6e8b0d1f35")

	owner  = crypto.PubkeyToAddress(ownerKey.PublicKey)
	team   = types.HexToAddress("0x2000000000000000000000000000000000000002")
	pair   = types.HexToAddress("0x3000000000000000000000000000000000000003")
	wallet = types.HexToAddress("0x4000000000000000000000000000000000000004")
	alice  = types.HexToAddress("0x5000000000000000000000000000000000000005")
	bob    = crypto.PubkeyToAddress(bobKey.PublicKey)
)

func mustKey(hexKey string) *ecdsa.PrivateKey {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		panic(err)
	}
	return key
}

// signed encodes data as a JSON transaction signed by key
func signed(t *testing.T, key *ecdsa.PrivateKey, nonce uint64, data Data) []byte {
	t.Helper()

	tx := &Transaction{Nonce: nonce, Type: data.TxType(), decodedData: data}
	require.NoError(t, tx.Sign(key))

	raw, err := EncodeToJSON(tx)
	require.NoError(t, err)

	return raw
}

func tokens(n int64) *big.Int {
	return helpers.TokensToUnits(big.NewInt(n))
}

func getState(t *testing.T) *state.State {
	t.Helper()

	s, err := state.NewState(db.NewMemDB(), 1024, 0)
	require.NoError(t, err)

	genesis := types.NewDefaultAppState(owner, team)
	genesis.TaxWallet = wallet
	genesis.AMMPairs = []types.Address{pair}
	genesis.Accounts = append(genesis.Accounts, types.Account{
		Address: alice,
		Balance: []types.Balance{{Coin: uint64(types.NativeCoinID), Value: tokens(10).String()}},
	})
	require.NoError(t, s.Import(genesis))
	require.NoError(t, s.Check())
	_, err = s.Commit()
	require.NoError(t, err)

	return s
}

func newExecutor() *Executor {
	return NewExecutor(GetData, treasury.NewRegistry())
}

// deliver runs tx as a dry run first, then against the deliver state,
// and commits on success or rolls back on failure.
func deliver(t *testing.T, s *state.State, sender types.Address, data Data) Response {
	t.Helper()

	executor := newExecutor()
	tx := NewTransaction(sender, data)

	checked := executor.RunTx(state.NewCheckState(s), tx)
	response := executor.RunTx(s, tx)
	require.Equal(t, checked.Code, response.Code, "check and deliver disagree")

	if response.Code != code.OK {
		s.Rollback()
		return response
	}

	require.NoError(t, s.Check())
	_, err := s.Commit()
	require.NoError(t, err)

	return response
}

func requireCode(t *testing.T, response Response, expected uint32) {
	t.Helper()

	require.Equalf(t, expected, response.Code, "unexpected response: %s", response.Log)
}

func balance(s *state.State, address types.Address) string {
	return s.Accounts.GetBalance(address, types.TokenCoinID).String()
}
