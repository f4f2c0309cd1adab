package state

import (
	"github.com/MinterTeam/taxtoken/coreV2/state/accounts"
	"github.com/MinterTeam/taxtoken/coreV2/state/app"
	"github.com/MinterTeam/taxtoken/coreV2/state/bus"
	"github.com/MinterTeam/taxtoken/coreV2/state/checker"
	"github.com/MinterTeam/taxtoken/coreV2/state/sets"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/MinterTeam/taxtoken/helpers"
	"github.com/MinterTeam/taxtoken/tree"
	"github.com/cosmos/iavl"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
	db "github.com/tendermint/tm-db"
)

type Interface interface {
	isValue_State()
}

// CheckState is a read-only view used for validation and dry runs
type CheckState struct {
	state *State
}

func NewCheckState(state *State) *CheckState {
	return &CheckState{state: state}
}

func (cs *CheckState) isValue_State() {}

func (cs *CheckState) Export() types.AppState {
	appState := new(types.AppState)
	cs.App().Export(appState)
	cs.Accounts().Export(appState)
	appState.ExcludedFromFee = cs.ExcludedFromFee().List()
	appState.AMMPairs = cs.AMMPairs().List()

	return *appState
}

func (cs *CheckState) App() app.RApp {
	return cs.state.App
}

func (cs *CheckState) Accounts() accounts.RAccounts {
	return cs.state.Accounts
}

func (cs *CheckState) ExcludedFromFee() sets.RSet {
	return cs.state.ExcludedFromFee
}

func (cs *CheckState) AMMPairs() sets.RSet {
	return cs.state.AMMPairs
}

// State is the deliver state. Mutations stay in memory until Commit.
type State struct {
	App             *app.App
	Accounts        *accounts.Accounts
	ExcludedFromFee *sets.Set
	AMMPairs        *sets.Set
	Checker         *checker.Checker

	db             db.DB
	tree           tree.MTree
	keepLastStates int64
	logger         log.Logger

	bus *bus.Bus
}

func (s *State) isValue_State() {}

func NewState(db db.DB, cacheSize int, keepLastStates int64) (*State, error) {
	iavlTree, err := tree.NewMutableTree(db, cacheSize)
	if err != nil {
		return nil, err
	}

	state := newStateForTree(iavlTree.GetLastImmutable(), db, keepLastStates)
	state.tree = iavlTree

	return state, nil
}

func NewCheckStateAtHeight(height uint64, db db.DB) (*CheckState, error) {
	immutableTree, err := tree.NewImmutableTree(height, db)
	if err != nil {
		return nil, err
	}

	return NewCheckState(newStateForTree(immutableTree, db, 0)), nil
}

func (s *State) SetLogger(logger log.Logger) {
	s.logger = logger
}

func (s *State) Tree() tree.ReadOnlyTree {
	return s.tree
}

func (s *State) Height() int64 {
	return s.tree.Version()
}

func (s *State) Hash() []byte {
	return s.tree.Hash()
}

// IsEmpty reports whether nothing was ever committed to the tree
func (s *State) IsEmpty() bool {
	return s.tree.Version() == 0
}

func (s *State) Check() error {
	return s.Checker.Check()
}

// Commit saves every dirty model as a new tree version and prunes versions
// older than keepLastStates.
func (s *State) Commit() ([]byte, error) {
	s.Checker.Reset()

	hash, version, err := s.tree.Commit(
		s.Accounts,
		s.App,
		s.ExcludedFromFee,
		s.AMMPairs,
	)
	if err != nil {
		s.Rollback()
		return hash, err
	}

	if s.keepLastStates <= 0 {
		return hash, nil
	}

	versionToDelete := version - s.keepLastStates - 1
	if versionToDelete < 1 {
		return hash, nil
	}

	if err := s.tree.DeleteVersionIfExists(versionToDelete); err != nil {
		s.logger.Error("DeleteVersion error", "version", versionToDelete, "err", err)
	}

	return hash, nil
}

// Rollback discards every change made since the last Commit
func (s *State) Rollback() {
	s.Checker.Reset()
	s.App.Rollback()
	s.Accounts.Rollback()
	s.ExcludedFromFee.Rollback()
	s.AMMPairs.Rollback()
}

// Import loads a genesis document. The caller checks and commits the result.
func (s *State) Import(state types.AppState) error {
	if err := state.Verify(); err != nil {
		return errors.Wrap(err, "invalid genesis")
	}

	s.App.Init(state.Name, state.Symbol, state.Decimals, state.Owner, state.ContractAddress)
	s.App.SetTaxWallet(state.TaxWallet)
	s.App.SetTaxes(state.BuyTax, state.SellTax)
	s.App.SetFeeBurn(state.FeeBurn)
	if state.TradingEnabled {
		s.App.EnableTrading()
	}
	s.App.AddTotalSupply(helpers.StringToBigInt(state.TotalSupply))

	for _, a := range state.Accounts {
		if a.Nonce != 0 {
			s.Accounts.SetNonce(a.Address, a.Nonce)
		}

		for _, b := range a.Balance {
			s.Accounts.SetBalance(a.Address, types.CoinID(b.Coin), helpers.StringToBigInt(b.Value))
		}

		for _, allowance := range a.Allowances {
			s.Accounts.SetAllowance(a.Address, allowance.Spender, helpers.StringToBigInt(allowance.Value))
		}
	}

	for _, address := range state.ExcludedFromFee {
		s.ExcludedFromFee.Add(address)
	}

	for _, address := range state.AMMPairs {
		s.AMMPairs.Add(address)
	}

	s.Checker.RemoveNativeCoin()

	return nil
}

// Export dumps the last committed version
func (s *State) Export() (types.AppState, error) {
	state, err := NewCheckStateAtHeight(uint64(s.tree.Version()), s.db)
	if err != nil {
		return types.AppState{}, errors.Wrapf(err, "create state at height %d", s.tree.Version())
	}

	return state.Export(), nil
}

func newStateForTree(immutableTree *iavl.ImmutableTree, db db.DB, keepLastStates int64) *State {
	stateBus := bus.NewBus()

	stateChecker := checker.NewChecker(stateBus)

	appState := app.NewApp(stateBus, immutableTree)

	accountsState := accounts.NewAccounts(stateBus, immutableTree)

	excludedState := sets.NewSet(sets.ExcludedPrefix, immutableTree)

	pairsState := sets.NewSet(sets.PairsPrefix, immutableTree)

	return &State{
		App:             appState,
		Accounts:        accountsState,
		ExcludedFromFee: excludedState,
		AMMPairs:        pairsState,
		Checker:         stateChecker,

		db:             db,
		keepLastStates: keepLastStates,
		logger:         log.NewNopLogger(),
		bus:            stateBus,
	}
}
