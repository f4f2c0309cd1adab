package token

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/statistics"
	"github.com/MinterTeam/taxtoken/coreV2/transaction"
	"github.com/MinterTeam/taxtoken/coreV2/treasury"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"
)

var eventsPrefix = []byte("events/")

type Options struct {
	StateCacheSize int
	KeepLastStates int64
	Registry       *treasury.Registry
	Logger         log.Logger
	Metrics        *statistics.Metrics
}

// Token is the public surface of the ledger. Every operation runs to
// completion under the token lock and is committed as one state version,
// or rolled back entirely when it fails.
type Token struct {
	state          *state.State
	events         events.IEventsDB
	executor       *transaction.Executor
	registry       *treasury.Registry
	keepLastStates int64

	logger  log.Logger
	metrics *statistics.Metrics

	// afterRun sees the deliver state between a successful run and the invariant check
	afterRun func(*state.State)

	lock sync.RWMutex
}

// New opens the state stored in db. An empty db is initialized from genesis.
// The token registers itself in the ledger registry under its contract address.
func New(db dbm.DB, genesis *types.AppState, opts Options) (*Token, error) {
	if opts.StateCacheSize == 0 {
		opts.StateCacheSize = 1000000
	}
	if opts.Registry == nil {
		opts.Registry = treasury.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}

	s, err := state.NewState(db, opts.StateCacheSize, opts.KeepLastStates)
	if err != nil {
		return nil, errors.Wrap(err, "can't open state")
	}
	s.SetLogger(opts.Logger.With("module", "state"))

	t := &Token{
		state:    s,
		events:   events.NewEventsStore(dbm.NewPrefixDB(db, eventsPrefix)),
		executor: transaction.NewExecutor(transaction.GetData, opts.Registry),
		registry: opts.Registry,
		logger:   opts.Logger.With("module", "token"),
		metrics:  opts.Metrics,

		keepLastStates: opts.KeepLastStates,
	}

	if s.IsEmpty() {
		if genesis == nil {
			return nil, errors.New("state is empty and no genesis given")
		}
		if err := t.importGenesis(*genesis); err != nil {
			return nil, err
		}
	}

	opts.Registry.Register(t.ContractAddress(), t)

	t.logger.Info("Token loaded", "symbol", t.Symbol(), "height", s.Height(), "hash", fmt.Sprintf("%X", s.Hash()))
	t.metrics.SetHeight(s.Height(), t.TotalSupply())

	return t, nil
}

// Close removes the token from the ledger registry
func (t *Token) Close() {
	t.registry.Unregister(t.ContractAddress())
}

func (t *Token) importGenesis(genesis types.AppState) error {
	if err := t.state.Import(genesis); err != nil {
		t.state.Rollback()
		return err
	}

	if err := t.state.Check(); err != nil {
		t.state.Rollback()
		return errors.Wrap(err, "genesis invariants")
	}

	if _, err := t.state.Commit(); err != nil {
		return errors.Wrap(err, "can't commit genesis")
	}

	return nil
}

// CheckTx validates tx against the current state without applying it
func (t *Token) CheckTx(tx *transaction.Transaction) transaction.Response {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.executor.RunTx(state.NewCheckState(t.state), tx)
}

// DeliverTx applies tx. A foreign ledger call requested by the operation runs
// after the state is committed and the lock is released.
func (t *Token) DeliverTx(tx *transaction.Transaction) transaction.Response {
	t.lock.Lock()
	response := t.deliver(tx)
	t.lock.Unlock()

	if response.Code == code.OK && response.Interaction != nil {
		interaction := response.Interaction
		response.Interaction = nil

		if err := interaction.Call(); err != nil {
			t.logger.Info("External call failed", "tx", tx.String(), "ledger", interaction.Ledger.String(), "err", err)
			response = transaction.ExternalCallFailedResponse(interaction.Ledger, err)
		}
	}

	t.metrics.ObserveTx(tx.Type.Name(), response.Code)

	return response
}

// CheckRawTx decodes a signed JSON transaction and validates it
func (t *Token) CheckRawTx(raw []byte) transaction.Response {
	tx, response := t.executor.DecodeRawTx(raw)
	if response.Code != code.OK {
		return response
	}

	return t.CheckTx(tx)
}

// DeliverRawTx decodes a signed JSON transaction and applies it
func (t *Token) DeliverRawTx(raw []byte) transaction.Response {
	tx, response := t.executor.DecodeRawTx(raw)
	if response.Code != code.OK {
		t.metrics.ObserveTx("undecoded", response.Code)
		return response
	}

	return t.DeliverTx(tx)
}

func (t *Token) deliver(tx *transaction.Transaction) transaction.Response {
	response := t.executor.RunTx(t.state, tx)
	if response.Code != code.OK {
		t.state.Rollback()
		t.logger.Info("Transaction rejected", "tx", tx.String(), "code", response.Code, "log", response.Log)
		return response
	}

	if t.afterRun != nil {
		t.afterRun(t.state)
	}

	if err := t.state.Check(); err != nil {
		t.state.Rollback()
		t.logger.Error("Invariant violation", "tx", tx.String(), "err", err)
		return transaction.Response{
			Code: code.InvariantViolation,
			Log:  err.Error(),
			Info: transaction.EncodeError(code.NewInvariantViolation(err.Error())),
		}
	}

	if _, err := t.state.Commit(); err != nil {
		t.logger.Error("Commit failed", "tx", tx.String(), "err", err)
		return transaction.Response{
			Code: code.InvariantViolation,
			Log:  err.Error(),
			Info: transaction.EncodeError(code.NewInvariantViolation(err.Error())),
		}
	}

	t.saveEvents(response.Events)

	if fee, ok := response.Tag("tx.fee"); ok {
		route, _ := response.Tag("tx.fee_route")
		amount, _ := big.NewInt(0).SetString(fee, 10)
		t.metrics.ObserveFee(route, amount)
	}
	t.metrics.SetHeight(t.state.Height(), t.state.App.GetTotalSupply())

	return response
}

// saveEvents stores events of the committed version and drops the events of
// the version the state pruned. A failed write loses the events only.
func (t *Token) saveEvents(emitted events.Events) {
	height := t.state.Height()

	for _, event := range emitted {
		t.events.AddEvent(event)
	}
	if err := t.events.CommitEvents(height); err != nil {
		t.events.Rollback()
		t.logger.Error("Events not saved", "height", height, "err", err)
	}

	if t.keepLastStates <= 0 {
		return
	}

	heightToDelete := height - t.keepLastStates - 1
	if heightToDelete < 1 {
		return
	}

	if err := t.events.DeleteEvents(heightToDelete); err != nil {
		t.logger.Error("DeleteEvents error", "height", heightToDelete, "err", err)
	}
}

func (t *Token) run(sender types.Address, data transaction.Data) error {
	return t.DeliverTx(transaction.NewTransaction(sender, data)).Err()
}

func (t *Token) Transfer(caller, to types.Address, amount *big.Int) error {
	return t.run(caller, &transaction.TransferData{To: to, Value: amount})
}

func (t *Token) Approve(caller, spender types.Address, amount *big.Int) error {
	return t.run(caller, &transaction.ApproveData{Spender: spender, Value: amount})
}

func (t *Token) TransferFrom(caller, from, to types.Address, amount *big.Int) error {
	return t.run(caller, &transaction.TransferFromData{From: from, To: to, Value: amount})
}

func (t *Token) UpdateTaxWallet(caller, wallet types.Address) error {
	return t.run(caller, &transaction.UpdateTaxWalletData{Wallet: wallet})
}

func (t *Token) UpdateTax(caller types.Address, buyTax, sellTax uint32) error {
	return t.run(caller, &transaction.UpdateTaxData{BuyTax: buyTax, SellTax: sellTax})
}

func (t *Token) EnableTrading(caller types.Address) error {
	return t.run(caller, &transaction.EnableTradingData{})
}

func (t *Token) WhiteListWallet(caller, wallet types.Address) error {
	return t.run(caller, &transaction.WhiteListWalletData{Wallet: wallet})
}

func (t *Token) RemoveFromWhiteList(caller, wallet types.Address) error {
	return t.run(caller, &transaction.RemoveFromWhiteListData{Wallet: wallet})
}

func (t *Token) SetAMMPair(caller, pair types.Address, value bool) error {
	return t.run(caller, &transaction.SetAMMPairData{Pair: pair, Value: value})
}

func (t *Token) EnableFeeBurn(caller types.Address) error {
	return t.run(caller, &transaction.EnableFeeBurnData{})
}

func (t *Token) DisableFeeBurn(caller types.Address) error {
	return t.run(caller, &transaction.DisableFeeBurnData{})
}

func (t *Token) WithdrawNative(caller types.Address) error {
	return t.run(caller, &transaction.WithdrawNativeData{})
}

func (t *Token) WithdrawForeignToken(caller, token types.Address) error {
	return t.run(caller, &transaction.WithdrawForeignTokenData{Token: token})
}

func (t *Token) DepositNative(caller types.Address, amount *big.Int) error {
	return t.run(caller, &transaction.DepositNativeData{Value: amount})
}
