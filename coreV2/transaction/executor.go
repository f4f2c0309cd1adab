package transaction

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/treasury"
)

const maxTxLength = 4096

// Response represents standard response from tx delivery/check
type Response struct {
	Code uint32                    `json:"code,omitempty"`
	Log  string                    `json:"log,omitempty"`
	Info string                    `json:"-"`
	Tags []abcTypes.EventAttribute `json:"tags,omitempty"`

	// Events emitted by a successful delivery
	Events events.Events `json:"-"`

	// Interaction is set by deliveries that call a foreign ledger
	Interaction *Interaction `json:"-"`
}

// Err converts a failed response into *code.Error
func (r Response) Err() error {
	if r.Code == code.OK {
		return nil
	}
	return &code.Error{Code: r.Code, Log: r.Log, Info: r.Info}
}

// Tag returns the value of the tag with the given key
func (r Response) Tag(key string) (string, bool) {
	for _, tag := range r.Tags {
		if string(tag.Key) == key {
			return string(tag.Value), true
		}
	}
	return "", false
}

type Executor struct {
	decodeTxFunc func(txType TxType) (Data, bool)
	registry     *treasury.Registry
}

func NewExecutor(decodeTxFunc func(txType TxType) (Data, bool), registry *treasury.Registry) *Executor {
	return &Executor{decodeTxFunc: decodeTxFunc, registry: registry}
}

// DecodeRawTx decodes a signed JSON transaction. A failure is reported as a
// DecodeError, UnknownTxType or InvalidSignature response.
func (e *Executor) DecodeRawTx(rawTx []byte) (*Transaction, Response) {
	if len(rawTx) > maxTxLength {
		return nil, Response{
			Code: code.DecodeError,
			Log:  fmt.Sprintf("TX length is over %d bytes", maxTxLength),
			Info: EncodeError(code.NewDecodeError()),
		}
	}

	tx, err := e.DecodeFromJSON(rawTx)
	if err != nil {
		if errors.Is(err, ErrInvalidSig) {
			return nil, Response{
				Code: code.InvalidSignature,
				Log:  err.Error(),
				Info: EncodeError(code.NewInvalidSignature(err.Error())),
			}
		}
		if errors.Is(err, ErrUnknownTxType) {
			return nil, Response{
				Code: code.UnknownTxType,
				Log:  err.Error(),
				Info: EncodeError(code.NewUnknownTxType(err.Error())),
			}
		}
		return nil, Response{
			Code: code.DecodeError,
			Log:  err.Error(),
			Info: EncodeError(code.NewDecodeError()),
		}
	}

	return tx, Response{Code: code.OK}
}

// RunTx executes transaction in given context. Against *state.CheckState it
// only validates; against *state.State it also applies the changes.
func (e *Executor) RunTx(context state.Interface, tx *Transaction) Response {
	if tx.decodedData == nil {
		return Response{
			Code: code.DecodeError,
			Log:  "Transaction has no data",
			Info: EncodeError(code.NewDecodeError()),
		}
	}

	if _, ok := e.decodeTxFunc(tx.decodedData.TxType()); !ok {
		return Response{
			Code: code.UnknownTxType,
			Log:  fmt.Sprintf("Unknown tx type %s", tx.decodedData.TxType()),
			Info: EncodeError(code.NewUnknownTxType(tx.decodedData.TxType().String())),
		}
	}

	checkState, deliverState := splitContext(context)

	if tx.IsSigned() {
		if response := checkNonce(checkState, tx); response != nil {
			return *response
		}
	}

	response := tx.decodedData.Run(tx, context, e.registry)

	isCheck := deliverState == nil
	if !isCheck && response.Code == code.OK && tx.IsSigned() {
		deliverState.Accounts.SetNonce(tx.Sender, tx.Nonce)
	}

	if isCheck || response.Code != code.OK {
		response.Tags = nil
		response.Events = nil
		response.Interaction = nil
	} else {
		response.Tags = append(response.Tags,
			abcTypes.EventAttribute{Key: []byte("tx.from"), Value: []byte(hex.EncodeToString(tx.Sender[:])), Index: true},
			abcTypes.EventAttribute{Key: []byte("tx.type"), Value: []byte(tx.decodedData.TxType().Name()), Index: true},
		)
	}

	return response
}

// EncodeError encodes error to json
func EncodeError(data interface{}) string {
	marshaled, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return string(marshaled)
}
