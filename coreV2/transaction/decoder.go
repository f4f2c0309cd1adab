package transaction

import (
	"encoding/json"

	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/pkg/errors"
)

func GetData(txType TxType) (Data, bool) {
	switch txType {
	case TypeTransfer:
		return &TransferData{}, true
	case TypeApprove:
		return &ApproveData{}, true
	case TypeTransferFrom:
		return &TransferFromData{}, true
	case TypeUpdateTaxWallet:
		return &UpdateTaxWalletData{}, true
	case TypeUpdateTax:
		return &UpdateTaxData{}, true
	case TypeEnableTrading:
		return &EnableTradingData{}, true
	case TypeWhiteListWallet:
		return &WhiteListWalletData{}, true
	case TypeRemoveFromWhiteList:
		return &RemoveFromWhiteListData{}, true
	case TypeSetAMMPair:
		return &SetAMMPairData{}, true
	case TypeEnableFeeBurn:
		return &EnableFeeBurnData{}, true
	case TypeDisableFeeBurn:
		return &DisableFeeBurnData{}, true
	case TypeWithdrawNative:
		return &WithdrawNativeData{}, true
	case TypeWithdrawForeignToken:
		return &WithdrawForeignTokenData{}, true
	case TypeDepositNative:
		return &DepositNativeData{}, true
	default:
		return nil, false
	}
}

type jsonTransaction struct {
	Nonce     uint64          `json:"nonce"`
	Type      TxType          `json:"type"`
	Sender    *types.Address  `json:"sender,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Signature SignatureData   `json:"signature,omitempty"`
}

// DecodeFromJSON decodes {"nonce": 1, "type": "...", "data": {...}, "signature": "0x..."}
// and recovers the sender from the signature. An optional "sender" must match
// the signer.
func (e *Executor) DecodeFromJSON(buf []byte) (*Transaction, error) {
	tx, claimed, err := e.decode(buf)
	if err != nil {
		return nil, err
	}

	sender, err := tx.RecoverSender()
	if err != nil {
		return nil, err
	}

	if claimed != nil && *claimed != sender {
		return nil, errors.Wrapf(ErrInvalidSig, "signed by %s, not by %s", sender.String(), claimed.String())
	}
	tx.Sender = sender

	return tx, nil
}

// DecodeUnsigned decodes a JSON transaction without authenticating it.
// The result is to be signed, not run.
func (e *Executor) DecodeUnsigned(buf []byte) (*Transaction, error) {
	tx, _, err := e.decode(buf)
	if err != nil {
		return nil, err
	}
	tx.SignatureData = nil

	return tx, nil
}

func (e *Executor) decode(buf []byte) (*Transaction, *types.Address, error) {
	var raw jsonTransaction
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, nil, err
	}

	data, ok := e.decodeTxFunc(raw.Type)
	if !ok {
		return nil, nil, errors.Wrap(ErrUnknownTxType, raw.Type.String())
	}

	if len(raw.Data) != 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return nil, nil, errors.Wrapf(err, "can't decode %s data", raw.Type.Name())
		}
	}

	tx := &Transaction{Nonce: raw.Nonce, Type: raw.Type, SignatureData: raw.Signature}
	tx.SetDecodedData(data)

	return tx, raw.Sender, nil
}

// EncodeToJSON is the inverse of DecodeFromJSON. tx should be signed.
func EncodeToJSON(tx *Transaction) ([]byte, error) {
	data, err := json.Marshal(tx.decodedData)
	if err != nil {
		return nil, err
	}

	sender := tx.Sender
	return json.Marshal(jsonTransaction{
		Nonce:     tx.Nonce,
		Type:      tx.Type,
		Sender:    &sender,
		Data:      data,
		Signature: tx.SignatureData,
	})
}
