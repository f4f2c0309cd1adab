package transaction

import (
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/treasury"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/MinterTeam/taxtoken/crypto"
	"github.com/pkg/errors"
)

// TxType of transaction is determined by a single byte.
type TxType byte

func (t TxType) String() string {
	return "0x" + hex.EncodeToString([]byte{byte(t)})
}

func (t TxType) UInt64() uint64 {
	return uint64(t)
}

const (
	TypeTransfer             TxType = 0x01
	TypeApprove              TxType = 0x02
	TypeTransferFrom         TxType = 0x03
	TypeUpdateTaxWallet      TxType = 0x04
	TypeUpdateTax            TxType = 0x05
	TypeEnableTrading        TxType = 0x06
	TypeWhiteListWallet      TxType = 0x07
	TypeRemoveFromWhiteList  TxType = 0x08
	TypeSetAMMPair           TxType = 0x09
	TypeEnableFeeBurn        TxType = 0x0A
	TypeDisableFeeBurn       TxType = 0x0B
	TypeWithdrawNative       TxType = 0x0C
	TypeWithdrawForeignToken TxType = 0x0D
	TypeDepositNative        TxType = 0x0E
)

var txTypeNames = map[TxType]string{
	TypeTransfer:             "transfer",
	TypeApprove:              "approve",
	TypeTransferFrom:         "transfer_from",
	TypeUpdateTaxWallet:      "update_tax_wallet",
	TypeUpdateTax:            "update_tax",
	TypeEnableTrading:        "enable_trading",
	TypeWhiteListWallet:      "white_list_wallet",
	TypeRemoveFromWhiteList:  "remove_from_white_list",
	TypeSetAMMPair:           "set_amm_pair",
	TypeEnableFeeBurn:        "enable_fee_burn",
	TypeDisableFeeBurn:       "disable_fee_burn",
	TypeWithdrawNative:       "withdraw_native",
	TypeWithdrawForeignToken: "withdraw_foreign_token",
	TypeDepositNative:        "deposit_native",
}

var (
	ErrUnknownTxType = errors.New("unknown tx type")
	ErrInvalidSig    = errors.New("invalid transaction signature")
)

// Name is the text form used by the JSON encoding
func (t TxType) Name() string {
	if name, ok := txTypeNames[t]; ok {
		return name
	}
	return t.String()
}

func (t TxType) MarshalText() ([]byte, error) {
	if _, ok := txTypeNames[t]; !ok {
		return nil, errors.Wrap(ErrUnknownTxType, t.String())
	}
	return []byte(t.Name()), nil
}

func (t *TxType) UnmarshalText(input []byte) error {
	for txType, name := range txTypeNames {
		if name == string(input) {
			*t = txType
			return nil
		}
	}
	return errors.Wrap(ErrUnknownTxType, string(input))
}

// Interaction is a call into a foreign ledger. It runs after the operation's
// own state is committed and the token is unlocked.
type Interaction struct {
	Ledger types.Address
	Call   func() error
}

type Data interface {
	String() string
	Run(tx *Transaction, context state.Interface, registry *treasury.Registry) Response
	TxType() TxType
}

// Transaction is a single public operation. Sender is the caller of the operation.
// A transaction received from outside the host carries SignatureData and its
// Sender is recovered from the signature. Signed transactions must use the
// next nonce of the sender.
type Transaction struct {
	Nonce         uint64
	Sender        types.Address
	Type          TxType
	SignatureData SignatureData

	decodedData Data
}

// SignatureData is a secp256k1 signature in [R || S || V] form, hex encoded in JSON
type SignatureData []byte

func (sig SignatureData) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(sig)), nil
}

func (sig *SignatureData) UnmarshalText(input []byte) error {
	b := types.FromHex(string(input))
	if b == nil && len(input) != 0 {
		return errors.Wrapf(ErrInvalidSig, "bad hex %q", string(input))
	}
	*sig = b
	return nil
}

func NewTransaction(sender types.Address, data Data) *Transaction {
	return &Transaction{
		Sender:      sender,
		Type:        data.TxType(),
		decodedData: data,
	}
}

func (tx *Transaction) String() string {
	return fmt.Sprintf("TX nonce:%d from:%s data:%s", tx.Nonce, tx.Sender.String(), tx.decodedData.String())
}

func (tx *Transaction) SetDecodedData(data Data) {
	tx.decodedData = data
}

func (tx *Transaction) GetDecodedData() Data {
	return tx.decodedData
}

// IsSigned reports whether the sender was authenticated by a signature
func (tx *Transaction) IsSigned() bool {
	return len(tx.SignatureData) != 0
}

type signedPayload struct {
	Nonce uint64          `json:"nonce"`
	Type  TxType          `json:"type"`
	Data  json.RawMessage `json:"data"`
}

// Hash is the digest a sender signs: Keccak256 of the canonical JSON of
// nonce, type and data.
func (tx *Transaction) Hash() (types.Hash, error) {
	if tx.decodedData == nil {
		return types.Hash{}, errors.New("transaction has no data")
	}

	data, err := json.Marshal(tx.decodedData)
	if err != nil {
		return types.Hash{}, err
	}

	payload, err := json.Marshal(signedPayload{Nonce: tx.Nonce, Type: tx.Type, Data: data})
	if err != nil {
		return types.Hash{}, err
	}

	return crypto.Keccak256Hash(payload), nil
}

// Sign signs tx with prv and sets the sender to the key's address
func (tx *Transaction) Sign(prv *ecdsa.PrivateKey) error {
	h, err := tx.Hash()
	if err != nil {
		return err
	}

	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return err
	}

	tx.SignatureData = sig
	tx.Sender = crypto.PubkeyToAddress(prv.PublicKey)

	return nil
}

// RecoverSender returns the address that signed tx
func (tx *Transaction) RecoverSender() (types.Address, error) {
	if !tx.IsSigned() {
		return types.Address{}, errors.Wrap(ErrInvalidSig, "transaction is not signed")
	}
	if len(tx.SignatureData) != crypto.SignatureLength {
		return types.Address{}, errors.Wrapf(ErrInvalidSig, "signature length %d", len(tx.SignatureData))
	}

	h, err := tx.Hash()
	if err != nil {
		return types.Address{}, err
	}

	sig := tx.SignatureData
	return RecoverPlain(h, new(big.Int).SetBytes(sig[:32]), new(big.Int).SetBytes(sig[32:64]), sig[64])
}

func RecoverPlain(sighash types.Hash, R, S *big.Int, V byte) (types.Address, error) {
	if !crypto.ValidateSignatureValues(V, R, S, true) {
		return types.Address{}, errors.Wrap(ErrInvalidSig, "invalid v, r, s values")
	}

	// encode the signature in uncompressed format
	r, s := R.Bytes(), S.Bytes()
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	sig[64] = V

	// recover the public key from the signature
	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return types.Address{}, errors.Wrap(ErrInvalidSig, err.Error())
	}
	if len(pub) == 0 || pub[0] != 4 {
		return types.Address{}, errors.Wrap(ErrInvalidSig, "invalid public key")
	}

	var addr types.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}
