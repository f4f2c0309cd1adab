package crypto

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(Keccak256()))
	assert.Equal(t, Keccak256([]byte("ab")), Keccak256Hash([]byte("a"), []byte("b")).Bytes())
}

func TestPubkeyToAddress(t *testing.T) {
	t.Parallel()
	key, err := HexToECDSA("0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)

	assert.Equal(t, types.HexToAddress("0x7e5f4552091a69125d5dfcb7b8c2659029395bdf"), PubkeyToAddress(key.PublicKey))
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000001", hex.EncodeToString(FromECDSA(key)))
}

func TestToECDSA_Errors(t *testing.T) {
	t.Parallel()
	_, err := ToECDSA([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = ToECDSA(make([]byte, 32))
	assert.Error(t, err)

	_, err = HexToECDSA("zz")
	assert.Error(t, err)
}

func TestSignRecover(t *testing.T) {
	t.Parallel()
	key, err := GenerateKey()
	require.NoError(t, err)

	hash := Keccak256([]byte("message"))
	sig, err := Sign(hash, key)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	assert.True(t, ValidateSignatureValues(sig[64], r, s, true))

	pub, err := Ecrecover(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, byte(4), pub[0])

	recovered, err := SigToPub(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, PubkeyToAddress(key.PublicKey), PubkeyToAddress(*recovered))

	other := Keccak256([]byte("other message"))
	recovered, err = SigToPub(other, sig)
	if err == nil {
		assert.NotEqual(t, PubkeyToAddress(key.PublicKey), PubkeyToAddress(*recovered))
	}

	_, err = Sign(hash[:31], key)
	assert.Error(t, err)
	_, err = SigToPub(hash, sig[:64])
	assert.Error(t, err)
}

func TestValidateSignatureValues(t *testing.T) {
	t.Parallel()
	one := big.NewInt(1)
	zero := big.NewInt(0)
	highS := new(big.Int).Add(secp256k1halfN, one)

	assert.True(t, ValidateSignatureValues(0, one, one, true))
	assert.True(t, ValidateSignatureValues(1, one, one, true))
	assert.False(t, ValidateSignatureValues(2, one, one, true))
	assert.False(t, ValidateSignatureValues(0, zero, one, true))
	assert.False(t, ValidateSignatureValues(0, one, zero, true))
	assert.False(t, ValidateSignatureValues(0, secp256k1N, one, true))
	assert.False(t, ValidateSignatureValues(0, one, highS, true))
	assert.True(t, ValidateSignatureValues(0, one, highS, false))
}
