package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	AddressLength = 20
	HashLength    = 32
)

// CoinID is the identifier of a balance kind in the accounts store
type CoinID uint32

func (c CoinID) String() string {
	if c == NativeCoinID {
		return "native"
	}
	return strconv.Itoa(int(c))
}

func (c CoinID) Bytes() []byte {
	return []byte{byte(c >> 24), byte(c >> 16), byte(c >> 8), byte(c)}
}

func (c CoinID) IsNative() bool {
	return c == NativeCoinID
}

/////////// Hash

// Hash is the Keccak256 digest a transaction is signed over
type Hash [HashLength]byte

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

/////////// Address

type Address [AddressLength]byte

// ZeroAddress is the null destination
var ZeroAddress = Address{}

func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

func HexToAddress(s string) Address { return BytesToAddress(FromHex(s)) }

// IsHexAddress verifies whether a string can represent a valid hex-encoded address or not.
func IsHexAddress(s string) bool {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s) != 2*AddressLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) IsZero() bool { return a == ZeroAddress }

func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// String implements the stringer interface and is used also by the logger.
func (a Address) String() string {
	return a.Hex()
}

// Sets the address to the value of b. If b is larger than len(a) it will be cropped from the left
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) Compare(a2 Address) int {
	return bytes.Compare(a[:], a2[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText parses an address in hex syntax.
func (a *Address) UnmarshalText(input []byte) error {
	s := string(input)
	if !IsHexAddress(s) {
		return fmt.Errorf("invalid address %q", s)
	}
	a.SetBytes(FromHex(s))
	return nil
}

// CreateContractAddress derives the token contract address from the deployer and the symbol
func CreateContractAddress(deployer Address, symbol string) Address {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(deployer[:])
	hasher.Write([]byte(symbol))
	return BytesToAddress(hasher.Sum(nil)[HashLength-AddressLength:])
}

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x". Invalid input yields nil.
func FromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	h, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return h
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && strings.EqualFold(s[:2], "0x")
}
