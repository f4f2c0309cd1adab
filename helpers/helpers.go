package helpers

import (
	"fmt"
	"math/big"
)

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// TokensToUnits converts whole tokens to the smallest unit (multiplies input by 1e18)
func TokensToUnits(tokens *big.Int) *big.Int {
	return new(big.Int).Mul(tokens, unit)
}

// UnitsToTokens returns a lossy float representation of an amount, for metrics and display only
func UnitsToTokens(units *big.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(units), new(big.Float).SetInt(unit)).Float64()
	return f
}

// StringToBigInt converts string to BigInt, panics on empty strings and errors
func StringToBigInt(s string) *big.Int {
	result, err := stringToBigInt(s)
	if err != nil {
		panic(err)
	}

	return result
}

func stringToBigInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("string is empty")
	}

	b, success := big.NewInt(0).SetString(s, 10)
	if !success {
		return nil, fmt.Errorf("cannot decode %s into big.Int", s)
	}

	return b, nil
}

// IsValidBigInt verifies that string is a valid non-negative int
func IsValidBigInt(s string) bool {
	b, err := stringToBigInt(s)
	if err != nil {
		return false
	}

	return b.Sign() != -1
}
