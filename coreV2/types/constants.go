package types

import "math/big"

const (
	// Decimals is the number of fractional digits of the token
	Decimals = 18

	// MaxTaxBps is 100% expressed in basis points
	MaxTaxBps = 10000
)

const (
	// NativeCoinID is the host native currency, held in the same accounts store
	NativeCoinID CoinID = 0
	// TokenCoinID is the fee-on-transfer token itself
	TokenCoinID CoinID = 1
)

// Reference deployment parameters
const (
	DefaultName       = "XRP ETF Token"
	DefaultSymbol     = "XRPETF"
	DefaultTotalUnits = 1000000000
	DefaultTeamUnits  = 50000000
	DefaultBuyTax     = 250
	DefaultSellTax    = 250
)

// MaxAmount is 2^256-1. An allowance of this size is never decremented.
var MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
