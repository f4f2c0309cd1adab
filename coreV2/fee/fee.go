package fee

import (
	"math/big"

	"github.com/MinterTeam/taxtoken/coreV2/state"
	"github.com/MinterTeam/taxtoken/coreV2/state/app"
	"github.com/MinterTeam/taxtoken/coreV2/state/sets"
	"github.com/MinterTeam/taxtoken/coreV2/types"
)

// Kind is the classification of a token movement
type Kind byte

const (
	KindTransfer Kind = iota
	KindBuy
	KindSell
	KindExempt
)

func (k Kind) String() string {
	switch k {
	case KindBuy:
		return "buy"
	case KindSell:
		return "sell"
	case KindExempt:
		return "exempt"
	default:
		return "transfer"
	}
}

// Route is where the fee of an applied split ended up
type Route string

const (
	RouteNone      Route = "none"
	RouteTaxWallet Route = "tax_wallet"
	RouteBurn      Route = "burn"
)

// Reader is the read-only state the engine needs. *state.CheckState implements it.
type Reader interface {
	App() app.RApp
	ExcludedFromFee() sets.RSet
	AMMPairs() sets.RSet
}

type Split struct {
	Kind  Kind
	Rate  uint32
	Gross *big.Int
	Fee   *big.Int
	Net   *big.Int
}

// Classify resolves the kind of a movement and the rate in basis points.
// Exemption wins over pair membership, a buy wins over a sell.
func Classify(r Reader, from, to types.Address) (Kind, uint32) {
	if r.ExcludedFromFee().Has(from) || r.ExcludedFromFee().Has(to) {
		return KindExempt, 0
	}

	buy, sell := r.App().Taxes()
	if r.AMMPairs().Has(from) {
		return KindBuy, buy
	}
	if r.AMMPairs().Has(to) {
		return KindSell, sell
	}

	return KindTransfer, 0
}

// Calculate returns the split of amount. It does not touch the state.
func Calculate(r Reader, from, to types.Address, amount *big.Int) Split {
	kind, rate := Classify(r, from, to)

	return Split{
		Kind:  kind,
		Rate:  rate,
		Gross: big.NewInt(0).Set(amount),
		Fee:   Amount(amount, rate),
		Net:   big.NewInt(0).Sub(amount, Amount(amount, rate)),
	}
}

// Amount is floor(amount * bps / 10000)
func Amount(amount *big.Int, bps uint32) *big.Int {
	if bps == 0 || amount.Sign() == 0 {
		return big.NewInt(0)
	}

	fee := big.NewInt(0).Mul(amount, big.NewInt(int64(bps)))
	return fee.Div(fee, big.NewInt(types.MaxTaxBps))
}

// Apply moves the split through the ledger: the sender pays the gross amount,
// the recipient gets the net and the fee is burned or paid to the tax wallet.
func Apply(deliver *state.State, from, to types.Address, split Split) Route {
	deliver.Accounts.SubBalance(from, types.TokenCoinID, split.Gross)
	deliver.Accounts.AddBalance(to, types.TokenCoinID, split.Net)

	if split.Fee.Sign() == 0 {
		return RouteNone
	}

	if deliver.App.FeeBurnEnabled() {
		deliver.App.SubTotalSupply(split.Fee)
		return RouteBurn
	}

	deliver.Accounts.AddBalance(deliver.App.TaxWallet(), types.TokenCoinID, split.Fee)
	return RouteTaxWallet
}
