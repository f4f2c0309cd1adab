package types

import (
	"fmt"
	"math/big"

	"github.com/MinterTeam/taxtoken/helpers"
)

// AppState is the genesis document of the token and the format of state export
type AppState struct {
	Note            string    `json:"note"`
	Name            string    `json:"name"`
	Symbol          string    `json:"symbol"`
	Decimals        uint32    `json:"decimals"`
	Owner           Address   `json:"owner"`
	ContractAddress Address   `json:"contract_address"`
	TaxWallet       Address   `json:"tax_wallet"`
	TotalSupply     string    `json:"total_supply"`
	BuyTax          uint32    `json:"buy_tax"`
	SellTax         uint32    `json:"sell_tax"`
	TradingEnabled  bool      `json:"trading_enabled"`
	FeeBurn         bool      `json:"fee_burn"`
	ExcludedFromFee []Address `json:"excluded_from_fee,omitempty"`
	AMMPairs        []Address `json:"amm_pairs,omitempty"`
	Accounts        []Account `json:"accounts,omitempty"`
}

type Account struct {
	Address    Address     `json:"address"`
	Nonce      uint64      `json:"nonce,omitempty"`
	Balance    []Balance   `json:"balance,omitempty"`
	Allowances []Allowance `json:"allowances,omitempty"`
}

type Balance struct {
	Coin  uint64 `json:"coin"`
	Value string `json:"value"`
}

type Allowance struct {
	Spender Address `json:"spender"`
	Value   string  `json:"value"`
}

// NewDefaultAppState builds the reference deployment: the whole supply split
// between the owner and the team wallet, owner and contract excluded from fee.
func NewDefaultAppState(owner, team Address) AppState {
	total := helpers.TokensToUnits(big.NewInt(DefaultTotalUnits))
	teamShare := helpers.TokensToUnits(big.NewInt(DefaultTeamUnits))
	contract := CreateContractAddress(owner, DefaultSymbol)

	return AppState{
		Name:            DefaultName,
		Symbol:          DefaultSymbol,
		Decimals:        Decimals,
		Owner:           owner,
		ContractAddress: contract,
		TaxWallet:       owner,
		TotalSupply:     total.String(),
		BuyTax:          DefaultBuyTax,
		SellTax:         DefaultSellTax,
		ExcludedFromFee: []Address{owner, contract},
		Accounts: []Account{
			{
				Address: owner,
				Balance: []Balance{{Coin: uint64(TokenCoinID), Value: new(big.Int).Sub(total, teamShare).String()}},
			},
			{
				Address: team,
				Balance: []Balance{{Coin: uint64(TokenCoinID), Value: teamShare.String()}},
			},
		},
	}
}

func (s *AppState) Verify() error {
	if s.Name == "" || s.Symbol == "" {
		return fmt.Errorf("name and symbol should not be empty")
	}

	if s.Owner.IsZero() {
		return fmt.Errorf("owner should not be zero address")
	}

	if s.ContractAddress.IsZero() {
		return fmt.Errorf("contract address should not be zero address")
	}

	if s.TaxWallet.IsZero() {
		return fmt.Errorf("tax wallet should not be zero address")
	}

	if !helpers.IsValidBigInt(s.TotalSupply) {
		return fmt.Errorf("total supply is not valid BigInt")
	}

	if s.BuyTax > MaxTaxBps || s.SellTax > MaxTaxBps {
		return fmt.Errorf("tax should not exceed %d bps", MaxTaxBps)
	}

	tokenSum := big.NewInt(0)
	accounts := map[Address]struct{}{}
	for _, acc := range s.Accounts {
		// check for account duplication
		if _, exists := accounts[acc.Address]; exists {
			return fmt.Errorf("duplicated account %s", acc.Address.String())
		}
		accounts[acc.Address] = struct{}{}

		if acc.Address.IsZero() {
			return fmt.Errorf("zero address can not hold balance")
		}

		coins := map[uint64]struct{}{}
		for _, bal := range acc.Balance {
			if _, exists := coins[bal.Coin]; exists {
				return fmt.Errorf("duplicated coin %d for account %s", bal.Coin, acc.Address.String())
			}
			coins[bal.Coin] = struct{}{}

			if !helpers.IsValidBigInt(bal.Value) {
				return fmt.Errorf("not valid balance for account %s", acc.Address.String())
			}

			switch CoinID(bal.Coin) {
			case TokenCoinID:
				tokenSum.Add(tokenSum, helpers.StringToBigInt(bal.Value))
			case NativeCoinID:
			default:
				return fmt.Errorf("coin %d not found", bal.Coin)
			}
		}

		spenders := map[Address]struct{}{}
		for _, allowance := range acc.Allowances {
			if _, exists := spenders[allowance.Spender]; exists {
				return fmt.Errorf("duplicated allowance %s for account %s", allowance.Spender.String(), acc.Address.String())
			}
			spenders[allowance.Spender] = struct{}{}

			if !helpers.IsValidBigInt(allowance.Value) {
				return fmt.Errorf("not valid allowance for account %s", acc.Address.String())
			}
		}
	}

	if tokenSum.Cmp(helpers.StringToBigInt(s.TotalSupply)) != 0 {
		return fmt.Errorf("sum of balances %s does not match total supply %s", tokenSum, s.TotalSupply)
	}

	return nil
}
