package bus

import (
	"math/big"

	"github.com/MinterTeam/taxtoken/coreV2/types"
)

type Checker interface {
	AddCoin(types.CoinID, *big.Int, ...string)
	AddCoinVolume(types.CoinID, *big.Int)
}
