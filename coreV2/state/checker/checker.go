package checker

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/MinterTeam/taxtoken/coreV2/state/bus"
	"github.com/MinterTeam/taxtoken/coreV2/types"
)

// Checker accumulates per-operation balance deltas (AddCoin) and supply
// deltas (AddCoinVolume). Both must match for every coin when the operation ends.
type Checker struct {
	delta       map[types.CoinID]*big.Int
	volumeDelta map[types.CoinID]*big.Int

	lock sync.RWMutex
}

func NewChecker(bus *bus.Bus) *Checker {
	checker := &Checker{
		delta:       map[types.CoinID]*big.Int{},
		volumeDelta: map[types.CoinID]*big.Int{},
	}
	bus.SetChecker(checker)

	return checker
}

func (c *Checker) AddCoin(coin types.CoinID, value *big.Int, msg ...string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	cValue, exists := c.delta[coin]

	if !exists {
		cValue = big.NewInt(0)
		c.delta[coin] = cValue
	}

	cValue.Add(cValue, value)
}

func (c *Checker) AddCoinVolume(coin types.CoinID, value *big.Int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	cValue, exists := c.volumeDelta[coin]

	if !exists {
		cValue = big.NewInt(0)
		c.volumeDelta[coin] = cValue
	}

	cValue.Add(cValue, value)
}

// Reset resets checker coin data
func (c *Checker) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.delta = map[types.CoinID]*big.Int{}
	c.volumeDelta = map[types.CoinID]*big.Int{}
}

// RemoveNativeCoin clears data for the native coin, whose supply is owned by the host
func (c *Checker) RemoveNativeCoin() {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.delta, types.NativeCoinID)
	delete(c.volumeDelta, types.NativeCoinID)
}

func (c *Checker) Check() error {
	c.lock.RLock()
	defer c.lock.RUnlock()

	coins := map[types.CoinID]struct{}{}
	for coin := range c.delta {
		coins[coin] = struct{}{}
	}
	for coin := range c.volumeDelta {
		coins[coin] = struct{}{}
	}

	for coin := range coins {
		delta, volume := c.delta[coin], c.volumeDelta[coin]
		if delta == nil {
			delta = big.NewInt(0)
		}
		if volume == nil {
			volume = big.NewInt(0)
		}

		if delta.Cmp(volume) != 0 {
			return fmt.Errorf("invariants error on coin %s: %s", coin.String(), big.NewInt(0).Sub(volume, delta).String())
		}
	}

	return nil
}
