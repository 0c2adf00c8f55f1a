// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/maia"
)

var logger = log.WithContext("pkg", "pool")

var (
	slotPools    = maia.BytesToBytes32([]byte("pools"))
	slotLength   = maia.BytesToBytes32([]byte("pools-length"))
	slotByAsset  = maia.BytesToBytes32([]byte("pools-by-asset"))
	slotWithheld = maia.BytesToBytes32([]byte("withheld"))
	slotAssets   = maia.BytesToBytes32([]byte("assets"))
)

// Service is the append-only pool registry and the reward accumulator.
type Service struct {
	pools    *solidity.Mapping[maia.PoolID, *Pool]
	length   *solidity.Uint256
	byAsset  *solidity.Mapping[maia.Address, []maia.PoolID]
	assets   *solidity.Value[[]maia.Address]
	withheld *solidity.Mapping[maia.Address, *big.Int]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		pools:    solidity.NewMapping[maia.PoolID, *Pool](sctx, slotPools),
		length:   solidity.NewUint256(sctx, slotLength),
		byAsset:  solidity.NewMapping[maia.Address, []maia.PoolID](sctx, slotByAsset),
		assets:   solidity.NewValue[[]maia.Address](sctx, slotAssets),
		withheld: solidity.NewMapping[maia.Address, *big.Int](sctx, slotWithheld),
	}
}

// Length returns the number of pools.
func (s *Service) Length() (uint64, error) {
	n, err := s.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Add appends a pool and returns its id.
func (s *Service) Add(asset maia.Address, weight uint64, slots uint32, now uint64) (maia.PoolID, error) {
	n, err := s.Length()
	if err != nil {
		return 0, err
	}
	id := maia.PoolID(n)
	if err := s.pools.Set(id, newPool(asset, weight, slots, now)); err != nil {
		return 0, errors.Wrap(err, "failed to set pool")
	}
	s.length.Set(new(big.Int).SetUint64(n + 1))

	ids, err := s.byAsset.Get(asset)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		assets, err := s.assets.Get()
		if err != nil {
			return 0, err
		}
		if err := s.assets.Set(append(assets, asset)); err != nil {
			return 0, err
		}
	}
	if err := s.byAsset.Set(asset, append(ids, id)); err != nil {
		return 0, errors.Wrap(err, "failed to index pool")
	}
	return id, nil
}

// Get returns the pool, or reverts.ErrPoolNotFound.
func (s *Service) Get(id maia.PoolID) (*Pool, error) {
	p, err := s.pools.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if p == nil {
		return nil, reverts.ErrPoolNotFound
	}
	return p, nil
}

// Update writes back a pool returned by Get.
func (s *Service) Update(id maia.PoolID, p *Pool) error {
	if err := s.pools.Set(id, p); err != nil {
		return errors.Wrap(err, "failed to update pool")
	}
	return nil
}

// PoolsOf returns the ids of pools staking the asset, in creation order.
func (s *Service) PoolsOf(asset maia.Address) ([]maia.PoolID, error) {
	return s.byAsset.Get(asset)
}

// Assets returns every asset with at least one pool.
func (s *Service) Assets() ([]maia.Address, error) {
	return s.assets.Get()
}

// Withheld returns taxes of the asset kept inside the engine balance.
func (s *Service) Withheld(asset maia.Address) (*big.Int, error) {
	v, err := s.withheld.Get(asset)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return new(big.Int), nil
	}
	return v, nil
}

// Withhold adds a tax to the withheld balance of the asset.
func (s *Service) Withhold(asset maia.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	v, err := s.Withheld(asset)
	if err != nil {
		return err
	}
	return s.withheld.Set(asset, v.Add(v, amount))
}

// Reconcile attributes the unaccounted part of balance, the engine's holding of asset,
// to the pools of the asset by relative weight, then prices it into each pool with stake.
func (s *Service) Reconcile(asset maia.Address, balance *big.Int) error {
	ids, err := s.PoolsOf(asset)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	pools := make([]*Pool, len(ids))
	accounted, err := s.Withheld(asset)
	if err != nil {
		return err
	}
	for i, id := range ids {
		if pools[i], err = s.Get(id); err != nil {
			return err
		}
		accounted.Add(accounted, pools[i].Accounted())
	}

	fresh := new(big.Int).Sub(balance, accounted)
	switch fresh.Sign() {
	case 1:
		logger.Debug("reward arrived", "asset", asset, "amount", fresh)
		for i, share := range splitByWeight(fresh, pools) {
			pools[i].LastRewardBalance.Add(pools[i].LastRewardBalance, share)
			pools[i].Undistributed.Add(pools[i].Undistributed, share)
		}
	case -1:
		logger.Warn("balance below accounted", "asset", asset, "balance", balance, "accounted", accounted)
	}

	for i, p := range pools {
		p.priceIn()
		if err := s.Update(ids[i], p); err != nil {
			return err
		}
	}
	return nil
}

// splitByWeight divides amount by RelativeWeight, the rounding remainder goes to the last pool.
// When all weights are zero every pool weighs one.
func splitByWeight(amount *big.Int, pools []*Pool) []*big.Int {
	weights := make([]*big.Int, len(pools))
	total := new(big.Int)
	for i, p := range pools {
		weights[i] = new(big.Int).SetUint64(p.RelativeWeight)
		total.Add(total, weights[i])
	}
	if total.Sign() == 0 {
		for i := range weights {
			weights[i] = big.NewInt(1)
		}
		total.SetInt64(int64(len(weights)))
	}

	shares := make([]*big.Int, len(pools))
	left := new(big.Int).Set(amount)
	for i := range pools {
		if i == len(pools)-1 {
			shares[i] = left
			break
		}
		share := new(big.Int).Mul(amount, weights[i])
		share.Div(share, total)
		left.Sub(left, share)
		shares[i] = share
	}
	return shares
}
