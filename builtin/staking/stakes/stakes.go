// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/maia"
)

var slotStakes = maia.BytesToBytes32([]byte("user-stakes"))

// UserStake is the position of one address in one pool.
type UserStake struct {
	Amount      *big.Int
	RewardDebt  *big.Int
	DepositedAt uint64
}

func empty() *UserStake {
	return &UserStake{Amount: new(big.Int), RewardDebt: new(big.Int)}
}

// IsEmpty returns whether the stake holds no shares.
func (u *UserStake) IsEmpty() bool {
	return u.Amount.Sign() == 0
}

// Pending returns the reward earned since the debt was last settled, given the accrued
// value of Amount at the current accumulator.
func (u *UserStake) Pending(accrued *big.Int) *big.Int {
	pending := new(big.Int).Sub(accrued, u.RewardDebt)
	if pending.Sign() < 0 {
		return new(big.Int)
	}
	return pending
}

// Service stores user stakes keyed by pool and address.
type Service struct {
	stakes *solidity.Mapping[maia.Bytes32, *UserStake]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakes: solidity.NewMapping[maia.Bytes32, *UserStake](sctx, slotStakes),
	}
}

func key(pid maia.PoolID, user maia.Address) maia.Bytes32 {
	return maia.Blake2b(pid.Bytes(), user.Bytes())
}

// Get returns the stake, an empty one if the user never deposited.
func (s *Service) Get(pid maia.PoolID, user maia.Address) (*UserStake, error) {
	u, err := s.stakes.Get(key(pid, user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	if u == nil {
		return empty(), nil
	}
	return u, nil
}

// Set stores the stake. A fully withdrawn stake is kept, not deleted.
func (s *Service) Set(pid maia.PoolID, user maia.Address, u *UserStake) error {
	if err := s.stakes.Set(key(pid, user), u); err != nil {
		return errors.Wrap(err, "failed to set stake")
	}
	return nil
}
