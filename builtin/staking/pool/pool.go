// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/maia/maia"
)

// Pool is the accounting context of one staked asset.
// RewardToken is both the staked asset and the token rewards are paid in.
type Pool struct {
	RewardToken    maia.Address
	RelativeWeight uint64
	// LastRewardBalance is the reward part of the engine's balance not yet paid out.
	LastRewardBalance *big.Int
	// Undistributed is the part of LastRewardBalance not yet priced into AccRewardPerShare.
	Undistributed     *big.Int
	AccRewardPerShare *big.Int
	TotalStaked       *big.Int
	TopStakerSlots    uint32
	CreatedAt         uint64
}

func newPool(asset maia.Address, weight uint64, slots uint32, now uint64) *Pool {
	return &Pool{
		RewardToken:       asset,
		RelativeWeight:    weight,
		LastRewardBalance: new(big.Int),
		Undistributed:     new(big.Int),
		AccRewardPerShare: new(big.Int),
		TotalStaked:       new(big.Int),
		TopStakerSlots:    slots,
		CreatedAt:         now,
	}
}

// Accounted returns the engine balance the pool owns: principal plus unpaid rewards.
func (p *Pool) Accounted() *big.Int {
	return new(big.Int).Add(p.TotalStaked, p.LastRewardBalance)
}

// Accrued returns the reward earned by amount shares at the current accumulator.
func (p *Pool) Accrued(amount *big.Int) *big.Int {
	v := new(big.Int).Mul(amount, p.AccRewardPerShare)
	return v.Div(v, maia.Precision)
}

// priceIn moves Undistributed into the accumulator. The amount taken out of Undistributed
// rounds up, so the accumulator never promises more than the pool received.
func (p *Pool) priceIn() {
	if p.TotalStaked.Sign() == 0 || p.Undistributed.Sign() == 0 {
		return
	}
	inc := new(big.Int).Mul(p.Undistributed, maia.Precision)
	inc.Div(inc, p.TotalStaked)
	if inc.Sign() == 0 {
		return
	}
	p.AccRewardPerShare.Add(p.AccRewardPerShare, inc)

	priced, rem := new(big.Int).QuoRem(new(big.Int).Mul(inc, p.TotalStaked), maia.Precision, new(big.Int))
	if rem.Sign() > 0 {
		priced.Add(priced, common.Big1)
	}
	p.Undistributed.Sub(p.Undistributed, priced)
}
