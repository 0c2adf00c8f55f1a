// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/maia/api/utils"
	"github.com/vechain/maia/builtin/staking/leaderboard"
	"github.com/vechain/maia/builtin/staking/pool"
	"github.com/vechain/maia/builtin/staking/stakes"
	"github.com/vechain/maia/maia"
)

type Pool struct {
	ID                uint64                `json:"id"`
	RewardToken       maia.Address          `json:"rewardToken"`
	RelativeWeight    uint64                `json:"relativeWeight"`
	LastRewardBalance *math.HexOrDecimal256 `json:"lastRewardBalance"`
	Undistributed     *math.HexOrDecimal256 `json:"undistributed"`
	AccRewardPerShare *math.HexOrDecimal256 `json:"accRewardPerShare"`
	TotalStaked       *math.HexOrDecimal256 `json:"totalStaked"`
	TopStakerSlots    uint32                `json:"topStakerSlots"`
	CreatedAt         uint64                `json:"createdAt"`
}

func convertPool(id maia.PoolID, p *pool.Pool) *Pool {
	return &Pool{
		ID:                uint64(id),
		RewardToken:       p.RewardToken,
		RelativeWeight:    p.RelativeWeight,
		LastRewardBalance: utils.Hex(p.LastRewardBalance),
		Undistributed:     utils.Hex(p.Undistributed),
		AccRewardPerShare: utils.Hex(p.AccRewardPerShare),
		TotalStaked:       utils.Hex(p.TotalStaked),
		TopStakerSlots:    p.TopStakerSlots,
		CreatedAt:         p.CreatedAt,
	}
}

// User is the stake of an address in a pool, with the reward it could claim now.
type User struct {
	Amount      *math.HexOrDecimal256 `json:"amount"`
	RewardDebt  *math.HexOrDecimal256 `json:"rewardDebt"`
	DepositedAt uint64                `json:"depositedAt"`
	Pending     *math.HexOrDecimal256 `json:"pending"`
	TopStaker   bool                  `json:"topStaker"`
}

func convertUser(u *stakes.UserStake) *User {
	return &User{
		Amount:      utils.Hex(u.Amount),
		RewardDebt:  utils.Hex(u.RewardDebt),
		DepositedAt: u.DepositedAt,
	}
}

type TopStaker struct {
	Staker      maia.Address          `json:"staker"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	DepositedAt uint64                `json:"depositedAt"`
}

func convertEntries(entries []*leaderboard.Entry) []*TopStaker {
	out := make([]*TopStaker, 0, len(entries))
	for _, e := range entries {
		out = append(out, &TopStaker{e.Staker, utils.Hex(e.Amount), e.DepositedAt})
	}
	return out
}

type AddPoolRequest struct {
	Caller     maia.Address  `json:"caller"`
	Weight     uint64        `json:"weight"`
	Asset      *maia.Address `json:"asset,omitempty"`
	WithUpdate bool          `json:"withUpdate"`
	Slots      uint32        `json:"slots"`
}

type SetPoolRequest struct {
	Caller     maia.Address `json:"caller"`
	Weight     uint64       `json:"weight"`
	WithUpdate bool         `json:"withUpdate"`
}

type StakeRequest struct {
	Caller maia.Address          `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type ClaimRequest struct {
	Caller maia.Address `json:"caller"`
}
