// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/staking/leaderboard"
	"github.com/vechain/maia/builtin/staking/pool"
	"github.com/vechain/maia/builtin/staking/stakes"
	"github.com/vechain/maia/maia"
)

// Delegate moves the votes of from to another address. Top stakers of any pool keep
// their own votes.
func (m *Maia) Delegate(from, to maia.Address, now uint64) error {
	return m.execute("delegate", func(*settlement) error {
		top, err := m.IsTopStakerAnywhere(from)
		if err != nil {
			return err
		}
		if top {
			return reverts.ErrTopStakerDelegation
		}
		logger.Debug("delegating", "from", from, "to", to)
		if err := m.voteService.Delegate(from, to, now); err != nil {
			return err
		}
		logger.Info("delegated", "from", from, "to", to)
		return nil
	})
}

func (m *Maia) Delegates(addr maia.Address) (maia.Address, error) {
	return m.voteService.Delegates(addr)
}

func (m *Maia) GetVotes(addr maia.Address) (*big.Int, error) {
	return m.voteService.GetVotes(addr)
}

func (m *Maia) GetPastVotes(addr maia.Address, t uint64) (*big.Int, error) {
	return m.voteService.GetPastVotes(addr, t)
}

// PendingReward returns the gross reward user could claim now, including rewards that
// arrived but were not reconciled yet.
func (m *Maia) PendingReward(pid maia.PoolID, user maia.Address) (*big.Int, error) {
	var pending *big.Int
	err := m.simulate(func() error {
		p, _, err := m.syncPool(pid)
		if err != nil {
			return err
		}
		u, err := m.stakeService.Get(pid, user)
		if err != nil {
			return err
		}
		pending = u.Pending(p.Accrued(u.Amount))
		return nil
	})
	return pending, err
}

func (m *Maia) PoolLength() (uint64, error) {
	return m.poolService.Length()
}

// GetPool returns the pool as it would be after a reconcile.
func (m *Maia) GetPool(pid maia.PoolID) (*pool.Pool, error) {
	var p *pool.Pool
	err := m.simulate(func() (err error) {
		p, _, err = m.syncPool(pid)
		return err
	})
	return p, err
}

func (m *Maia) GetUser(pid maia.PoolID, user maia.Address) (*stakes.UserStake, error) {
	if _, err := m.poolService.Get(pid); err != nil {
		return nil, err
	}
	return m.stakeService.Get(pid, user)
}

func (m *Maia) TotalStaked(pid maia.PoolID) (*big.Int, error) {
	p, err := m.poolService.Get(pid)
	if err != nil {
		return nil, err
	}
	return p.TotalStaked, nil
}

func (m *Maia) IsTopStaker(pid maia.PoolID, user maia.Address) (bool, error) {
	if _, err := m.poolService.Get(pid); err != nil {
		return false, err
	}
	return m.boardService.Contains(pid, user)
}

// IsTopStakerAnywhere reports whether user is a top staker of at least one pool.
func (m *Maia) IsTopStakerAnywhere(user maia.Address) (bool, error) {
	n, err := m.poolService.Length()
	if err != nil {
		return false, err
	}
	for pid := maia.PoolID(0); uint64(pid) < n; pid++ {
		ok, err := m.boardService.Contains(pid, user)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// TopStakers returns the board of a pool, largest stake first.
func (m *Maia) TopStakers(pid maia.PoolID) ([]*leaderboard.Entry, error) {
	if _, err := m.poolService.Get(pid); err != nil {
		return nil, err
	}
	b, err := m.boardService.Get(pid)
	if err != nil {
		return nil, err
	}
	return b.Entries, nil
}

// Withheld returns the tax of asset kept by the engine outside any pool.
func (m *Maia) Withheld(asset maia.Address) (*big.Int, error) {
	return m.poolService.Withheld(asset)
}

// BalanceOf returns the share balance of addr, summed over every pool.
func (m *Maia) BalanceOf(addr maia.Address) (*big.Int, error) {
	return m.shareService.BalanceOf(addr)
}

func (m *Maia) TotalSupply() (*big.Int, error) {
	return m.shareService.TotalSupply()
}

// Transfer always fails, shares are not transferable.
func (m *Maia) Transfer(from, to maia.Address, amount *big.Int) error {
	return m.shareService.Transfer(from, to, amount)
}

func (m *Maia) TransferFrom(spender, from, to maia.Address, amount *big.Int) error {
	return m.shareService.TransferFrom(spender, from, to, amount)
}
