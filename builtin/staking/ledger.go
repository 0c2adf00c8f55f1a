// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/staking/fees"
	"github.com/vechain/maia/builtin/staking/pool"
	"github.com/vechain/maia/builtin/staking/stakes"
	"github.com/vechain/maia/maia"
)

// Deposit pulls amount of the pool asset from user, which must have approved the engine.
// The credited stake is what actually arrived, less the entry tax. Pending rewards are
// paid out in the same call.
func (m *Maia) Deposit(pid maia.PoolID, user maia.Address, amount *big.Int, now uint64) error {
	err := m.execute("deposit", func(st *settlement) error {
		if amount == nil || amount.Sign() <= 0 {
			return reverts.ErrZeroAmount
		}
		p, token, err := m.syncPool(pid)
		if err != nil {
			return err
		}
		u, err := m.stakeService.Get(pid, user)
		if err != nil {
			return err
		}
		pending := u.Pending(p.Accrued(u.Amount))

		received, err := m.intake(token, user, amount)
		if err != nil {
			return err
		}
		credited, tax := m.opts.Fees.EntryTax(received)
		if credited.Sign() == 0 {
			return reverts.ErrTooLittle
		}

		logger.Debug("depositing", "pid", pid, "user", user, "amount", amount, "received", received, "credited", credited)

		member, err := m.isMember(user)
		if err != nil {
			return err
		}
		if err := m.payReward(st, pid, p, token, user, pending, member); err != nil {
			return err
		}

		u.Amount = new(big.Int).Add(u.Amount, credited)
		u.RewardDebt = p.Accrued(u.Amount)
		u.DepositedAt = now
		p.TotalStaked = new(big.Int).Add(p.TotalStaked, credited)
		if err := m.routeTax(st, p.RewardToken, token, tax); err != nil {
			return err
		}
		if err := m.commitStake(pid, p, user, u, credited, now); err != nil {
			return err
		}
		if err := m.shareService.Mint(user, credited); err != nil {
			return err
		}

		logger.Info("deposited", "pid", pid, "user", user, "credited", credited, "tax", tax, "reward", pending)
		return nil
	})
	if err == nil {
		m.observePool(pid)
	}
	return err
}

// Withdraw returns amount of principal to user, less the exit tax for the stake's age.
// Pending rewards are paid out too.
func (m *Maia) Withdraw(pid maia.PoolID, user maia.Address, amount *big.Int, now uint64) error {
	err := m.execute("withdraw", func(st *settlement) error {
		if amount == nil || amount.Sign() <= 0 {
			return reverts.ErrInsufficientStake
		}
		p, token, err := m.syncPool(pid)
		if err != nil {
			return err
		}
		u, err := m.stakeService.Get(pid, user)
		if err != nil {
			return err
		}
		if u.Amount.Cmp(amount) < 0 {
			return reverts.ErrInsufficientStake
		}
		member, err := m.isMember(user)
		if err != nil {
			return err
		}

		var age uint64
		if now > u.DepositedAt {
			age = now - u.DepositedAt
		}
		bps, locked := m.opts.Fees.ExitTax(age, member)
		if locked && m.opts.Fees.LockMode == fees.LockReject {
			return reverts.ErrLocked
		}
		payout, tax := fees.Split(amount, bps)
		if payout.Sign() == 0 {
			return reverts.ErrTooLittle
		}

		logger.Debug("withdrawing", "pid", pid, "user", user, "amount", amount, "age", age, "bps", bps)

		pending := u.Pending(p.Accrued(u.Amount))
		if err := m.payReward(st, pid, p, token, user, pending, member); err != nil {
			return err
		}

		u.Amount = new(big.Int).Sub(u.Amount, amount)
		u.RewardDebt = p.Accrued(u.Amount)
		p.TotalStaked = new(big.Int).Sub(p.TotalStaked, amount)

		st.add(token, user, payout)
		if err := m.routeTax(st, p.RewardToken, token, tax); err != nil {
			return err
		}
		if err := m.commitStake(pid, p, user, u, new(big.Int).Neg(amount), now); err != nil {
			return err
		}
		if err := m.shareService.Burn(user, amount); err != nil {
			return err
		}

		logger.Info("withdrew", "pid", pid, "user", user, "payout", payout, "tax", tax, "reward", pending)
		return nil
	})
	if err == nil {
		m.observePool(pid)
	}
	return err
}

// Claim pays out the pending reward of user without touching the stake.
// Nothing pending is not an error.
func (m *Maia) Claim(pid maia.PoolID, user maia.Address) error {
	return m.execute("claim", func(st *settlement) error {
		p, token, err := m.syncPool(pid)
		if err != nil {
			return err
		}
		u, err := m.stakeService.Get(pid, user)
		if err != nil {
			return err
		}
		pending := u.Pending(p.Accrued(u.Amount))
		if pending.Sign() == 0 {
			return nil
		}
		member, err := m.isMember(user)
		if err != nil {
			return err
		}

		logger.Debug("claiming", "pid", pid, "user", user, "pending", pending)
		if err := m.payReward(st, pid, p, token, user, pending, member); err != nil {
			return err
		}
		u.RewardDebt = p.Accrued(u.Amount)
		if err := m.stakeService.Set(pid, user, u); err != nil {
			return err
		}
		if err := m.poolService.Update(pid, p); err != nil {
			return err
		}
		logger.Info("claimed", "pid", pid, "user", user, "reward", pending)
		return nil
	})
}

// intake pulls amount from user and returns what the engine balance grew by.
func (m *Maia) intake(token Token, user maia.Address, amount *big.Int) (*big.Int, error) {
	before, err := token.BalanceOf(m.addr)
	if err != nil {
		return nil, errors.Wrap(err, "engine balance")
	}
	if err := token.TransferFrom(m.addr, user, m.addr, amount); err != nil {
		return nil, err
	}
	after, err := token.BalanceOf(m.addr)
	if err != nil {
		return nil, errors.Wrap(err, "engine balance")
	}
	received := new(big.Int).Sub(after, before)
	if received.Sign() <= 0 {
		return nil, reverts.ErrTooLittle
	}
	return received, nil
}

// payReward takes the gross reward out of the pool balance, withholds the claim tax and
// settles the rest to user.
func (m *Maia) payReward(st *settlement, pid maia.PoolID, p *pool.Pool, token Token, user maia.Address, gross *big.Int, member bool) error {
	if gross.Sign() == 0 {
		return nil
	}
	if gross.Cmp(p.LastRewardBalance) > 0 {
		logger.Warn("reward exceeds pool balance", "pid", pid, "reward", gross, "balance", p.LastRewardBalance)
		gross = new(big.Int).Set(p.LastRewardBalance)
	}
	p.LastRewardBalance = new(big.Int).Sub(p.LastRewardBalance, gross)

	net, tax := fees.Split(gross, m.opts.Fees.ClaimTax(member))
	if err := m.poolService.Withhold(p.RewardToken, tax); err != nil {
		return err
	}
	st.add(token, user, net)
	metricClaimed().AddWithLabel(1, poolLabel(pid))
	return nil
}

// routeTax sends entry and exit tax to the treasury, or withholds it when there is none.
func (m *Maia) routeTax(st *settlement, asset maia.Address, token Token, tax *big.Int) error {
	if tax.Sign() == 0 {
		return nil
	}
	if m.opts.Fees.Treasury.IsZero() {
		return m.poolService.Withhold(asset, tax)
	}
	st.add(token, m.opts.Fees.Treasury, tax)
	return nil
}

// commitStake stores the user and the pool, then propagates the stake delta to the
// votes and the leaderboard.
func (m *Maia) commitStake(pid maia.PoolID, p *pool.Pool, user maia.Address, u *stakes.UserStake, delta *big.Int, now uint64) error {
	if err := m.stakeService.Set(pid, user, u); err != nil {
		return err
	}
	if err := m.poolService.Update(pid, p); err != nil {
		return err
	}
	if err := m.voteService.OnStakeChange(user, delta, now); err != nil {
		return err
	}
	return m.boardService.Update(pid, p.TopStakerSlots, user, u.Amount, u.DepositedAt)
}
