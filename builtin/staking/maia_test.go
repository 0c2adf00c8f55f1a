// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/maia/builtin/gold"
	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/staking/fees"
	"github.com/vechain/maia/builtin/valar"
	"github.com/vechain/maia/lvldb"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

var (
	owner    = maia.BytesToAddress([]byte("owner"))
	addr1    = maia.BytesToAddress([]byte("addr1"))
	addr2    = maia.BytesToAddress([]byte("addr2"))
	addr3    = maia.BytesToAddress([]byte("addr3"))
	treasury = maia.BytesToAddress([]byte("treasury"))

	goldAddr  = maia.BytesToAddress([]byte("gold"))
	valarAddr = maia.BytesToAddress([]byte("valar"))
	maiaAddr  = maia.BytesToAddress([]byte("maia"))
)

type fixture struct {
	t     *testing.T
	state *state.State
	gold  *gold.Gold
	valar *valar.Valar
	maia  *Maia
}

func zeroTaxOptions() Options {
	opts := DefaultOptions()
	opts.Fees.Entry = 0
	opts.Fees.Claim.Standard, opts.Fees.Claim.Member = 0, 0
	opts.Fees.LockedExit.Standard, opts.Fees.LockedExit.Member = 0, 0
	opts.Fees.LockPeriod = 0
	return opts
}

func newFixture(t *testing.T, opts Options) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	g := gold.New(goldAddr, st)
	require.NoError(t, g.Initialize(owner, big.NewInt(100000)))
	v := valar.New(valarAddr, st)
	require.NoError(t, v.Initialize(owner))

	resolver := TokenResolverFunc(func(asset maia.Address) (Token, error) {
		if asset == goldAddr {
			return g, nil
		}
		return nil, errUnknownAsset
	})
	m := New(maiaAddr, st, resolver, v, opts)
	require.NoError(t, m.Initialize(owner))

	return &fixture{t: t, state: st, gold: g, valar: v, maia: m}
}

func (f *fixture) addPool(weight uint64) maia.PoolID {
	pid, err := f.maia.AddPool(owner, weight, goldAddr, true, 0, 0)
	require.NoError(f.t, err)
	return pid
}

// fund sends amount from the owner to user and approves the engine for it.
func (f *fixture) fund(user maia.Address, amount int64) {
	if user != owner {
		require.NoError(f.t, f.gold.Transfer(owner, user, big.NewInt(amount)))
	}
	require.NoError(f.t, f.gold.Approve(user, maiaAddr, big.NewInt(amount)))
}

func (f *fixture) deposit(pid maia.PoolID, user maia.Address, amount int64, now uint64) {
	f.fund(user, amount)
	require.NoError(f.t, f.maia.Deposit(pid, user, big.NewInt(amount), now))
}

func (f *fixture) reward(amount int64) {
	require.NoError(f.t, f.gold.Transfer(owner, maiaAddr, big.NewInt(amount)))
}

func (f *fixture) goldOf(addr maia.Address) string {
	bal, err := f.gold.BalanceOf(addr)
	require.NoError(f.t, err)
	return bal.String()
}

func (f *fixture) pending(pid maia.PoolID, user maia.Address) string {
	p, err := f.maia.PendingReward(pid, user)
	require.NoError(f.t, err)
	return p.String()
}

func (f *fixture) votes(addr maia.Address) string {
	v, err := f.maia.GetVotes(addr)
	require.NoError(f.t, err)
	return v.String()
}

func (f *fixture) isTop(pid maia.PoolID, user maia.Address) bool {
	ok, err := f.maia.IsTopStaker(pid, user)
	require.NoError(f.t, err)
	return ok
}

func TestOwnership(t *testing.T) {
	f := newFixture(t, zeroTaxOptions())

	o, err := f.maia.Owner()
	assert.NoError(t, err)
	assert.Equal(t, owner, o)
	assert.ErrorIs(t, f.maia.Initialize(addr1), reverts.ErrUnauthorized)

	_, err = f.maia.AddPool(addr1, 100, goldAddr, true, 0, 0)
	assert.EqualError(t, err, "Ownable: caller is not the owner")

	_, err = f.maia.AddPool(owner, 100, maia.Address{}, true, 0, 0)
	assert.ErrorIs(t, err, errZeroAsset)
	_, err = f.maia.AddPool(owner, 100, addr1, true, 0, 0)
	assert.ErrorIs(t, err, errUnknownAsset)

	f.addPool(100)
	n, err := f.maia.PoolLength()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	p, err := f.maia.GetPool(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(2), p.TopStakerSlots)
	assert.Equal(t, uint64(100), p.RelativeWeight)

	_, err = f.maia.GetPool(1)
	assert.ErrorIs(t, err, reverts.ErrPoolNotFound)

	assert.ErrorIs(t, f.maia.SetPool(addr1, 0, 5, false), reverts.ErrUnauthorized)
	assert.NoError(t, f.maia.SetPool(owner, 0, 5, false))
	p, err = f.maia.GetPool(0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), p.RelativeWeight)
}

func delegateFixture(t *testing.T) *fixture {
	f := newFixture(t, zeroTaxOptions())
	f.addPool(100)
	f.deposit(0, owner, 800, 1)
	f.deposit(0, addr1, 900, 1)
	f.deposit(0, addr2, 1000, 1)
	return f
}

func TestDelegateVotes(t *testing.T) {
	t.Run("zero votes initially", func(t *testing.T) {
		f := delegateFixture(t)
		assert.Equal(t, "0", f.votes(owner))
	})

	t.Run("self delegation", func(t *testing.T) {
		f := delegateFixture(t)
		require.NoError(t, f.maia.Delegate(owner, owner, 2))
		assert.Equal(t, "800", f.votes(owner))
	})

	t.Run("delegate to another user", func(t *testing.T) {
		f := delegateFixture(t)
		require.NoError(t, f.maia.Delegate(owner, addr1, 2))
		assert.Equal(t, "800", f.votes(addr1))
		d, err := f.maia.Delegates(owner)
		assert.NoError(t, err)
		assert.Equal(t, addr1, d)
	})

	t.Run("delegatee cannot delegate further", func(t *testing.T) {
		f := delegateFixture(t)
		require.NoError(t, f.maia.Delegate(owner, addr3, 2))
		assert.ErrorIs(t, f.maia.Delegate(addr3, addr2, 3), reverts.ErrDelegationCycle)
		assert.Equal(t, "0", f.votes(addr2))
		assert.Equal(t, "800", f.votes(addr3))
	})

	t.Run("votes follow withdrawals", func(t *testing.T) {
		f := delegateFixture(t)
		require.NoError(t, f.maia.Delegate(owner, addr1, 2))
		require.NoError(t, f.maia.Withdraw(0, owner, big.NewInt(100), 3))
		assert.Equal(t, "700", f.votes(addr1))

		past, err := f.maia.GetPastVotes(addr1, 2)
		assert.NoError(t, err)
		assert.Equal(t, "800", past.String())
		past, err = f.maia.GetPastVotes(addr1, 1)
		assert.NoError(t, err)
		assert.Equal(t, "0", past.String())
	})

	t.Run("top staker cannot delegate", func(t *testing.T) {
		f := delegateFixture(t)
		err := f.maia.Delegate(addr1, addr1, 2)
		assert.EqualError(t, err, "Top staker cannot delegate")
		assert.ErrorIs(t, err, reverts.ErrDelegationCycle)
	})
}

func TestShareToken(t *testing.T) {
	f := newFixture(t, zeroTaxOptions())
	f.addPool(100)
	f.deposit(0, addr1, 1000, 1)
	f.reward(1000)

	bal, err := f.maia.BalanceOf(addr1)
	assert.NoError(t, err)
	assert.Equal(t, "1000", bal.String())
	supply, err := f.maia.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, "1000", supply.String())

	assert.EqualError(t, f.maia.Transfer(addr1, addr2, big.NewInt(900)), "Non transferable token")
	assert.EqualError(t, f.maia.Transfer(addr1, maiaAddr, big.NewInt(900)), "Non transferable token")
	assert.EqualError(t, f.maia.Transfer(addr1, maia.Address{}, big.NewInt(900)), "ERC20: transfer to the zero address")
	assert.ErrorIs(t, f.maia.TransferFrom(addr2, addr1, addr2, big.NewInt(1)), reverts.ErrNonTransferable)

	require.NoError(t, f.maia.Withdraw(0, addr1, big.NewInt(100), 2))
	bal, _ = f.maia.BalanceOf(addr1)
	supply, _ = f.maia.TotalSupply()
	assert.Equal(t, "900", bal.String())
	assert.Equal(t, "900", supply.String())

	require.NoError(t, f.maia.Withdraw(0, addr1, big.NewInt(900), 3))
	bal, _ = f.maia.BalanceOf(addr1)
	supply, _ = f.maia.TotalSupply()
	assert.Equal(t, "0", bal.String())
	assert.Equal(t, "0", supply.String())
}

func TestTopStakers(t *testing.T) {
	setup := func(t *testing.T) *fixture {
		f := newFixture(t, zeroTaxOptions())
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)
		return f
	}

	t.Run("first staker", func(t *testing.T) {
		f := setup(t)
		assert.True(t, f.isTop(0, addr1))
	})

	t.Run("free slot", func(t *testing.T) {
		f := setup(t)
		f.deposit(0, addr2, 2000, 2)
		assert.True(t, f.isTop(0, addr1))
		assert.True(t, f.isTop(0, addr2))
	})

	t.Run("larger stake evicts smallest", func(t *testing.T) {
		f := setup(t)
		f.deposit(0, addr2, 2000, 2)
		f.deposit(0, addr3, 2000, 3)
		assert.False(t, f.isTop(0, addr1))
		assert.True(t, f.isTop(0, addr2))
		assert.True(t, f.isTop(0, addr3))

		top, err := f.maia.TopStakers(0)
		assert.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, addr2, top[0].Staker)
		assert.Equal(t, addr3, top[1].Staker)
	})

	t.Run("full withdrawal drops staker", func(t *testing.T) {
		f := setup(t)
		f.deposit(0, addr2, 2000, 2)
		f.deposit(0, addr3, 2000, 3)
		require.NoError(t, f.maia.Withdraw(0, addr2, big.NewInt(2000), 4))
		assert.False(t, f.isTop(0, addr1))
		assert.False(t, f.isTop(0, addr2))
		assert.True(t, f.isTop(0, addr3))
	})

	t.Run("unknown pool", func(t *testing.T) {
		f := setup(t)
		_, err := f.maia.IsTopStaker(7, addr1)
		assert.ErrorIs(t, err, reverts.ErrPoolNotFound)
	})
}

func TestSingleStakerRewards(t *testing.T) {
	setup := func(t *testing.T) *fixture {
		f := newFixture(t, zeroTaxOptions())
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)
		f.reward(1000)
		return f
	}

	t.Run("pending", func(t *testing.T) {
		f := setup(t)
		assert.Equal(t, "1000", f.pending(0, addr1))
	})

	t.Run("claim", func(t *testing.T) {
		f := setup(t)
		assert.Equal(t, "0", f.goldOf(addr1))
		require.NoError(t, f.maia.Claim(0, addr1))
		assert.Equal(t, "1000", f.goldOf(addr1))
		assert.Equal(t, "0", f.pending(0, addr1))
	})

	t.Run("late staker gets nothing", func(t *testing.T) {
		f := setup(t)
		f.deposit(0, addr2, 1000, 2)
		assert.Equal(t, "0", f.pending(0, addr2))
		require.NoError(t, f.maia.Claim(0, addr2))
		assert.Equal(t, "0", f.goldOf(addr2))
	})

	t.Run("deposit pays pending", func(t *testing.T) {
		f := setup(t)
		f.fund(addr1, 10)
		assert.Equal(t, "10", f.goldOf(addr1))
		require.NoError(t, f.maia.Deposit(0, addr1, big.NewInt(10), 2))
		assert.Equal(t, "1000", f.goldOf(addr1))
	})
}

func TestMultiStakerRewards(t *testing.T) {
	setup := func(t *testing.T) *fixture {
		f := newFixture(t, zeroTaxOptions())
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)
		f.deposit(0, addr2, 1000, 1)
		f.reward(1000)
		return f
	}

	t.Run("even split", func(t *testing.T) {
		f := setup(t)
		assert.Equal(t, "500", f.pending(0, addr1))
		assert.Equal(t, "500", f.pending(0, addr2))
		require.NoError(t, f.maia.Claim(0, addr1))
		require.NoError(t, f.maia.Claim(0, addr2))
		assert.Equal(t, "500", f.goldOf(addr1))
		assert.Equal(t, "500", f.goldOf(addr2))
	})

	t.Run("withdraw claims", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.maia.Withdraw(0, addr2, big.NewInt(1000), 2))
		assert.Equal(t, "1500", f.goldOf(addr2))
		assert.Equal(t, "0", f.pending(0, addr2))
		assert.Equal(t, "500", f.pending(0, addr1))

		f.reward(1000)
		assert.Equal(t, "0", f.pending(0, addr2))
		assert.Equal(t, "1500", f.pending(0, addr1))
		require.NoError(t, f.maia.Claim(0, addr1))
		assert.Equal(t, "1500", f.goldOf(addr1))
		require.NoError(t, f.maia.Claim(0, addr2))
		assert.Equal(t, "1500", f.goldOf(addr2))
	})

	t.Run("third staker", func(t *testing.T) {
		f := setup(t)
		f.fund(addr3, 2000)
		assert.Equal(t, "0", f.pending(0, addr3))
		require.NoError(t, f.maia.Deposit(0, addr3, big.NewInt(2000), 2))
		assert.Equal(t, "0", f.pending(0, addr3))

		f.reward(2000)
		assert.Equal(t, "1000", f.pending(0, addr1))
		assert.Equal(t, "1000", f.pending(0, addr2))
		assert.Equal(t, "1000", f.pending(0, addr3))

		require.NoError(t, f.maia.Claim(0, addr3))
		assert.Equal(t, "1000", f.goldOf(addr3))

		require.NoError(t, f.maia.Withdraw(0, addr3, big.NewInt(1000), 3))
		f.reward(3000)
		assert.Equal(t, "2000", f.pending(0, addr1))
		assert.Equal(t, "2000", f.pending(0, addr2))
		assert.Equal(t, "1000", f.pending(0, addr3))
	})
}

func TestPoolWeights(t *testing.T) {
	f := newFixture(t, zeroTaxOptions())
	f.addPool(100)
	f.addPool(300)
	f.deposit(0, addr1, 1000, 1)
	f.deposit(1, addr2, 1000, 1)
	f.reward(4000)

	assert.Equal(t, "1000", f.pending(0, addr1))
	assert.Equal(t, "3000", f.pending(1, addr2))

	require.NoError(t, f.maia.UpdatePools())
	p0, err := f.maia.GetPool(0)
	require.NoError(t, err)
	p1, err := f.maia.GetPool(1)
	require.NoError(t, err)
	assert.Equal(t, "1000", p0.LastRewardBalance.String())
	assert.Equal(t, "3000", p1.LastRewardBalance.String())

	// a pool added with update does not share rewards that already arrived
	f.reward(400)
	pid, err := f.maia.AddPool(owner, 400, goldAddr, true, 3, 5)
	require.NoError(t, err)
	p2, err := f.maia.GetPool(pid)
	require.NoError(t, err)
	assert.Equal(t, "0", p2.LastRewardBalance.String())
	assert.Equal(t, uint32(3), p2.TopStakerSlots)
	assert.Equal(t, "1100", f.pending(0, addr1))
	assert.Equal(t, "3300", f.pending(1, addr2))
}

func TestRejectionsRevert(t *testing.T) {
	f := newFixture(t, zeroTaxOptions())
	f.addPool(100)

	err := f.maia.Deposit(0, addr1, big.NewInt(100), 1)
	assert.ErrorIs(t, err, reverts.ErrInsufficientAllowance)
	assert.ErrorIs(t, f.maia.Deposit(0, addr1, big.NewInt(0), 1), reverts.ErrZeroAmount)
	assert.ErrorIs(t, f.maia.Deposit(3, addr1, big.NewInt(1), 1), reverts.ErrPoolNotFound)

	f.deposit(0, addr1, 1000, 1)
	assert.ErrorIs(t, f.maia.Withdraw(0, addr1, big.NewInt(1001), 2), reverts.ErrInsufficientStake)
	assert.ErrorIs(t, f.maia.Withdraw(0, addr1, big.NewInt(0), 2), reverts.ErrInsufficientStake)
	assert.ErrorIs(t, f.maia.Withdraw(0, addr2, big.NewInt(1), 2), reverts.ErrInsufficientStake)

	u, err := f.maia.GetUser(0, addr1)
	require.NoError(t, err)
	assert.Equal(t, "1000", u.Amount.String())
	total, err := f.maia.TotalStaked(0)
	require.NoError(t, err)
	assert.Equal(t, "1000", total.String())

	// a failed transfer out rolls back the whole withdrawal
	f.reward(100)
	require.NoError(t, f.gold.Transfer(maiaAddr, owner, big.NewInt(1100)))
	assert.ErrorIs(t, f.maia.Withdraw(0, addr1, big.NewInt(1000), 3), reverts.ErrInsufficientBalance)
	u, err = f.maia.GetUser(0, addr1)
	require.NoError(t, err)
	assert.Equal(t, "1000", u.Amount.String())
	assert.True(t, f.isTop(0, addr1))
}

func TestDefaultTaxes(t *testing.T) {
	t.Run("entry tax is withheld", func(t *testing.T) {
		f := newFixture(t, DefaultOptions())
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)

		u, err := f.maia.GetUser(0, addr1)
		require.NoError(t, err)
		assert.Equal(t, "960", u.Amount.String())
		bal, err := f.maia.BalanceOf(addr1)
		require.NoError(t, err)
		assert.Equal(t, "960", bal.String())
		w, err := f.maia.Withheld(goldAddr)
		require.NoError(t, err)
		assert.Equal(t, "40", w.String())

		// withheld tax is never paid out as reward
		assert.Equal(t, "0", f.pending(0, addr1))
	})

	t.Run("claim tax", func(t *testing.T) {
		f := newFixture(t, DefaultOptions())
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)
		f.reward(1000)

		assert.Equal(t, "999", f.pending(0, addr1))
		require.NoError(t, f.maia.Claim(0, addr1))
		assert.Equal(t, "900", f.goldOf(addr1))
		w, err := f.maia.Withheld(goldAddr)
		require.NoError(t, err)
		assert.Equal(t, "139", w.String())
	})

	t.Run("member discount", func(t *testing.T) {
		f := newFixture(t, DefaultOptions())
		f.addPool(100)
		require.NoError(t, f.valar.Mint(owner, addr1, big.NewInt(1)))
		f.deposit(0, addr1, 1000, 1)
		f.reward(1000)

		require.NoError(t, f.maia.Claim(0, addr1))
		assert.Equal(t, "950", f.goldOf(addr1))

		// revoked membership pays the standard rate again
		require.NoError(t, f.valar.Transfer(owner, addr1, owner, big.NewInt(1)))
		f.reward(960)
		require.NoError(t, f.maia.Claim(0, addr1))
		assert.Equal(t, "1814", f.goldOf(addr1))
	})

	t.Run("treasury receives entry and exit tax", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Fees.Treasury = treasury
		f := newFixture(t, opts)
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)
		assert.Equal(t, "40", f.goldOf(treasury))

		require.NoError(t, f.maia.Withdraw(0, addr1, big.NewInt(960), 1+maia.Day))
		assert.Equal(t, "864", f.goldOf(addr1))
		assert.Equal(t, "136", f.goldOf(treasury))
		w, err := f.maia.Withheld(goldAddr)
		require.NoError(t, err)
		assert.Equal(t, "0", w.String())
	})

	t.Run("unlocked exit is free", func(t *testing.T) {
		f := newFixture(t, DefaultOptions())
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)
		require.NoError(t, f.maia.Withdraw(0, addr1, big.NewInt(960), 1+7*maia.Day))
		assert.Equal(t, "960", f.goldOf(addr1))
	})

	t.Run("lock reject", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Fees.LockMode = fees.LockReject
		f := newFixture(t, opts)
		f.addPool(100)
		f.deposit(0, addr1, 1000, 1)
		assert.ErrorIs(t, f.maia.Withdraw(0, addr1, big.NewInt(960), 2), reverts.ErrLocked)
		require.NoError(t, f.maia.Withdraw(0, addr1, big.NewInt(960), 1+7*maia.Day))
		assert.Equal(t, "960", f.goldOf(addr1))
	})

	t.Run("too little after tax", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Fees.Entry = maia.BpsDenominator
		f := newFixture(t, opts)
		f.addPool(100)
		f.fund(addr1, 1)
		assert.ErrorIs(t, f.maia.Deposit(0, addr1, big.NewInt(1), 1), reverts.ErrTooLittle)
		assert.Equal(t, "1", f.goldOf(addr1))
	})
}

func TestTwoStakersDefaultTaxes(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	f.addPool(100)
	f.deposit(0, addr1, 1000, 1)
	f.deposit(0, addr2, 1000, 1)

	for _, u := range []maia.Address{addr1, addr2} {
		us, err := f.maia.GetUser(0, u)
		require.NoError(t, err)
		assert.Equal(t, "960", us.Amount.String())
	}

	f.reward(1000)
	assert.Equal(t, f.pending(0, addr1), f.pending(0, addr2))
	assert.Equal(t, "499", f.pending(0, addr1))

	require.NoError(t, f.maia.Claim(0, addr1))
	require.NoError(t, f.maia.Claim(0, addr2))
	assert.Equal(t, f.goldOf(addr1), f.goldOf(addr2))

	paid := new(big.Int)
	for _, u := range []maia.Address{addr1, addr2} {
		bal, err := f.gold.BalanceOf(u)
		require.NoError(t, err)
		paid.Add(paid, bal)
	}
	// at most the reward less the standard claim tax of 10%
	assert.True(t, paid.Cmp(big.NewInt(900)) <= 0, "paid %v", paid)
	assert.Equal(t, "900", paid.String())

	w, err := f.maia.Withheld(goldAddr)
	require.NoError(t, err)
	assert.Equal(t, "178", w.String())
	f.checkConservation([]maia.PoolID{0}, []maia.Address{addr1, addr2})
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())

	opts.TopStakerSlots = 0
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.Fees.Entry = maia.BpsDenominator + 1
	assert.Error(t, opts.Validate())
}
